package classical

import (
	"fmt"
	"strings"
	"unicode"
)

// Alphabet is an ordered set of unique symbols. Its length is the modulus
// used by the modular ciphers. An Alphabet is never mutated after NewAlphabet.
type Alphabet struct {
	symbols []rune
	index   map[rune]int
}

var (
	// Latin is the 26-letter alphabet A–Z.
	Latin = MustAlphabet("ABCDEFGHIJKLMNOPQRSTUVWXYZ")

	// Cyrillic is the 32-letter alphabet А–Я without Ё.
	Cyrillic = MustAlphabet("АБВГДЕЖЗИЙКЛМНОПРСТУФХЦЧШЩЪЫЬЭЮЯ")
)

// NewAlphabet builds an alphabet from the runes of s in order.
// Duplicate runes are rejected. An empty alphabet is allowed here; ciphers
// that need a modulus reject it themselves.
func NewAlphabet(s string) (Alphabet, error) {
	symbols := []rune(s)
	index := make(map[rune]int, len(symbols))
	for i, r := range symbols {
		if _, dup := index[r]; dup {
			return Alphabet{}, fmt.Errorf("%w: duplicate symbol %q", ErrInvalidAlphabet, r)
		}
		index[r] = i
	}
	return Alphabet{symbols: symbols, index: index}, nil
}

// MustAlphabet is like NewAlphabet but panics on error.
func MustAlphabet(s string) Alphabet {
	a, err := NewAlphabet(s)
	if err != nil {
		panic(err)
	}
	return a
}

// ResolveAlphabet maps a well-known alphabet name to its Alphabet. Any other
// non-empty string is used literally. The empty string selects Latin.
func ResolveAlphabet(name string) (Alphabet, error) {
	switch strings.ToLower(name) {
	case "", "latin", "en", "english":
		return Latin, nil
	case "cyrillic", "ru", "russian":
		return Cyrillic, nil
	}
	return NewAlphabet(name)
}

// Len returns the number of symbols.
func (a Alphabet) Len() int {
	return len(a.symbols)
}

// At returns the symbol at position i.
func (a Alphabet) At(i int) rune {
	return a.symbols[i]
}

// Index returns the position of r, matching exactly.
func (a Alphabet) Index(r rune) (int, bool) {
	i, ok := a.index[r]
	return i, ok
}

// IndexUpper returns the position of r after converting it to upper case.
func (a Alphabet) IndexUpper(r rune) (int, bool) {
	return a.Index(unicode.ToUpper(r))
}

// Contains reports whether r is a symbol of the alphabet.
func (a Alphabet) Contains(r rune) bool {
	_, ok := a.index[r]
	return ok
}

func (a Alphabet) String() string {
	return string(a.symbols)
}
