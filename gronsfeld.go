package classical

import (
	"fmt"
	"strings"
	"unicode"
)

// Gronsfeld shifts each alphabet symbol by the next digit of a repeating
// numeric key. The key position advances on every rune of the text, including
// runes that are copied unchanged because they are not in the alphabet.
type Gronsfeld struct {
	key      []int
	alphabet Alphabet
}

// NewGronsfeld creates a Gronsfeld cipher. Every key digit is reduced to
// |d| mod m, where m is the alphabet length.
func NewGronsfeld(key []int, alphabet Alphabet) (*Gronsfeld, error) {
	if alphabet.Len() == 0 {
		return nil, fmt.Errorf("%w: alphabet must not be empty", ErrInvalidAlphabet)
	}
	if len(key) == 0 {
		return nil, fmt.Errorf("%w: key must not be empty", ErrInvalidKey)
	}

	m := alphabet.Len()
	normalized := make([]int, len(key))
	for i, d := range key {
		if d < 0 {
			d = -d
		}
		normalized[i] = d % m
	}
	// Invariant: every shift lies in [0, m).
	for _, d := range normalized {
		if d < 0 || d >= m {
			return nil, fmt.Errorf("%w: key digit %d is out of range [0, %d)", ErrInvalidKey, d, m)
		}
	}

	return &Gronsfeld{key: normalized, alphabet: alphabet}, nil
}

// ParseGronsfeldKey turns a string such as "4321" or "4, 3, 2, 1" into key
// digits. Whitespace and commas are skipped.
func ParseGronsfeldKey(s string) ([]int, error) {
	var digits []int
	for _, r := range s {
		switch {
		case r == ',' || unicode.IsSpace(r):
			continue
		case r >= '0' && r <= '9':
			digits = append(digits, int(r-'0'))
		default:
			return nil, fmt.Errorf("%w: %q is not a digit", ErrInvalidKey, r)
		}
	}
	if len(digits) == 0 {
		return nil, fmt.Errorf("%w: key must not be empty", ErrInvalidKey)
	}
	return digits, nil
}

// Name implements Cipher.
func (c *Gronsfeld) Name() string {
	return NameGronsfeld
}

// Process encrypts or decrypts text. Lookup is exact, so the alphabet
// decides whether case and spaces take part in the shift.
func (c *Gronsfeld) Process(text string, encrypting bool) string {
	if text == "" {
		return ""
	}

	m := c.alphabet.Len()
	var b strings.Builder
	b.Grow(len(text))

	i := 0
	for _, r := range text {
		shift := c.key[i%len(c.key)]
		i++

		pos, ok := c.alphabet.Index(r)
		if !ok {
			b.WriteRune(r)
			continue
		}
		if !encrypting {
			shift = -shift
		}
		b.WriteRune(c.alphabet.At((pos + shift + m) % m))
	}
	return b.String()
}

// Encode implements Cipher.
func (c *Gronsfeld) Encode(text string) (string, error) {
	return c.Process(text, true), nil
}

// Decode implements Cipher.
func (c *Gronsfeld) Decode(text string) (string, error) {
	return c.Process(text, false), nil
}
