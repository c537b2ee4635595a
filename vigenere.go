package classical

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/rs/zerolog"
)

// script describes one contiguous case-paired letter range.
type script struct {
	upper, lower rune
	size         int
}

var (
	latinScript    = script{upper: 'A', lower: 'a', size: 26}
	cyrillicScript = script{upper: 'А', lower: 'а', size: 32}
)

// scriptOf returns the script r belongs to, the base of its case and whether
// r is a supported letter at all. Ё/ё fall outside the 32-letter range.
func scriptOf(r rune) (script, rune, bool) {
	for _, s := range []script{latinScript, cyrillicScript} {
		switch {
		case r >= s.upper && r < s.upper+rune(s.size):
			return s, s.upper, true
		case r >= s.lower && r < s.lower+rune(s.size):
			return s, s.lower, true
		}
	}
	return script{}, 0, false
}

// Vigenere is a polyalphabetic shift cipher over mixed Latin and Cyrillic
// text. Case is preserved and each letter is shifted within its own script.
type Vigenere struct {
	shifts []int
	log    zerolog.Logger
}

// NewVigenere creates a Vigenère cipher from a key of letters and spaces.
// Spaces separate words of a key phrase and never act as a shift.
func NewVigenere(key string, opts ...Option) (*Vigenere, error) {
	if key == "" {
		return nil, fmt.Errorf("%w: key must not be empty", ErrInvalidKey)
	}

	var shifts []int
	for _, r := range key {
		if r == ' ' {
			continue
		}
		if !unicode.IsLetter(r) {
			return nil, fmt.Errorf("%w: key must contain only letters and spaces, got %q", ErrInvalidKey, r)
		}
		_, base, ok := scriptOf(r)
		if !ok {
			return nil, fmt.Errorf("%w: key letter %q is neither Latin nor Cyrillic", ErrInvalidKey, r)
		}
		shifts = append(shifts, int(r-base))
	}
	if len(shifts) == 0 {
		return nil, fmt.Errorf("%w: key must contain at least one letter", ErrInvalidKey)
	}

	o := newOptions(opts)
	return &Vigenere{shifts: shifts, log: o.logger}, nil
}

// Name implements Cipher.
func (c *Vigenere) Name() string {
	return NameVigenere
}

// Encode implements Cipher.
func (c *Vigenere) Encode(text string) (string, error) {
	result := c.process(text, true)
	c.log.Debug().Str("plaintext", preview(text)).Str("ciphertext", preview(result)).Msg("vigenere encode")
	return result, nil
}

// Decode implements Cipher.
func (c *Vigenere) Decode(text string) (string, error) {
	result := c.process(text, false)
	c.log.Debug().Str("ciphertext", preview(text)).Str("plaintext", preview(result)).Msg("vigenere decode")
	return result, nil
}

// process shifts every supported letter by the next key shift. Letters of
// other scripts (Ё, é) are copied but still consume a key position. Spaces,
// digits and punctuation are copied without consuming the key.
func (c *Vigenere) process(text string, encrypting bool) string {
	var b strings.Builder
	b.Grow(len(text))

	pos := 0
	for _, r := range text {
		s, base, ok := scriptOf(r)
		if !ok {
			if unicode.IsLetter(r) {
				pos++
			}
			b.WriteRune(r)
			continue
		}

		shift := c.shifts[pos%len(c.shifts)] % s.size
		pos++
		if !encrypting {
			shift = -shift
		}
		offset := (int(r-base) + shift + s.size) % s.size
		b.WriteRune(base + rune(offset))
	}
	return b.String()
}

// preview shortens long text for log output.
func preview(s string) string {
	r := []rune(s)
	if len(r) > 20 {
		return string(r[:17]) + "..."
	}
	return s
}
