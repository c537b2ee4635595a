package classical

import (
	"fmt"
	"strings"

	"github.com/vdparikh/classical/subtle"
)

// Affine implements the affine cipher E(x) = (a·x + b) mod m over an alphabet
// of length m. Spaces and symbols missing from the alphabet pass through.
type Affine struct {
	a, b     int
	aInv     int
	alphabet Alphabet
}

// NewAffine creates an affine cipher. The multiplier a must be coprime with
// the alphabet length, otherwise no decryption key exists.
func NewAffine(a, b int, alphabet Alphabet) (*Affine, error) {
	m := alphabet.Len()
	if m == 0 {
		return nil, fmt.Errorf("%w: alphabet must not be empty", ErrInvalidAlphabet)
	}

	a = subtle.Mod(a, m)
	if subtle.GCD(a, m) != 1 {
		return nil, fmt.Errorf("%w: key a and alphabet length %d must be coprime", ErrInvalidKey, m)
	}

	aInv, err := subtle.ModInverse(a, m)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidKey, err)
	}

	return &Affine{
		a:        a,
		b:        subtle.Mod(b, m),
		aInv:     aInv,
		alphabet: alphabet,
	}, nil
}

// Name implements Cipher.
func (c *Affine) Name() string {
	return NameAffine
}

// Encode applies (a·x + b) mod m to every alphabet symbol. Lookup is case
// insensitive; output symbols come from the alphabet.
func (c *Affine) Encode(text string) (string, error) {
	m := c.alphabet.Len()
	return c.transform(text, func(x int) int {
		return (c.a*x + c.b) % m
	}), nil
}

// Decode applies a⁻¹·(x − b) mod m.
func (c *Affine) Decode(text string) (string, error) {
	m := c.alphabet.Len()
	return c.transform(text, func(x int) int {
		return (c.aInv * (x - c.b + m)) % m
	}), nil
}

func (c *Affine) transform(text string, f func(int) int) string {
	var b strings.Builder
	b.Grow(len(text))
	for _, r := range text {
		if r == ' ' {
			b.WriteRune(' ')
			continue
		}
		x, ok := c.alphabet.IndexUpper(r)
		if !ok {
			b.WriteRune(r)
			continue
		}
		b.WriteRune(c.alphabet.At(f(x)))
	}
	return b.String()
}
