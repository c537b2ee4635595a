package classical

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/vdparikh/classical/subtle"
)

// unknownCode stands in for a digit pair with no symbol in the codebook.
const unknownCode = '?'

// Codebook maps alphabet symbols to two-digit codes taken from the digits of π.
type Codebook struct {
	enc map[rune]string
	dec map[string]rune
}

// BuildCodebooks walks the digits of π from position offset (1 is the first
// digit after the decimal point) in non-overlapping pairs and gives each
// alphabet symbol the next pair not already taken. Symbols left over when the
// digits run out stay unmapped.
func BuildCodebooks(offset int, alphabet Alphabet) (*Codebook, error) {
	if offset < 1 {
		return nil, fmt.Errorf("%w: offset must be at least 1, got %d", ErrInvalidKey, offset)
	}

	cb := &Codebook{
		enc: make(map[rune]string, alphabet.Len()),
		dec: make(map[string]rune, alphabet.Len()),
	}
	digits := subtle.PiDigits
	pos := offset - 1
	for i := 0; i < alphabet.Len(); i++ {
		for pos+1 < len(digits) {
			code := digits[pos : pos+2]
			pos += 2
			if _, used := cb.dec[code]; !used {
				cb.enc[alphabet.At(i)] = code
				cb.dec[code] = alphabet.At(i)
				break
			}
		}
	}
	return cb, nil
}

// Code returns the two-digit code for r.
func (cb *Codebook) Code(r rune) (string, bool) {
	code, ok := cb.enc[r]
	return code, ok
}

// Symbol returns the symbol for a two-digit code.
func (cb *Codebook) Symbol(code string) (rune, bool) {
	r, ok := cb.dec[code]
	return r, ok
}

// Len returns the number of mapped symbols.
func (cb *Codebook) Len() int {
	return len(cb.enc)
}

// Pi substitutes each symbol with its π-digit code.
type Pi struct {
	codebook *Codebook
}

// NewPi creates a Pi cipher starting at the given digit offset.
func NewPi(offset int, alphabet Alphabet) (*Pi, error) {
	cb, err := BuildCodebooks(offset, alphabet)
	if err != nil {
		return nil, err
	}
	return &Pi{codebook: cb}, nil
}

// Name implements Cipher.
func (c *Pi) Name() string {
	return NamePi
}

// Codebook returns the code table.
func (c *Pi) Codebook() *Codebook {
	return c.codebook
}

// Encode implements Cipher. Unmapped runes are dropped.
func (c *Pi) Encode(text string) (string, error) {
	var b strings.Builder
	for _, r := range text {
		if code, ok := c.codebook.Code(unicode.ToUpper(r)); ok {
			b.WriteString(code)
		}
	}
	return b.String(), nil
}

// Decode implements Cipher. Unknown pairs decode to '?' and a trailing
// single rune is ignored.
func (c *Pi) Decode(text string) (string, error) {
	runes := []rune(text)
	var b strings.Builder
	for i := 0; i+1 < len(runes); i += 2 {
		r, ok := c.codebook.Symbol(string(runes[i : i+2]))
		if !ok {
			r = unknownCode
		}
		b.WriteRune(r)
	}
	return b.String(), nil
}
