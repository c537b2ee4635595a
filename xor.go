package classical

import (
	"encoding/hex"
	"fmt"
	"strings"
)

// XOR combines each rune of the text with the repeating key. The key index
// advances on every rune, spaces included, but spaces themselves are never
// changed.
type XOR struct {
	key      []rune
	alphabet Alphabet
}

// NewXOR creates an XOR cipher. The key may only hold alphabet symbols and
// spaces.
func NewXOR(key string, alphabet Alphabet) (*XOR, error) {
	if key == "" {
		return nil, fmt.Errorf("%w: key must not be empty", ErrInvalidKey)
	}
	for _, r := range key {
		if r != ' ' && !alphabet.Contains(r) {
			return nil, fmt.Errorf("%w: key symbol %q is not in the alphabet", ErrInvalidKey, r)
		}
	}
	return &XOR{key: []rune(key), alphabet: alphabet}, nil
}

// Name implements Cipher.
func (c *XOR) Name() string {
	return NameXOR
}

// Encrypt XORs text with the key. The text may only hold alphabet symbols and
// spaces. The result usually contains control characters; see EncryptToHex.
func (c *XOR) Encrypt(text string) (string, error) {
	for _, r := range text {
		if r != ' ' && !c.alphabet.Contains(r) {
			return "", fmt.Errorf("%w: symbol %q is not in the alphabet", ErrInvalidInput, r)
		}
	}
	return c.Decrypt(text), nil
}

// Decrypt applies the key stream to raw cipher text. XOR is its own inverse.
func (c *XOR) Decrypt(raw string) string {
	runes := []rune(raw)
	for i, r := range runes {
		if r != ' ' {
			runes[i] = r ^ c.key[i%len(c.key)]
		}
	}
	return string(runes)
}

// EncryptToHex encrypts text and renders the low byte of every resulting rune
// as two upper-case hex digits, separated by single spaces.
func (c *XOR) EncryptToHex(text string) (string, error) {
	encrypted, err := c.Encrypt(text)
	if err != nil {
		return "", err
	}

	runes := []rune(encrypted)
	pairs := make([]string, len(runes))
	for i, r := range runes {
		pairs[i] = fmt.Sprintf("%02X", byte(r))
	}
	return strings.Join(pairs, " "), nil
}

// DecryptFromHex parses hex byte pairs, ignoring every non-hex rune, and
// decrypts them.
func (c *XOR) DecryptFromHex(s string) (string, error) {
	clean := strings.Map(func(r rune) rune {
		switch {
		case r >= '0' && r <= '9', r >= 'a' && r <= 'f', r >= 'A' && r <= 'F':
			return r
		}
		return -1
	}, s)
	if len(clean)%2 != 0 {
		return "", fmt.Errorf("%w: odd number of hex digits (%d)", ErrInvalidInput, len(clean))
	}

	raw, err := hex.DecodeString(clean)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	runes := make([]rune, len(raw))
	for i, b := range raw {
		runes[i] = rune(b)
	}
	return c.Decrypt(string(runes)), nil
}

// Encode implements Cipher using the hex form.
func (c *XOR) Encode(text string) (string, error) {
	return c.EncryptToHex(text)
}

// Decode implements Cipher using the hex form.
func (c *XOR) Decode(text string) (string, error) {
	return c.DecryptFromHex(text)
}
