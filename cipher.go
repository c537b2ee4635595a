// Package classical implements a toolbox of classical text ciphers: Affine,
// Gronsfeld, Vigenère, Rail Fence, Turning Grille, block Reverser, Polybius
// square, Pi-digit substitution and an XOR stream cipher.
//
// None of these ciphers offer cryptographic protection. They are
// deterministic, invertible transformations over human-typed text, each
// parameterized by a key and, for most of them, an Alphabet.
//
// Every cipher validates its key once at construction and can then be reused
// for any number of Encode and Decode calls.
//
// Example usage:
//
//	affine, err := classical.NewAffine(5, 8, classical.Latin)
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	encoded, err := affine.Encode("HELLO")
//	if err != nil {
//		log.Fatal(err)
//	}
//	// encoded is "RCLLA"
//
//	decoded, err := affine.Decode(encoded)
//	// decoded is "HELLO"
//
// Ciphers can also be built from a flat parameter record, which is how the
// tinkclassical package and the command-line tool configure them:
//
//	c, err := classical.New(classical.Params{Cipher: "railfence", Rails: 3})
package classical

import (
	"fmt"
	"sort"
)

// Cipher is the shape shared by every classical cipher.
// Implementations are deterministic: the same key and text always produce
// the same output.
type Cipher interface {
	// Name returns the factory name of the cipher, e.g. "affine".
	Name() string

	// Encode transforms plain text into cipher text.
	Encode(text string) (string, error)

	// Decode is the inverse of Encode.
	Decode(text string) (string, error)
}

// Cipher names understood by New.
const (
	NameAffine    = "affine"
	NameGronsfeld = "gronsfeld"
	NameVigenere  = "vigenere"
	NameRailFence = "railfence"
	NameGrille    = "grille"
	NameReverser  = "reverser"
	NamePolybius  = "polybius"
	NamePi        = "pi"
	NameXOR       = "xor"
)

// Params is a flat description of a configured cipher. Only the fields used
// by the selected cipher are read.
type Params struct {
	Cipher    string `yaml:"cipher" json:"cipher"`
	Alphabet  string `yaml:"alphabet,omitempty" json:"alphabet,omitempty"`
	A         int    `yaml:"a,omitempty" json:"a,omitempty"`
	B         int    `yaml:"b,omitempty" json:"b,omitempty"`
	Key       string `yaml:"key,omitempty" json:"key,omitempty"`
	Digits    []int  `yaml:"digits,omitempty" json:"digits,omitempty"`
	Rails     int    `yaml:"rails,omitempty" json:"rails,omitempty"`
	Size      int    `yaml:"size,omitempty" json:"size,omitempty"`
	BlockSize int    `yaml:"block_size,omitempty" json:"block_size,omitempty"`
	Shrinking bool   `yaml:"shrinking,omitempty" json:"shrinking,omitempty"`
	Shift     int    `yaml:"shift,omitempty" json:"shift,omitempty"`
	Offset    int    `yaml:"offset,omitempty" json:"offset,omitempty"`
}

type constructor func(p Params, alphabet Alphabet, opts []Option) (Cipher, error)

var constructors = map[string]constructor{
	NameAffine: func(p Params, alphabet Alphabet, _ []Option) (Cipher, error) {
		return NewAffine(p.A, p.B, alphabet)
	},
	NameGronsfeld: func(p Params, alphabet Alphabet, _ []Option) (Cipher, error) {
		digits := p.Digits
		if len(digits) == 0 && p.Key != "" {
			var err error
			if digits, err = ParseGronsfeldKey(p.Key); err != nil {
				return nil, err
			}
		}
		return NewGronsfeld(digits, alphabet)
	},
	NameVigenere: func(p Params, _ Alphabet, opts []Option) (Cipher, error) {
		return NewVigenere(p.Key, opts...)
	},
	NameRailFence: func(p Params, _ Alphabet, _ []Option) (Cipher, error) {
		return NewRailFence(p.Rails)
	},
	NameGrille: func(p Params, _ Alphabet, opts []Option) (Cipher, error) {
		return NewTurningGrille(p.Size, opts...)
	},
	NameReverser: func(p Params, _ Alphabet, _ []Option) (Cipher, error) {
		return NewReverser(p.BlockSize, p.Shrinking)
	},
	NamePolybius: func(p Params, alphabet Alphabet, _ []Option) (Cipher, error) {
		return NewPolybius(alphabet, p.Shift)
	},
	NamePi: func(p Params, alphabet Alphabet, _ []Option) (Cipher, error) {
		return NewPi(p.Offset, alphabet)
	},
	NameXOR: func(p Params, alphabet Alphabet, _ []Option) (Cipher, error) {
		return NewXOR(p.Key, alphabet)
	},
}

// New configures the cipher named by p.Cipher.
func New(p Params, opts ...Option) (Cipher, error) {
	build, ok := constructors[p.Cipher]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownCipher, p.Cipher)
	}

	alphabet, err := ResolveAlphabet(p.Alphabet)
	if err != nil {
		return nil, err
	}

	c, err := build(p, alphabet, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to configure %s: %w", p.Cipher, err)
	}

	o := newOptions(opts)
	o.logger.Debug().Str("cipher", p.Cipher).Int("alphabet_len", alphabet.Len()).Msg("configured cipher")
	return c, nil
}

// Names lists the ciphers New understands, sorted by name.
func Names() []string {
	names := make([]string, 0, len(constructors))
	for name := range constructors {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
