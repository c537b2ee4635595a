package classical

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/rs/zerolog"
)

func TestNew_RoundTrip(t *testing.T) {
	testCases := []struct {
		params    Params
		plaintext string
	}{
		{Params{Cipher: NameAffine, A: 5, B: 8}, "ATTACK AT DAWN"},
		{Params{Cipher: NameAffine, Alphabet: "cyrillic", A: 7, B: 3}, "АТАКА НА РАССВЕТЕ"},
		{Params{Cipher: NameGronsfeld, Digits: []int{3, 1, 4, 1, 5}}, "ATTACK AT DAWN"},
		{Params{Cipher: NameGronsfeld, Key: "2718"}, "ATTACK AT DAWN"},
		{Params{Cipher: NameVigenere, Key: "LEMON"}, "Attack at dawn, Атака!"},
		{Params{Cipher: NameRailFence, Rails: 4}, "ATTACK AT DAWN"},
		{Params{Cipher: NameGrille, Size: 6}, "ATTACK AT DAWN FROM THE NORTHERN RIDGE"},
		{Params{Cipher: NameReverser, BlockSize: 4, Shrinking: true}, "ATTACK AT DAWN"},
		{Params{Cipher: NamePolybius, Shift: 5}, "ATTACK AT DAWN"},
		{Params{Cipher: NamePi, Offset: 7}, "ATTACKATDAWN"},
		{Params{Cipher: NameXOR, Key: "SECRET"}, "ATTACK AT DAWN"},
	}

	for _, tc := range testCases {
		t.Run(tc.params.Cipher, func(t *testing.T) {
			c, err := New(tc.params)
			if err != nil {
				t.Fatalf("New(%+v) failed: %v", tc.params, err)
			}
			if c.Name() != tc.params.Cipher {
				t.Errorf("Name() = %q, want %q", c.Name(), tc.params.Cipher)
			}

			encoded, err := c.Encode(tc.plaintext)
			if err != nil {
				t.Fatalf("Encode failed: %v", err)
			}
			decoded, err := c.Decode(encoded)
			if err != nil {
				t.Fatalf("Decode failed: %v", err)
			}
			if decoded != tc.plaintext {
				t.Errorf("Round-trip failed: %q -> %q -> %q", tc.plaintext, encoded, decoded)
			}
		})
	}
}

func TestNew_Errors(t *testing.T) {
	testCases := []struct {
		name   string
		params Params
		want   error
	}{
		{"Unknown cipher", Params{Cipher: "enigma"}, ErrUnknownCipher},
		{"Empty name", Params{}, ErrUnknownCipher},
		{"Duplicate alphabet", Params{Cipher: NameAffine, Alphabet: "ABCA", A: 1}, ErrInvalidAlphabet},
		{"Affine not coprime", Params{Cipher: NameAffine, A: 4}, ErrInvalidKey},
		{"Gronsfeld bad key", Params{Cipher: NameGronsfeld, Key: "12x"}, ErrInvalidKey},
		{"Gronsfeld no key", Params{Cipher: NameGronsfeld}, ErrInvalidKey},
		{"Vigenere no key", Params{Cipher: NameVigenere}, ErrInvalidKey},
		{"Rail fence no rails", Params{Cipher: NameRailFence}, ErrInvalidKey},
		{"Grille odd size", Params{Cipher: NameGrille, Size: 5}, ErrInvalidKey},
		{"Reverser no block", Params{Cipher: NameReverser}, ErrInvalidKey},
		{"Pi no offset", Params{Cipher: NamePi}, ErrInvalidKey},
		{"XOR no key", Params{Cipher: NameXOR}, ErrInvalidKey},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := New(tc.params); !errors.Is(err, tc.want) {
				t.Errorf("New(%+v) error = %v, want %v", tc.params, err, tc.want)
			}
		})
	}
}

func TestNames(t *testing.T) {
	want := "affine,grille,gronsfeld,pi,polybius,railfence,reverser,vigenere,xor"
	if got := strings.Join(Names(), ","); got != want {
		t.Errorf("Names() = %s, want %s", got, want)
	}
}

func TestWithLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := zerolog.New(&buf).Level(zerolog.DebugLevel)

	c, err := New(Params{Cipher: NameVigenere, Key: "KEY"}, WithLogger(logger))
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	if _, err := c.Encode("HELLO"); err != nil {
		t.Fatalf("Encode failed: %v", err)
	}

	out := buf.String()
	if !strings.Contains(out, `"message":"configured cipher"`) {
		t.Errorf("missing configuration event in %s", out)
	}
	if !strings.Contains(out, `"cipher":"vigenere"`) {
		t.Errorf("missing cipher field in %s", out)
	}

	buf.Reset()
	quiet, _ := New(Params{Cipher: NameVigenere, Key: "KEY"})
	_, _ = quiet.Encode("HELLO")
	if buf.Len() != 0 {
		t.Errorf("default logger should be silent, got %s", buf.String())
	}
}

func BenchmarkCiphers(b *testing.B) {
	plaintext := strings.Repeat("THE QUICK BROWN FOX JUMPS OVER THE LAZY DOG ", 8)
	for _, p := range []Params{
		{Cipher: NameAffine, A: 5, B: 8},
		{Cipher: NameVigenere, Key: "LEMON"},
		{Cipher: NameRailFence, Rails: 3},
		{Cipher: NameGrille, Size: 8},
		{Cipher: NamePolybius},
		{Cipher: NamePi, Offset: 1},
	} {
		c, err := New(p)
		if err != nil {
			b.Fatalf("New(%+v) failed: %v", p, err)
		}
		b.Run(p.Cipher, func(b *testing.B) {
			for i := 0; i < b.N; i++ {
				_, _ = c.Encode(plaintext)
			}
		})
	}
}
