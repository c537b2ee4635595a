package classical

import (
	"errors"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/vdparikh/classical/subtle"
)

func TestRailFence(t *testing.T) {
	testCases := []struct {
		name       string
		rails      int
		plaintext  string
		ciphertext string
	}{
		{"Three rails", 3, "WEAREDISCOVEREDFLEEATONCE", "WECRLTEERDSOEEFEAOCAIVDEN"},
		{"Two rails", 2, "HELLOWORLD", "HLOOLELWRD"},
		{"One rail is identity", 1, "ANYTEXT", "ANYTEXT"},
		{"More rails than runes", 10, "ABC", "ABC"},
		{"Huge rail count", 1 << 50, "HELLO", "HELLO"},
		{"Cyrillic", 3, "ПРИВЕТМИР", "ПЕРРВТИИМ"},
		{"Empty", 3, "", ""},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			cipher, err := NewRailFence(tc.rails)
			if err != nil {
				t.Fatalf("Failed to create rail fence: %v", err)
			}
			encoded, _ := cipher.Encode(tc.plaintext)
			if encoded != tc.ciphertext {
				t.Errorf("Encode(%q) = %q, want %q", tc.plaintext, encoded, tc.ciphertext)
			}
			decoded, _ := cipher.Decode(tc.ciphertext)
			if decoded != tc.plaintext {
				t.Errorf("Decode(%q) = %q, want %q", tc.ciphertext, decoded, tc.plaintext)
			}
		})
	}
}

func TestRailFence_InvalidRails(t *testing.T) {
	for _, rails := range []int{0, -3} {
		if _, err := NewRailFence(rails); !errors.Is(err, ErrInvalidKey) {
			t.Errorf("NewRailFence(%d) error = %v, want ErrInvalidKey", rails, err)
		}
	}
}

func TestTurningGrille(t *testing.T) {
	cipher, err := NewTurningGrille(4)
	if err != nil {
		t.Fatalf("Failed to create turning grille: %v", err)
	}

	testCases := []struct {
		name       string
		plaintext  string
		ciphertext string
	}{
		{"Full grid", "ABCDEFGHIJKLMNOP", "AFKPMJGDINCHEBOL"},
		{"Partial grid", "HELLO", "HLLOE"},
		{"Short text", "XY", "XY"},
		{"Spaces survive", "A B", "AB "},
		{"Empty", "", ""},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			encoded, err := cipher.Process(tc.plaintext, true)
			if err != nil {
				t.Fatalf("Process(encrypt) failed: %v", err)
			}
			if encoded != tc.ciphertext {
				t.Errorf("encrypt(%q) = %q, want %q", tc.plaintext, encoded, tc.ciphertext)
			}

			decoded, err := cipher.Process(tc.ciphertext, false)
			if err != nil {
				t.Fatalf("Process(decrypt) failed: %v", err)
			}
			if decoded != tc.plaintext {
				t.Errorf("decrypt(%q) = %q, want %q", tc.ciphertext, decoded, tc.plaintext)
			}
		})
	}
}

func TestTurningGrille_Sizes(t *testing.T) {
	plaintext := "THE QUICK BROWN FOX JUMPS OVER THE LAZY DOG 0123456789"
	for _, size := range []int{2, 4, 6, 8} {
		cipher, err := NewTurningGrille(size)
		if err != nil {
			t.Fatalf("NewTurningGrille(%d) failed: %v", size, err)
		}
		encoded, err := cipher.Encode(plaintext)
		if err != nil {
			t.Fatalf("Encode failed for size %d: %v", size, err)
		}
		if len([]rune(encoded)) != len([]rune(plaintext)) {
			t.Errorf("size %d: length changed from %d to %d", size, len(plaintext), len(encoded))
		}
		decoded, err := cipher.Decode(encoded)
		if err != nil {
			t.Fatalf("Decode failed for size %d: %v", size, err)
		}
		if decoded != plaintext {
			t.Errorf("size %d: round-trip failed: %q", size, decoded)
		}
	}
}

func TestTurningGrille_LongTextIsBlocked(t *testing.T) {
	cipher, err := NewTurningGrille(4)
	if err != nil {
		t.Fatalf("Failed to create turning grille: %v", err)
	}
	encoded, _ := cipher.Encode("ABCDEFGHIJKLMNOPHELLO")
	if encoded != "AFKPMJGDINCHEBOL"+"HLLOE" {
		t.Errorf("got %q", encoded)
	}
}

func TestTurningGrille_InvalidSize(t *testing.T) {
	for _, size := range []int{3, 5, 0, -2, -3, subtle.MaxGrilleSize + 2, 1 << 40} {
		if _, err := NewTurningGrille(size); !errors.Is(err, ErrInvalidKey) {
			t.Errorf("NewTurningGrille(%d) error = %v, want ErrInvalidKey", size, err)
		}
	}
}

func TestTurningGrilleWithPattern(t *testing.T) {
	valid := [][]bool{
		{false, true, false, true},
		{true, false, false, false},
		{false, true, false, false},
		{false, false, false, false},
	}
	cipher, err := NewTurningGrilleWithPattern(valid)
	if err != nil {
		t.Fatalf("valid pattern rejected: %v", err)
	}
	encoded, _ := cipher.Encode("ABCDEFGHIJKLMNOP")
	decoded, _ := cipher.Decode(encoded)
	if decoded != "ABCDEFGHIJKLMNOP" {
		t.Errorf("round-trip failed: %q -> %q", encoded, decoded)
	}

	tooFew := [][]bool{
		{true, false, false, false},
		{false, false, false, false},
		{false, false, true, false},
		{false, false, false, false},
	}
	if _, err := NewTurningGrilleWithPattern(tooFew); !errors.Is(err, ErrInvalidKey) {
		t.Errorf("hole count violation: got %v, want ErrInvalidKey", err)
	}

	overlapping := [][]bool{
		{true, false, false, true},
		{false, true, false, false},
		{false, false, true, false},
		{false, false, false, false},
	}
	if _, err := NewTurningGrilleWithPattern(overlapping); !errors.Is(err, ErrInvalidKey) {
		t.Errorf("coverage violation: got %v, want ErrInvalidKey", err)
	}
}

func TestTurningGrille_TraceLogging(t *testing.T) {
	prev := zerolog.GlobalLevel()
	zerolog.SetGlobalLevel(zerolog.TraceLevel)
	defer zerolog.SetGlobalLevel(prev)

	var buf strings.Builder
	logger := zerolog.New(&buf).Level(zerolog.TraceLevel)

	cipher, err := NewTurningGrille(4, WithLogger(logger))
	if err != nil {
		t.Fatalf("Failed to create turning grille: %v", err)
	}
	if _, err := cipher.Encode("ABCDEFGHIJKLMNOP"); err != nil {
		t.Fatalf("Encode failed: %v", err)
	}
	if got := strings.Count(buf.String(), `"rotation"`); got != 4 {
		t.Errorf("expected 4 rotation events, got %d:\n%s", got, buf.String())
	}
}

func TestReverseBlocks(t *testing.T) {
	testCases := []struct {
		name       string
		blockSize  int
		shrinking  bool
		plaintext  string
		ciphertext string
	}{
		{"Fixed blocks", 3, false, "ABCDEFGH", "CBAFEDHG"},
		{"Shrinking blocks", 3, true, "ABCDEFGH", "CBAEDGFH"},
		{"Block size one", 1, true, "ABC", "ABC"},
		{"Block larger than text", 10, false, "ABC", "CBA"},
		{"Cyrillic", 2, false, "ПРИВЕТ", "РПВИТЕ"},
		{"Empty", 4, true, "", ""},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			encoded, err := ReverseBlocks(tc.plaintext, tc.blockSize, tc.shrinking)
			if err != nil {
				t.Fatalf("ReverseBlocks failed: %v", err)
			}
			if encoded != tc.ciphertext {
				t.Errorf("ReverseBlocks(%q) = %q, want %q", tc.plaintext, encoded, tc.ciphertext)
			}
			decoded, err := RestoreBlocks(tc.ciphertext, tc.blockSize, tc.shrinking)
			if err != nil {
				t.Fatalf("RestoreBlocks failed: %v", err)
			}
			if decoded != tc.plaintext {
				t.Errorf("RestoreBlocks(%q) = %q, want %q", tc.ciphertext, decoded, tc.plaintext)
			}
		})
	}
}

func TestReverser_InvalidBlockSize(t *testing.T) {
	if _, err := ReverseBlocks("FAIL", 0, false); !errors.Is(err, ErrInvalidKey) {
		t.Errorf("ReverseBlocks block 0: got %v", err)
	}
	if _, err := RestoreBlocks("FAIL", -1, true); !errors.Is(err, ErrInvalidKey) {
		t.Errorf("RestoreBlocks block -1: got %v", err)
	}
	if _, err := NewReverser(-2, true); !errors.Is(err, ErrInvalidKey) {
		t.Errorf("NewReverser block -2: got %v", err)
	}
}
