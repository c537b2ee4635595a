package classical

import (
	"fmt"
	"strings"

	"github.com/rs/zerolog"
	"github.com/vdparikh/classical/subtle"
)

// TurningGrille is the Fleissner rotating grille transposition. Text is
// written through the holes of an N×N grille that is turned clockwise four
// times, then read from the grid column by column.
//
// Text longer than N² runes is processed in consecutive blocks of N² runes.
type TurningGrille struct {
	pattern *subtle.Grille
	log     zerolog.Logger
}

// NewTurningGrille creates a turning grille of the given even size using the
// built-in hole pattern for that size.
func NewTurningGrille(size int, opts ...Option) (*TurningGrille, error) {
	if size <= 0 || size%2 != 0 {
		return nil, fmt.Errorf("%w: grille size must be even and positive, got %d", ErrInvalidKey, size)
	}
	if size > subtle.MaxGrilleSize {
		return nil, fmt.Errorf("%w: grille size %d exceeds the maximum of %d", ErrInvalidKey, size, subtle.MaxGrilleSize)
	}

	var (
		pattern *subtle.Grille
		err     error
	)
	if size == 4 {
		pattern, err = subtle.NewGrille(4,
			subtle.Cell{Row: 0, Col: 0},
			subtle.Cell{Row: 1, Col: 3},
			subtle.Cell{Row: 2, Col: 2},
			subtle.Cell{Row: 3, Col: 1},
		)
	} else {
		pattern, err = subtle.GenerateGrille(size)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidKey, err)
	}
	return newTurningGrille(pattern, opts)
}

// NewTurningGrilleWithPattern creates a turning grille from a caller supplied
// hole mask. The mask must be square with an even side, hold exactly N²/4
// holes and uncover every cell exactly once over four rotations.
func NewTurningGrilleWithPattern(mask [][]bool, opts ...Option) (*TurningGrille, error) {
	pattern, err := subtle.GrilleFromMask(mask)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidKey, err)
	}
	return newTurningGrille(pattern, opts)
}

func newTurningGrille(pattern *subtle.Grille, opts []Option) (*TurningGrille, error) {
	if err := pattern.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidKey, err)
	}
	o := newOptions(opts)
	return &TurningGrille{pattern: pattern, log: o.logger}, nil
}

// Name implements Cipher.
func (c *TurningGrille) Name() string {
	return NameGrille
}

// Size returns the side length of the grille.
func (c *TurningGrille) Size() int {
	return c.pattern.Size()
}

// Encode implements Cipher.
func (c *TurningGrille) Encode(text string) (string, error) {
	return c.Process(text, true)
}

// Decode implements Cipher.
func (c *TurningGrille) Decode(text string) (string, error) {
	return c.Process(text, false)
}

// Process encrypts or decrypts text block by block.
func (c *TurningGrille) Process(text string, encrypting bool) (string, error) {
	runes := []rune(text)
	if len(runes) == 0 {
		return "", nil
	}

	n := c.pattern.Size()
	out := make([]rune, 0, len(runes))
	for start := 0; start < len(runes); start += n * n {
		end := start + n*n
		if end > len(runes) {
			end = len(runes)
		}
		block, err := c.processBlock(runes[start:end], encrypting)
		if err != nil {
			return "", err
		}
		out = append(out, block...)
	}
	return string(out), nil
}

// processBlock handles at most N² runes. The fill order is the sequence of
// holes met while scanning row-major through four rotations; the read order
// is the same cells taken column-major. Encryption maps fill order to read
// order and decryption maps it back.
func (c *TurningGrille) processBlock(block []rune, encrypting bool) ([]rune, error) {
	grille := c.pattern.Clone()
	if err := grille.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidKey, err)
	}

	n := grille.Size()
	grid := make([][]rune, n)
	filled := make([][]bool, n)
	for i := range grid {
		grid[i] = make([]rune, n)
		filled[i] = make([]bool, n)
	}

	fillOrder := make([]subtle.Cell, 0, len(block))
	for rotation := 0; rotation < 4 && len(fillOrder) < len(block); rotation++ {
		for _, cell := range grille.OpenCells() {
			if len(fillOrder) == len(block) {
				break
			}
			fillOrder = append(fillOrder, cell)
			filled[cell.Row][cell.Col] = true
			if encrypting {
				grid[cell.Row][cell.Col] = block[len(fillOrder)-1]
			}
		}
		if e := c.log.Trace(); e.Enabled() {
			e.Int("rotation", rotation+1).
				Str("grille", grille.String()).
				Str("grid", renderGrid(grid, filled)).
				Msg("turning grille")
		}
		grille.Rotate()
	}

	readOrder := make([]subtle.Cell, 0, len(block))
	for col := 0; col < n; col++ {
		for row := 0; row < n; row++ {
			if filled[row][col] {
				readOrder = append(readOrder, subtle.Cell{Row: row, Col: col})
			}
		}
	}

	from, to := fillOrder, readOrder
	if !encrypting {
		from, to = readOrder, fillOrder
	}
	for i, cell := range from {
		grid[cell.Row][cell.Col] = block[i]
	}
	out := make([]rune, len(to))
	for i, cell := range to {
		out[i] = grid[cell.Row][cell.Col]
	}
	return out, nil
}

func renderGrid(grid [][]rune, filled [][]bool) string {
	var b strings.Builder
	for i, row := range grid {
		for j, r := range row {
			if j > 0 {
				b.WriteByte(' ')
			}
			if filled[i][j] && r != 0 {
				b.WriteRune(r)
			} else {
				b.WriteByte('.')
			}
		}
		b.WriteByte('\n')
	}
	return b.String()
}
