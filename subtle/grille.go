package subtle

import (
	"fmt"
	"strings"
)

// MaxGrilleSize is the largest supported grille side.
const MaxGrilleSize = 256

// Cell addresses one square of a grid.
type Cell struct {
	Row int
	Col int
}

// Grille is a square mask of open cells used by the turning grille cipher.
// It is rotated in place, so callers that need the original orientation
// should work on a Clone.
type Grille struct {
	n     int
	cells [][]bool
}

// NewGrille returns an N×N grille with the given cells opened.
func NewGrille(n int, open ...Cell) (*Grille, error) {
	if err := checkGrilleSize(n); err != nil {
		return nil, err
	}
	g := &Grille{n: n, cells: make([][]bool, n)}
	for i := range g.cells {
		g.cells[i] = make([]bool, n)
	}
	for _, c := range open {
		if c.Row < 0 || c.Row >= n || c.Col < 0 || c.Col >= n {
			return nil, fmt.Errorf("cell (%d,%d) is outside a %dx%d grille", c.Row, c.Col, n, n)
		}
		g.cells[c.Row][c.Col] = true
	}
	return g, nil
}

// GrilleFromMask builds a grille from a square boolean mask.
func GrilleFromMask(mask [][]bool) (*Grille, error) {
	n := len(mask)
	var open []Cell
	for i, row := range mask {
		if len(row) != n {
			return nil, fmt.Errorf("grille row %d has %d cells, want %d", i, len(row), n)
		}
		for j, v := range row {
			if v {
				open = append(open, Cell{Row: i, Col: j})
			}
		}
	}
	return NewGrille(n, open...)
}

// GenerateGrille returns a valid grille of side n. For every cell (i, j) of
// the top-left quadrant it opens that cell's image after (i+j) mod 4
// clockwise quarter turns, so each rotation orbit holds exactly one hole.
func GenerateGrille(n int) (*Grille, error) {
	if err := checkGrilleSize(n); err != nil {
		return nil, err
	}
	half := n / 2
	open := make([]Cell, 0, half*half)
	for i := 0; i < half; i++ {
		for j := 0; j < half; j++ {
			c := Cell{Row: i, Col: j}
			for t := 0; t < (i+j)%4; t++ {
				c = rotateCell(c, n)
			}
			open = append(open, c)
		}
	}
	return NewGrille(n, open...)
}

func checkGrilleSize(n int) error {
	if n <= 0 || n%2 != 0 {
		return fmt.Errorf("grille size must be even and positive, got %d", n)
	}
	if n > MaxGrilleSize {
		return fmt.Errorf("grille size %d exceeds the maximum of %d", n, MaxGrilleSize)
	}
	return nil
}

// rotateCell maps a cell to its position after one clockwise quarter turn.
func rotateCell(c Cell, n int) Cell {
	return Cell{Row: c.Col, Col: n - 1 - c.Row}
}

// Size returns the side length.
func (g *Grille) Size() int {
	return g.n
}

// IsOpen reports whether the cell at (row, col) is a hole.
func (g *Grille) IsOpen(row, col int) bool {
	return g.cells[row][col]
}

// Clone returns an independent copy.
func (g *Grille) Clone() *Grille {
	c := &Grille{n: g.n, cells: make([][]bool, g.n)}
	for i := range g.cells {
		c.cells[i] = append([]bool(nil), g.cells[i]...)
	}
	return c
}

// OpenCount returns the number of holes.
func (g *Grille) OpenCount() int {
	count := 0
	for _, row := range g.cells {
		for _, v := range row {
			if v {
				count++
			}
		}
	}
	return count
}

// OpenCells lists the holes in row-major order.
func (g *Grille) OpenCells() []Cell {
	cells := make([]Cell, 0, g.n*g.n/4)
	for i, row := range g.cells {
		for j, v := range row {
			if v {
				cells = append(cells, Cell{Row: i, Col: j})
			}
		}
	}
	return cells
}

// Rotate turns the grille 90° clockwise in place, one concentric ring at a time.
func (g *Grille) Rotate() {
	n := g.n
	m := g.cells
	for i := 0; i < n/2; i++ {
		for j := i; j < n-i-1; j++ {
			tmp := m[i][j]
			m[i][j] = m[n-1-j][i]
			m[n-1-j][i] = m[n-1-i][n-1-j]
			m[n-1-i][n-1-j] = m[j][n-1-i]
			m[j][n-1-i] = tmp
		}
	}
}

// Validate checks that the grille has exactly N²/4 holes and that its four
// rotations together uncover every cell exactly once.
func (g *Grille) Validate() error {
	expected := g.n * g.n / 4
	if got := g.OpenCount(); got != expected {
		return fmt.Errorf("grille hole count must be size^2/4 = %d, got %d", expected, got)
	}

	seen := make(map[Cell]bool, g.n*g.n)
	for _, c := range g.OpenCells() {
		for t := 0; t < 4; t++ {
			if seen[c] {
				return fmt.Errorf("cell (%d,%d) is uncovered by more than one rotation", c.Row, c.Col)
			}
			seen[c] = true
			c = rotateCell(c, g.n)
		}
	}
	return nil
}

// String renders the grille with "1" for holes and "." for closed cells.
func (g *Grille) String() string {
	var b strings.Builder
	for _, row := range g.cells {
		for j, v := range row {
			if j > 0 {
				b.WriteByte(' ')
			}
			if v {
				b.WriteByte('1')
			} else {
				b.WriteByte('.')
			}
		}
		b.WriteByte('\n')
	}
	return b.String()
}
