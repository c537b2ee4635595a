package classical

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/vdparikh/classical/subtle"
)

const (
	boardSide  = 8
	boardSlots = boardSide * boardSide
	emptySlot  = ' '
)

// Board is the 8×8 Polybius square. Unused slots hold a space.
type Board [boardSide][boardSide]rune

// BuildBoard places the alphabet, cyclically shifted by key mod 64, into the
// 64 slots of a board in row-major order.
func BuildBoard(alphabet Alphabet, key int) (Board, error) {
	var board Board
	if alphabet.Len() > boardSlots {
		return board, fmt.Errorf("%w: %d symbols do not fit a %d-slot board", ErrInvalidAlphabet, alphabet.Len(), boardSlots)
	}

	var slots [boardSlots]rune
	for i := range slots {
		slots[i] = emptySlot
	}
	key = subtle.Mod(key, boardSlots)
	for i := 0; i < alphabet.Len(); i++ {
		slots[(i+key)%boardSlots] = alphabet.At(i)
	}
	for i, r := range slots {
		board[i/boardSide][i%boardSide] = r
	}
	return board, nil
}

// Coords returns the row and column holding r.
func (b *Board) Coords(r rune) (row, col int, ok bool) {
	if r == emptySlot {
		return 0, 0, false
	}
	for i := range b {
		for j := range b[i] {
			if b[i][j] == r {
				return i, j, true
			}
		}
	}
	return 0, 0, false
}

// Polybius replaces each symbol with its board coordinates written as a
// column letter followed by a row digit, e.g. "a1".
type Polybius struct {
	board Board
}

// NewPolybius creates a Polybius cipher for an alphabet of at most 64 symbols.
func NewPolybius(alphabet Alphabet, key int) (*Polybius, error) {
	board, err := BuildBoard(alphabet, key)
	if err != nil {
		return nil, err
	}
	return &Polybius{board: board}, nil
}

// Name implements Cipher.
func (c *Polybius) Name() string {
	return NamePolybius
}

// Board returns a copy of the coordinate table.
func (c *Polybius) Board() Board {
	return c.board
}

// Encode implements Cipher. Whitespace becomes a single space and symbols
// missing from the board are dropped.
func (c *Polybius) Encode(text string) (string, error) {
	var b strings.Builder
	for _, r := range text {
		if isBoardSpace(r) {
			b.WriteRune(' ')
			continue
		}
		row, col, ok := c.board.Coords(unicode.ToUpper(r))
		if !ok {
			continue
		}
		b.WriteRune('a' + rune(col))
		b.WriteRune('1' + rune(row))
	}
	return b.String(), nil
}

// Decode implements Cipher. A pair naming an unused slot yields that slot's
// space. Pairs that point outside the board are dropped, as is a trailing
// half pair.
func (c *Polybius) Decode(text string) (string, error) {
	runes := []rune(text)
	var b strings.Builder
	for i := 0; i < len(runes); {
		if isBoardSpace(runes[i]) {
			b.WriteRune(' ')
			i++
			continue
		}
		if i+1 >= len(runes) {
			break
		}

		col := int(runes[i] - 'a')
		row := int(runes[i+1] - '1')
		i += 2

		if row < 0 || row >= boardSide || col < 0 || col >= boardSide {
			continue
		}
		b.WriteRune(c.board[row][col])
	}
	return b.String(), nil
}

func isBoardSpace(r rune) bool {
	return r == ' ' || r == '\t' || r == '\n'
}
