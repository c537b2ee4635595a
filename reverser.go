package classical

import (
	"fmt"

	"github.com/vdparikh/classical/subtle"
)

// ReverseBlocks cuts text into successive blocks of blockSize runes and
// reverses each one. The last block may be shorter. When shrinking is set the
// block size drops by one after every block, but never below 2.
func ReverseBlocks(text string, blockSize int, shrinking bool) (string, error) {
	if blockSize < 1 {
		return "", fmt.Errorf("%w: block size must be positive, got %d", ErrInvalidKey, blockSize)
	}

	runes := []rune(text)
	start := 0
	for _, size := range subtle.BlockSchedule(len(runes), blockSize, shrinking) {
		reverseRunes(runes[start : start+size])
		start += size
	}
	return string(runes), nil
}

// RestoreBlocks undoes ReverseBlocks called with the same parameters. It
// recomputes the block schedule and reverses blocks from the end backward.
func RestoreBlocks(text string, blockSize int, shrinking bool) (string, error) {
	if blockSize < 1 {
		return "", fmt.Errorf("%w: block size must be positive, got %d", ErrInvalidKey, blockSize)
	}

	runes := []rune(text)
	blocks := subtle.BlockSchedule(len(runes), blockSize, shrinking)
	end := len(runes)
	for i := len(blocks) - 1; i >= 0; i-- {
		reverseRunes(runes[end-blocks[i] : end])
		end -= blocks[i]
	}
	return string(runes), nil
}

func reverseRunes(r []rune) {
	for i, j := 0, len(r)-1; i < j; i, j = i+1, j-1 {
		r[i], r[j] = r[j], r[i]
	}
}

// Reverser binds the block reversal functions to fixed parameters so they can
// be used as a Cipher.
type Reverser struct {
	blockSize int
	shrinking bool
}

// NewReverser creates a block reverser.
func NewReverser(blockSize int, shrinking bool) (*Reverser, error) {
	if blockSize < 1 {
		return nil, fmt.Errorf("%w: block size must be positive, got %d", ErrInvalidKey, blockSize)
	}
	return &Reverser{blockSize: blockSize, shrinking: shrinking}, nil
}

// Name implements Cipher.
func (c *Reverser) Name() string {
	return NameReverser
}

// Encode implements Cipher.
func (c *Reverser) Encode(text string) (string, error) {
	return ReverseBlocks(text, c.blockSize, c.shrinking)
}

// Decode implements Cipher.
func (c *Reverser) Decode(text string) (string, error) {
	return RestoreBlocks(text, c.blockSize, c.shrinking)
}
