package classical

import (
	"fmt"

	"github.com/vdparikh/classical/subtle"
)

// RailFence writes text in a zig-zag across a number of rails and reads it
// off rail by rail.
type RailFence struct {
	rails int
}

// NewRailFence creates a rail fence cipher with at least one rail.
func NewRailFence(rails int) (*RailFence, error) {
	if rails < 1 {
		return nil, fmt.Errorf("%w: number of rails must be positive, got %d", ErrInvalidKey, rails)
	}
	return &RailFence{rails: rails}, nil
}

// Name implements Cipher.
func (c *RailFence) Name() string {
	return NameRailFence
}

// effectiveRails caps the rail count at the text length. Extra rails stay
// empty, so the zig-zag is unchanged.
func (c *RailFence) effectiveRails(n int) int {
	if c.rails > n {
		return n
	}
	return c.rails
}

// Encode implements Cipher.
func (c *RailFence) Encode(text string) (string, error) {
	runes := []rune(text)
	if c.rails == 1 || len(runes) == 0 {
		return text, nil
	}
	rails := c.effectiveRails(len(runes))

	fence := make([][]rune, rails)
	for i, rail := range subtle.RailPattern(len(runes), rails) {
		fence[rail] = append(fence[rail], runes[i])
	}

	out := make([]rune, 0, len(runes))
	for _, row := range fence {
		out = append(out, row...)
	}
	return string(out), nil
}

// Decode implements Cipher.
func (c *RailFence) Decode(text string) (string, error) {
	runes := []rune(text)
	if c.rails == 1 || len(runes) == 0 {
		return text, nil
	}
	rails := c.effectiveRails(len(runes))

	pattern := subtle.RailPattern(len(runes), rails)
	lengths := make([]int, rails)
	for _, rail := range pattern {
		lengths[rail]++
	}

	fence := make([][]rune, rails)
	start := 0
	for rail, n := range lengths {
		fence[rail] = runes[start : start+n]
		start += n
	}

	out := make([]rune, len(runes))
	next := make([]int, rails)
	for i, rail := range pattern {
		out[i] = fence[rail][next[rail]]
		next[rail]++
	}
	return string(out), nil
}
