package subtle

// RailPattern returns, for each of n positions, the rail the zig-zag pointer
// sits on. The direction reverses on the first and last rail.
func RailPattern(n, rails int) []int {
	pattern := make([]int, n)
	if rails <= 1 {
		return pattern
	}

	rail, direction := 0, 1
	for i := range pattern {
		pattern[i] = rail
		rail += direction
		if rail == rails-1 || rail == 0 {
			direction = -direction
		}
	}
	return pattern
}

// BlockSchedule returns the successive block lengths used to cut a text of
// the given length. With shrinking set the block size drops by one after
// every block while it is above 2. blockSize must be positive.
func BlockSchedule(length, blockSize int, shrinking bool) []int {
	var blocks []int
	current := blockSize
	for i := 0; i < length; {
		size := current
		if rest := length - i; size > rest {
			size = rest
		}
		blocks = append(blocks, size)
		i += size

		if shrinking && current > 2 {
			current--
		}
	}
	return blocks
}
