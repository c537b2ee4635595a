// Package subtle provides low-level primitives for the classical ciphers.
// This package contains the arithmetic and geometry the cipher types are built on.
// It should not be used directly by most users; instead use the high-level APIs in the parent package.
package subtle

import "fmt"

// GCD returns the greatest common divisor of a and b.
// The result is always non-negative.
func GCD(a, b int) int {
	if a < 0 {
		a = -a
	}
	if b < 0 {
		b = -b
	}
	for b != 0 {
		a, b = b, a%b
	}
	return a
}

// Mod returns x mod m normalized into [0, m). m must be positive.
func Mod(x, m int) int {
	r := x % m
	if r < 0 {
		r += m
	}
	return r
}

// ModInverse computes a⁻¹ such that a·a⁻¹ ≡ 1 (mod m) using the extended
// Euclidean algorithm. The result is normalized into [0, m).
//
// It returns an error when m is not positive or when a and m are not coprime.
func ModInverse(a, m int) (int, error) {
	if m <= 0 {
		return 0, fmt.Errorf("modulus must be positive, got %d", m)
	}
	if m == 1 {
		return 0, nil
	}

	a = Mod(a, m)
	oldR, r := a, m
	oldS, s := 1, 0
	for r != 0 {
		q := oldR / r
		oldR, r = r, oldR-q*r
		oldS, s = s, oldS-q*s
	}

	if oldR != 1 {
		return 0, fmt.Errorf("%d has no inverse modulo %d", a, m)
	}
	return Mod(oldS, m), nil
}
