// Package compare summarizes and compares kernel output vectors.
package compare

import "math"

// Range returns the smallest and largest values in v in one pass.
// NaN elements are skipped unless every element is NaN.
// Panics if v is empty.
func Range(v []float32) (lo, hi float32) {
	if len(v) == 0 {
		panic("empty vector")
	}
	lo, hi = v[0], v[0]
	for _, x := range v[1:] {
		if x < lo || lo != lo {
			lo = x
		}
		if x > hi || hi != hi {
			hi = x
		}
	}
	return lo, hi
}

// MaxAbsDiff returns max |a[i] - b[i]|. It is zero exactly when a and b are
// element-wise equal, and zero for empty vectors. A NaN difference makes
// the result NaN so that a broken kernel cannot hide behind it.
// Panics if the lengths differ.
func MaxAbsDiff(a, b []float32) float32 {
	if len(a) != len(b) {
		panic("length mismatch")
	}
	var diff float32
	for i := range a {
		d := a[i] - b[i]
		if d != d {
			return float32(math.NaN())
		}
		if d < 0 {
			d = -d
		}
		if d > diff {
			diff = d
		}
	}
	return diff
}

// Within reports whether MaxAbsDiff(a, b) <= tol.
func Within(a, b []float32, tol float32) bool {
	return MaxAbsDiff(a, b) <= tol
}
