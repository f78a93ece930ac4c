// Package dispatch reports the SIMD instruction set available at runtime.
//
// Kernels consult CurrentLevel to pick an implementation. Detection runs
// once in init() (see dispatch_*.go); ForceScalar lets a caller pin the
// scalar level for debugging and A/B comparisons.
package dispatch

import "sync/atomic"

// Level represents the SIMD instruction set in use.
type Level int

const (
	// Scalar indicates no SIMD, pure Go implementation.
	Scalar Level = iota

	// SSE2 indicates SSE2 instructions (x86-64 baseline).
	SSE2

	// AVX2 indicates AVX2 + FMA instructions (256-bit SIMD).
	AVX2

	// AVX512 indicates AVX-512 instructions (512-bit SIMD).
	AVX512

	// NEON indicates ARM NEON instructions (128-bit SIMD).
	NEON
)

// String returns a human-readable name for the level.
func (l Level) String() string {
	switch l {
	case Scalar:
		return "scalar"
	case SSE2:
		return "sse2"
	case AVX2:
		return "avx2"
	case AVX512:
		return "avx512"
	case NEON:
		return "neon"
	default:
		return "unknown"
	}
}

// Width returns the register width in bytes for the level.
// Scalar reports 16 so lane math stays consistent with SSE2/NEON.
func (l Level) Width() int {
	switch l {
	case AVX2:
		return 32
	case AVX512:
		return 64
	default:
		return 16
	}
}

// Vector reports whether the level uses SIMD registers.
func (l Level) Vector() bool {
	return l != Scalar
}

// detectedLevel is set by init() in dispatch_*.go files.
var detectedLevel Level

// forceScalar pins CurrentLevel to Scalar when set.
var forceScalar atomic.Bool

// DetectedLevel returns the best level the CPU supports, ignoring ForceScalar.
func DetectedLevel() Level {
	return detectedLevel
}

// CurrentLevel returns the level kernels should dispatch on.
func CurrentLevel() Level {
	if forceScalar.Load() {
		return Scalar
	}
	return detectedLevel
}

// ForceScalar pins CurrentLevel to Scalar (on=true) or restores detection.
func ForceScalar(on bool) {
	forceScalar.Store(on)
}

// MaxLanes returns how many float32 lanes fit in a register at the current level.
func MaxLanes() int {
	return CurrentLevel().Width() / 4
}
