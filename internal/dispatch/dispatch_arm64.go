//go:build arm64

package dispatch

import "golang.org/x/sys/cpu"

func init() {
	// ASIMD is part of the ARMv8-A base architecture; the check keeps the
	// fallback honest on exotic cores.
	if cpu.ARM64.HasASIMD {
		detectedLevel = NEON
	} else {
		detectedLevel = Scalar
	}
}

// HasFMA returns true if the CPU supports fused multiply-add.
// NEON always provides FMLA.
func HasFMA() bool {
	return cpu.ARM64.HasASIMD
}
