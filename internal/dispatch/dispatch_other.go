//go:build !amd64 && !arm64

package dispatch

func init() {
	// Other architectures fall back to scalar mode.
	detectedLevel = Scalar
}

// HasFMA returns false; scalar mode makes no FMA assumptions.
func HasFMA() bool {
	return false
}
