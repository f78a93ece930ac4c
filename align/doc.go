// Package align provides memory blocks whose first byte sits on a fixed
// power-of-two boundary, suitable for vectorized loads and stores.
//
// # Allocators
//
// Two allocators implement the Allocator interface:
//   - Heap over-allocates a Go slice and returns the aligned sub-slice.
//     Release drops the reference and lets the garbage collector reclaim it.
//   - Mmap requests an anonymous private mapping from the kernel and unmaps
//     it on Release. Only available on Unix systems.
//
// A zero-byte request returns a nil *Buffer and no error. Allocator failures
// are reported as *AllocationError, never as a silent nil buffer.
//
// # Scoped Release
//
// Arena groups buffers so that a single deferred Close releases all of them
// on every exit path:
//
//	arena := align.NewArena(align.Heap, align.DefaultAlignment)
//	defer arena.Close()
//
//	a, err := arena.Float32s(k)
//	if err != nil {
//	    return err
//	}
package align
