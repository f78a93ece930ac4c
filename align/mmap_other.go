//go:build !(linux || darwin || freebsd || netbsd || openbsd || dragonfly)

package align

import "errors"

// Mmap is unavailable on this platform; every request fails.
var Mmap Allocator = mmapAllocator{}

type mmapAllocator struct{}

func (mmapAllocator) Name() string { return "mmap" }

func (m mmapAllocator) Acquire(alignment, size int) (*Buffer, error) {
	if err := checkRequest(alignment, size); err != nil {
		return nil, err
	}
	if size == 0 {
		return nil, nil
	}
	return nil, &AllocationError{Allocator: m.Name(), Alignment: alignment, Size: size, Err: errors.ErrUnsupported}
}

func (mmapAllocator) Release(b *Buffer) error {
	if b == nil {
		return nil
	}
	return ErrForeignBuffer
}
