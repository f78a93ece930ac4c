//go:build linux || darwin || freebsd || netbsd || openbsd || dragonfly

package align

import (
	"golang.org/x/sys/unix"
)

// Mmap is the allocator backed by anonymous private memory mappings.
// Mappings are page aligned; larger alignments are satisfied by padding.
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

	length := size
	if alignment > unix.Getpagesize() {
		var ok bool
		if length, ok = paddedSize(alignment, size); !ok {
			return nil, &AllocationError{Allocator: m.Name(), Alignment: alignment, Size: size, Err: ErrTooLarge}
		}
	}

	region, err := unix.Mmap(-1, 0, length, unix.PROT_READ|unix.PROT_WRITE, unix.MAP_ANON|unix.MAP_PRIVATE)
	if err != nil {
		return nil, &AllocationError{Allocator: m.Name(), Alignment: alignment, Size: size, Err: err}
	}

	off := alignedOffset(region, alignment)
	return &Buffer{
		data:      region[off : off+size : off+size],
		handle:    region,
		alignment: alignment,
		alloc:     m,
	}, nil
}

func (m mmapAllocator) Release(b *Buffer) error {
	if b == nil {
		return nil
	}
	if _, ok := b.alloc.(mmapAllocator); !ok {
		return ErrForeignBuffer
	}
	if b.released {
		return ErrReleased
	}
	if err := unix.Munmap(b.handle); err != nil {
		return err
	}
	b.markReleased()
	return nil
}
