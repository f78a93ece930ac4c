// Copyright 2025 go-sgemv Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package align

import (
	"errors"
	"fmt"
	"math"
	"strings"
	"unsafe"
)

// DefaultAlignment is the byte boundary used for kernel buffers: one AVX
// register (256 bits).
const DefaultAlignment = 32

var (
	// ErrInvalidAlignment is returned when the alignment is not a positive power of two.
	ErrInvalidAlignment = errors.New("align: alignment must be a positive power of two")

	// ErrInvalidSize is returned for negative sizes.
	ErrInvalidSize = errors.New("align: size must not be negative")

	// ErrTooLarge is wrapped by *AllocationError when size plus padding overflows.
	ErrTooLarge = errors.New("align: size too large")

	// ErrReleased is returned when a buffer is released twice.
	ErrReleased = errors.New("align: buffer already released")

	// ErrForeignBuffer is returned when a buffer is released through an
	// allocator that did not produce it.
	ErrForeignBuffer = errors.New("align: buffer belongs to a different allocator")

	// ErrUnknownAllocator is returned by ParseAllocator for unrecognized names.
	ErrUnknownAllocator = errors.New("align: unknown allocator")
)

// AllocationError reports that the underlying allocator could not satisfy
// an aligned request.
type AllocationError struct {
	Allocator string
	Alignment int
	Size      int
	Err       error
}

func (e *AllocationError) Error() string {
	return fmt.Sprintf("align: %s allocation of %d bytes at %d-byte alignment failed: %v",
		e.Allocator, e.Size, e.Alignment, e.Err)
}

func (e *AllocationError) Unwrap() error {
	return e.Err
}

// Allocator acquires and releases aligned memory blocks.
type Allocator interface {
	// Name returns the allocator name accepted by ParseAllocator.
	Name() string

	// Acquire returns a block of size bytes starting at a multiple of
	// alignment. A zero size returns (nil, nil).
	Acquire(alignment, size int) (*Buffer, error)

	// Release returns the block to the system. A nil buffer is a no-op.
	Release(b *Buffer) error
}

// Buffer is an aligned memory block. The zero value is not usable; buffers
// come from an Allocator.
type Buffer struct {
	data      []byte
	handle    []byte // region owned by the allocator, data is a sub-slice
	alignment int
	alloc     Allocator
	released  bool
}

// Bytes returns the aligned region. It is nil after Release.
func (b *Buffer) Bytes() []byte {
	return b.data
}

// Float32s returns the region viewed as float32 values. Trailing bytes that
// do not fill a whole float32 are not part of the view.
func (b *Buffer) Float32s() []float32 {
	n := len(b.data) / 4
	if n == 0 {
		return nil
	}
	return unsafe.Slice((*float32)(unsafe.Pointer(unsafe.SliceData(b.data))), n)
}

// Len returns the size of the region in bytes.
func (b *Buffer) Len() int {
	return len(b.data)
}

// Alignment returns the boundary the region was acquired with.
func (b *Buffer) Alignment() int {
	return b.alignment
}

// Addr returns the address of the first byte, or 0 after Release.
func (b *Buffer) Addr() uintptr {
	if len(b.data) == 0 {
		return 0
	}
	return uintptr(unsafe.Pointer(unsafe.SliceData(b.data)))
}

// Released reports whether Release has been called on the buffer.
func (b *Buffer) Released() bool {
	return b.released
}

// Acquire allocates from the Heap allocator.
func Acquire(alignment, size int) (*Buffer, error) {
	return Heap.Acquire(alignment, size)
}

// Release returns b to the allocator that produced it. A nil buffer is a
// no-op; a second release of the same buffer returns ErrReleased.
func Release(b *Buffer) error {
	if b == nil {
		return nil
	}
	if b.alloc == nil {
		return ErrForeignBuffer
	}
	return b.alloc.Release(b)
}

// ParseAllocator resolves an allocator by name ("heap" or "mmap").
func ParseAllocator(name string) (Allocator, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "heap":
		return Heap, nil
	case "mmap":
		return Mmap, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownAllocator, name)
	}
}

// IsAligned reports whether addr is a multiple of alignment.
func IsAligned(addr uintptr, alignment int) bool {
	return alignment > 0 && addr&uintptr(alignment-1) == 0
}

func checkRequest(alignment, size int) error {
	if alignment <= 0 || alignment&(alignment-1) != 0 {
		return fmt.Errorf("%w: %d", ErrInvalidAlignment, alignment)
	}
	if size < 0 {
		return fmt.Errorf("%w: %d", ErrInvalidSize, size)
	}
	return nil
}

// alignedOffset returns how many bytes to skip from the start of region so
// that the next byte is aligned.
func alignedOffset(region []byte, alignment int) int {
	addr := uintptr(unsafe.Pointer(unsafe.SliceData(region)))
	return int((uintptr(alignment) - addr&uintptr(alignment-1)) & uintptr(alignment-1))
}

func paddedSize(alignment, size int) (int, bool) {
	if size > math.MaxInt-alignment {
		return 0, false
	}
	return size + alignment - 1, true
}

func (b *Buffer) markReleased() {
	b.data = nil
	b.handle = nil
	b.released = true
}
