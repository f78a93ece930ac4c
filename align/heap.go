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

import "fmt"

// Heap is the portable allocator backed by the Go heap.
var Heap Allocator = heapAllocator{}

type heapAllocator struct{}

func (heapAllocator) Name() string { return "heap" }

func (h heapAllocator) Acquire(alignment, size int) (*Buffer, error) {
	if err := checkRequest(alignment, size); err != nil {
		return nil, err
	}
	if size == 0 {
		return nil, nil
	}

	total, ok := paddedSize(alignment, size)
	if !ok {
		return nil, &AllocationError{Allocator: h.Name(), Alignment: alignment, Size: size, Err: ErrTooLarge}
	}
	region, err := makeBytes(total)
	if err != nil {
		return nil, &AllocationError{Allocator: h.Name(), Alignment: alignment, Size: size, Err: err}
	}

	off := alignedOffset(region, alignment)
	return &Buffer{
		data:      region[off : off+size : off+size],
		handle:    region,
		alignment: alignment,
		alloc:     h,
	}, nil
}

func (h heapAllocator) Release(b *Buffer) error {
	if b == nil {
		return nil
	}
	if _, ok := b.alloc.(heapAllocator); !ok {
		return ErrForeignBuffer
	}
	if b.released {
		return ErrReleased
	}
	b.markReleased()
	return nil
}

// makeBytes converts the runtime's "len out of range" panic into an error.
func makeBytes(n int) (buf []byte, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%v", r)
		}
	}()
	return make([]byte, n), nil
}
