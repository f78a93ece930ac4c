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
)

// ErrArenaClosed is returned when allocating from a closed Arena.
var ErrArenaClosed = errors.New("align: arena closed")

// Arena owns every buffer acquired through it and releases them together.
// It is not safe for concurrent use.
type Arena struct {
	alloc     Allocator
	alignment int
	buffers   []*Buffer
	closed    bool
}

// NewArena returns an Arena drawing from alloc at the given alignment.
// A nil alloc means Heap. Alignments below 4 are raised to 4 so float32
// views are always naturally aligned.
func NewArena(alloc Allocator, alignment int) *Arena {
	if alloc == nil {
		alloc = Heap
	}
	if alignment > 0 && alignment < 4 {
		alignment = 4
	}
	return &Arena{alloc: alloc, alignment: alignment}
}

// Float32s returns an aligned, zeroed slice of n float32 values.
// n == 0 returns a nil slice.
func (a *Arena) Float32s(n int) ([]float32, error) {
	if a.closed {
		return nil, ErrArenaClosed
	}
	if n < 0 {
		return nil, fmt.Errorf("%w: %d elements", ErrInvalidSize, n)
	}
	if n > math.MaxInt/4 {
		return nil, &AllocationError{Allocator: a.alloc.Name(), Alignment: a.alignment, Size: n, Err: ErrTooLarge}
	}

	b, err := a.alloc.Acquire(a.alignment, n*4)
	if err != nil {
		return nil, err
	}
	if b == nil {
		return nil, nil
	}
	a.buffers = append(a.buffers, b)
	return b.Float32s(), nil
}

// Len returns the number of live buffers owned by the arena.
func (a *Arena) Len() int {
	return len(a.buffers)
}

// Allocator returns the allocator backing the arena.
func (a *Arena) Allocator() Allocator {
	return a.alloc
}

// Close releases every buffer in reverse acquisition order. Further calls
// are no-ops. Release errors are joined.
func (a *Arena) Close() error {
	if a.closed {
		return nil
	}
	a.closed = true

	var errs []error
	for i := len(a.buffers) - 1; i >= 0; i-- {
		if err := Release(a.buffers[i]); err != nil {
			errs = append(errs, err)
		}
	}
	a.buffers = nil
	return errors.Join(errs...)
}
