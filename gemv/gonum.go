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

package gemv

import (
	"runtime"

	"gonum.org/v1/gonum/blas"
	"gonum.org/v1/gonum/blas/blas32"
)

// Gonum computes c = a * b as c = bᵀ * a through blas32.Gemv, which runs
// gonum's assembly AXPY kernels where the platform has them.
type Gonum struct{}

// Name returns "gonum".
func (Gonum) Name() string { return "gonum" }

// FixedSIMD reports true on amd64, where gonum links its assembly kernels
// unconditionally and dispatch.ForceScalar has no effect on them.
func (Gonum) FixedSIMD() bool { return runtime.GOARCH == "amd64" }

// Gemv computes c = a * b. Panics under the same conditions as Reference.
func (Gonum) Gemv(c, a, b []float32, k, n int) {
	checkDims(c, a, b, k, n)
	if n == 0 {
		return
	}
	if k == 0 {
		clear(c[:n])
		return
	}

	blas32.Gemv(blas.Trans, 1,
		blas32.General{Rows: k, Cols: n, Stride: n, Data: b[:k*n]},
		blas32.Vector{N: k, Inc: 1, Data: a[:k]},
		0,
		blas32.Vector{N: n, Inc: 1, Data: c[:n]},
	)
}
