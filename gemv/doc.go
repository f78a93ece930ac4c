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

// Package gemv provides single-precision vector-matrix multiply (SGEMV)
// kernels behind a common Provider interface.
//
// # Product
//
// Every kernel computes the product of a 1×K row vector a with a K×N
// row-major matrix b (leading dimension N), producing a 1×N vector c:
//
//	c[j] = sum(a[i] * b[i*n+j]) for i in 0..k-1
//
// # Kernels
//
// Reference is the naive nested-loop oracle; its correctness should be
// self-evident, and every other kernel is validated against it. Providers
// registered in this package:
//   - "reference": Reference wrapped as a Provider
//   - "blocked": 8-column register-blocked Go kernel with a scalar tail
//   - "gonum": gonum's blas32.Gemv on the transposed view of b
//   - "vek": row-wise AXPY on viterin/vek SIMD primitives
//
// Best picks a provider from the runtime SIMD level (see internal/dispatch).
//
// # Example Usage
//
//	// a = [1 2], b is 2x3:
//	//   [1 2 3]
//	//   [4 5 6]
//	a := []float32{1, 2}
//	b := []float32{1, 2, 3, 4, 5, 6}
//	c := make([]float32, 3)
//
//	gemv.Reference(c, a, b, 2, 3)
//	// c = [9, 12, 15]
//
//	p, _ := gemv.Lookup("auto")
//	p.Gemv(c, a, b, 2, 3)
//
// Kernels panic when a slice is shorter than its dimension requires, the
// same way slice-taking kernels in the standard library do.
package gemv
