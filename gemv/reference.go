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

// Reference computes c = a * b with the naive loop order: one pass over the
// reduction dimension per output column. It is kept deliberately simple; it
// is the ground truth the other kernels are compared against.
//
// Parameters:
//   - c: output vector of length n (must be pre-allocated)
//   - a: input vector of length k
//   - b: matrix in row-major order with shape [k, n]
//
// Panics if:
//   - k < 0 or n < 0
//   - len(a) < k
//   - len(b) < k * n
//   - len(c) < n
func Reference(c, a, b []float32, k, n int) {
	checkDims(c, a, b, k, n)

	for j := 0; j < n; j++ {
		c[j] = 0
		for i := 0; i < k; i++ {
			c[j] += a[i] * b[i*n+j]
		}
	}
}

func checkDims(c, a, b []float32, k, n int) {
	if k < 0 || n < 0 {
		panic("negative dimension")
	}
	if len(a) < k {
		panic("vector slice too small")
	}
	if len(b) < k*n {
		panic("matrix slice too small")
	}
	if len(c) < n {
		panic("result slice too small")
	}
}
