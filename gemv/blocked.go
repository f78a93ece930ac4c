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

// blockCols is the number of output columns accumulated in registers per
// pass over the reduction dimension: one AVX register of float32 lanes.
const blockCols = 8

// Blocked computes c = a * b, keeping blockCols column sums in locals while
// streaming down the rows of b. Columns that do not fill a block are
// handled one at a time. Accumulation order per column matches Reference,
// so results differ only where the compiler fuses multiply-add.
//
// Panics under the same conditions as Reference.
func Blocked(c, a, b []float32, k, n int) {
	checkDims(c, a, b, k, n)
	a = a[:k]

	j := 0
	for ; j+blockCols <= n; j += blockCols {
		var s0, s1, s2, s3, s4, s5, s6, s7 float32
		off := j
		for _, ai := range a {
			row := b[off : off+blockCols : off+blockCols]
			s0 += ai * row[0]
			s1 += ai * row[1]
			s2 += ai * row[2]
			s3 += ai * row[3]
			s4 += ai * row[4]
			s5 += ai * row[5]
			s6 += ai * row[6]
			s7 += ai * row[7]
			off += n
		}
		out := c[j : j+blockCols : j+blockCols]
		out[0], out[1], out[2], out[3] = s0, s1, s2, s3
		out[4], out[5], out[6], out[7] = s4, s5, s6, s7
	}

	// Scalar tail
	for ; j < n; j++ {
		var s float32
		off := j
		for _, ai := range a {
			s += ai * b[off]
			off += n
		}
		c[j] = s
	}
}
