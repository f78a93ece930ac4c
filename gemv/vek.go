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
	"sync/atomic"

	"github.com/viterin/vek/vek32"

	"github.com/ajroetker/go-sgemv/internal/dispatch"
)

// vekHardware is vek's acceleration support as detected at startup, before
// any SetAcceleration call.
var vekHardware = vek32.Info().Acceleration

// vekEnabled mirrors the last value passed to vek32.SetAcceleration.
var vekEnabled atomic.Bool

func init() {
	vekEnabled.Store(vekHardware)
}

// syncAcceleration turns vek's SIMD paths on or off to follow the current
// dispatch level. vek32.SetAcceleration is process-wide.
func syncAcceleration() {
	want := VekAccelerated()
	if vekEnabled.Load() != want {
		vek32.SetAcceleration(want)
		vekEnabled.Store(want)
	}
}

// Vek computes c = a * b as a sequence of row AXPYs, c += a[i] * b[i,:],
// using vek's AVX2 primitives when the CPU supports them and the dispatch
// level is not Scalar.
//
// Vek keeps an n-length scratch row between calls and is not safe for
// concurrent use.
type Vek struct {
	scratch []float32
}

// NewVek returns a Vek provider with an empty scratch row.
func NewVek() *Vek {
	return &Vek{}
}

// Name returns "vek".
func (*Vek) Name() string { return "vek" }

// Gemv computes c = a * b. Panics under the same conditions as Reference.
func (v *Vek) Gemv(c, a, b []float32, k, n int) {
	checkDims(c, a, b, k, n)
	syncAcceleration()
	out := c[:n]
	clear(out)
	if n == 0 {
		return
	}

	if cap(v.scratch) < n {
		v.scratch = make([]float32, n)
	}
	tmp := v.scratch[:n]

	for i := 0; i < k; i++ {
		vek32.MulNumber_Into(tmp, b[i*n:(i+1)*n], a[i])
		vek32.Add_Inplace(out, tmp)
	}
}

// VekAccelerated reports whether vek runs hardware SIMD at the current
// dispatch level: the CPU must support it and ForceScalar must be off.
func VekAccelerated() bool {
	return vekHardware && dispatch.CurrentLevel().Vector()
}
