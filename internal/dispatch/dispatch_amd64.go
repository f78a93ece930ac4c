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

//go:build amd64

package dispatch

import "golang.org/x/sys/cpu"

// hasFMA indicates fused multiply-add support (Haswell+).
var hasFMA bool

func init() {
	detectCPUFeatures()
}

func detectCPUFeatures() {
	hasFMA = cpu.X86.HasFMA

	switch {
	case cpu.X86.HasAVX512F && cpu.X86.HasAVX512VL:
		detectedLevel = AVX512
	case cpu.X86.HasAVX2 && hasFMA:
		detectedLevel = AVX2
	default:
		// SSE2 is baseline for amd64
		detectedLevel = SSE2
	}
}

// HasFMA returns true if the CPU supports fused multiply-add.
func HasFMA() bool {
	return hasFMA
}
