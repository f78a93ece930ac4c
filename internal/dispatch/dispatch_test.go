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

package dispatch

import (
	"runtime"
	"testing"
)

func TestLevelString(t *testing.T) {
	tests := []struct {
		level Level
		want  string
		width int
	}{
		{Scalar, "scalar", 16},
		{SSE2, "sse2", 16},
		{AVX2, "avx2", 32},
		{AVX512, "avx512", 64},
		{NEON, "neon", 16},
		{Level(99), "unknown", 16},
	}
	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			if got := tt.level.String(); got != tt.want {
				t.Errorf("String() = %q, want %q", got, tt.want)
			}
			if got := tt.level.Width(); got != tt.width {
				t.Errorf("Width() = %d, want %d", got, tt.width)
			}
		})
	}
}

func TestDetectedLevel(t *testing.T) {
	level := DetectedLevel()
	switch runtime.GOARCH {
	case "amd64":
		if level != SSE2 && level != AVX2 && level != AVX512 {
			t.Errorf("DetectedLevel() = %v on amd64", level)
		}
	case "arm64":
		if level != NEON && level != Scalar {
			t.Errorf("DetectedLevel() = %v on arm64", level)
		}
	default:
		if level != Scalar {
			t.Errorf("DetectedLevel() = %v, want scalar", level)
		}
	}
}

func TestForceScalar(t *testing.T) {
	t.Cleanup(func() { ForceScalar(false) })

	ForceScalar(true)
	if got := CurrentLevel(); got != Scalar {
		t.Errorf("CurrentLevel() with ForceScalar = %v, want scalar", got)
	}
	if got := MaxLanes(); got != 4 {
		t.Errorf("MaxLanes() in scalar mode = %d, want 4", got)
	}
	if got := DetectedLevel(); got != detectedLevel {
		t.Errorf("DetectedLevel() changed under ForceScalar: %v", got)
	}

	ForceScalar(false)
	if got := CurrentLevel(); got != DetectedLevel() {
		t.Errorf("CurrentLevel() after restore = %v, want %v", got, DetectedLevel())
	}
}
