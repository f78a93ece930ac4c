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

package bench

import (
	"errors"
	"fmt"
	"math"
	"slices"

	"github.com/ajroetker/go-sgemv/align"
	"github.com/ajroetker/go-sgemv/gemv"
)

// DefaultRepeats is the number of timed trials per kernel.
const DefaultRepeats = 10

// Report formats accepted by Config.Format.
const (
	FormatText = "text"
	FormatJSON = "json"
	FormatYAML = "yaml"
)

// ErrInvalidConfig is wrapped by every configuration error.
var ErrInvalidConfig = errors.New("invalid configuration")

// Config describes one benchmark run.
type Config struct {
	// K is the reduction length (length of A, rows of B).
	K int

	// N is the output width (columns of B, length of C).
	N int

	// Repeats is the number of timed trials per kernel.
	Repeats int

	// Alignment is the byte boundary for every buffer.
	Alignment int

	// Allocator names the align allocator ("heap" or "mmap").
	Allocator string

	// Provider names the optimized gemv provider; "auto" picks by SIMD level.
	Provider string

	// Format selects the report rendering: text, json or yaml.
	Format string
}

// DefaultConfig returns a Config with every field but K and N set.
func DefaultConfig() Config {
	return Config{
		Repeats:   DefaultRepeats,
		Alignment: align.DefaultAlignment,
		Allocator: "heap",
		Provider:  gemv.Auto,
		Format:    FormatText,
	}
}

// Validate checks dimensions and options. K and N must both be at least 1
// and K*N floats must be addressable. Alignment must be a power of two no
// smaller than a float32, so the float32 views stay naturally aligned.
func (c Config) Validate() error {
	if c.K < 1 {
		return fmt.Errorf("%w: K must be >= 1, got %d", ErrInvalidConfig, c.K)
	}
	if c.N < 1 {
		return fmt.Errorf("%w: N must be >= 1, got %d", ErrInvalidConfig, c.N)
	}
	if c.K > math.MaxInt/4/c.N {
		return fmt.Errorf("%w: K*N = %d*%d overflows", ErrInvalidConfig, c.K, c.N)
	}
	if c.Repeats < 1 {
		return fmt.Errorf("%w: repeats must be >= 1, got %d", ErrInvalidConfig, c.Repeats)
	}
	if c.Alignment < 4 || c.Alignment&(c.Alignment-1) != 0 {
		return fmt.Errorf("%w: alignment must be a power of two >= 4, got %d", ErrInvalidConfig, c.Alignment)
	}
	if !slices.Contains([]string{FormatText, FormatJSON, FormatYAML}, c.Format) {
		return fmt.Errorf("%w: unknown format %q", ErrInvalidConfig, c.Format)
	}
	return nil
}
