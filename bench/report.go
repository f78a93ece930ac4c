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
	"encoding/json"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// Float is a float32 that encodes NaN and ±Inf as JSON null.
type Float float32

// MarshalJSON implements json.Marshaler.
func (f Float) MarshalJSON() ([]byte, error) {
	v := float64(f)
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return []byte("null"), nil
	}
	return strconv.AppendFloat(nil, v, 'g', -1, 32), nil
}

// Range is the smallest and largest element of a result vector.
type Range struct {
	Min Float `json:"min" yaml:"min"`
	Max Float `json:"max" yaml:"max"`
}

// Result is the outcome of one run. Times are wall-clock microseconds, one
// entry per trial, in trial order.
type Result struct {
	RunID      string    `json:"run_id" yaml:"run_id"`
	K          int       `json:"k" yaml:"k"`
	N          int       `json:"n" yaml:"n"`
	Reference  string    `json:"reference" yaml:"reference"`
	Optimized  string    `json:"optimized" yaml:"optimized"`
	Level      string    `json:"level" yaml:"level"`
	Allocator  string    `json:"allocator" yaml:"allocator"`
	Alignment  int       `json:"alignment" yaml:"alignment"`
	RefRange   Range     `json:"ref_range" yaml:"ref_range"`
	OptRange   Range     `json:"opt_range" yaml:"opt_range"`
	MaxAbsDiff Float     `json:"max_abs_diff" yaml:"max_abs_diff"`
	RefTimes   []float64 `json:"ref_us" yaml:"ref_us"`
	OptTimes   []float64 `json:"opt_us" yaml:"opt_us"`
}

// Render writes res to w in the given format.
func Render(w io.Writer, format string, res *Result) error {
	switch format {
	case FormatText, "":
		return renderText(w, res)
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(res)
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(res); err != nil {
			return err
		}
		return enc.Close()
	default:
		return fmt.Errorf("%w: unknown format %q", ErrInvalidConfig, format)
	}
}

// renderText writes the human-readable report:
//
//	K = <int>
//	N = <int>
//	ref  : <min>, <max>
//	opt  : <min>, <max>
//	diff : <maxAbsDiff>
//
//	Ref version (μs)
//	<t0>, <t1>, ...
//	Opt version μs
//	<t0>, <t1>, ...
func renderText(w io.Writer, res *Result) error {
	var sb strings.Builder
	fmt.Fprintf(&sb, "K = %d\n", res.K)
	fmt.Fprintf(&sb, "N = %d\n", res.N)
	fmt.Fprintf(&sb, "ref  : %s, %s\n", formatFloat(float64(res.RefRange.Min)), formatFloat(float64(res.RefRange.Max)))
	fmt.Fprintf(&sb, "opt  : %s, %s\n", formatFloat(float64(res.OptRange.Min)), formatFloat(float64(res.OptRange.Max)))
	fmt.Fprintf(&sb, "diff : %s\n\n", formatFloat(float64(res.MaxAbsDiff)))

	sb.WriteString("Ref version (μs)\n")
	writeSamples(&sb, res.RefTimes)
	sb.WriteString("Opt version μs\n")
	writeSamples(&sb, res.OptTimes)

	_, err := io.WriteString(w, sb.String())
	return err
}

func writeSamples(sb *strings.Builder, samples []float64) {
	for i, s := range samples {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(formatFloat(s))
	}
	sb.WriteByte('\n')
}

// formatFloat prints six significant digits, trailing zeros trimmed.
func formatFloat(v float64) string {
	return fmt.Sprintf("%.6g", v)
}
