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
	"bytes"
	"encoding/json"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func sampleResult() *Result {
	return &Result{
		RunID:      "run-1",
		K:          4,
		N:          3,
		Reference:  "reference",
		Optimized:  "vek",
		Level:      "avx2",
		Allocator:  "heap",
		Alignment:  32,
		RefRange:   Range{Min: 0.875, Max: 1.125},
		OptRange:   Range{Min: 0.875, Max: 1.125},
		MaxAbsDiff: 1.1920929e-07,
		RefTimes:   []float64{12.5, 3, 2.25},
		OptTimes:   []float64{4, 0.5, 0.125},
	}
}

func TestRenderText(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Render(&buf, FormatText, sampleResult()))

	want := "K = 4\n" +
		"N = 3\n" +
		"ref  : 0.875, 1.125\n" +
		"opt  : 0.875, 1.125\n" +
		"diff : 1.19209e-07\n" +
		"\n" +
		"Ref version (μs)\n" +
		"12.5, 3, 2.25\n" +
		"Opt version μs\n" +
		"4, 0.5, 0.125\n"
	assert.Equal(t, want, buf.String())
}

func TestRenderJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Render(&buf, FormatJSON, sampleResult()))

	var got map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	assert.Equal(t, "run-1", got["run_id"])
	assert.Equal(t, "vek", got["optimized"])
	assert.Equal(t, float64(4), got["k"])
	assert.Len(t, got["ref_us"], 3)
	assert.InDelta(t, 0.875, got["ref_range"].(map[string]any)["min"], 1e-9)
}

func TestRenderJSONNaN(t *testing.T) {
	res := sampleResult()
	res.MaxAbsDiff = Float(math.NaN())
	res.OptRange.Max = Float(math.Inf(1))

	var buf bytes.Buffer
	require.NoError(t, Render(&buf, FormatJSON, res))

	var got map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	assert.Nil(t, got["max_abs_diff"])
	assert.Nil(t, got["opt_range"].(map[string]any)["max"])
}

func TestRenderYAML(t *testing.T) {
	var buf bytes.Buffer
	want := sampleResult()
	require.NoError(t, Render(&buf, FormatYAML, want))

	var got Result
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &got))
	assert.Equal(t, *want, got)
}

func TestRenderUnknown(t *testing.T) {
	assert.ErrorIs(t, Render(&bytes.Buffer{}, "csv", sampleResult()), ErrInvalidConfig)
}
