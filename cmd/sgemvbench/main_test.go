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

package main

import (
	"bytes"
	"encoding/json"
	"runtime"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/ajroetker/go-sgemv/gemv"
	"github.com/ajroetker/go-sgemv/internal/dispatch"
)

func runCLI(args ...string) (code int, stdout, stderr string) {
	var out, errOut bytes.Buffer
	code = execute(args, &out, &errOut)
	return code, out.String(), errOut.String()
}

func TestUsageErrors(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"no args", nil},
		{"one arg", []string{"4"}},
		{"three args", []string{"4", "3", "2"}},
		{"non-integer K", []string{"four", "3"}},
		{"non-integer N", []string{"4", "3.5"}},
		{"zero K", []string{"0", "3"}},
		{"negative N as flag", []string{"4", "-3"}},
		{"negative N", []string{"--", "4", "-3"}},
		{"negative K", []string{"--", "-4", "3"}},
		{"unknown provider", []string{"4", "3", "--provider", "mlas"}},
		{"unknown allocator", []string{"4", "3", "--allocator", "jemalloc"}},
		{"bad alignment", []string{"4", "3", "--alignment", "24"}},
		{"sub-float alignment", []string{"4", "3", "--alignment", "2"}},
		{"bad format", []string{"4", "3", "--format", "csv"}},
		{"zero repeats", []string{"4", "3", "--repeats", "0"}},
		{"unknown flag", []string{"4", "3", "--fast"}},
		{"bad log level", []string{"4", "3", "--log-level", "loud"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, stdout, stderr := runCLI(tt.args...)
			assert.Equal(t, 1, code)
			assert.Empty(t, stdout, "nothing may be computed or printed")
			assert.Contains(t, stderr, "Error:")
			assert.Contains(t, stderr, "Usage:")
		})
	}
}

func TestTextReport(t *testing.T) {
	code, stdout, stderr := runCLI("4", "3", "--provider", "reference", "--repeats", "3")
	require.Equal(t, 0, code, stderr)

	lines := strings.Split(stdout, "\n")
	require.Len(t, lines, 11) // trailing newline
	assert.Equal(t, "K = 4", lines[0])
	assert.Equal(t, "N = 3", lines[1])
	assert.Equal(t, "ref  : 0.875, 1.125", lines[2])
	assert.Equal(t, "opt  : 0.875, 1.125", lines[3])
	assert.Equal(t, "diff : 0", lines[4])
	assert.Equal(t, "", lines[5])
	assert.Equal(t, "Ref version (μs)", lines[6])
	assert.Len(t, strings.Split(lines[7], ", "), 3)
	assert.Equal(t, "Opt version μs", lines[8])
	assert.Len(t, strings.Split(lines[9], ", "), 3)
}

func TestDefaultRepeats(t *testing.T) {
	code, stdout, _ := runCLI("16", "16")
	require.Equal(t, 0, code)

	lines := strings.Split(stdout, "\n")
	require.GreaterOrEqual(t, len(lines), 10)
	assert.Len(t, strings.Split(lines[7], ", "), 10)
	assert.Len(t, strings.Split(lines[9], ", "), 10)
}

func TestJSONReport(t *testing.T) {
	code, stdout, stderr := runCLI("8", "5", "--format", "json", "--provider", "blocked")
	require.Equal(t, 0, code, stderr)

	var got struct {
		K         int       `json:"k"`
		N         int       `json:"n"`
		Optimized string    `json:"optimized"`
		RunID     string    `json:"run_id"`
		RefTimes  []float64 `json:"ref_us"`
		OptTimes  []float64 `json:"opt_us"`
	}
	require.NoError(t, json.Unmarshal([]byte(stdout), &got))
	assert.Equal(t, 8, got.K)
	assert.Equal(t, 5, got.N)
	assert.Equal(t, "blocked", got.Optimized)
	assert.NotEmpty(t, got.RunID)
	assert.Len(t, got.RefTimes, 10)
	assert.Len(t, got.OptTimes, 10)
}

func TestYAMLReportNoSIMD(t *testing.T) {
	code, stdout, stderr := runCLI("8", "5", "--format", "yaml", "--no-simd")
	require.Equal(t, 0, code, stderr)

	var got map[string]any
	require.NoError(t, yaml.Unmarshal([]byte(stdout), &got))
	assert.Equal(t, "scalar", got["level"])
	assert.Equal(t, "blocked", got["optimized"])
	assert.Equal(t, dispatch.DetectedLevel(), dispatch.CurrentLevel(), "--no-simd leaked past the command")
}

func TestDimensionValidationMessage(t *testing.T) {
	code, stdout, stderr := runCLI("--", "4", "-3")
	assert.Equal(t, 1, code)
	assert.Empty(t, stdout)
	assert.Contains(t, stderr, "N must be >= 1, got -3")
	assert.Contains(t, stderr, "Usage:")
}

func TestNoSIMDExplicitProvider(t *testing.T) {
	t.Run("vek", func(t *testing.T) {
		code, stdout, stderr := runCLI("64", "64", "--format", "yaml", "--no-simd", "--provider", "vek")
		require.Equal(t, 0, code, stderr)

		var got map[string]any
		require.NoError(t, yaml.Unmarshal([]byte(stdout), &got))
		assert.Equal(t, "scalar", got["level"])
		assert.Equal(t, "vek", got["optimized"])
		assert.Equal(t, dispatch.DetectedLevel(), dispatch.CurrentLevel())
	})

	t.Run("gonum", func(t *testing.T) {
		code, stdout, stderr := runCLI("64", "64", "--format", "yaml", "--no-simd", "--provider", "gonum")
		if runtime.GOARCH != "amd64" {
			require.Equal(t, 0, code, stderr)
			assert.Contains(t, stdout, "level: scalar")
			return
		}
		assert.Equal(t, 1, code)
		assert.Empty(t, stdout)
		assert.Contains(t, stderr, `provider "gonum" cannot run at the scalar dispatch level`)
	})

	t.Run("list", func(t *testing.T) {
		code, stdout, _ := runCLI("--list", "--no-simd")
		require.Equal(t, 0, code)
		assert.Contains(t, stdout, "simd level: scalar")
		assert.Contains(t, stdout, "4 float32 lanes")
		assert.Contains(t, stdout, "vek accelerated false")
	})
}

func TestList(t *testing.T) {
	code, stdout, _ := runCLI("--list")
	require.Equal(t, 0, code)
	assert.Contains(t, stdout, "simd level: ")
	for _, name := range gemv.Names() {
		assert.Contains(t, stdout, name)
	}
}

func TestDebugLogging(t *testing.T) {
	code, _, stderr := runCLI("4", "4", "--log-level", "debug", "--provider", "gonum")
	require.Equal(t, 0, code)
	assert.Contains(t, stderr, "starting run")
	assert.Contains(t, stderr, "provider=gonum")
}
