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

// Command sgemvbench checks an optimized SGEMV kernel against the naive
// reference and times both.
//
// Usage:
//
//	sgemvbench K N
//	sgemvbench 1024 1024 --provider gonum --repeats 20
//	sgemvbench 4096 256 --format yaml --allocator mmap
//	sgemvbench --list
//
// K is the reduction length and N the output width. The report goes to
// stdout; diagnostics and usage errors go to stderr. Exit status is 1 on
// any error, including a wrong argument count.
package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/ajroetker/go-sgemv/bench"
	"github.com/ajroetker/go-sgemv/gemv"
	"github.com/ajroetker/go-sgemv/internal/dispatch"
)

// usageError marks errors that should be followed by the usage text.
type usageError struct {
	err error
}

func (e usageError) Error() string { return e.err.Error() }

func (e usageError) Unwrap() error { return e.err }

type options struct {
	cfg      bench.Config
	noSIMD   bool
	list     bool
	logLevel string
}

func newRootCmd(stdout, stderr io.Writer) *cobra.Command {
	opts := options{cfg: bench.DefaultConfig()}

	cmd := &cobra.Command{
		Use:   "sgemvbench K N",
		Short: "Verify and time an SGEMV kernel against the naive reference",
		Long: `sgemvbench multiplies a 1xK vector by a KxN row-major matrix twice:
once with the naive reference loop and once with an optimized provider.
It prints the value range of both results, their maximum absolute
difference, and the wall-clock time of every trial in microseconds.

Inputs are deterministic: A[i] = i/K, B[i] = i/(K*N).`,
		Args: func(cmd *cobra.Command, args []string) error {
			if opts.list {
				return nil
			}
			if len(args) != 2 {
				return usageError{fmt.Errorf("expected 2 arguments (K N), got %d", len(args))}
			}
			return nil
		},
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, &opts, args)
		},
	}
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)
	cmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return usageError{err}
	})

	f := cmd.Flags()
	f.StringVar(&opts.cfg.Provider, "provider", opts.cfg.Provider,
		"Optimized provider ("+strings.Join(gemv.Names(), ", ")+") or 'auto'")
	f.IntVar(&opts.cfg.Repeats, "repeats", opts.cfg.Repeats, "Number of timed trials per kernel")
	f.IntVar(&opts.cfg.Alignment, "alignment", opts.cfg.Alignment, "Buffer alignment in bytes (power of two, at least 4)")
	f.StringVar(&opts.cfg.Allocator, "allocator", opts.cfg.Allocator, "Buffer allocator: heap, mmap")
	f.StringVar(&opts.cfg.Format, "format", opts.cfg.Format, "Report format: text, json, yaml")
	f.BoolVar(&opts.noSIMD, "no-simd", false, "Dispatch as if the CPU had no SIMD support")
	f.BoolVar(&opts.list, "list", false, "List providers and the detected SIMD level, then exit")
	f.StringVar(&opts.logLevel, "log-level", "warn", "Diagnostic log level: debug, info, warn, error, disabled")

	return cmd
}

func run(cmd *cobra.Command, opts *options, args []string) error {
	level, err := zerolog.ParseLevel(opts.logLevel)
	if err != nil {
		return usageError{fmt.Errorf("invalid --log-level: %w", err)}
	}
	logger := zerolog.New(zerolog.ConsoleWriter{Out: cmd.ErrOrStderr(), NoColor: true}).
		Level(level).
		With().Timestamp().Logger()

	if opts.noSIMD {
		dispatch.ForceScalar(true)
		defer dispatch.ForceScalar(false)
	}

	if opts.list {
		return listProviders(cmd.OutOrStdout())
	}

	cfg := opts.cfg
	if cfg.K, err = parseDim("K", args[0]); err != nil {
		return err
	}
	if cfg.N, err = parseDim("N", args[1]); err != nil {
		return err
	}

	d, err := bench.New(cfg, bench.WithLogger(logger))
	if err != nil {
		if errors.Is(err, bench.ErrInvalidConfig) {
			return usageError{err}
		}
		return err
	}
	_, err = d.Run(cmd.OutOrStdout())
	return err
}

func parseDim(name, s string) (int, error) {
	v, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, usageError{fmt.Errorf("%s must be an integer, got %q", name, s)}
	}
	return v, nil
}

func listProviders(w io.Writer) error {
	level := dispatch.CurrentLevel()
	_, err := fmt.Fprintf(w, "simd level: %s (detected %s, %d-byte registers, %d float32 lanes, fma %t, vek accelerated %t)\nproviders: %s (auto: %s)\n",
		level, dispatch.DetectedLevel(), level.Width(), dispatch.MaxLanes(), dispatch.HasFMA(), gemv.VekAccelerated(),
		strings.Join(gemv.Names(), ", "), gemv.BestName())
	return err
}

// execute runs the command and returns the process exit status.
func execute(args []string, stdout, stderr io.Writer) int {
	cmd := newRootCmd(stdout, stderr)
	cmd.SetArgs(args)

	err := cmd.Execute()
	if err == nil {
		return 0
	}

	fmt.Fprintf(stderr, "Error: %v\n", err)
	var uerr usageError
	if errors.As(err, &uerr) {
		fmt.Fprintf(stderr, "\n%s", cmd.UsageString())
	}
	return 1
}

func main() {
	os.Exit(execute(os.Args[1:], os.Stdout, os.Stderr))
}
