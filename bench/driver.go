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

// Package bench runs the SGEMV verification and timing harness.
//
// A run is strictly linear:
//
//	Init -> Validate -> Correctness check -> Timed trials (xR) -> Report -> Teardown
//
// The reference kernel runs first in every timed trial and the optimized
// kernel second. The order is fixed, so cache warm-up from the reference
// call systematically favors the optimized timing; compare runs against
// each other, not the two columns of one run against each other.
//
// Every raw sample is kept and reported. Nothing is averaged or discarded,
// so variance and outliers stay visible.
package bench

import (
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/ajroetker/go-sgemv/align"
	"github.com/ajroetker/go-sgemv/compare"
	"github.com/ajroetker/go-sgemv/gemv"
	"github.com/ajroetker/go-sgemv/internal/dispatch"
)

// Stage identifies a step of the run for logs and errors.
type Stage int

const (
	StageInit Stage = iota
	StageValidate
	StageCheck
	StageTrials
	StageReport
	StageTeardown
)

// String returns a human-readable name for the stage.
func (s Stage) String() string {
	switch s {
	case StageInit:
		return "init"
	case StageValidate:
		return "validate"
	case StageCheck:
		return "check"
	case StageTrials:
		return "trials"
	case StageReport:
		return "report"
	case StageTeardown:
		return "teardown"
	default:
		return "unknown"
	}
}

// Driver owns the buffers and kernels for one run. It is not safe for
// concurrent use.
type Driver struct {
	cfg    Config
	ref    gemv.Provider
	opt    gemv.Provider
	alloc  align.Allocator
	logger zerolog.Logger
	now    func() time.Time
	runID  string
}

// Option configures a Driver.
type Option func(*Driver)

// WithLogger sets the diagnostic logger. The default discards everything.
func WithLogger(l zerolog.Logger) Option {
	return func(d *Driver) { d.logger = l }
}

// WithClock replaces time.Now for trial timing.
func WithClock(now func() time.Time) Option {
	return func(d *Driver) { d.now = now }
}

// WithProvider sets the optimized kernel directly, bypassing Config.Provider.
func WithProvider(p gemv.Provider) Option {
	return func(d *Driver) { d.opt = p }
}

// WithAllocator sets the buffer allocator directly, bypassing Config.Allocator.
func WithAllocator(a align.Allocator) Option {
	return func(d *Driver) { d.alloc = a }
}

// WithRunID sets the run identifier carried in structured reports.
func WithRunID(id string) Option {
	return func(d *Driver) { d.runID = id }
}

// ErrKernelPanic wraps a panic raised by a provider during the check or
// the timed trials.
var ErrKernelPanic = errors.New("kernel panicked")

// New validates cfg and resolves its allocator and providers. Every error
// wraps ErrInvalidConfig.
func New(cfg Config, opts ...Option) (*Driver, error) {
	if err := cfg.Validate(); err != nil {
		return nil, stageError(StageValidate, err)
	}

	d := &Driver{
		cfg:    cfg,
		ref:    gemv.FromFunc("reference", gemv.Reference),
		logger: zerolog.Nop(),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(d)
	}

	if d.alloc == nil {
		alloc, err := align.ParseAllocator(cfg.Allocator)
		if err != nil {
			return nil, stageError(StageValidate, fmt.Errorf("%w: %w", ErrInvalidConfig, err))
		}
		d.alloc = alloc
	}
	if d.opt == nil {
		opt, err := gemv.Lookup(cfg.Provider)
		if err != nil {
			return nil, stageError(StageValidate, fmt.Errorf("%w: %w", ErrInvalidConfig, err))
		}
		d.opt = opt
	}
	if level := dispatch.CurrentLevel(); !level.Vector() && !gemv.HonorsScalar(d.opt) {
		return nil, stageError(StageValidate, fmt.Errorf("%w: provider %q cannot run at the %s dispatch level",
			ErrInvalidConfig, d.opt.Name(), level))
	}
	if d.runID == "" {
		d.runID = uuid.NewString()
	}
	return d, nil
}

// Run executes the harness and writes the report to w. Buffers are
// released before Run returns, on success and on every error path.
// Kernel disagreement is reported in the Result, never as an error; a
// provider panic is returned as an error wrapping ErrKernelPanic.
func (d *Driver) Run(w io.Writer) (res *Result, err error) {
	k, n := d.cfg.K, d.cfg.N
	log := d.logger.With().Str("run_id", d.runID).Logger()
	log.Debug().
		Stringer("stage", StageInit).
		Int("k", k).
		Int("n", n).
		Str("provider", d.opt.Name()).
		Str("level", dispatch.CurrentLevel().String()).
		Str("allocator", d.alloc.Name()).
		Int("alignment", d.cfg.Alignment).
		Msg("starting run")

	arena := align.NewArena(d.alloc, d.cfg.Alignment)
	defer func() {
		cerr := arena.Close()
		if cerr != nil && err == nil {
			err = stageError(StageTeardown, cerr)
		}
		log.Debug().Stringer("stage", StageTeardown).Err(cerr).Msg("released buffers")
	}()

	a, b, cRef, cOpt, err := d.acquire(arena)
	if err != nil {
		return nil, stageError(StageInit, err)
	}
	FillInputs(a, b, k, n)

	res = &Result{
		RunID:     d.runID,
		K:         k,
		N:         n,
		Reference: d.ref.Name(),
		Optimized: d.opt.Name(),
		Level:     dispatch.CurrentLevel().String(),
		Allocator: d.alloc.Name(),
		Alignment: d.cfg.Alignment,
	}

	if err := guard(StageCheck, func() { d.check(res, a, b, cRef, cOpt) }); err != nil {
		return nil, err
	}
	log.Debug().
		Stringer("stage", StageCheck).
		Float32("diff", float32(res.MaxAbsDiff)).
		Msg("correctness check")
	if !compare.Within(cRef, cOpt, Tolerance(k)) {
		log.Warn().
			Float32("diff", float32(res.MaxAbsDiff)).
			Float32("tolerance", Tolerance(k)).
			Str("provider", d.opt.Name()).
			Msg("optimized kernel disagrees with reference")
	}

	if err := guard(StageTrials, func() { d.trials(res, a, b, cRef, cOpt) }); err != nil {
		return nil, err
	}
	log.Debug().Stringer("stage", StageTrials).Int("repeats", d.cfg.Repeats).Msg("timed trials done")

	if err := Render(w, d.cfg.Format, res); err != nil {
		return res, stageError(StageReport, err)
	}
	return res, nil
}

func stageError(s Stage, err error) error {
	return fmt.Errorf("bench: %s: %w", s, err)
}

// guard runs fn and turns a panic into an error wrapping ErrKernelPanic.
func guard(s Stage, fn func()) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = stageError(s, fmt.Errorf("%w: %v", ErrKernelPanic, r))
		}
	}()
	fn()
	return nil
}

func (d *Driver) acquire(arena *align.Arena) (a, b, cRef, cOpt []float32, err error) {
	k, n := d.cfg.K, d.cfg.N
	if a, err = arena.Float32s(k); err != nil {
		return
	}
	if b, err = arena.Float32s(k * n); err != nil {
		return
	}
	if cRef, err = arena.Float32s(n); err != nil {
		return
	}
	cOpt, err = arena.Float32s(n)
	return
}

// check runs both kernels once and records ranges and the difference.
func (d *Driver) check(res *Result, a, b, cRef, cOpt []float32) {
	k, n := d.cfg.K, d.cfg.N
	d.ref.Gemv(cRef, a, b, k, n)
	d.opt.Gemv(cOpt, a, b, k, n)

	lo, hi := compare.Range(cRef)
	res.RefRange = Range{Min: Float(lo), Max: Float(hi)}
	lo, hi = compare.Range(cOpt)
	res.OptRange = Range{Min: Float(lo), Max: Float(hi)}
	res.MaxAbsDiff = Float(compare.MaxAbsDiff(cRef, cOpt))
}

// trials times reference then optimized, back-to-back, Repeats times.
func (d *Driver) trials(res *Result, a, b, cRef, cOpt []float32) {
	k, n := d.cfg.K, d.cfg.N
	res.RefTimes = make([]float64, d.cfg.Repeats)
	res.OptTimes = make([]float64, d.cfg.Repeats)

	for r := range d.cfg.Repeats {
		t0 := d.now()
		d.ref.Gemv(cRef, a, b, k, n)
		t1 := d.now()
		d.opt.Gemv(cOpt, a, b, k, n)
		t2 := d.now()

		res.RefTimes[r] = micros(t1.Sub(t0))
		res.OptTimes[r] = micros(t2.Sub(t1))
	}
}

// FillInputs writes the deterministic inputs a[i] = i/k and b[i] = i/(k*n).
func FillInputs(a, b []float32, k, n int) {
	for i := range a[:k] {
		a[i] = float32(i) / float32(k)
	}
	kn := k * n
	for i := range b[:kn] {
		b[i] = float32(i) / float32(kn)
	}
}

// Tolerance is the absolute difference under which the optimized result is
// considered in agreement with the reference for the harness inputs. The
// outputs grow roughly linearly with k, and so does accumulated rounding.
func Tolerance(k int) float32 {
	return 1e-5 * float32(max(1, k))
}

func micros(d time.Duration) float64 {
	if d < 0 {
		return 0
	}
	return float64(d) / float64(time.Microsecond)
}
