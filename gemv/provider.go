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
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/ajroetker/go-sgemv/internal/dispatch"
)

// ErrUnknownProvider is returned by Lookup for unregistered names.
var ErrUnknownProvider = errors.New("gemv: unknown provider")

// Auto is the provider name that resolves to Best.
const Auto = "auto"

// Provider is an SGEMV implementation: c = a * b for a 1×k vector a and a
// k×n row-major matrix b. Results must agree with Reference element-wise
// within floating-point rounding.
type Provider interface {
	// Name returns the registered provider name.
	Name() string

	// Gemv computes c = a * b, overwriting c[:n].
	Gemv(c, a, b []float32, k, n int)
}

// Func is the signature shared by the kernel functions in this package.
type Func func(c, a, b []float32, k, n int)

type funcProvider struct {
	name string
	fn   Func
}

func (p funcProvider) Name() string { return p.name }

func (p funcProvider) Gemv(c, a, b []float32, k, n int) { p.fn(c, a, b, k, n) }

// FromFunc adapts a kernel function to the Provider interface.
func FromFunc(name string, fn Func) Provider {
	return funcProvider{name: name, fn: fn}
}

// registry maps provider names to constructors. Providers with scratch
// state get a fresh instance per Lookup.
var registry = map[string]func() Provider{
	"reference": func() Provider { return FromFunc("reference", Reference) },
	"blocked":   func() Provider { return FromFunc("blocked", Blocked) },
	"gonum":     func() Provider { return Gonum{} },
	"vek":       func() Provider { return NewVek() },
}

// Names returns the registered provider names in sorted order.
func Names() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// Lookup returns a new instance of the named provider. "auto" (or an empty
// name) resolves to Best.
func Lookup(name string) (Provider, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" || name == Auto {
		return Best(), nil
	}
	ctor, ok := registry[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q (available: %s)", ErrUnknownProvider, name, strings.Join(Names(), ", "))
	}
	return ctor(), nil
}

// BestName returns the provider Best would choose for the current SIMD level:
//   - scalar: "blocked"
//   - vector levels with vek acceleration: "vek"
//   - other vector levels: "gonum"
func BestName() string {
	if !dispatch.CurrentLevel().Vector() {
		return "blocked"
	}
	if VekAccelerated() {
		return "vek"
	}
	return "gonum"
}

// Best returns the preferred provider for the current SIMD level.
func Best() Provider {
	return registry[BestName()]()
}

// fixedSIMD is implemented by providers whose vector code is chosen at
// build time rather than from the dispatch level.
type fixedSIMD interface {
	FixedSIMD() bool
}

// HonorsScalar reports whether p stops using SIMD when the dispatch level
// is Scalar.
func HonorsScalar(p Provider) bool {
	f, ok := p.(fixedSIMD)
	return !ok || !f.FixedSIMD()
}
