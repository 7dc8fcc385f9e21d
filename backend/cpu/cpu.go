// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package cpu

import (
	internalcpu "github.com/born-ml/lassopath/internal/backend/cpu"
	"github.com/born-ml/lassopath/internal/parallel"
	"github.com/born-ml/lassopath/tensor"
)

// Backend is the pure Go CPU backend.
type Backend = internalcpu.CPUBackend

// Option configures New.
type Option = internalcpu.Option

// Compile-time check that Backend implements tensor.Backend and provides
// the native grouped reduction.
var (
	_ tensor.Backend        = (*Backend)(nil)
	_ tensor.ScatterReducer = (*Backend)(nil)
)

// New creates a new CPU backend.
//
// Example:
//
//	backend := cpu.New(cpu.WithWorkers(4))
//	x := tensor.Zeros[float64](tensor.Shape{2, 3}, backend)
func New(opts ...Option) *Backend {
	return internalcpu.New(opts...)
}

// NewPortable returns a CPU backend exposing only tensor.Backend, without
// the native grouped reduction.
func NewPortable(opts ...Option) tensor.Backend {
	return internalcpu.NewPortable(opts...)
}

// WithWorkers limits kernels to n goroutines; n <= 1 runs them
// sequentially.
func WithWorkers(n int) Option {
	return internalcpu.WithParallel(parallel.DefaultConfig().WithWorkers(n))
}
