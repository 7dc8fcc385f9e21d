// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package scatter provides grouped (scatter) reductions and a numerically
// stable grouped log-sum-exp.
//
// A Reducer reduces the elements of an input that share a group id along
// one dimension. It uses the backend's native grouped reduction when the
// backend provides one and otherwise builds the same result from generic
// backend operations.
//
// Example:
//
//	r := scatter.MustNew(cpu.New())
//	lse := scatter.GroupedLogSumExp(r, scores, groups, scatter.OutputSize(3))
package scatter

import (
	"github.com/born-ml/lassopath/internal/scatter"
	"github.com/born-ml/lassopath/tensor"
)

// Strategy selects how a Reducer computes grouped reductions.
type Strategy = scatter.Strategy

// Strategies.
const (
	StrategyAuto     Strategy = scatter.StrategyAuto
	StrategyNative   Strategy = scatter.StrategyNative
	StrategyFallback Strategy = scatter.StrategyFallback
)

// Errors returned by New.
var (
	ErrNativeUnavailable = scatter.ErrNativeUnavailable
	ErrUnknownStrategy   = scatter.ErrUnknownStrategy
)

// Reducer computes grouped reductions with one backend.
type Reducer = scatter.Reducer

// ReducerOption configures New.
type ReducerOption = scatter.ReducerOption

// Option configures a single reduction call.
type Option = scatter.Option

// New creates a Reducer for backend.
func New(backend tensor.Backend, opts ...ReducerOption) (*Reducer, error) {
	return scatter.New(backend, opts...)
}

// MustNew is New that panics on error.
func MustNew(backend tensor.Backend, opts ...ReducerOption) *Reducer {
	return scatter.MustNew(backend, opts...)
}

// WithStrategy forces a strategy. The default is StrategyAuto.
func WithStrategy(s Strategy) ReducerOption { return scatter.WithStrategy(s) }

// Dim sets the grouped dimension of LogSumExp. The default is the last.
func Dim(d int) Option { return scatter.Dim(d) }

// OutputSize sets the number of groups. The default is max(index)+1.
func OutputSize(n int) Option { return scatter.OutputSize(n) }

// LogSubtract computes log(exp(x) - exp(y)) elementwise for x >= y.
func LogSubtract(b tensor.Backend, x, y *tensor.RawTensor) *tensor.RawTensor {
	return scatter.LogSubtract(b, x, y)
}

// GroupedReduce is the typed form of Reducer.Reduce.
func GroupedReduce[T tensor.Float, B tensor.Backend](
	r *Reducer, input *tensor.Tensor[T, B], dim int, index *tensor.Tensor[int32, B], op tensor.ReduceOp, opts ...Option,
) *tensor.Tensor[T, B] {
	return scatter.GroupedReduce(r, input, dim, index, op, opts...)
}

// GroupedLogSumExp is the typed form of Reducer.LogSumExp.
func GroupedLogSumExp[T tensor.Float, B tensor.Backend](
	r *Reducer, input *tensor.Tensor[T, B], index *tensor.Tensor[int32, B], opts ...Option,
) *tensor.Tensor[T, B] {
	return scatter.GroupedLogSumExp(r, input, index, opts...)
}

// LogSubtractTensor is the typed form of LogSubtract.
func LogSubtractTensor[T tensor.Float, B tensor.Backend](x, y *tensor.Tensor[T, B]) *tensor.Tensor[T, B] {
	return scatter.LogSubtractTensor(x, y)
}
