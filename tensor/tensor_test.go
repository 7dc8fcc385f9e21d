// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package tensor_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/born-ml/lassopath/backend/cpu"
	"github.com/born-ml/lassopath/tensor"
)

func TestBackendInterface(_ *testing.T) {
	var _ tensor.Backend = (*cpu.Backend)(nil)
	var _ tensor.ScatterReducer = (*cpu.Backend)(nil)
}

func TestRawTensorAPI(t *testing.T) {
	raw, err := tensor.NewRaw(tensor.Shape{2, 3}, tensor.Float64, tensor.CPU)
	require.NoError(t, err)

	assert.True(t, raw.Shape().Equal(tensor.Shape{2, 3}))
	assert.Equal(t, tensor.Float64, raw.DType())
	assert.Equal(t, tensor.CPU, raw.Device())
	assert.Len(t, raw.AsFloat64(), 6)
}

func TestTypedOps(t *testing.T) {
	backend := cpu.New()
	x, err := tensor.FromSlice([]float64{1, 2, 3}, tensor.Shape{3}, backend)
	require.NoError(t, err)

	y := x.Exp().Log()
	assert.InDeltaSlice(t, []float64{1, 2, 3}, y.Data(), 1e-12)

	z := tensor.Full[float64](tensor.Shape{3}, math.Inf(-1), backend).Minimum(x)
	assert.True(t, math.IsInf(z.Data()[0], -1))
}

func TestReduceOpIdentity(t *testing.T) {
	assert.True(t, math.IsInf(tensor.ReduceMax.Identity(), -1))
	assert.Equal(t, 0.0, tensor.ReduceSum.Identity())
}
