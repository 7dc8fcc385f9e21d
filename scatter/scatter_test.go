// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package scatter_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/born-ml/lassopath/backend/cpu"
	"github.com/born-ml/lassopath/scatter"
	"github.com/born-ml/lassopath/tensor"
)

func TestGroupedLogSumExp(t *testing.T) {
	for _, backend := range []tensor.Backend{cpu.New(), cpu.NewPortable()} {
		r := scatter.MustNew(backend)
		x, err := tensor.FromSlice([]float64{0, 0, 7, 1000, 1000}, tensor.Shape{5}, backend)
		require.NoError(t, err)
		idx, err := tensor.FromSlice([]int32{0, 0, 1, 3, 3}, tensor.Shape{5}, backend)
		require.NoError(t, err)

		got := scatter.GroupedLogSumExp(r, x, idx).Data()
		require.Len(t, got, 4)
		assert.InDelta(t, math.Ln2, got[0], 1e-12, backend.Name())
		assert.InDelta(t, 7, got[1], 1e-12)
		assert.True(t, math.IsInf(got[2], -1))
		assert.InDelta(t, 1000+math.Ln2, got[3], 1e-9)
	}
}

func TestNew_NativeStrategyNeedsCapability(t *testing.T) {
	_, err := scatter.New(cpu.NewPortable(), scatter.WithStrategy(scatter.StrategyNative))
	assert.ErrorIs(t, err, scatter.ErrNativeUnavailable)

	r, err := scatter.New(cpu.New())
	require.NoError(t, err)
	assert.Equal(t, scatter.StrategyNative, r.Strategy())
}

func TestLogSubtractTensor(t *testing.T) {
	backend := cpu.New()
	x, err := tensor.FromSlice([]float64{math.Log(5), 3}, tensor.Shape{2}, backend)
	require.NoError(t, err)
	y, err := tensor.FromSlice([]float64{math.Log(2), 3}, tensor.Shape{2}, backend)
	require.NoError(t, err)

	got := scatter.LogSubtractTensor(x, y).Data()
	assert.InDelta(t, math.Log(3), got[0], 1e-12)
	assert.True(t, math.IsInf(got[1], -1))
}
