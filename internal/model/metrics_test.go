package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/born-ml/lassopath/internal/tensor"
)

func TestScoreFunctions(t *testing.T) {
	y := rawFloat64(t, tensor.Shape{4}, 1, 2, 3, 4)
	pred := rawFloat64(t, tensor.Shape{4, 1}, 1, 2, 3, 5)

	mse, err := MeanSquaredError(y, pred)
	require.NoError(t, err)
	assert.InDelta(t, 0.25, mse, 1e-12)

	neg, err := NegMeanSquaredError(y, pred)
	require.NoError(t, err)
	assert.InDelta(t, -0.25, neg, 1e-12)

	// SS_res = 1, SS_tot = 5.
	r2, err := R2Score(y, pred)
	require.NoError(t, err)
	assert.InDelta(t, 0.8, r2, 1e-12)
}

func TestScoreFunctions_Errors(t *testing.T) {
	y := rawFloat64(t, tensor.Shape{2}, 1, 2)
	pred := rawFloat64(t, tensor.Shape{3}, 1, 2, 3)

	_, err := R2Score(y, pred)
	assert.ErrorIs(t, err, ErrShape)
	_, err = MeanSquaredError(y, pred)
	assert.ErrorIs(t, err, ErrShape)
}
