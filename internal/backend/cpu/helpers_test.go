package cpu

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/born-ml/lassopath/internal/tensor"
)

func rawFloat64(t *testing.T, shape tensor.Shape, values ...float64) *tensor.RawTensor {
	t.Helper()
	raw, err := tensor.NewRaw(shape, tensor.Float64, tensor.CPU)
	require.NoError(t, err)
	require.Len(t, values, shape.NumElements())
	copy(raw.AsFloat64(), values)
	return raw
}

func rawFloat32(t *testing.T, shape tensor.Shape, values ...float32) *tensor.RawTensor {
	t.Helper()
	raw, err := tensor.NewRaw(shape, tensor.Float32, tensor.CPU)
	require.NoError(t, err)
	require.Len(t, values, shape.NumElements())
	copy(raw.AsFloat32(), values)
	return raw
}

func rawInt32(t *testing.T, shape tensor.Shape, values ...int32) *tensor.RawTensor {
	t.Helper()
	raw, err := tensor.NewRaw(shape, tensor.Int32, tensor.CPU)
	require.NoError(t, err)
	require.Len(t, values, shape.NumElements())
	copy(raw.AsInt32(), values)
	return raw
}
