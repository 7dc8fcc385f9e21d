package cpu

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/born-ml/lassopath/internal/parallel"
	"github.com/born-ml/lassopath/internal/tensor"
)

func TestScatterReduce_Max1D(t *testing.T) {
	backend := New()

	x := rawFloat64(t, tensor.Shape{4}, 1, 5, 2, 7)
	index := rawInt32(t, tensor.Shape{4}, 0, 0, 2, 2)

	got := backend.ScatterReduce(x, 0, index, tensor.ReduceMax, 4).AsFloat64()

	assert.Equal(t, 5.0, got[0])
	assert.True(t, math.IsInf(got[1], -1), "empty group holds the max identity")
	assert.Equal(t, 7.0, got[2])
	assert.True(t, math.IsInf(got[3], -1))
}

func TestScatterReduce_Sum1D(t *testing.T) {
	backend := New()

	x := rawFloat32(t, tensor.Shape{5}, 1, 2, 3, 4, 5)
	index := rawInt32(t, tensor.Shape{5}, 1, 0, 1, 0, 1)

	got := backend.ScatterReduce(x, 0, index, tensor.ReduceSum, 3)

	assert.Equal(t, tensor.Shape{3}, got.Shape())
	assert.Equal(t, []float32{6, 9, 0}, got.AsFloat32())
}

func TestScatterReduce_AlongInnerDim(t *testing.T) {
	backend := New()

	// Two rows reduced independently along dim 1.
	x := rawFloat64(t, tensor.Shape{2, 3}, 1, 2, 3, 4, 5, 6)
	index := rawInt32(t, tensor.Shape{2, 3}, 0, 1, 0, 1, 1, 0)

	got := backend.ScatterReduce(x, -1, index, tensor.ReduceSum, 2)

	assert.Equal(t, tensor.Shape{2, 2}, got.Shape())
	assert.Equal(t, []float64{4, 2, 6, 9}, got.AsFloat64())
}

func TestScatterReduce_AlongOuterDim(t *testing.T) {
	backend := New()

	x := rawFloat64(t, tensor.Shape{3, 2}, 1, 2, 3, 4, 5, 6)
	index := rawInt32(t, tensor.Shape{3, 2}, 0, 1, 0, 0, 1, 1)

	got := backend.ScatterReduce(x, 0, index, tensor.ReduceMax, 2)

	assert.Equal(t, tensor.Shape{2, 2}, got.Shape())
	assert.Equal(t, []float64{3, 4, 5, 6}, got.AsFloat64())
}

func TestScatterReduce_DoesNotMutateInput(t *testing.T) {
	backend := New()

	x := rawFloat64(t, tensor.Shape{3}, 3, 1, 2)
	index := rawInt32(t, tensor.Shape{3}, 0, 0, 0)

	_ = backend.ScatterReduce(x, 0, index, tensor.ReduceSum, 1)

	assert.Equal(t, []float64{3, 1, 2}, x.AsFloat64())
	assert.Equal(t, []int32{0, 0, 0}, index.AsInt32())
}

func TestScatterReduce_ParallelMatchesSequential(t *testing.T) {
	seq := New(WithParallel(parallel.Sequential()))
	par := New(WithParallel(parallel.Config{Enabled: true, NumWorkers: 8, MinChunkSize: 1}))

	const rows, cols, groups = 32, 17, 5
	vals := make([]float64, rows*cols)
	idx := make([]int32, rows*cols)
	for i := range vals {
		vals[i] = math.Sin(float64(i))
		idx[i] = int32(i*7) % groups
	}
	x := rawFloat64(t, tensor.Shape{rows, cols}, vals...)
	index := rawInt32(t, tensor.Shape{rows, cols}, idx...)

	for _, op := range []tensor.ReduceOp{tensor.ReduceMax, tensor.ReduceSum} {
		want := seq.ScatterReduce(x, 1, index, op, groups).AsFloat64()
		got := par.ScatterReduce(x, 1, index, op, groups).AsFloat64()
		assert.Equal(t, want, got, "op %s", op)
	}
}

func TestScatterReduce_ShapeMismatchPanics(t *testing.T) {
	backend := New()

	x := rawFloat64(t, tensor.Shape{3}, 1, 2, 3)
	index := rawInt32(t, tensor.Shape{2}, 0, 1)

	assert.Panics(t, func() { backend.ScatterReduce(x, 0, index, tensor.ReduceSum, 2) })
}
