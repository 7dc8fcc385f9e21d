package cpu

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/born-ml/lassopath/internal/tensor"
)

func TestGather1D(t *testing.T) {
	backend := New()

	input := rawFloat32(t, tensor.Shape{4}, 10, 20, 30, 40)
	index := rawInt32(t, tensor.Shape{3}, 2, 0, 3)

	result := backend.Gather(input, 0, index)

	assert.Equal(t, []float32{30, 10, 40}, result.AsFloat32())
}

func TestGather2D(t *testing.T) {
	backend := New()

	// Input: [[10, 20, 30],
	//         [40, 50, 60]]
	input := rawFloat64(t, tensor.Shape{2, 3}, 10, 20, 30, 40, 50, 60)

	// Index: [[2, 0],
	//         [1, 2]] (gather along dim 1)
	index := rawInt32(t, tensor.Shape{2, 2}, 2, 0, 1, 2)

	result := backend.Gather(input, 1, index)

	assert.Equal(t, tensor.Shape{2, 2}, result.Shape())
	assert.Equal(t, []float64{30, 10, 50, 60}, result.AsFloat64())
}

func TestGather_Dim0(t *testing.T) {
	backend := New()

	input := rawFloat64(t, tensor.Shape{2, 3}, 10, 20, 30, 40, 50, 60)
	index := rawInt32(t, tensor.Shape{3, 3}, 1, 0, 1, 0, 0, 0, 1, 1, 1)

	result := backend.Gather(input, 0, index)

	assert.Equal(t, []float64{40, 20, 60, 10, 20, 30, 40, 50, 60}, result.AsFloat64())
}

func TestGather_Int32Values(t *testing.T) {
	backend := New()

	input := rawInt32(t, tensor.Shape{3}, 7, 8, 9)
	index := rawInt32(t, tensor.Shape{2}, 2, 2)

	assert.Equal(t, []int32{9, 9}, backend.Gather(input, -1, index).AsInt32())
}

func TestGather_OutOfBoundsPanics(t *testing.T) {
	backend := New()

	input := rawFloat64(t, tensor.Shape{3}, 1, 2, 3)
	index := rawInt32(t, tensor.Shape{1}, 3)

	assert.Panics(t, func() { backend.Gather(input, 0, index) })
}

func TestGather_RequiresInt32Index(t *testing.T) {
	backend := New()

	input := rawFloat64(t, tensor.Shape{3}, 1, 2, 3)
	index := rawFloat64(t, tensor.Shape{1}, 0)

	assert.Panics(t, func() { backend.Gather(input, 0, index) })
}
