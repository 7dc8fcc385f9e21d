package cpu

import (
	"fmt"

	"github.com/born-ml/lassopath/internal/parallel"
	"github.com/born-ml/lassopath/internal/tensor"
)

// ScatterReduce is the native grouped reduction (torch.scatter_reduce with
// include_self=False).
//
// The result has x's shape with dim resized to outputSize. Each slot g along
// dim holds op over every x element whose index equals g; untouched slots
// hold op.Identity(). index must be int32 with x's shape. Index values are
// not range-checked: values outside [0, outputSize) are a caller error.
//
// Example:
//
//	x:     [1, 5, 2, 7]
//	index: [0, 0, 2, 2]
//	ScatterReduce(x, 0, index, tensor.ReduceMax, 4) -> [5, -Inf, 7, -Inf]
func (cpu *CPUBackend) ScatterReduce(
	x *tensor.RawTensor, dim int, index *tensor.RawTensor, op tensor.ReduceOp, outputSize int,
) *tensor.RawTensor {
	if index.DType() != tensor.Int32 {
		panic(fmt.Sprintf("scatter_reduce: index tensor must have dtype int32, got %s", index.DType()))
	}
	if !index.Shape().Equal(x.Shape()) {
		panic(fmt.Sprintf("scatter_reduce: index shape %v != input shape %v", index.Shape(), x.Shape()))
	}

	shape := x.Shape()
	dim = shape.NormalizeDim(dim)
	result := tensor.FullRaw(shape.WithDim(dim, outputSize), x.DType(), op.Identity(), cpu.device)

	outer, size, inner := shape.Split(dim)
	idx := index.AsInt32()

	switch x.DType() {
	case tensor.Float32:
		scatterKernel(result.AsFloat32(), x.AsFloat32(), idx, outer, size, inner, outputSize, op, cpu.par)
	case tensor.Float64:
		scatterKernel(result.AsFloat64(), x.AsFloat64(), idx, outer, size, inner, outputSize, op, cpu.par)
	default:
		panic(fmt.Sprintf("scatter_reduce: unsupported dtype %s (only float32/float64 supported)", x.DType()))
	}

	return result
}

// scatterKernel reduces src viewed as [outer, size, inner] into dst viewed as
// [outer, outputSize, inner]. Each (outer, inner) lane owns a disjoint set of
// dst slots, so lanes run in parallel without locking.
func scatterKernel[T float](dst, src []T, index []int32, outer, size, inner, outputSize int,
	op tensor.ReduceOp, cfg parallel.Config) {
	parallel.For(outer*inner, func(lane int) {
		o, i := lane/inner, lane%inner
		for k := 0; k < size; k++ {
			pos := (o*size+k)*inner + i
			slot := (o*outputSize+int(index[pos]))*inner + i
			dst[slot] = T(accumulate(op, float64(dst[slot]), float64(src[pos])))
		}
	}, cfg)
}
