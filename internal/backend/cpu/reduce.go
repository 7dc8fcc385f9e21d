package cpu

import (
	"fmt"
	"math"

	"github.com/born-ml/lassopath/internal/parallel"
	"github.com/born-ml/lassopath/internal/tensor"
)

// SumDim sums tensor elements along the specified dimension.
//
// Parameters:
//   - dim: dimension to reduce (supports negative indexing: -1 = last dim)
//   - keepDim: if true, keep the reduced dimension with size 1; if false, remove it
//
// Example:
//
//	x := tensor.Zeros[float64](tensor.Shape{2, 3, 4}, backend)
//	y := backend.SumDim(x.Raw(), -1, true)   // shape: [2, 3, 1]
//	z := backend.SumDim(x.Raw(), -1, false)  // shape: [2, 3]
func (cpu *CPUBackend) SumDim(x *tensor.RawTensor, dim int, keepDim bool) *tensor.RawTensor {
	return cpu.reduceDim("sumdim", x, dim, keepDim, tensor.ReduceSum)
}

// MaxDim takes the maximum along the specified dimension. NaN propagates.
func (cpu *CPUBackend) MaxDim(x *tensor.RawTensor, dim int, keepDim bool) *tensor.RawTensor {
	return cpu.reduceDim("maxdim", x, dim, keepDim, tensor.ReduceMax)
}

func (cpu *CPUBackend) reduceDim(name string, x *tensor.RawTensor, dim int, keepDim bool, op tensor.ReduceOp) *tensor.RawTensor {
	shape := x.Shape()
	if len(shape) == 0 {
		panic(fmt.Sprintf("%s: cannot reduce a scalar", name))
	}
	dim = shape.NormalizeDim(dim)

	outShape := shape.WithDim(dim, 1)
	if !keepDim {
		outShape = append(outShape[:dim:dim], shape[dim+1:]...)
	}

	result := cpu.alloc(name, outShape, x.DType())
	outer, size, inner := shape.Split(dim)

	switch x.DType() {
	case tensor.Float32:
		reduceDimKernel(result.AsFloat32(), x.AsFloat32(), outer, size, inner, op, cpu.par)
	case tensor.Float64:
		reduceDimKernel(result.AsFloat64(), x.AsFloat64(), outer, size, inner, op, cpu.par)
	default:
		panic(fmt.Sprintf("%s: unsupported dtype %s (only float32/float64 supported)", name, x.DType()))
	}

	return result
}

// reduceDimKernel reduces src viewed as [outer, size, inner] into dst viewed
// as [outer, inner].
func reduceDimKernel[T float](dst, src []T, outer, size, inner int, op tensor.ReduceOp, cfg parallel.Config) {
	parallel.For(outer*inner, func(lane int) {
		o, i := lane/inner, lane%inner
		acc := op.Identity()
		for k := 0; k < size; k++ {
			acc = accumulate(op, acc, float64(src[(o*size+k)*inner+i]))
		}
		dst[lane] = T(acc)
	}, cfg)
}

// accumulate folds v into acc. Max lets NaN win so it propagates like
// torch.amax.
func accumulate(op tensor.ReduceOp, acc, v float64) float64 {
	if op == tensor.ReduceSum {
		return acc + v
	}
	if v > acc || math.IsNaN(v) {
		return v
	}
	return acc
}
