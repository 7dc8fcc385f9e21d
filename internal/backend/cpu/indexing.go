package cpu

import (
	"fmt"

	"github.com/born-ml/lassopath/internal/tensor"
)

// Gather selects elements along dim using index tensor.
// Similar to torch.gather(input, dim, index).
//
// The index tensor must have dtype int32 and its shape must match input shape
// except at the gather dimension, where it can differ. Works for every dtype.
//
// Example:
//
//	input: [3, 4, 5] with values
//	index: [3, 4, 2] (int32 indices)
//	dim: 2
//	output: [3, 4, 2] where output[i,j,k] = input[i,j,index[i,j,k]]
func (cpu *CPUBackend) Gather(x *tensor.RawTensor, dim int, index *tensor.RawTensor) *tensor.RawTensor {
	if index.DType() != tensor.Int32 {
		panic(fmt.Sprintf("gather: index tensor must have dtype int32, got %s", index.DType()))
	}

	xShape := x.Shape()
	ndim := len(xShape)
	dim = xShape.NormalizeDim(dim)

	indexShape := index.Shape()
	if len(indexShape) != ndim {
		panic(fmt.Sprintf("gather: index rank %d != input rank %d", len(indexShape), ndim))
	}
	for i := 0; i < ndim; i++ {
		if i != dim && indexShape[i] != xShape[i] {
			panic(fmt.Sprintf("gather: index shape mismatch at dim %d: %d != %d",
				i, indexShape[i], xShape[i]))
		}
	}

	result := cpu.alloc("gather", indexShape, x.DType())

	outer, isize, inner := indexShape.Split(dim)
	ssize := xShape[dim]
	indices := index.AsInt32()
	es := x.DType().Size()
	src, dst := x.Data(), result.Data()

	for o := 0; o < outer; o++ {
		for k := 0; k < isize; k++ {
			for i := 0; i < inner; i++ {
				pos := (o*isize+k)*inner + i
				idx := int(indices[pos])
				if idx < 0 || idx >= ssize {
					panic(fmt.Sprintf("gather: index %d out of bounds [0, %d) at position %d",
						idx, ssize, pos))
				}
				from := ((o*ssize+idx)*inner + i) * es
				copy(dst[pos*es:(pos+1)*es], src[from:from+es])
			}
		}
	}

	return result
}
