package cpu

import (
	"fmt"

	"github.com/born-ml/lassopath/internal/tensor"
)

// Reshape returns a copy of t with a new shape of equal element count.
func (cpu *CPUBackend) Reshape(t *tensor.RawTensor, newShape tensor.Shape) *tensor.RawTensor {
	result, err := t.WithShape(newShape)
	if err != nil {
		panic(fmt.Sprintf("reshape: %v", err))
	}
	return result
}

// Unsqueeze adds a dimension of size 1 at the specified position.
//
// Supports negative dim indexing.
//
// Example:
//
//	x := tensor.Zeros[float64](tensor.Shape{2, 3}, backend)
//	y := backend.Unsqueeze(x.Raw(), 1)  // Shape: [2, 1, 3]
func (cpu *CPUBackend) Unsqueeze(x *tensor.RawTensor, dim int) *tensor.RawTensor {
	shape := x.Shape()
	ndim := len(shape)

	// For unsqueeze the valid range is [0, ndim].
	if dim < 0 {
		dim = ndim + 1 + dim
	}
	if dim < 0 || dim > ndim {
		panic(fmt.Sprintf("unsqueeze: dimension %d out of range for %dD tensor (valid: [0, %d])", dim, ndim, ndim))
	}

	newShape := make(tensor.Shape, 0, ndim+1)
	newShape = append(newShape, shape[:dim]...)
	newShape = append(newShape, 1)
	newShape = append(newShape, shape[dim:]...)

	return cpu.Reshape(x, newShape)
}

// Expand broadcasts x to shape, materializing the repeated values.
// Works for every dtype.
func (cpu *CPUBackend) Expand(x *tensor.RawTensor, shape tensor.Shape) *tensor.RawTensor {
	out, _, err := tensor.BroadcastShapes(x.Shape(), shape)
	if err != nil || !out.Equal(shape) {
		panic(fmt.Sprintf("expand: cannot broadcast %v to %v", x.Shape(), shape))
	}

	result := cpu.alloc("expand", shape, x.DType())
	plan := newBroadcastPlan(x.Shape(), shape)

	es := x.DType().Size()
	src, dst := x.Data(), result.Data()
	n := shape.NumElements()
	for i := 0; i < n; i++ {
		j := plan.index(i)
		copy(dst[i*es:(i+1)*es], src[j*es:(j+1)*es])
	}

	return result
}

// Cat concatenates tensors along the specified dimension.
//
// All tensors must have the same dtype and the same shape except along the
// concatenation dimension. Supports negative dim indexing.
//
// Example:
//
//	a := tensor.Zeros[float64](tensor.Shape{2, 3}, backend)
//	b := tensor.Zeros[float64](tensor.Shape{2, 5}, backend)
//	c := backend.Cat([]*tensor.RawTensor{a.Raw(), b.Raw()}, 1) // Shape: [2, 8]
func (cpu *CPUBackend) Cat(tensors []*tensor.RawTensor, dim int) *tensor.RawTensor {
	if len(tensors) == 0 {
		panic("cat: at least one tensor required")
	}

	shape := tensors[0].Shape()
	ndim := len(shape)
	dtype := tensors[0].DType()
	dim = shape.NormalizeDim(dim)

	totalDim := 0
	for i, t := range tensors {
		tShape := t.Shape()
		if len(tShape) != ndim {
			panic(fmt.Sprintf("cat: tensor %d has %d dimensions, expected %d", i, len(tShape), ndim))
		}
		if t.DType() != dtype {
			panic(fmt.Sprintf("cat: tensor %d has dtype %s, expected %s", i, t.DType(), dtype))
		}
		for d := 0; d < ndim; d++ {
			if d == dim {
				totalDim += tShape[d]
			} else if tShape[d] != shape[d] {
				panic(fmt.Sprintf("cat: tensor %d dimension %d is %d, expected %d", i, d, tShape[d], shape[d]))
			}
		}
	}

	outShape := shape.WithDim(dim, totalDim)
	result := cpu.alloc("cat", outShape, dtype)

	// Each outer slice of the result is the concatenation of the matching
	// outer slices of the inputs.
	outer, _, inner := outShape.Split(dim)
	es := dtype.Size()
	dst := result.Data()
	pos := 0
	for o := 0; o < outer; o++ {
		for _, t := range tensors {
			block := t.Shape()[dim] * inner * es
			copy(dst[pos:pos+block], t.Data()[o*block:(o+1)*block])
			pos += block
		}
	}

	return result
}
