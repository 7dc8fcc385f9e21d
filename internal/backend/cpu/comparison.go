package cpu

import (
	"fmt"

	"github.com/born-ml/lassopath/internal/tensor"
)

// Equal compares a and b element-wise with broadcasting and returns a bool
// tensor. Operands must share a dtype; any dtype is accepted.
func (cpu *CPUBackend) Equal(a, b *tensor.RawTensor) *tensor.RawTensor {
	if a.DType() != b.DType() {
		panic(fmt.Sprintf("equal: dtype mismatch %s vs %s", a.DType(), b.DType()))
	}

	outShape, _, err := tensor.BroadcastShapes(a.Shape(), b.Shape())
	if err != nil {
		panic(fmt.Sprintf("equal: %v", err))
	}

	result := cpu.alloc("equal", outShape, tensor.Bool)
	dst := result.AsBool()
	pa := newBroadcastPlan(a.Shape(), outShape)
	pb := newBroadcastPlan(b.Shape(), outShape)

	// Byte-wise comparison is exact for every dtype except float ±0 and NaN,
	// so floats go through their numeric values.
	if a.DType().IsFloat() {
		av, bv := a.Float64s(), b.Float64s()
		for i := range dst {
			dst[i] = av[pa.index(i)] == bv[pb.index(i)]
		}
		return result
	}

	es := a.DType().Size()
	ad, bd := a.Data(), b.Data()
	for i := range dst {
		ai, bi := pa.index(i)*es, pb.index(i)*es
		dst[i] = string(ad[ai:ai+es]) == string(bd[bi:bi+es])
	}
	return result
}

// Where performs conditional element selection.
// Similar to torch.where(condition, x, y).
//
// Returns a tensor where each element is selected from x if condition is true,
// otherwise from y. All three operands broadcast against each other.
//
// Example:
//
//	condition: [3, 4] (bool tensor)
//	x: [3, 4] (float64)
//	y: [1, 1] (float64, e.g. -Inf)
//	output: [3, 4] where output[i,j] = condition[i,j] ? x[i,j] : y[0,0]
func (cpu *CPUBackend) Where(condition, x, y *tensor.RawTensor) *tensor.RawTensor {
	if condition.DType() != tensor.Bool && condition.DType() != tensor.Uint8 {
		panic(fmt.Sprintf("where: condition must be bool or uint8, got %s", condition.DType()))
	}
	if x.DType() != y.DType() {
		panic(fmt.Sprintf("where: x and y must have same dtype, got %s and %s",
			x.DType(), y.DType()))
	}

	outShape1, _, err := tensor.BroadcastShapes(condition.Shape(), x.Shape())
	if err != nil {
		panic(fmt.Sprintf("where: failed to broadcast condition and x: %v", err))
	}
	outShape, _, err := tensor.BroadcastShapes(outShape1, y.Shape())
	if err != nil {
		panic(fmt.Sprintf("where: failed to broadcast with y: %v", err))
	}

	result := cpu.alloc("where", outShape, x.DType())

	pc := newBroadcastPlan(condition.Shape(), outShape)
	px := newBroadcastPlan(x.Shape(), outShape)
	py := newBroadcastPlan(y.Shape(), outShape)

	// Bool and uint8 share a one-byte layout.
	cond := condition.Data()
	es := x.DType().Size()
	dst, xd, yd := result.Data(), x.Data(), y.Data()

	n := outShape.NumElements()
	for i := 0; i < n; i++ {
		var src []byte
		var j int
		if cond[pc.index(i)] != 0 {
			src, j = xd, px.index(i)
		} else {
			src, j = yd, py.index(i)
		}
		copy(dst[i*es:(i+1)*es], src[j*es:(j+1)*es])
	}

	return result
}
