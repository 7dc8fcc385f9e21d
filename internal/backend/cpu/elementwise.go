package cpu

import (
	"fmt"
	"math"

	"github.com/born-ml/lassopath/internal/parallel"
	"github.com/born-ml/lassopath/internal/tensor"
)

type float interface {
	float32 | float64
}

// Add performs element-wise addition with NumPy-style broadcasting.
func (cpu *CPUBackend) Add(a, b *tensor.RawTensor) *tensor.RawTensor {
	return cpu.zip("add", a, b, func(x, y float64) float64 { return x + y })
}

// Sub performs element-wise subtraction with broadcasting.
func (cpu *CPUBackend) Sub(a, b *tensor.RawTensor) *tensor.RawTensor {
	return cpu.zip("sub", a, b, func(x, y float64) float64 { return x - y })
}

// Mul performs element-wise multiplication with broadcasting.
func (cpu *CPUBackend) Mul(a, b *tensor.RawTensor) *tensor.RawTensor {
	return cpu.zip("mul", a, b, func(x, y float64) float64 { return x * y })
}

// Div performs element-wise division with broadcasting.
func (cpu *CPUBackend) Div(a, b *tensor.RawTensor) *tensor.RawTensor {
	return cpu.zip("div", a, b, func(x, y float64) float64 { return x / y })
}

// Minimum returns the element-wise minimum. A NaN in either operand yields NaN.
func (cpu *CPUBackend) Minimum(a, b *tensor.RawTensor) *tensor.RawTensor {
	return cpu.zip("minimum", a, b, math.Min)
}

// AddScalar adds a scalar to every element.
func (cpu *CPUBackend) AddScalar(x *tensor.RawTensor, scalar float64) *tensor.RawTensor {
	return cpu.mapFloat("add_scalar", x, func(v float64) float64 { return v + scalar })
}

// MulScalar multiplies every element by a scalar.
func (cpu *CPUBackend) MulScalar(x *tensor.RawTensor, scalar float64) *tensor.RawTensor {
	return cpu.mapFloat("mul_scalar", x, func(v float64) float64 { return v * scalar })
}

// DivScalar divides every element by a scalar.
func (cpu *CPUBackend) DivScalar(x *tensor.RawTensor, scalar float64) *tensor.RawTensor {
	return cpu.mapFloat("div_scalar", x, func(v float64) float64 { return v / scalar })
}

// zip applies f element-wise over the broadcast of a and b.
func (cpu *CPUBackend) zip(op string, a, b *tensor.RawTensor, f func(x, y float64) float64) *tensor.RawTensor {
	if a.DType() != b.DType() {
		panic(fmt.Sprintf("%s: dtype mismatch %s vs %s", op, a.DType(), b.DType()))
	}

	outShape, _, err := tensor.BroadcastShapes(a.Shape(), b.Shape())
	if err != nil {
		panic(fmt.Sprintf("%s: %v", op, err))
	}

	result := cpu.alloc(op, outShape, a.DType())
	pa := newBroadcastPlan(a.Shape(), outShape)
	pb := newBroadcastPlan(b.Shape(), outShape)

	switch a.DType() {
	case tensor.Float32:
		zipKernel(result.AsFloat32(), a.AsFloat32(), b.AsFloat32(), pa, pb, f, cpu.par)
	case tensor.Float64:
		zipKernel(result.AsFloat64(), a.AsFloat64(), b.AsFloat64(), pa, pb, f, cpu.par)
	default:
		panic(fmt.Sprintf("%s: unsupported dtype %s (only float32/float64 supported)", op, a.DType()))
	}

	return result
}

func zipKernel[T float](dst, a, b []T, pa, pb broadcastPlan, f func(x, y float64) float64, cfg parallel.Config) {
	parallel.ForChunks(len(dst), func(start, end int) {
		for i := start; i < end; i++ {
			dst[i] = T(f(float64(a[pa.index(i)]), float64(b[pb.index(i)])))
		}
	}, cfg)
}

// mapFloat applies f to every element of a float tensor.
func (cpu *CPUBackend) mapFloat(op string, x *tensor.RawTensor, f func(float64) float64) *tensor.RawTensor {
	result := cpu.alloc(op, x.Shape(), x.DType())

	switch x.DType() {
	case tensor.Float32:
		mapKernel(result.AsFloat32(), x.AsFloat32(), f, cpu.par)
	case tensor.Float64:
		mapKernel(result.AsFloat64(), x.AsFloat64(), f, cpu.par)
	default:
		panic(fmt.Sprintf("%s: unsupported dtype %s (only float32/float64 supported)", op, x.DType()))
	}

	return result
}

func mapKernel[T float](dst, src []T, f func(float64) float64, cfg parallel.Config) {
	parallel.ForChunks(len(dst), func(start, end int) {
		for i := start; i < end; i++ {
			dst[i] = T(f(float64(src[i])))
		}
	}, cfg)
}
