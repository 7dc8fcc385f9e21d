package cpu

import (
	"math"

	"github.com/born-ml/lassopath/internal/tensor"
)

// Exp computes element-wise exponential: exp(x).
func (cpu *CPUBackend) Exp(x *tensor.RawTensor) *tensor.RawTensor {
	return cpu.mapFloat("exp", x, math.Exp)
}

// Log computes element-wise natural logarithm: ln(x).
// Zero maps to -Inf and negative values to NaN; empty scatter groups rely on
// log(0) staying representable.
func (cpu *CPUBackend) Log(x *tensor.RawTensor) *tensor.RawTensor {
	return cpu.mapFloat("log", x, math.Log)
}

// Log1p computes element-wise ln(1+x), accurate for small x.
func (cpu *CPUBackend) Log1p(x *tensor.RawTensor) *tensor.RawTensor {
	return cpu.mapFloat("log1p", x, math.Log1p)
}

// Neg computes element-wise negation.
func (cpu *CPUBackend) Neg(x *tensor.RawTensor) *tensor.RawTensor {
	return cpu.mapFloat("neg", x, func(v float64) float64 { return -v })
}
