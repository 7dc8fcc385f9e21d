package cpu

import (
	"fmt"

	"github.com/born-ml/lassopath/internal/tensor"
)

// Cast converts x to dtype. Values round-trip through float64; bool targets
// map non-zero to true.
func (cpu *CPUBackend) Cast(x *tensor.RawTensor, dtype tensor.DataType) *tensor.RawTensor {
	if x.DType() == dtype {
		return x.Clone()
	}

	result := cpu.alloc("cast", x.Shape(), dtype)
	values := x.Float64s()

	switch dtype {
	case tensor.Float32:
		dst := result.AsFloat32()
		for i, v := range values {
			dst[i] = float32(v)
		}
	case tensor.Float64:
		copy(result.AsFloat64(), values)
	case tensor.Int32:
		dst := result.AsInt32()
		for i, v := range values {
			dst[i] = int32(v)
		}
	case tensor.Int64:
		dst := result.AsInt64()
		for i, v := range values {
			dst[i] = int64(v)
		}
	case tensor.Uint8:
		dst := result.AsUint8()
		for i, v := range values {
			dst[i] = uint8(v)
		}
	case tensor.Bool:
		dst := result.AsBool()
		for i, v := range values {
			dst[i] = v != 0
		}
	default:
		panic(fmt.Sprintf("cast: unsupported target dtype %s", dtype))
	}

	return result
}
