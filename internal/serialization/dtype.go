package serialization

import (
	"fmt"

	"github.com/born-ml/lassopath/internal/tensor"
)

// DType is a SafeTensors dtype tag.
type DType string

// Supported SafeTensors dtypes.
const (
	DTypeF32  DType = "F32"
	DTypeF64  DType = "F64"
	DTypeI32  DType = "I32"
	DTypeI64  DType = "I64"
	DTypeU8   DType = "U8"
	DTypeBool DType = "BOOL"
)

func dtypeOf(dt tensor.DataType) (DType, error) {
	switch dt {
	case tensor.Float32:
		return DTypeF32, nil
	case tensor.Float64:
		return DTypeF64, nil
	case tensor.Int32:
		return DTypeI32, nil
	case tensor.Int64:
		return DTypeI64, nil
	case tensor.Uint8:
		return DTypeU8, nil
	case tensor.Bool:
		return DTypeBool, nil
	default:
		return "", fmt.Errorf("%w: %s", ErrUnsupportedDType, dt)
	}
}

// DataType maps the tag to a tensor dtype. F16 and BF16 are rejected.
func (d DType) DataType() (tensor.DataType, error) {
	switch d {
	case DTypeF32:
		return tensor.Float32, nil
	case DTypeF64:
		return tensor.Float64, nil
	case DTypeI32:
		return tensor.Int32, nil
	case DTypeI64:
		return tensor.Int64, nil
	case DTypeU8:
		return tensor.Uint8, nil
	case DTypeBool:
		return tensor.Bool, nil
	default:
		return 0, fmt.Errorf("%w: %s", ErrUnsupportedDType, d)
	}
}
