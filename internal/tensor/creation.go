package tensor

// Zeros creates a tensor filled with zeros.
//
// Example:
//
//	backend := cpu.New()
//	t := tensor.Zeros[float64](tensor.Shape{3, 4}, backend)
func Zeros[T DType, B Backend](shape Shape, b B) *Tensor[T, B] {
	raw, err := NewRaw(shape, DataTypeOf[T](), b.Device())
	if err != nil {
		panic(err)
	}
	return New[T, B](raw, b)
}

// Ones creates a tensor filled with ones (true for bool).
func Ones[T DType, B Backend](shape Shape, b B) *Tensor[T, B] {
	var one T
	switch p := any(&one).(type) {
	case *float32:
		*p = 1
	case *float64:
		*p = 1
	case *int32:
		*p = 1
	case *int64:
		*p = 1
	case *uint8:
		*p = 1
	case *bool:
		*p = true
	}
	return Full[T, B](shape, one, b)
}

// Full creates a tensor filled with a specific value.
//
// Example:
//
//	t := tensor.Full[float64](tensor.Shape{3, 3}, math.Inf(-1), backend)
func Full[T DType, B Backend](shape Shape, value T, b B) *Tensor[T, B] {
	t := Zeros[T, B](shape, b)
	data := t.Data()
	for i := range data {
		data[i] = value
	}
	return t
}

// ZerosLike creates a zero tensor with the shape and dtype of raw on
// backend b's device.
func ZerosLike(raw *RawTensor, b Backend) *RawTensor {
	out, err := NewRaw(raw.Shape(), raw.DType(), b.Device())
	if err != nil {
		panic(err)
	}
	return out
}

// FullRaw creates a RawTensor of the given shape filled with value.
// Supports float32, float64, int32 and int64; integer targets truncate value.
func FullRaw(shape Shape, dtype DataType, value float64, device Device) *RawTensor {
	raw, err := NewRaw(shape, dtype, device)
	if err != nil {
		panic(err)
	}
	switch dtype {
	case Float32:
		data := raw.AsFloat32()
		for i := range data {
			data[i] = float32(value)
		}
	case Float64:
		data := raw.AsFloat64()
		for i := range data {
			data[i] = value
		}
	case Int32:
		data := raw.AsInt32()
		for i := range data {
			data[i] = int32(value)
		}
	case Int64:
		data := raw.AsInt64()
		for i := range data {
			data[i] = int64(value)
		}
	default:
		panic("full: unsupported dtype " + dtype.String())
	}
	return raw
}

// ScalarLike creates a one-element tensor of rank len(shape) holding
// value, suitable for broadcasting against tensors of that rank.
func ScalarLike(shape Shape, dtype DataType, value float64, device Device) *RawTensor {
	ones := make(Shape, len(shape))
	for i := range ones {
		ones[i] = 1
	}
	return FullRaw(ones, dtype, value, device)
}
