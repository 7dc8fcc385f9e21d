package tensor

// Backend defines the operations the lassopath numeric code needs from a
// compute backend. Every operation returns a newly allocated tensor placed
// on the backend's device and leaves its arguments untouched.
//
// Implementations:
//   - CPU: pure Go (internal/backend/cpu)
type Backend interface {
	// Element-wise binary operations with NumPy-style broadcasting.
	Add(a, b *RawTensor) *RawTensor
	Sub(a, b *RawTensor) *RawTensor
	Mul(a, b *RawTensor) *RawTensor
	Div(a, b *RawTensor) *RawTensor
	Minimum(a, b *RawTensor) *RawTensor // element-wise min, NaN propagates

	// Scalar operations (element-wise with scalar)
	AddScalar(x *RawTensor, scalar float64) *RawTensor
	MulScalar(x *RawTensor, scalar float64) *RawTensor
	DivScalar(x *RawTensor, scalar float64) *RawTensor

	// Math operations (element-wise). These follow IEEE semantics:
	// Log(0) = -Inf, Log(x<0) = NaN, Log1p(-1) = -Inf, Log1p(x<-1) = NaN.
	Exp(x *RawTensor) *RawTensor
	Log(x *RawTensor) *RawTensor
	Log1p(x *RawTensor) *RawTensor
	Neg(x *RawTensor) *RawTensor

	// Comparison and selection.
	Equal(a, b *RawTensor) *RawTensor // bool tensor, broadcasting
	Where(cond, x, y *RawTensor) *RawTensor

	// Reductions along one dimension.
	SumDim(x *RawTensor, dim int, keepDim bool) *RawTensor
	MaxDim(x *RawTensor, dim int, keepDim bool) *RawTensor

	// Matrix operations (2D).
	MatMul(a, b *RawTensor) *RawTensor
	Transpose(x *RawTensor) *RawTensor

	// Shape and manipulation operations.
	Reshape(x *RawTensor, shape Shape) *RawTensor
	Unsqueeze(x *RawTensor, dim int) *RawTensor
	Expand(x *RawTensor, shape Shape) *RawTensor
	Cat(tensors []*RawTensor, dim int) *RawTensor

	// Indexing: out[..., k, ...] = x[..., index[..., k, ...], ...] along dim.
	// index is int32 and matches x's shape except along dim.
	Gather(x *RawTensor, dim int, index *RawTensor) *RawTensor

	// Type conversion.
	Cast(x *RawTensor, dtype DataType) *RawTensor

	// Metadata
	Name() string
	Device() Device
}

// ReduceOp names an associative, commutative reduction.
type ReduceOp string

// Reductions supported by grouped (scatter) reduce.
const (
	ReduceMax ReduceOp = "amax"
	ReduceSum ReduceOp = "sum"
)

// Identity returns the value an empty group holds for op: -Inf for max,
// 0 for sum.
func (op ReduceOp) Identity() float64 {
	switch op {
	case ReduceMax:
		return negInf
	case ReduceSum:
		return 0
	default:
		panic("unknown reduce op " + string(op))
	}
}

// ScatterReducer is an optional Backend capability: a native one-shot
// grouped reduction.
//
// The result has x's shape with the size along dim replaced by outputSize.
// Slot g holds the op-reduction of every element whose index equals g;
// slots without contributors hold op.Identity(). index is int32 with the
// same shape as x. Indices outside [0, outputSize) are a caller error.
type ScatterReducer interface {
	ScatterReduce(x *RawTensor, dim int, index *RawTensor, op ReduceOp, outputSize int) *RawTensor
}
