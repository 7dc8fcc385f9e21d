package scatter

import (
	"github.com/born-ml/lassopath/internal/tensor"
)

// LogSumExp computes log(sum(exp(x))) for every group of input elements that
// share an index value along the grouping axis (Dim, default -1).
//
// The per-group maximum is subtracted before exponentiating, so large inputs
// do not overflow and very negative inputs do not all underflow to zero:
//
//	m   = max_g(x)                 grouped max
//	r   = x - m[index]             r <= 0 for finite inputs
//	out = m + log(sum_g(exp(r)))
//
// A group with one element returns that element exactly. An empty group
// yields -Inf and must be treated as unused. A group whose maximum is ±Inf
// yields NaN.
func (r *Reducer) LogSumExp(input, index *tensor.RawTensor, opts ...Option) *tensor.RawTensor {
	cfg := newCallConfig(opts)
	b := r.backend

	dim := input.Shape().NormalizeDim(cfg.dim)
	index = r.alignIndex(input, dim, index)
	n := r.outputSize(index, cfg)

	maxPerGroup := r.impl.reduce(input, dim, index, tensor.ReduceMax, n)
	maxPerElement := b.Gather(maxPerGroup, dim, index)
	recentered := b.Sub(input, maxPerElement)
	sumPerGroup := r.impl.reduce(b.Exp(recentered), dim, index, tensor.ReduceSum, n)

	return b.Add(maxPerGroup, b.Log(sumPerGroup))
}

// LogSubtract computes log(exp(x) - exp(y)) element-wise as
// x + log1p(-exp(y - x)).
//
// Requires x >= y. Where x < y the log1p argument drops below -1 and the
// result is NaN; where x == y the result is -Inf. Neither case panics.
func LogSubtract(b tensor.Backend, x, y *tensor.RawTensor) *tensor.RawTensor {
	return b.Add(x, b.Log1p(b.Neg(b.Exp(b.Sub(y, x)))))
}

// GroupedReduce is the typed form of Reducer.Reduce.
func GroupedReduce[T tensor.Float, B tensor.Backend](
	r *Reducer, input *tensor.Tensor[T, B], dim int, index *tensor.Tensor[int32, B], op tensor.ReduceOp, opts ...Option,
) *tensor.Tensor[T, B] {
	return tensor.New[T, B](r.Reduce(input.Raw(), dim, index.Raw(), op, opts...), input.Backend())
}

// GroupedLogSumExp is the typed form of Reducer.LogSumExp.
//
// Example:
//
//	lse := scatter.GroupedLogSumExp(r, scores, groups, scatter.OutputSize(3))
func GroupedLogSumExp[T tensor.Float, B tensor.Backend](
	r *Reducer, input *tensor.Tensor[T, B], index *tensor.Tensor[int32, B], opts ...Option,
) *tensor.Tensor[T, B] {
	return tensor.New[T, B](r.LogSumExp(input.Raw(), index.Raw(), opts...), input.Backend())
}

// LogSubtractTensor is the typed form of LogSubtract.
func LogSubtractTensor[T tensor.Float, B tensor.Backend](x, y *tensor.Tensor[T, B]) *tensor.Tensor[T, B] {
	return tensor.New[T, B](LogSubtract(x.Backend(), x.Raw(), y.Raw()), x.Backend())
}
