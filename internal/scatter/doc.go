// Package scatter implements grouped (segmented) reductions over tensors and
// the numerically stable grouped log-sum-exp built on them.
//
// A Reducer picks its realization once, when it is built: backends that
// implement tensor.ScatterReducer use their native one-shot primitive, all
// others go through a fallback composed of Equal, Where, MaxDim/SumDim and
// Cat. Both realizations accept the same arguments and produce the same
// values, including the identity held by empty groups (-Inf for max, 0 for
// sum).
//
// Example:
//
//	r, err := scatter.New(cpu.New())
//	if err != nil {
//	    return err
//	}
//	// log(sum(exp(x))) per class id.
//	lse := r.LogSumExp(logits, classIDs, scatter.OutputSize(numClasses))
//
// None of the functions validate index ranges. Every index value must lie in
// [0, outputSize); anything else is a caller bug.
package scatter
