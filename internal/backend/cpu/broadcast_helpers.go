package cpu

import (
	"github.com/born-ml/lassopath/internal/tensor"
)

// computeBroadcastStridesForShape computes strides for broadcasting a shape to outShape.
// Returns strides where dimensions of size 1 have stride 0 (for broadcasting).
func computeBroadcastStridesForShape(inShape, outShape tensor.Shape) []int {
	outDim := len(outShape)
	strides := make([]int, outDim)

	inDim := len(inShape)
	offset := outDim - inDim
	origStrides := inShape.ComputeStrides()

	for i := 0; i < outDim; i++ {
		inIdx := i - offset
		switch {
		case inIdx < 0 || inIdx >= inDim:
			strides[i] = 0
		case inShape[inIdx] == 1:
			strides[i] = 0
		default:
			strides[i] = origStrides[inIdx]
		}
	}

	return strides
}

// computeFlatIndex computes the flat index in the source array for a given output index.
// outStrides: strides of the output shape.
// inStrides: broadcast-adjusted strides of the input shape.
func computeFlatIndex(outIdx int, outStrides, inStrides []int) int {
	flatIdx := 0
	for i := range outStrides {
		coord := outIdx / outStrides[i]
		outIdx %= outStrides[i]
		flatIdx += coord * inStrides[i]
	}
	return flatIdx
}

// broadcastPlan maps flat output positions to flat input positions for one
// operand. Identity plans skip the index arithmetic.
type broadcastPlan struct {
	identity   bool
	outStrides []int
	inStrides  []int
}

func newBroadcastPlan(in, out tensor.Shape) broadcastPlan {
	if in.Equal(out) {
		return broadcastPlan{identity: true}
	}
	return broadcastPlan{
		outStrides: out.ComputeStrides(),
		inStrides:  computeBroadcastStridesForShape(in, out),
	}
}

func (p broadcastPlan) index(i int) int {
	if p.identity {
		return i
	}
	return computeFlatIndex(i, p.outStrides, p.inStrides)
}
