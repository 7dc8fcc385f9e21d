package path

import (
	"fmt"

	"github.com/born-ml/lassopath/internal/tensor"
)

// SelectionProbability computes, for every step index, the fraction of
// paths that select each variable, forced to be non-increasing in step.
//
// At step i every path contributes its Selected mask, or a zero mask when it
// has fewer than i+1 elements. The masks are averaged over all paths and the
// result is clamped by the previous step's value, starting from all ones:
//
//	prob[i] = min(mean(mask[i]), prob[i-1]),  prob[-1] = 1
//
// Paths may differ in length; the result has one entry per step of the
// longest path. All masks must have the same shape.
//
// Returns ErrNoPaths for an empty input, ErrNoSelection when an element
// lacks a mask and ErrShapeMismatch when masks disagree.
func SelectionProbability[B tensor.Backend](backend B, paths []Path) ([]*tensor.Tensor[float64, B], error) {
	if len(paths) == 0 {
		return nil, ErrNoPaths
	}

	shape, steps, err := maskLayout(paths)
	if err != nil {
		return nil, err
	}
	if steps == 0 {
		return nil, nil
	}

	n := float64(len(paths))
	prev := tensor.Ones[float64](shape, backend)
	curve := make([]*tensor.Tensor[float64, B], steps)

	for i := range curve {
		sum := tensor.Zeros[float64](shape, backend)
		for _, p := range paths {
			if i >= len(p) {
				continue
			}
			mask := tensor.New[float64](backend.Cast(p[i].Selected, tensor.Float64), backend)
			sum = sum.Add(mask)
		}
		prev = sum.DivScalar(n).Minimum(prev)
		curve[i] = prev
	}

	return curve, nil
}

// maskLayout checks every element's mask against the first one and returns
// the common shape and the longest path length.
func maskLayout(paths []Path) (tensor.Shape, int, error) {
	var shape tensor.Shape
	found := false
	steps := 0
	for pi, p := range paths {
		steps = max(steps, len(p))
		for si, e := range p {
			if e.Selected == nil {
				return nil, 0, fmt.Errorf("path %d step %d: %w", pi, si, ErrNoSelection)
			}
			if !found {
				shape, found = e.Selected.Shape(), true
				continue
			}
			if !e.Selected.Shape().Equal(shape) {
				return nil, 0, fmt.Errorf("path %d step %d: %w: %v vs %v",
					pi, si, ErrShapeMismatch, e.Selected.Shape(), shape)
			}
		}
	}
	return shape, steps, nil
}
