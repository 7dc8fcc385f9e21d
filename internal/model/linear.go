// Package model provides a reference regressor that can be driven along a
// regularization path.
package model

import (
	"errors"
	"fmt"

	"github.com/born-ml/lassopath/internal/path"
	"github.com/born-ml/lassopath/internal/tensor"
)

// Errors returned by Linear.
var (
	ErrMissingParameter = errors.New("missing parameter")
	ErrShape            = errors.New("shape mismatch")
)

// Linear is a linear regressor computing y = X @ W.T + b in float64.
//
// Parameters live under the state keys "weight", shape [out, in], and
// "bias", shape [out]. Load replaces them, so one Linear can serve as the
// cursor of path.EvalOnPath.
//
// Example:
//
//	m := model.NewLinear(10, 1, cpu.New())
//	scores, err := path.EvalOnPath(m, p, X, y)
type Linear struct {
	inFeatures  int
	outFeatures int
	weight      *tensor.RawTensor // [out, in]
	bias        *tensor.RawTensor // [out]
	backend     tensor.Backend
}

var _ path.Model = (*Linear)(nil)

// NewLinear creates a Linear with zero weight and bias.
func NewLinear(inFeatures, outFeatures int, backend tensor.Backend) *Linear {
	return &Linear{
		inFeatures:  inFeatures,
		outFeatures: outFeatures,
		weight:      tensor.FullRaw(tensor.Shape{outFeatures, inFeatures}, tensor.Float64, 0, backend.Device()),
		bias:        tensor.FullRaw(tensor.Shape{outFeatures}, tensor.Float64, 0, backend.Device()),
		backend:     backend,
	}
}

// InFeatures returns the number of input features.
func (l *Linear) InFeatures() int { return l.inFeatures }

// OutFeatures returns the number of outputs.
func (l *Linear) OutFeatures() int { return l.outFeatures }

// StateDict returns the current parameters. The tensors are shared, not
// copied.
func (l *Linear) StateDict() path.StateDict {
	return path.StateDict{"weight": l.weight, "bias": l.bias}
}

// Load replaces weight and bias from state. Float32 parameters are
// converted to float64. Extra keys are ignored.
func (l *Linear) Load(state path.StateDict) error {
	weight, err := l.param(state, "weight", tensor.Shape{l.outFeatures, l.inFeatures})
	if err != nil {
		return err
	}
	bias, err := l.param(state, "bias", tensor.Shape{l.outFeatures})
	if err != nil {
		return err
	}
	l.weight, l.bias = weight, bias
	return nil
}

func (l *Linear) param(state path.StateDict, name string, shape tensor.Shape) (*tensor.RawTensor, error) {
	raw, ok := state[name]
	if !ok || raw == nil {
		return nil, fmt.Errorf("%w: %s", ErrMissingParameter, name)
	}
	if !raw.Shape().Equal(shape) {
		return nil, fmt.Errorf("%w: %s is %v, want %v", ErrShape, name, raw.Shape(), shape)
	}
	if !raw.DType().IsFloat() {
		return nil, fmt.Errorf("%s: dtype %s is not a float type", name, raw.DType())
	}
	return l.backend.Cast(raw, tensor.Float64), nil
}

// Predict returns X @ W.T + b for X of shape [n, in]. With one output the
// result is flattened to [n].
func (l *Linear) Predict(X *tensor.RawTensor) (*tensor.RawTensor, error) {
	shape := X.Shape()
	if len(shape) != 2 || shape[1] != l.inFeatures {
		return nil, fmt.Errorf("%w: input is %v, want [n, %d]", ErrShape, shape, l.inFeatures)
	}

	b := l.backend
	out := b.Add(b.MatMul(b.Cast(X, tensor.Float64), b.Transpose(l.weight)), l.bias)
	if l.outFeatures == 1 {
		out = b.Reshape(out, tensor.Shape{shape[0]})
	}
	return out, nil
}

// Score returns the coefficient of determination of Predict(X) against y.
func (l *Linear) Score(X, y *tensor.RawTensor) (float64, error) {
	pred, err := l.Predict(X)
	if err != nil {
		return 0, err
	}
	return R2Score(y, pred)
}
