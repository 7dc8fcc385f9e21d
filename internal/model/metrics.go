package model

import (
	"fmt"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/born-ml/lassopath/internal/path"
	"github.com/born-ml/lassopath/internal/tensor"
)

// Score functions usable with path.WithScoreFunc.
var (
	_ path.ScoreFunc = R2Score
	_ path.ScoreFunc = MeanSquaredError
	_ path.ScoreFunc = NegMeanSquaredError
)

// R2Score returns 1 - SS_res/SS_tot over all elements of yTrue and yPred.
// A constant yTrue gives NaN or -Inf.
func R2Score(yTrue, yPred *tensor.RawTensor) (float64, error) {
	t, p, err := flatten(yTrue, yPred)
	if err != nil {
		return 0, err
	}
	return stat.RSquaredFrom(p, t, nil), nil
}

// MeanSquaredError returns the mean of (yTrue - yPred)^2.
func MeanSquaredError(yTrue, yPred *tensor.RawTensor) (float64, error) {
	t, p, err := flatten(yTrue, yPred)
	if err != nil {
		return 0, err
	}
	d := floats.Distance(t, p, 2)
	return d * d / float64(len(t)), nil
}

// NegMeanSquaredError is -MeanSquaredError, so that higher is better.
func NegMeanSquaredError(yTrue, yPred *tensor.RawTensor) (float64, error) {
	mse, err := MeanSquaredError(yTrue, yPred)
	return -mse, err
}

func flatten(yTrue, yPred *tensor.RawTensor) ([]float64, []float64, error) {
	if yTrue.NumElements() != yPred.NumElements() {
		return nil, nil, fmt.Errorf("%w: targets %v, predictions %v", ErrShape, yTrue.Shape(), yPred.Shape())
	}
	if yTrue.NumElements() == 0 {
		return nil, nil, fmt.Errorf("%w: no targets", ErrShape)
	}
	return yTrue.Float64s(), yPred.Float64s(), nil
}
