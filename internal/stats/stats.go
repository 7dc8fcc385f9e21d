// Package stats computes Student-t confidence intervals for small samples,
// such as per-fold scores collected along a regularization path.
package stats

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/gonum/stat/distuv"
)

// DefaultConfidence is the confidence level used when none is given.
const DefaultConfidence = 0.95

// Errors returned by this package.
var (
	ErrEmptySample       = errors.New("empty sample")
	ErrUnsupportedSample = errors.New("unsupported sample type")
	ErrConfidenceRange   = errors.New("confidence must be in (0, 1)")
)

// Distribution returns the central interval holding the given probability
// mass of a zero-centered distribution with df degrees of freedom, scaled
// by scale.
type Distribution interface {
	Interval(confidence, df, scale float64) (low, high float64)
}

// StudentT is Student's t distribution.
type StudentT struct{}

// Interval implements Distribution. It returns (NaN, NaN) when df < 1 or
// scale is not finite, which covers single-element samples. A zero scale,
// as from a constant sample, gives the empty interval (0, 0).
func (StudentT) Interval(confidence, df, scale float64) (low, high float64) {
	if df < 1 || math.IsNaN(scale) || math.IsInf(scale, 0) {
		return math.NaN(), math.NaN()
	}
	t := distuv.StudentsT{Mu: 0, Sigma: 1, Nu: df}.Quantile((1 + confidence) / 2)
	return -t * scale, t * scale
}

// StandardError returns the standard error of the mean of sample, using the
// unbiased (n-1) standard deviation.
func StandardError(sample []float64) float64 {
	return stat.StdDev(sample, nil) / math.Sqrt(float64(len(sample)))
}

// Summary describes one flat sample.
type Summary struct {
	N         int     `json:"n"`
	Mean      float64 `json:"mean"`
	StdErr    float64 `json:"std_err"`
	HalfWidth float64 `json:"half_width"`
}

// Low returns the lower interval bound.
func (s Summary) Low() float64 { return s.Mean - s.HalfWidth }

// High returns the upper interval bound.
func (s Summary) High() float64 { return s.Mean + s.HalfWidth }

// String formats the summary as "mean ± half-width (n=N)".
func (s Summary) String() string {
	return fmt.Sprintf("%.6g ± %.6g (n=%d)", s.Mean, s.HalfWidth, s.N)
}
