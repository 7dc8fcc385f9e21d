package stats

import (
	"fmt"
	"math"
	"reflect"

	"gonum.org/v1/gonum/stat"
)

// Estimator computes confidence-interval half-widths.
type Estimator struct {
	Confidence float64
	Dist       Distribution
}

// Option configures NewEstimator.
type Option func(*Estimator)

// WithConfidence sets the confidence level.
func WithConfidence(c float64) Option {
	return func(e *Estimator) {
		e.Confidence = c
	}
}

// WithDistribution replaces the Student-t distribution.
func WithDistribution(d Distribution) Option {
	return func(e *Estimator) {
		e.Dist = d
	}
}

// NewEstimator returns an Estimator at DefaultConfidence using StudentT
// unless options say otherwise.
func NewEstimator(opts ...Option) (*Estimator, error) {
	e := &Estimator{Confidence: DefaultConfidence, Dist: StudentT{}}
	for _, opt := range opts {
		opt(e)
	}
	if !(e.Confidence > 0 && e.Confidence < 1) {
		return nil, fmt.Errorf("%w: got %v", ErrConfidenceRange, e.Confidence)
	}
	if e.Dist == nil {
		e.Dist = StudentT{}
	}
	return e, nil
}

// HalfWidth returns the upper bound of the interval around zero with
// len(sample)-1 degrees of freedom, scaled by the standard error of the
// mean. It is NaN for samples with fewer than two elements.
func (e *Estimator) HalfWidth(sample []float64) float64 {
	if len(sample) == 0 {
		return math.NaN()
	}
	_, high := e.Dist.Interval(e.Confidence, float64(len(sample)-1), StandardError(sample))
	return high
}

// Summarize returns the mean, standard error and half-width of sample.
func (e *Estimator) Summarize(sample []float64) Summary {
	if len(sample) == 0 {
		return Summary{Mean: math.NaN(), StdErr: math.NaN(), HalfWidth: math.NaN()}
	}
	return Summary{
		N:         len(sample),
		Mean:      stat.Mean(sample, nil),
		StdErr:    StandardError(sample),
		HalfWidth: e.HalfWidth(sample),
	}
}

// Nested applies HalfWidth to data, recursing into nested slices.
//
// A slice whose first element is itself a slice or array is treated as a
// sequence of samples and yields a []any of results, one per element, at
// any depth. Any other slice must hold numbers and yields a float64.
func (e *Estimator) Nested(data any) (any, error) {
	return e.nested(reflect.ValueOf(data))
}

func (e *Estimator) nested(v reflect.Value) (any, error) {
	v = unwrap(v)
	if !isSequence(v) {
		return nil, fmt.Errorf("%w: %v", ErrUnsupportedSample, kindOf(v))
	}
	if v.Len() == 0 {
		return nil, ErrEmptySample
	}

	if isSequence(unwrap(v.Index(0))) {
		out := make([]any, v.Len())
		for i := range out {
			r, err := e.nested(v.Index(i))
			if err != nil {
				return nil, fmt.Errorf("[%d]: %w", i, err)
			}
			out[i] = r
		}
		return out, nil
	}

	sample := make([]float64, v.Len())
	for i := range sample {
		x, err := toFloat(unwrap(v.Index(i)))
		if err != nil {
			return nil, fmt.Errorf("[%d]: %w", i, err)
		}
		sample[i] = x
	}
	return e.HalfWidth(sample), nil
}

// ConfidenceInterval returns the half-width of the Student-t confidence
// interval of data at the given confidence, recursing into nested slices
// as Estimator.Nested does.
func ConfidenceInterval(data any, confidence float64) (any, error) {
	e, err := NewEstimator(WithConfidence(confidence))
	if err != nil {
		return nil, err
	}
	return e.Nested(data)
}

func unwrap(v reflect.Value) reflect.Value {
	for v.IsValid() && (v.Kind() == reflect.Interface || v.Kind() == reflect.Pointer) {
		if v.IsNil() {
			return reflect.Value{}
		}
		v = v.Elem()
	}
	return v
}

func isSequence(v reflect.Value) bool {
	return v.IsValid() && (v.Kind() == reflect.Slice || v.Kind() == reflect.Array)
}

func kindOf(v reflect.Value) string {
	if !v.IsValid() {
		return "nil"
	}
	return v.Type().String()
}

func toFloat(v reflect.Value) (float64, error) {
	if !v.IsValid() {
		return 0, fmt.Errorf("%w: nil", ErrUnsupportedSample)
	}
	switch v.Kind() {
	case reflect.Float32, reflect.Float64:
		return v.Float(), nil
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return float64(v.Int()), nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return float64(v.Uint()), nil
	default:
		return 0, fmt.Errorf("%w: %s", ErrUnsupportedSample, v.Type())
	}
}
