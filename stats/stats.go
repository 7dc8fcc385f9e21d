// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package stats computes Student-t confidence intervals over flat or
// nested samples.
//
// Example:
//
//	hw, err := stats.ConfidenceInterval([][]float64{{1, 2, 3}, {4, 5}}, 0.95)
//	// hw is []any{float64, float64}
package stats

import "github.com/born-ml/lassopath/internal/stats"

// DefaultConfidence is the confidence level used when none is given.
const DefaultConfidence = stats.DefaultConfidence

// Errors returned by this package.
var (
	ErrEmptySample       = stats.ErrEmptySample
	ErrUnsupportedSample = stats.ErrUnsupportedSample
	ErrConfidenceRange   = stats.ErrConfidenceRange
)

// Distribution returns a scaled central interval of a zero-centered
// distribution.
type Distribution = stats.Distribution

// StudentT is Student's t distribution.
type StudentT = stats.StudentT

// Summary describes one flat sample.
type Summary = stats.Summary

// Estimator computes interval half-widths at a fixed confidence.
type Estimator = stats.Estimator

// Option configures NewEstimator.
type Option = stats.Option

// WithConfidence sets the confidence level.
func WithConfidence(c float64) Option { return stats.WithConfidence(c) }

// WithDistribution replaces the Student-t distribution.
func WithDistribution(d Distribution) Option { return stats.WithDistribution(d) }

// NewEstimator creates an Estimator.
func NewEstimator(opts ...Option) (*Estimator, error) { return stats.NewEstimator(opts...) }

// StandardError returns the standard error of the mean of sample.
func StandardError(sample []float64) float64 { return stats.StandardError(sample) }

// ConfidenceInterval returns the half-width of the Student-t confidence
// interval of data, recursing into nested slices.
func ConfidenceInterval(data any, confidence float64) (any, error) {
	return stats.ConfidenceInterval(data, confidence)
}
