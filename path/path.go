// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package path evaluates and aggregates regularization paths.
//
// A Path is the ordered list of model snapshots a feature-selection trainer
// produces while sweeping its penalty strength.
//
// Example:
//
//	backend := cpu.New()
//	probs, err := path.SelectionProbability(backend, paths)
//	scores, err := path.EvalOnPath(model, paths[0], X, y)
package path

import (
	"context"
	"log/slog"

	"github.com/born-ml/lassopath/internal/path"
	"github.com/born-ml/lassopath/tensor"
)

// Errors returned by this package.
var (
	ErrNoPaths       = path.ErrNoPaths
	ErrShapeMismatch = path.ErrShapeMismatch
	ErrNoSelection   = path.ErrNoSelection
	ErrReservedName  = path.ErrReservedName
	ErrNotAPath      = path.ErrNotAPath
)

// StateDict maps parameter names to tensors.
type StateDict = path.StateDict

// Element is one snapshot of a path.
type Element = path.Element

// Path is an ordered sequence of snapshots, strongest penalty last.
type Path = path.Path

// Model is the evaluation cursor EvalOnPath restores snapshots into.
type Model = path.Model

// ScoreFunc scores predictions against targets.
type ScoreFunc = path.ScoreFunc

// Evaluation describes one scored snapshot.
type Evaluation = path.Evaluation

// Observer receives every Evaluation.
type Observer = path.Observer

// EvalOption configures EvalOnPath and EvalPaths.
type EvalOption = path.EvalOption

// WithScoreFunc scores Predict output with fn instead of Model.Score.
func WithScoreFunc(fn ScoreFunc) EvalOption { return path.WithScoreFunc(fn) }

// WithObserver reports every evaluation to o.
func WithObserver(o Observer) EvalOption { return path.WithObserver(o) }

// WithLogger sets the logger evaluations are reported to at debug level.
func WithLogger(logger *slog.Logger) EvalOption { return path.WithLogger(logger) }

// WithConcurrency bounds the number of paths EvalPaths evaluates at once.
func WithConcurrency(n int) EvalOption { return path.WithConcurrency(n) }

// EvalOnPath loads each snapshot of p into model and scores it on (X, y).
func EvalOnPath(model Model, p Path, X, y *tensor.RawTensor, opts ...EvalOption) ([]float64, error) {
	return path.EvalOnPath(model, p, X, y, opts...)
}

// EvalPaths runs EvalOnPath for every path, each on its own model.
func EvalPaths(ctx context.Context, newModel func() Model, paths []Path, X, y *tensor.RawTensor, opts ...EvalOption) ([][]float64, error) {
	return path.EvalPaths(ctx, newModel, paths, X, y, opts...)
}

// SelectionProbability returns, per step, the fraction of paths still
// selecting each variable, made non-increasing along the steps.
func SelectionProbability[B tensor.Backend](backend B, paths []Path) ([]*tensor.Tensor[float64, B], error) {
	return path.SelectionProbability(backend, paths)
}

// Save writes p to filename as one SafeTensors file.
func Save(filename string, p Path) error { return path.Save(filename, p) }

// Load reads a path written by Save.
func Load(filename string) (Path, error) { return path.Load(filename) }
