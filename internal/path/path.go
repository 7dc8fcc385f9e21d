// Package path evaluates and aggregates regularization paths.
//
// A Path is the ordered list of model snapshots a feature-selection trainer
// produces while sweeping its penalty strength. Each Element carries the
// parameters needed to restore the model (StateDict) and the mask of input
// variables still selected at that step.
//
// Two operations consume paths:
//   - EvalOnPath restores every snapshot into one model and scores it on
//     held-out data. EvalPaths does the same for many paths concurrently.
//   - SelectionProbability averages the selection masks of independently
//     trained paths into a non-increasing per-variable curve.
//
// Save and Load persist a Path as a single SafeTensors file.
package path

import (
	"errors"

	"github.com/born-ml/lassopath/internal/tensor"
)

// Errors returned by this package.
var (
	ErrNoPaths       = errors.New("no paths given")
	ErrShapeMismatch = errors.New("selection masks have different shapes")
	ErrNoSelection   = errors.New("path element has no selection mask")
	ErrReservedName  = errors.New("reserved state dict key")
)

// StateDict maps parameter names to tensors.
type StateDict map[string]*tensor.RawTensor

// Element is one snapshot of a path.
type Element struct {
	Lambda     float64 // Penalty strength the snapshot was trained at
	Objective  float64 // Penalized training objective
	Loss       float64 // Unpenalized training loss
	Iterations int     // Optimizer iterations spent at this step

	StateDict StateDict

	// Selected is a 1-D mask over input variables. It may be bool, uint8,
	// float32 or float64; non-zero means selected.
	Selected *tensor.RawTensor
}

// Path is an ordered sequence of snapshots, strongest penalty last.
type Path []Element

// Model is the evaluation cursor EvalOnPath restores snapshots into.
//
// Load overwrites the model's parameters in place. A Model is owned by one
// evaluation at a time.
type Model interface {
	Load(state StateDict) error
	Score(X, y *tensor.RawTensor) (float64, error)
	Predict(X *tensor.RawTensor) (*tensor.RawTensor, error)
}

// NumSelected returns the number of non-zero entries of e.Selected, or 0
// when the element has no mask.
func (e Element) NumSelected() int {
	if e.Selected == nil {
		return 0
	}
	n := 0
	for _, v := range e.Selected.Float64s() {
		if v != 0 {
			n++
		}
	}
	return n
}
