// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package tensor

import "github.com/born-ml/lassopath/internal/tensor"

// Backend defines the operations a compute backend implements.
//
// Implementations:
//   - backend/cpu: pure Go, with a native grouped reduction
type Backend = tensor.Backend

// ScatterReducer is the optional native grouped-reduction capability of a
// Backend.
type ScatterReducer = tensor.ScatterReducer

// ReduceOp names a grouped reduction.
type ReduceOp = tensor.ReduceOp

// Supported reductions.
const (
	ReduceMax ReduceOp = tensor.ReduceMax
	ReduceSum ReduceOp = tensor.ReduceSum
)
