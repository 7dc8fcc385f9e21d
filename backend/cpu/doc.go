// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package cpu provides a pure Go CPU backend for tensor operations.
//
// # Overview
//
// The backend implements every tensor.Backend operation for float32 and
// float64 with NumPy-compatible broadcasting, plus a native grouped
// (scatter) reduction for max and sum. Large element-wise kernels and
// reductions are split across goroutines.
//
// # Basic Usage
//
//	backend := cpu.New()
//	r := scatter.MustNew(backend)
//	lse := r.LogSumExp(x, groups)
//
// NewPortable hides the native grouped reduction so callers exercise their
// generic code paths on the same kernels.
//
// # Thread Safety
//
// The CPU backend is safe for concurrent use. Operations never write to
// their arguments.
package cpu
