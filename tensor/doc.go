// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package tensor provides the public tensor types of lassopath.
//
// # Overview
//
// Two representations exist:
//   - RawTensor: a dtype-tagged byte buffer with a shape, the form backends
//     and serialization work with.
//   - Tensor[T, B]: a typed generic wrapper bound to a Backend.
//
// Every backend operation allocates its result; inputs are never modified.
//
// # Backends
//
// Backend lists the operations the grouped reductions and path utilities
// need. A backend may also implement ScatterReducer, a native grouped
// reduction; the scatter package uses it when present and otherwise builds
// the same result from Equal, Where, MaxDim/SumDim and Cat.
//
// # Example
//
//	backend := cpu.New()
//	x, _ := tensor.FromSlice([]float64{1, 2, 3}, tensor.Shape{3}, backend)
//	y := x.Exp().Log() // [1, 2, 3]
package tensor
