// Package cpu implements the pure-Go CPU backend.
package cpu

import (
	"fmt"

	"github.com/born-ml/lassopath/internal/parallel"
	"github.com/born-ml/lassopath/internal/tensor"
)

// CPUBackend implements tensor operations on the CPU.
//
// It satisfies tensor.Backend and the optional tensor.ScatterReducer
// capability. Kernels split work across goroutines according to its
// parallel.Config; results never alias their inputs.
type CPUBackend struct {
	device tensor.Device
	par    parallel.Config
}

// Compile-time checks for the backend contract and its optional capability.
var (
	_ tensor.Backend        = (*CPUBackend)(nil)
	_ tensor.ScatterReducer = (*CPUBackend)(nil)
)

// Option configures a CPUBackend.
type Option func(*CPUBackend)

// WithParallel sets the kernel parallelism.
func WithParallel(cfg parallel.Config) Option {
	return func(cpu *CPUBackend) {
		cpu.par = cfg
	}
}

// New creates a new CPU backend.
func New(opts ...Option) *CPUBackend {
	cpu := &CPUBackend{
		device: tensor.CPU,
		par:    parallel.DefaultConfig(),
	}
	for _, opt := range opts {
		opt(cpu)
	}
	return cpu
}

// Name returns the backend name.
func (cpu *CPUBackend) Name() string {
	return "CPU"
}

// Device returns the compute device.
func (cpu *CPUBackend) Device() tensor.Device {
	return cpu.device
}

// alloc creates a result tensor on the backend's device, panicking with an
// op-prefixed message on invalid shapes.
func (cpu *CPUBackend) alloc(op string, shape tensor.Shape, dtype tensor.DataType) *tensor.RawTensor {
	result, err := tensor.NewRaw(shape, dtype, cpu.device)
	if err != nil {
		panic(fmt.Sprintf("%s: failed to create result tensor: %v", op, err))
	}
	return result
}

// portable hides every method outside tensor.Backend, in particular
// ScatterReduce.
type portable struct {
	tensor.Backend
}

// NewPortable returns a CPU backend that exposes only the core
// tensor.Backend method set. Code that probes for optional capabilities such
// as tensor.ScatterReducer sees none, so it exercises its generic paths.
func NewPortable(opts ...Option) tensor.Backend {
	return portable{Backend: New(opts...)}
}
