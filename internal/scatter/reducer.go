package scatter

import (
	"errors"
	"fmt"

	"github.com/born-ml/lassopath/internal/tensor"
)

// Strategy selects how grouped reductions are realized.
type Strategy string

// Available strategies.
const (
	StrategyAuto     Strategy = "auto"
	StrategyNative   Strategy = "native"
	StrategyFallback Strategy = "fallback"
)

// Errors returned by New.
var (
	ErrNativeUnavailable = errors.New("backend does not provide a native scatter reduce")
	ErrUnknownStrategy   = errors.New("unknown scatter strategy")
)

// grouper is one realization of the grouped reduction.
type grouper interface {
	reduce(x *tensor.RawTensor, dim int, index *tensor.RawTensor, op tensor.ReduceOp, outputSize int) *tensor.RawTensor
}

// Reducer computes grouped reductions on a fixed backend.
// A Reducer holds no mutable state and is safe for concurrent use.
type Reducer struct {
	backend tensor.Backend
	impl    grouper
	chosen  Strategy
}

// ReducerOption configures New.
type ReducerOption func(*reducerConfig)

type reducerConfig struct {
	strategy Strategy
}

// WithStrategy forces a realization. The default, StrategyAuto, uses the
// native primitive when the backend has one.
func WithStrategy(s Strategy) ReducerOption {
	return func(c *reducerConfig) {
		c.strategy = s
	}
}

// New builds a Reducer for backend, choosing the realization once.
func New(backend tensor.Backend, opts ...ReducerOption) (*Reducer, error) {
	cfg := reducerConfig{strategy: StrategyAuto}
	for _, opt := range opts {
		opt(&cfg)
	}

	native, hasNative := backend.(tensor.ScatterReducer)

	switch cfg.strategy {
	case StrategyAuto, "":
		if hasNative {
			return &Reducer{backend: backend, impl: nativeGrouper{native}, chosen: StrategyNative}, nil
		}
		return &Reducer{backend: backend, impl: fallbackGrouper{backend}, chosen: StrategyFallback}, nil
	case StrategyNative:
		if !hasNative {
			return nil, fmt.Errorf("%s backend: %w", backend.Name(), ErrNativeUnavailable)
		}
		return &Reducer{backend: backend, impl: nativeGrouper{native}, chosen: StrategyNative}, nil
	case StrategyFallback:
		return &Reducer{backend: backend, impl: fallbackGrouper{backend}, chosen: StrategyFallback}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownStrategy, cfg.strategy)
	}
}

// MustNew is like New but panics on error.
func MustNew(backend tensor.Backend, opts ...ReducerOption) *Reducer {
	r, err := New(backend, opts...)
	if err != nil {
		panic(err)
	}
	return r
}

// Backend returns the backend the reducer computes on.
func (r *Reducer) Backend() tensor.Backend {
	return r.backend
}

// Strategy reports the realization chosen at construction, never
// StrategyAuto. Results do not depend on it.
func (r *Reducer) Strategy() Strategy {
	return r.chosen
}

// Option configures a single reduction call.
type Option func(*callConfig)

type callConfig struct {
	dim        int
	outputSize int // 0 means max(index)+1
}

// Dim sets the grouping axis for LogSumExp. Defaults to -1.
func Dim(d int) Option {
	return func(c *callConfig) {
		c.dim = d
	}
}

// OutputSize fixes the number of groups. Without it the group count is
// max(index)+1.
func OutputSize(n int) Option {
	return func(c *callConfig) {
		c.outputSize = n
	}
}

func newCallConfig(opts []Option) callConfig {
	c := callConfig{dim: -1}
	for _, opt := range opts {
		opt(&c)
	}
	return c
}

// Reduce applies op over the elements of input grouped by index along dim.
//
// The result has input's shape with the size along dim equal to the group
// count. index is int32 and either has input's shape or is 1-D with length
// input.Shape()[dim]; the latter is expanded across the other axes. Slots
// with no contributing elements hold op.Identity().
func (r *Reducer) Reduce(input *tensor.RawTensor, dim int, index *tensor.RawTensor, op tensor.ReduceOp, opts ...Option) *tensor.RawTensor {
	cfg := newCallConfig(opts)
	dim = input.Shape().NormalizeDim(dim)
	index = r.alignIndex(input, dim, index)
	return r.impl.reduce(input, dim, index, op, r.outputSize(index, cfg))
}

// alignIndex expands a 1-D index to input's shape along dim.
func (r *Reducer) alignIndex(input *tensor.RawTensor, dim int, index *tensor.RawTensor) *tensor.RawTensor {
	shape := input.Shape()
	if index.Shape().Equal(shape) {
		return index
	}
	if len(index.Shape()) != 1 || index.Shape()[0] != shape[dim] {
		panic(fmt.Sprintf("scatter: index shape %v is not compatible with input %v along dim %d",
			index.Shape(), shape, dim))
	}

	view := make(tensor.Shape, len(shape))
	for i := range view {
		view[i] = 1
	}
	view[dim] = shape[dim]
	return r.backend.Expand(r.backend.Reshape(index, view), shape)
}

func (r *Reducer) outputSize(index *tensor.RawTensor, cfg callConfig) int {
	if cfg.outputSize > 0 {
		return cfg.outputSize
	}
	return index.MaxIndex() + 1
}

type nativeGrouper struct {
	backend tensor.ScatterReducer
}

func (g nativeGrouper) reduce(x *tensor.RawTensor, dim int, index *tensor.RawTensor, op tensor.ReduceOp, outputSize int) *tensor.RawTensor {
	return g.backend.ScatterReduce(x, dim, index, op, outputSize)
}

// fallbackGrouper realizes the grouped reduction from generic backend
// primitives: one masked reduction per group, concatenated along dim.
type fallbackGrouper struct {
	backend tensor.Backend
}

func (g fallbackGrouper) reduce(x *tensor.RawTensor, dim int, index *tensor.RawTensor, op tensor.ReduceOp, outputSize int) *tensor.RawTensor {
	b := g.backend
	shape := x.Shape()
	identity := tensor.ScalarLike(shape, x.DType(), op.Identity(), b.Device())

	slots := make([]*tensor.RawTensor, outputSize)
	for group := range slots {
		id := tensor.ScalarLike(shape, tensor.Int32, float64(group), b.Device())
		masked := b.Where(b.Equal(index, id), x, identity)
		switch op {
		case tensor.ReduceMax:
			slots[group] = b.MaxDim(masked, dim, true)
		case tensor.ReduceSum:
			slots[group] = b.SumDim(masked, dim, true)
		default:
			panic(fmt.Sprintf("scatter: unsupported reduce op %q", op))
		}
	}

	return b.Cat(slots, dim)
}
