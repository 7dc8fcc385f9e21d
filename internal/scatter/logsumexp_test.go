package scatter

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/born-ml/lassopath/internal/backend/cpu"
	"github.com/born-ml/lassopath/internal/tensor"
)

// logSumExp is the plain single-group reference.
func logSumExp(xs []float64) float64 {
	m := math.Inf(-1)
	for _, x := range xs {
		m = math.Max(m, x)
	}
	var s float64
	for _, x := range xs {
		s += math.Exp(x - m)
	}
	return m + math.Log(s)
}

func randomValues(rng *rand.Rand, n int, scale float64) []float64 {
	vals := make([]float64, n)
	for i := range vals {
		vals[i] = rng.NormFloat64() * scale
	}
	return vals
}

func TestLogSumExp_SingleGroupMatchesGlobal(t *testing.T) {
	rng := rand.New(rand.NewSource(1))

	for name, r := range reducers(t) {
		t.Run(name, func(t *testing.T) {
			for trial := 0; trial < 20; trial++ {
				n := 1 + rng.Intn(30)
				vals := randomValues(rng, n, 50)
				x := rawFloat64(t, tensor.Shape{n}, vals...)
				index := rawInt32(t, tensor.Shape{n}, make([]int32, n)...)

				got := r.LogSumExp(x, index, OutputSize(1)).AsFloat64()
				require.Len(t, got, 1)
				assert.InDelta(t, logSumExp(vals), got[0], 1e-9)
			}
		})
	}
}

func TestLogSumExp_SingletonGroupsAreExact(t *testing.T) {
	vals := []float64{-1234.5, 0.1, 3.25, 987.0}
	x := rawFloat64(t, tensor.Shape{4}, vals...)
	index := rawInt32(t, tensor.Shape{4}, 3, 2, 1, 0)

	for name, r := range reducers(t) {
		t.Run(name, func(t *testing.T) {
			got := r.LogSumExp(x, index).AsFloat64()
			assert.Equal(t, []float64{987.0, 3.25, 0.1, -1234.5}, got)
		})
	}
}

func TestLogSumExp_ShiftEquivariant(t *testing.T) {
	rng := rand.New(rand.NewSource(2))
	const n, groups, shift = 40, 5, 321.75

	vals := randomValues(rng, n, 5)
	idx := make([]int32, n)
	for i := range idx {
		idx[i] = int32(i % groups)
	}
	shifted := make([]float64, n)
	for i, v := range vals {
		shifted[i] = v + shift
	}

	for name, r := range reducers(t) {
		t.Run(name, func(t *testing.T) {
			index := rawInt32(t, tensor.Shape{n}, idx...)
			base := r.LogSumExp(rawFloat64(t, tensor.Shape{n}, vals...), index).AsFloat64()
			moved := r.LogSumExp(rawFloat64(t, tensor.Shape{n}, shifted...), index).AsFloat64()

			for g := range base {
				assert.InDelta(t, base[g]+shift, moved[g], 1e-9, "group %d", g)
			}
		})
	}
}

func TestLogSumExp_StableForExtremeValues(t *testing.T) {
	x := rawFloat64(t, tensor.Shape{4}, 1000, 1000, -1000, -1000)
	index := rawInt32(t, tensor.Shape{4}, 0, 0, 1, 1)

	for name, r := range reducers(t) {
		t.Run(name, func(t *testing.T) {
			got := r.LogSumExp(x, index).AsFloat64()
			assert.InDelta(t, 1000+math.Ln2, got[0], 1e-9)
			assert.InDelta(t, -1000+math.Ln2, got[1], 1e-9)
		})
	}
}

func TestLogSumExp_EmptyGroupIsNegInf(t *testing.T) {
	x := rawFloat64(t, tensor.Shape{2}, 1, 2)
	index := rawInt32(t, tensor.Shape{2}, 0, 0)

	for name, r := range reducers(t) {
		t.Run(name, func(t *testing.T) {
			got := r.LogSumExp(x, index, OutputSize(2)).AsFloat64()
			assert.InDelta(t, logSumExp([]float64{1, 2}), got[0], 1e-12)
			assert.True(t, math.IsInf(got[1], -1))
		})
	}
}

func TestLogSumExp_GroupsAlongLastDimOfMatrix(t *testing.T) {
	// Per row: classes {0: cols 0,1} and {1: col 2}.
	vals := []float64{0, 0, 5, 1, 2, 3}
	x := rawFloat64(t, tensor.Shape{2, 3}, vals...)
	index := rawInt32(t, tensor.Shape{3}, 0, 0, 1)

	for name, r := range reducers(t) {
		t.Run(name, func(t *testing.T) {
			got := r.LogSumExp(x, index, Dim(-1))
			assert.Equal(t, tensor.Shape{2, 2}, got.Shape())
			data := got.AsFloat64()
			assert.InDelta(t, math.Ln2, data[0], 1e-12)
			assert.Equal(t, 5.0, data[1])
			assert.InDelta(t, logSumExp([]float64{1, 2}), data[2], 1e-12)
			assert.Equal(t, 3.0, data[3])
		})
	}
}

func TestLogSumExp_DoesNotMutateInputs(t *testing.T) {
	x := rawFloat64(t, tensor.Shape{3}, 1, 2, 3)
	index := rawInt32(t, tensor.Shape{3}, 0, 1, 0)

	_ = MustNew(cpu.New()).LogSumExp(x, index)

	assert.Equal(t, []float64{1, 2, 3}, x.AsFloat64())
	assert.Equal(t, []int32{0, 1, 0}, index.AsInt32())
}

func TestGroupedLogSumExp_Float32(t *testing.T) {
	backend := cpu.New()
	r := MustNew(backend)

	x, err := tensor.FromSlice([]float32{1, 1, 4}, tensor.Shape{3}, backend)
	require.NoError(t, err)
	index, err := tensor.FromSlice([]int32{0, 0, 1}, tensor.Shape{3}, backend)
	require.NoError(t, err)

	got := GroupedLogSumExp(r, x, index)
	assert.Equal(t, tensor.Float32, got.DType())
	assert.InDelta(t, 1+math.Ln2, float64(got.Data()[0]), 1e-6)
	assert.Equal(t, float32(4), got.Data()[1])

	mx := GroupedReduce(r, x, 0, index, tensor.ReduceMax)
	assert.Equal(t, []float32{1, 4}, mx.Data())
}

func TestLogSubtract(t *testing.T) {
	backend := cpu.New()
	xs := []float64{2, 0.5, 10, -3}
	ys := []float64{1, -4, 9.999, -30}

	got := LogSubtract(backend, rawFloat64(t, tensor.Shape{4}, xs...), rawFloat64(t, tensor.Shape{4}, ys...)).AsFloat64()
	for i := range xs {
		want := math.Log(math.Exp(xs[i]) - math.Exp(ys[i]))
		assert.InDelta(t, want, got[i], 1e-9, "x=%v y=%v", xs[i], ys[i])
	}
}

func TestLogSubtract_PreconditionViolation(t *testing.T) {
	backend := cpu.New()
	x := rawFloat64(t, tensor.Shape{2}, 1, 2)
	y := rawFloat64(t, tensor.Shape{2}, 2, 2)

	got := LogSubtract(backend, x, y).AsFloat64()
	assert.True(t, math.IsNaN(got[0]), "x < y must yield NaN")
	assert.True(t, math.IsInf(got[1], -1), "x == y must yield -Inf")
}

func TestLogSubtract_LargeMagnitudes(t *testing.T) {
	backend := cpu.New()
	x, err := tensor.FromSlice([]float64{800}, tensor.Shape{1}, backend)
	require.NoError(t, err)
	y, err := tensor.FromSlice([]float64{800 - math.Ln2}, tensor.Shape{1}, backend)
	require.NoError(t, err)

	// exp(800) overflows, but log(e^800 - e^800/2) = 800 - ln 2.
	got := LogSubtractTensor(x, y).Data()[0]
	assert.InDelta(t, 800-math.Ln2, got, 1e-9)
}
