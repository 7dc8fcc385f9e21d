package path

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/born-ml/lassopath/internal/backend/cpu"
	"github.com/born-ml/lassopath/internal/tensor"
)

func TestSelectionProbability_UnevenLengths(t *testing.T) {
	backend := cpu.New()
	paths := []Path{
		pathOf(t, []bool{true, true}, []bool{true, false}, []bool{false, false}),
		pathOf(t, []bool{true, false}, []bool{false, false}),
	}

	curve, err := SelectionProbability(backend, paths)
	require.NoError(t, err)
	require.Len(t, curve, 3)

	assert.Equal(t, []float64{1.0, 0.5}, curve[0].Data())
	assert.Equal(t, []float64{0.5, 0.0}, curve[1].Data())
	assert.Equal(t, []float64{0.0, 0.0}, curve[2].Data())
}

func TestSelectionProbability_ClampsReselection(t *testing.T) {
	backend := cpu.New()
	// The only path drops variable 0 at step 1 and picks it up again.
	paths := []Path{pathOf(t, []bool{true}, []bool{false}, []bool{true})}

	curve, err := SelectionProbability(backend, paths)
	require.NoError(t, err)

	assert.Equal(t, []float64{1}, curve[0].Data())
	assert.Equal(t, []float64{0}, curve[1].Data())
	assert.Equal(t, []float64{0}, curve[2].Data())
}

func TestSelectionProbability_FloatMasks(t *testing.T) {
	backend := cpu.New()
	paths := []Path{
		{{Selected: rawFloat64(t, tensor.Shape{2}, 1, 0)}},
		{{Selected: rawFloat64(t, tensor.Shape{2}, 1, 1)}},
		{{Selected: rawBool(t, false, true)}},
		{{Selected: rawBool(t, false, false)}},
	}

	curve, err := SelectionProbability(backend, paths)
	require.NoError(t, err)
	require.Len(t, curve, 1)
	assert.Equal(t, []float64{0.5, 0.5}, curve[0].Data())
}

func TestSelectionProbability_Errors(t *testing.T) {
	backend := cpu.New()

	_, err := SelectionProbability(backend, nil)
	assert.ErrorIs(t, err, ErrNoPaths)

	_, err = SelectionProbability(backend, []Path{
		pathOf(t, []bool{true, true}),
		pathOf(t, []bool{true, true}, []bool{true, false, true}),
	})
	assert.ErrorIs(t, err, ErrShapeMismatch)
	assert.ErrorContains(t, err, "path 1 step 1")

	_, err = SelectionProbability(backend, []Path{{{Lambda: 1}}})
	assert.ErrorIs(t, err, ErrNoSelection)
}

func TestSelectionProbability_EmptyPaths(t *testing.T) {
	curve, err := SelectionProbability(cpu.New(), []Path{{}, {}})
	require.NoError(t, err)
	assert.Empty(t, curve)
}

func TestSelectionProbability_RandomMasksAreMonotone(t *testing.T) {
	backend := cpu.New()
	rng := rand.New(rand.NewSource(42))

	for trial := 0; trial < 50; trial++ {
		vars := 1 + rng.Intn(6)
		paths := make([]Path, 1+rng.Intn(5))
		longest := 0
		for i := range paths {
			steps := rng.Intn(8)
			longest = max(longest, steps)
			masks := make([][]bool, steps)
			for s := range masks {
				masks[s] = make([]bool, vars)
				for v := range masks[s] {
					masks[s][v] = rng.Intn(2) == 1
				}
			}
			paths[i] = pathOf(t, masks...)
		}

		curve, err := SelectionProbability(backend, paths)
		require.NoError(t, err)
		require.Len(t, curve, longest)

		prev := make([]float64, vars)
		for v := range prev {
			prev[v] = 1
		}
		for step, probs := range curve {
			for v, p := range probs.Data() {
				assert.GreaterOrEqual(t, p, 0.0)
				assert.LessOrEqual(t, p, prev[v], "trial %d step %d var %d", trial, step, v)
				prev[v] = p
			}
		}
	}
}

func TestSelectionProbability_PortableBackend(t *testing.T) {
	backend := cpu.NewPortable()
	paths := []Path{
		pathOf(t, []bool{true, true}, []bool{true, false}),
		pathOf(t, []bool{false, true}),
	}

	curve, err := SelectionProbability(backend, paths)
	require.NoError(t, err)
	assert.Equal(t, []float64{0.5, 1.0}, curve[0].Data())
	assert.Equal(t, []float64{0.5, 0.0}, curve[1].Data())
}
