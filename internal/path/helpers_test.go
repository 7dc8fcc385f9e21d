package path

import (
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/born-ml/lassopath/internal/tensor"
)

func rawFloat64(t *testing.T, shape tensor.Shape, values ...float64) *tensor.RawTensor {
	t.Helper()
	raw, err := tensor.NewRaw(shape, tensor.Float64, tensor.CPU)
	require.NoError(t, err)
	copy(raw.AsFloat64(), values)
	return raw
}

func rawBool(t *testing.T, values ...bool) *tensor.RawTensor {
	t.Helper()
	raw, err := tensor.NewRaw(tensor.Shape{len(values)}, tensor.Bool, tensor.CPU)
	require.NoError(t, err)
	copy(raw.AsBool(), values)
	return raw
}

// pathOf builds a path whose element i has mask masks[i] and a single
// scalar parameter "w" equal to i.
func pathOf(t *testing.T, masks ...[]bool) Path {
	t.Helper()
	p := make(Path, len(masks))
	for i, m := range masks {
		p[i] = Element{
			Lambda:    float64(i + 1),
			StateDict: StateDict{"w": rawFloat64(t, tensor.Shape{1}, float64(i))},
			Selected:  rawBool(t, m...),
		}
	}
	return p
}

// constModel scores as its loaded "w" parameter and predicts w*X.
type constModel struct {
	mu     sync.Mutex
	w      float64
	loads  int
	failAt int // Load fails on this call number when > 0
}

var errLoad = errors.New("load failed")

func (m *constModel) Load(state StateDict) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.loads++
	if m.failAt > 0 && m.loads == m.failAt {
		return errLoad
	}
	w, ok := state["w"]
	if !ok {
		return errors.New("missing w")
	}
	m.w = w.AsFloat64()[0]
	return nil
}

func (m *constModel) Score(_, _ *tensor.RawTensor) (float64, error) {
	return m.w, nil
}

func (m *constModel) Predict(X *tensor.RawTensor) (*tensor.RawTensor, error) {
	out := X.Clone()
	data := out.AsFloat64()
	for i := range data {
		data[i] *= m.w
	}
	return out, nil
}
