package serialization

import (
	"bytes"
	"encoding/binary"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/born-ml/lassopath/internal/tensor"
)

func newRaw(t *testing.T, shape tensor.Shape, dtype tensor.DataType) *tensor.RawTensor {
	t.Helper()
	raw, err := tensor.NewRaw(shape, dtype, tensor.CPU)
	require.NoError(t, err)
	return raw
}

// writeRawFile writes a hand-built header followed by data.
func writeRawFile(t *testing.T, header map[string]any, data []byte) string {
	t.Helper()
	headerJSON, err := json.Marshal(header)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, binary.Write(&buf, binary.LittleEndian, uint64(len(headerJSON))))
	buf.Write(headerJSON)
	buf.Write(data)

	path := filepath.Join(t.TempDir(), "raw.safetensors")
	require.NoError(t, os.WriteFile(path, buf.Bytes(), 0o600))
	return path
}

func TestSafeTensorsRoundTrip(t *testing.T) {
	weight := newRaw(t, tensor.Shape{2, 3}, tensor.Float64)
	copy(weight.AsFloat64(), []float64{1, 2, 3, 4, 5, 6})

	bias := newRaw(t, tensor.Shape{2}, tensor.Float32)
	copy(bias.AsFloat32(), []float32{0.5, -0.5})

	selected := newRaw(t, tensor.Shape{3}, tensor.Bool)
	copy(selected.AsBool(), []bool{true, false, true})

	index := newRaw(t, tensor.Shape{3}, tensor.Int32)
	copy(index.AsInt32(), []int32{2, 0, 1})

	path := filepath.Join(t.TempDir(), "state.safetensors")
	err := WriteSafeTensors(path, map[string]*tensor.RawTensor{
		"0/weight":   weight,
		"0/bias":     bias,
		"0/selected": selected,
		"index":      index,
	}, map[string]string{"steps": "1"})
	require.NoError(t, err)

	tensors, metadata, err := ReadSafeTensors(path)
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"steps": "1"}, metadata)
	require.Len(t, tensors, 4)

	assert.Equal(t, tensor.Shape{2, 3}, tensors["0/weight"].Shape())
	assert.Equal(t, []float64{1, 2, 3, 4, 5, 6}, tensors["0/weight"].AsFloat64())
	assert.Equal(t, []float32{0.5, -0.5}, tensors["0/bias"].AsFloat32())
	assert.Equal(t, []bool{true, false, true}, tensors["0/selected"].AsBool())
	assert.Equal(t, []int32{2, 0, 1}, tensors["index"].AsInt32())
}

func TestReaderRandomAccess(t *testing.T) {
	a := newRaw(t, tensor.Shape{2}, tensor.Int64)
	copy(a.AsInt64(), []int64{7, 8})
	b := newRaw(t, tensor.Shape{1}, tensor.Uint8)
	b.AsUint8()[0] = 9

	path := filepath.Join(t.TempDir(), "ab.safetensors")
	require.NoError(t, WriteSafeTensors(path, map[string]*tensor.RawTensor{"b": b, "a": a}, nil))

	r, err := NewSafeTensorsReader(path)
	require.NoError(t, err)
	defer r.Close()

	assert.Equal(t, []string{"a", "b"}, r.TensorNames())
	assert.Nil(t, r.Metadata())

	info, err := r.TensorInfo("a")
	require.NoError(t, err)
	assert.Equal(t, DTypeI64, info.DType)
	assert.Equal(t, [2]int64{0, 16}, info.DataOffsets)

	got, err := r.LoadTensor("b", tensor.CPU)
	require.NoError(t, err)
	assert.Equal(t, []uint8{9}, got.AsUint8())

	_, err = r.LoadTensor("missing", tensor.CPU)
	assert.ErrorIs(t, err, ErrTensorNotFound)

	require.NoError(t, r.Close())
	_, err = r.LoadTensor("a", tensor.CPU)
	assert.Error(t, err)
}

func TestWriteSafeTensors_RejectsBadNames(t *testing.T) {
	raw := newRaw(t, tensor.Shape{1}, tensor.Float64)
	path := filepath.Join(t.TempDir(), "bad.safetensors")

	for _, name := range []string{"", "../escape", "a/../b", "nul\x00", metadataKey, `back\slash`} {
		err := WriteSafeTensors(path, map[string]*tensor.RawTensor{name: raw}, nil)
		assert.ErrorIs(t, err, ErrInvalidTensorName, "name %q", name)
	}
}

func TestReadSafeTensors_Validation(t *testing.T) {
	tests := []struct {
		name   string
		header map[string]any
		data   []byte
		want   error
	}{
		{
			name: "out of bounds",
			header: map[string]any{
				"x": TensorInfo{DType: DTypeF64, Shape: []int{2}, DataOffsets: [2]int64{0, 16}},
			},
			data: make([]byte, 8),
			want: ErrOutOfBounds,
		},
		{
			name: "negative offset",
			header: map[string]any{
				"x": TensorInfo{DType: DTypeF64, Shape: []int{1}, DataOffsets: [2]int64{-8, 0}},
			},
			data: make([]byte, 8),
			want: ErrNegativeOffset,
		},
		{
			name: "overlap",
			header: map[string]any{
				"x": TensorInfo{DType: DTypeF64, Shape: []int{1}, DataOffsets: [2]int64{0, 8}},
				"y": TensorInfo{DType: DTypeF64, Shape: []int{1}, DataOffsets: [2]int64{4, 12}},
			},
			data: make([]byte, 16),
			want: ErrOffsetOverlap,
		},
		{
			name: "size mismatch",
			header: map[string]any{
				"x": TensorInfo{DType: DTypeF32, Shape: []int{3}, DataOffsets: [2]int64{0, 8}},
			},
			data: make([]byte, 8),
			want: ErrSizeMismatch,
		},
		{
			name: "half precision",
			header: map[string]any{
				"x": TensorInfo{DType: "F16", Shape: []int{4}, DataOffsets: [2]int64{0, 8}},
			},
			data: make([]byte, 8),
			want: ErrUnsupportedDType,
		},
		{
			name: "path traversal",
			header: map[string]any{
				"../x": TensorInfo{DType: DTypeU8, Shape: []int{1}, DataOffsets: [2]int64{0, 1}},
			},
			data: make([]byte, 1),
			want: ErrInvalidTensorName,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeRawFile(t, tt.header, tt.data)
			_, _, err := ReadSafeTensors(path)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestReadSafeTensors_HeaderTooLarge(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, binary.Write(&buf, binary.LittleEndian, uint64(MaxHeaderSize+1)))
	path := filepath.Join(t.TempDir(), "huge.safetensors")
	require.NoError(t, os.WriteFile(path, buf.Bytes(), 0o600))

	_, _, err := ReadSafeTensors(path)
	assert.ErrorIs(t, err, ErrHeaderTooLarge)
}

func TestReadSafeTensors_TruncatedHeader(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, binary.Write(&buf, binary.LittleEndian, uint64(64)))
	buf.WriteString("{}")
	path := filepath.Join(t.TempDir(), "short.safetensors")
	require.NoError(t, os.WriteFile(path, buf.Bytes(), 0o600))

	_, _, err := ReadSafeTensors(path)
	assert.ErrorIs(t, err, ErrOutOfBounds)
}

func TestReadSafeTensors_MissingFile(t *testing.T) {
	_, _, err := ReadSafeTensors(filepath.Join(t.TempDir(), "nope.safetensors"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}
