package serialization

import (
	"fmt"
	"sort"
	"strings"
)

// Limits applied to untrusted headers.
const (
	MaxHeaderSize    = 100 * 1024 * 1024 // 100MB
	MaxTensorCount   = 100_000
	MaxTensorNameLen = 4096
)

// ValidateTensorName rejects empty or oversized names, parent-directory
// segments and null bytes. Forward slashes are allowed as key separators.
func ValidateTensorName(name string) error {
	switch {
	case name == "":
		return &ValidationError{Err: ErrInvalidTensorName, Details: "empty name"}
	case len(name) > MaxTensorNameLen:
		return &ValidationError{
			Err:     ErrInvalidTensorName,
			Tensor:  name,
			Details: fmt.Sprintf("length %d > max %d", len(name), MaxTensorNameLen),
		}
	case name == metadataKey:
		return &ValidationError{Err: ErrInvalidTensorName, Tensor: name, Details: "reserved key"}
	case strings.Contains(name, "\x00"):
		return &ValidationError{Err: ErrInvalidTensorName, Tensor: name, Details: "contains null byte"}
	case strings.Contains(name, "\\"):
		return &ValidationError{Err: ErrInvalidTensorName, Tensor: name, Details: "contains backslash"}
	}

	for _, segment := range strings.Split(name, "/") {
		if segment == ".." {
			return &ValidationError{Err: ErrInvalidTensorName, Tensor: name, Details: "contains '..' segment"}
		}
	}
	return nil
}

// validateEntries checks every entry's byte range against the data section:
// no negative offsets, no reads past the end, no overlaps, and a byte
// length matching dtype and shape.
func validateEntries(entries map[string]TensorInfo, dataSize int64) error {
	if len(entries) > MaxTensorCount {
		return &ValidationError{
			Err:     ErrTooManyTensors,
			Details: fmt.Sprintf("got %d, max %d", len(entries), MaxTensorCount),
		}
	}

	names := make([]string, 0, len(entries))
	for name, info := range entries {
		if err := ValidateTensorName(name); err != nil {
			return err
		}
		if err := info.validate(name, dataSize); err != nil {
			return err
		}
		names = append(names, name)
	}

	sort.Slice(names, func(i, j int) bool {
		return entries[names[i]].DataOffsets[0] < entries[names[j]].DataOffsets[0]
	})
	for i := 0; i+1 < len(names); i++ {
		cur, next := entries[names[i]], entries[names[i+1]]
		if cur.DataOffsets[1] > next.DataOffsets[0] {
			return &ValidationError{
				Err:     ErrOffsetOverlap,
				Tensor:  names[i],
				Tensor2: names[i+1],
				Details: fmt.Sprintf("regions [%d-%d] and [%d-%d] overlap",
					cur.DataOffsets[0], cur.DataOffsets[1], next.DataOffsets[0], next.DataOffsets[1]),
			}
		}
	}
	return nil
}

func (info TensorInfo) validate(name string, dataSize int64) error {
	start, end := info.DataOffsets[0], info.DataOffsets[1]
	if start < 0 || end < start {
		return &ValidationError{
			Err:     ErrNegativeOffset,
			Tensor:  name,
			Details: fmt.Sprintf("data_offsets [%d, %d]", start, end),
		}
	}
	if end > dataSize {
		return &ValidationError{
			Err:     ErrOutOfBounds,
			Tensor:  name,
			Details: fmt.Sprintf("end %d > data size %d", end, dataSize),
		}
	}

	dt, err := info.DType.DataType()
	if err != nil {
		return fmt.Errorf("tensor %q: %w", name, err)
	}
	want := int64(dt.Size())
	for _, d := range info.Shape {
		if d <= 0 {
			return &ValidationError{
				Err:     ErrSizeMismatch,
				Tensor:  name,
				Details: fmt.Sprintf("non-positive dimension in shape %v", info.Shape),
			}
		}
		want *= int64(d)
	}
	if end-start != want {
		return &ValidationError{
			Err:     ErrSizeMismatch,
			Tensor:  name,
			Details: fmt.Sprintf("%d bytes for %s%v, want %d", end-start, info.DType, info.Shape, want),
		}
	}
	return nil
}
