package path

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/born-ml/lassopath/internal/serialization"
	"github.com/born-ml/lassopath/internal/tensor"
)

const (
	archiveFormat = "lassopath.path/v1"
	selectedKey   = "selected"
)

// ErrNotAPath is returned by Load for SafeTensors files Save did not write.
var ErrNotAPath = errors.New("file does not hold a path")

// Save writes p to filename as one SafeTensors file.
//
// Parameters are stored under "<step>/<name>" and masks under
// "<step>/selected"; Lambda, Objective, Loss and Iterations go to the header
// metadata. A state dict may therefore not use the key "selected".
func Save(filename string, p Path) error {
	tensors := make(map[string]*tensor.RawTensor)
	metadata := map[string]string{
		"format": archiveFormat,
		"steps":  strconv.Itoa(len(p)),
	}

	for step, e := range p {
		prefix := strconv.Itoa(step) + "/"
		for name, raw := range e.StateDict {
			if name == selectedKey {
				return fmt.Errorf("step %d: %w: %q", step, ErrReservedName, name)
			}
			tensors[prefix+name] = raw
		}
		if e.Selected != nil {
			tensors[prefix+selectedKey] = e.Selected
		}
		metadata[prefix+"lambda"] = formatFloat(e.Lambda)
		metadata[prefix+"objective"] = formatFloat(e.Objective)
		metadata[prefix+"loss"] = formatFloat(e.Loss)
		metadata[prefix+"iterations"] = strconv.Itoa(e.Iterations)
	}

	if err := serialization.WriteSafeTensors(filename, tensors, metadata); err != nil {
		return fmt.Errorf("save path: %w", err)
	}
	return nil
}

// Load reads a path written by Save.
func Load(filename string) (Path, error) {
	tensors, metadata, err := serialization.ReadSafeTensors(filename)
	if err != nil {
		return nil, fmt.Errorf("load path: %w", err)
	}
	if metadata["format"] != archiveFormat {
		return nil, fmt.Errorf("%s: %w", filename, ErrNotAPath)
	}

	steps, err := strconv.Atoi(metadata["steps"])
	if err != nil || steps < 0 {
		return nil, fmt.Errorf("%s: %w: bad step count %q", filename, ErrNotAPath, metadata["steps"])
	}

	p := make(Path, steps)
	for step := range p {
		prefix := strconv.Itoa(step) + "/"
		e := &p[step]
		if e.Lambda, err = parseFloat(metadata, prefix+"lambda"); err != nil {
			return nil, fmt.Errorf("%s: %w", filename, err)
		}
		if e.Objective, err = parseFloat(metadata, prefix+"objective"); err != nil {
			return nil, fmt.Errorf("%s: %w", filename, err)
		}
		if e.Loss, err = parseFloat(metadata, prefix+"loss"); err != nil {
			return nil, fmt.Errorf("%s: %w", filename, err)
		}
		if e.Iterations, err = strconv.Atoi(metadata[prefix+"iterations"]); err != nil {
			return nil, fmt.Errorf("%s: %w: iterations of step %d", filename, ErrNotAPath, step)
		}
		e.StateDict = make(StateDict)
	}

	for key, raw := range tensors {
		stepStr, name, ok := strings.Cut(key, "/")
		step, err := strconv.Atoi(stepStr)
		if !ok || err != nil || step < 0 || step >= steps {
			return nil, fmt.Errorf("%s: %w: unexpected tensor %q", filename, ErrNotAPath, key)
		}
		if name == selectedKey {
			p[step].Selected = raw
			continue
		}
		p[step].StateDict[name] = raw
	}

	return p, nil
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}

func parseFloat(metadata map[string]string, key string) (float64, error) {
	v, err := strconv.ParseFloat(metadata[key], 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %s: %w", ErrNotAPath, key, err)
	}
	return v, nil
}
