package main

import (
	"fmt"
	"math"

	"github.com/spf13/cobra"

	"github.com/born-ml/lassopath/internal/scatter"
	"github.com/born-ml/lassopath/internal/serialization"
	"github.com/born-ml/lassopath/internal/tensor"
)

func newLogSumExpCmd(a *app) *cobra.Command {
	var (
		inputKey string
		indexKey string
		outFile  string
		dim      int
		groups   int
		asJSON   bool
	)

	cmd := &cobra.Command{
		Use:   "logsumexp DATA_FILE",
		Short: "Grouped log-sum-exp of a tensor stored in a SafeTensors file",
		Long: `Computes log(sum(exp(x))) over the elements of the input tensor that
share a group id in the index tensor, along --dim. The index is either the
input's shape or 1-D along --dim. Empty groups yield -Inf.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			tensors, _, err := serialization.ReadSafeTensors(args[0])
			if err != nil {
				return err
			}
			input, index := tensors[inputKey], tensors[indexKey]
			if input == nil || index == nil {
				return fmt.Errorf("%s: need tensors %q and %q", args[0], inputKey, indexKey)
			}
			if err := checkFloat(inputKey, input); err != nil {
				return err
			}

			switch index.DType() {
			case tensor.Int32, tensor.Int64:
			default:
				return fmt.Errorf("tensor %q has dtype %s, want an integer type", indexKey, index.DType())
			}
			if err := checkGroupIDs(indexKey, index, groups); err != nil {
				return err
			}

			backend := a.backend()
			if index.DType() == tensor.Int64 {
				index = backend.Cast(index, tensor.Int32)
			}

			reducer, err := scatter.New(backend, scatter.WithStrategy(scatter.Strategy(a.cfg.Scatter.Strategy)))
			if err != nil {
				return err
			}
			a.logger.Debug("grouped logsumexp", "strategy", reducer.Strategy(), "shape", input.Shape())

			opts := []scatter.Option{scatter.Dim(dim)}
			if groups > 0 {
				opts = append(opts, scatter.OutputSize(groups))
			}
			result := reducer.LogSumExp(input, index, opts...)

			if outFile != "" {
				return serialization.WriteSafeTensors(outFile, map[string]*tensor.RawTensor{"logsumexp": result},
					map[string]string{"strategy": string(reducer.Strategy())})
			}

			values := result.Float64s()
			if asJSON {
				return writeJSON(cmd.OutOrStdout(), map[string]any{
					"shape":  result.Shape(),
					"values": numbers(values),
				})
			}
			for _, v := range values {
				fmt.Fprintf(cmd.OutOrStdout(), "%.10g\n", v)
			}
			return nil
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&inputKey, "input", "x", "tensor name of the values")
	flags.StringVar(&indexKey, "index", "index", "tensor name of the group ids")
	flags.IntVar(&dim, "dim", -1, "grouping axis")
	flags.IntVar(&groups, "groups", 0, "number of groups (0 = max(index)+1)")
	flags.StringVar(&outFile, "out", "", "write the result to this SafeTensors file instead of stdout")
	flags.BoolVar(&asJSON, "json", false, "write JSON instead of one value per line")
	return cmd
}

// checkGroupIDs rejects ids the reducer cannot place: negative ones, ones
// beyond --groups, and ones that do not fit an int32.
func checkGroupIDs(name string, index *tensor.RawTensor, groups int) error {
	limit := math.MaxInt32
	if groups > 0 {
		limit = groups - 1
	}
	for i, id := range index.Float64s() {
		if id < 0 || id > float64(limit) {
			return fmt.Errorf("tensor %q: group id %v at %d outside [0, %d]", name, id, i, limit)
		}
	}
	return nil
}
