package main

import (
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/born-ml/lassopath/internal/stats"
)

func newCICmd(a *app) *cobra.Command {
	var (
		confidence float64
		fromStdin  bool
	)

	cmd := &cobra.Command{
		Use:   "ci [VALUE...]",
		Short: "Student-t confidence interval half-width of a sample",
		Long: `With VALUE arguments prints the mean and the confidence-interval
half-width of that sample. With --stdin reads a JSON array, possibly nested,
and prints the half-width of every innermost sample in the same nesting.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Flags().Changed("confidence") {
				a.cfg.Stats.Confidence = confidence
			}
			est, err := stats.NewEstimator(stats.WithConfidence(a.cfg.Stats.Confidence))
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()

			if fromStdin {
				if len(args) > 0 {
					return fmt.Errorf("values and --stdin are mutually exclusive")
				}
				var data any
				if err := json.NewDecoder(cmd.InOrStdin()).Decode(&data); err != nil {
					return fmt.Errorf("decode sample: %w", err)
				}
				result, err := est.Nested(data)
				if err != nil {
					return err
				}
				return writeJSON(out, jsonSafe(result))
			}

			if len(args) == 0 {
				return fmt.Errorf("no values given")
			}
			sample := make([]float64, len(args))
			for i, s := range args {
				v, err := strconv.ParseFloat(s, 64)
				if err != nil {
					return fmt.Errorf("value %d: %w", i, err)
				}
				sample[i] = v
			}
			_, err = fmt.Fprintln(out, est.Summarize(sample))
			return err
		},
	}

	cmd.Flags().Float64Var(&confidence, "confidence", stats.DefaultConfidence, "confidence level in (0, 1)")
	cmd.Flags().BoolVar(&fromStdin, "stdin", false, "read a JSON (nested) array from standard input")
	return cmd
}
