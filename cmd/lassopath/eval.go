package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/born-ml/lassopath/internal/model"
	"github.com/born-ml/lassopath/internal/path"
	"github.com/born-ml/lassopath/internal/serialization"
	"github.com/born-ml/lassopath/internal/stats"
	"github.com/born-ml/lassopath/internal/telemetry"
	"github.com/born-ml/lassopath/internal/tensor"
)

var scoreFuncs = map[string]path.ScoreFunc{
	"model":   nil,
	"r2":      model.R2Score,
	"mse":     model.MeanSquaredError,
	"neg_mse": model.NegMeanSquaredError,
}

type stepSummary struct {
	Step      int    `json:"step"`
	N         int    `json:"n"`
	Mean      number `json:"mean"`
	HalfWidth number `json:"half_width"`
}

func newEvalCmd(a *app) *cobra.Command {
	var (
		dataFile string
		xKey     string
		yKey     string
		score    string
		asJSON   bool
	)

	cmd := &cobra.Command{
		Use:   "eval --data DATA_FILE PATH_FILE...",
		Short: "Score a linear model at every snapshot of each path",
		Long: `Restores every path snapshot into a linear model and scores it on the
held-out tensors X and y stored in DATA_FILE. With several paths the
per-step mean score and its confidence interval are reported too.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Flags().Changed("score") {
				a.cfg.Eval.Score = score
			}
			scoreFn, ok := scoreFuncs[a.cfg.Eval.Score]
			if !ok {
				return fmt.Errorf("unknown score %q", a.cfg.Eval.Score)
			}

			X, y, err := loadXY(dataFile, xKey, yKey)
			if err != nil {
				return err
			}
			paths, err := loadPaths(a, args)
			if err != nil {
				return err
			}

			backend := a.backend()
			outputs := 1
			if len(y.Shape()) == 2 {
				outputs = y.Shape()[1]
			}
			newModel := func() path.Model {
				return model.NewLinear(X.Shape()[1], outputs, backend)
			}

			metrics := telemetry.New()
			opts := []path.EvalOption{
				path.WithLogger(a.logger),
				path.WithObserver(metrics),
				path.WithConcurrency(a.cfg.Eval.Concurrency),
			}
			if scoreFn != nil {
				opts = append(opts, path.WithScoreFunc(scoreFn))
			}

			scores, err := path.EvalPaths(cmd.Context(), newModel, paths, X, y, opts...)
			if err != nil {
				return err
			}
			a.logger.Info("paths evaluated", "paths", len(paths), "score", a.cfg.Eval.Score)

			if a.cfg.Metrics.Textfile != "" {
				if err := metrics.WriteTextfile(a.cfg.Metrics.Textfile); err != nil {
					return err
				}
			}

			summary, err := summarizeSteps(a, scores)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if asJSON {
				js := make([][]number, len(scores))
				for i, s := range scores {
					js[i] = numbers(s)
				}
				return writeJSON(out, map[string]any{"scores": js, "summary": summary})
			}

			tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "path\tstep\tlambda\tselected\tscore")
			for i, s := range scores {
				for step, v := range s {
					e := paths[i][step]
					fmt.Fprintf(tw, "%d\t%d\t%.6g\t%d\t%.6g\n", i, step, e.Lambda, e.NumSelected(), v)
				}
			}
			if len(summary) > 0 {
				fmt.Fprintln(tw, "\nstep\tn\tmean\thalf_width")
				for _, s := range summary {
					fmt.Fprintf(tw, "%d\t%d\t%.6g\t%.6g\n", s.Step, s.N, float64(s.Mean), float64(s.HalfWidth))
				}
			}
			return tw.Flush()
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&dataFile, "data", "", "SafeTensors file holding the held-out data")
	flags.StringVar(&xKey, "x-key", "X", "tensor name of the features, shape [n, in]")
	flags.StringVar(&yKey, "y-key", "y", "tensor name of the targets, shape [n] or [n, out]")
	flags.StringVar(&score, "score", "", "score function: model, r2, mse or neg_mse")
	flags.BoolVar(&asJSON, "json", false, "write JSON instead of a table")
	_ = cmd.MarkFlagRequired("data")
	return cmd
}

func loadXY(dataFile, xKey, yKey string) (X, y *tensor.RawTensor, err error) {
	tensors, _, err := serialization.ReadSafeTensors(dataFile)
	if err != nil {
		return nil, nil, err
	}
	X, y = tensors[xKey], tensors[yKey]
	if X == nil || y == nil {
		return nil, nil, fmt.Errorf("%s: need tensors %q and %q", dataFile, xKey, yKey)
	}
	if len(X.Shape()) != 2 {
		return nil, nil, fmt.Errorf("%s: %q must be 2-D, got %v", dataFile, xKey, X.Shape())
	}
	if err := checkFloat(xKey, X); err != nil {
		return nil, nil, err
	}
	if err := checkFloat(yKey, y); err != nil {
		return nil, nil, err
	}
	return X, y, nil
}

// summarizeSteps reports the mean score and confidence half-width over
// the paths reaching each step, for steps reached by at least two paths.
func summarizeSteps(a *app, scores [][]float64) ([]stepSummary, error) {
	est, err := stats.NewEstimator(stats.WithConfidence(a.cfg.Stats.Confidence))
	if err != nil {
		return nil, err
	}

	var out []stepSummary
	for step := 0; ; step++ {
		var sample []float64
		for _, s := range scores {
			if step < len(s) {
				sample = append(sample, s[step])
			}
		}
		if len(sample) == 0 {
			return out, nil
		}
		if len(sample) < 2 {
			continue
		}
		sum := est.Summarize(sample)
		out = append(out, stepSummary{Step: step, N: sum.N, Mean: number(sum.Mean), HalfWidth: number(sum.HalfWidth)})
	}
}
