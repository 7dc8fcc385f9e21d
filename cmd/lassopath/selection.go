package main

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/born-ml/lassopath/internal/path"
)

func newSelectionCmd(a *app) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "selection PATH_FILE...",
		Short: "Aggregate selection masks of several paths into a probability curve",
		Long: `Loads every path archive, averages the per-step selection masks across
paths (paths that ended early count as selecting nothing) and clamps each
variable's curve to be non-increasing in step.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			paths, err := loadPaths(a, args)
			if err != nil {
				return err
			}

			backend := a.backend()
			curve, err := path.SelectionProbability(backend, paths)
			if err != nil {
				return err
			}

			rows := make([][]float64, len(curve))
			for i, probs := range curve {
				rows[i] = probs.Raw().Float64s()
			}
			a.logger.Info("selection probability computed", "paths", len(paths), "steps", len(rows))

			out := cmd.OutOrStdout()
			if asJSON {
				js := make([][]number, len(rows))
				for i, r := range rows {
					js[i] = numbers(r)
				}
				return writeJSON(out, map[string]any{"paths": len(paths), "probabilities": js})
			}

			tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
			for i, r := range rows {
				cells := make([]string, len(r))
				for j, p := range r {
					cells[j] = fmt.Sprintf("%.4f", p)
				}
				fmt.Fprintf(tw, "%d\t%s\n", i, strings.Join(cells, "\t"))
			}
			return tw.Flush()
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "write JSON instead of a table")
	return cmd
}

func loadPaths(a *app, files []string) ([]path.Path, error) {
	paths := make([]path.Path, len(files))
	for i, f := range files {
		p, err := path.Load(f)
		if err != nil {
			return nil, err
		}
		a.logger.Debug("path loaded", "file", f, "steps", len(p))
		paths[i] = p
	}
	return paths, nil
}
