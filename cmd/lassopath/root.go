package main

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/born-ml/lassopath/internal/backend/cpu"
	"github.com/born-ml/lassopath/internal/config"
	"github.com/born-ml/lassopath/internal/logging"
	"github.com/born-ml/lassopath/internal/tensor"
)

// app carries the resolved configuration to every subcommand.
type app struct {
	configFile string
	logLevel   string
	logFormat  string
	workers    int

	cfg    config.Config
	logger *slog.Logger
}

func newRootCmd() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:   "lassopath",
		Short: "Evaluate and aggregate feature-selection regularization paths",
		Long: `lassopath works on regularization paths saved as SafeTensors archives:
it scores every snapshot on held-out data, aggregates selection masks of
several paths into a monotone selection-probability curve, and computes
Student-t confidence intervals.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.setup(cmd)
		},
	}

	flags := root.PersistentFlags()
	flags.StringVar(&a.configFile, "config", "", "YAML configuration file")
	flags.StringVar(&a.logLevel, "log-level", "", "log level: debug, info, warn or error")
	flags.StringVar(&a.logFormat, "log-format", "", "log format: text or json")
	flags.IntVar(&a.workers, "workers", 0, "goroutines per CPU kernel (0 = config value)")

	root.AddCommand(
		newSelectionCmd(a),
		newEvalCmd(a),
		newCICmd(a),
		newLogSumExpCmd(a),
		newVersionCmd(),
	)
	return root
}

// setup loads the configuration, applies flag overrides and builds the
// logger.
func (a *app) setup(cmd *cobra.Command) error {
	cfg := config.Default()
	if a.configFile != "" {
		loaded, err := config.Load(a.configFile)
		if err != nil {
			return err
		}
		cfg = loaded
	}

	flags := cmd.Flags()
	if flags.Changed("log-level") {
		cfg.Log.Level = a.logLevel
	}
	if flags.Changed("log-format") {
		cfg.Log.Format = a.logFormat
	}
	if flags.Changed("workers") {
		cfg.Parallel.Workers = a.workers
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	level, err := logging.ParseLevel(cfg.Log.Level)
	if err != nil {
		return err
	}
	a.cfg = cfg
	a.logger = logging.New(cmd.ErrOrStderr(), level, logging.Format(cfg.Log.Format))
	a.logger.Debug("configuration loaded", "file", a.configFile, "workers", cfg.Parallel.Workers,
		"scatter", cfg.Scatter.Strategy)
	return nil
}

func (a *app) backend() *cpu.CPUBackend {
	return cpu.New(cpu.WithParallel(a.cfg.ParallelConfig()))
}

func checkFloat(name string, raw *tensor.RawTensor) error {
	if !raw.DType().IsFloat() {
		return fmt.Errorf("tensor %q has dtype %s, want a float type", name, raw.DType())
	}
	return nil
}
