// Package config loads the lassopath YAML configuration.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/born-ml/lassopath/internal/parallel"
)

var validate = validator.New()

// Config is the full configuration.
type Config struct {
	Log      LogConfig      `yaml:"log" json:"log"`
	Scatter  ScatterConfig  `yaml:"scatter" json:"scatter"`
	Eval     EvalConfig     `yaml:"eval" json:"eval"`
	Stats    StatsConfig    `yaml:"stats" json:"stats"`
	Parallel ParallelConfig `yaml:"parallel" json:"parallel"`
	Metrics  MetricsConfig  `yaml:"metrics" json:"metrics"`
}

// LogConfig controls the CLI logger.
type LogConfig struct {
	Level  string `yaml:"level" json:"level" validate:"required,oneof=debug info warn error"`
	Format string `yaml:"format" json:"format" validate:"required,oneof=text json"`
}

// ScatterConfig selects the grouped reduction realization.
type ScatterConfig struct {
	Strategy string `yaml:"strategy" json:"strategy" validate:"required,oneof=auto native fallback"`
}

// EvalConfig controls path evaluation.
type EvalConfig struct {
	// Concurrency bounds how many paths are evaluated at once; 0 means no
	// limit.
	Concurrency int    `yaml:"concurrency" json:"concurrency" validate:"min=0"`
	Score       string `yaml:"score" json:"score" validate:"required,oneof=model r2 mse neg_mse"`
}

// StatsConfig controls confidence intervals.
type StatsConfig struct {
	Confidence float64 `yaml:"confidence" json:"confidence" validate:"gt=0,lt=1"`
}

// ParallelConfig controls CPU kernel parallelism.
type ParallelConfig struct {
	// Workers is the goroutine count per kernel; 0 uses every CPU and 1
	// runs kernels sequentially.
	Workers      int `yaml:"workers" json:"workers" validate:"min=0"`
	MinChunkSize int `yaml:"min_chunk_size" json:"min_chunk_size" validate:"min=1"`
}

// MetricsConfig controls the Prometheus textfile dump.
type MetricsConfig struct {
	// Textfile is written after evaluation when set.
	Textfile string `yaml:"textfile" json:"textfile"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Log:      LogConfig{Level: "info", Format: "text"},
		Scatter:  ScatterConfig{Strategy: "auto"},
		Eval:     EvalConfig{Concurrency: 0, Score: "model"},
		Stats:    StatsConfig{Confidence: 0.95},
		Parallel: ParallelConfig{Workers: 0, MinChunkSize: parallel.DefaultConfig().MinChunkSize},
	}
}

// Load reads filename over the defaults and validates the result. Unknown
// keys are rejected.
func Load(filename string) (Config, error) {
	//nolint:gosec // G304: path is chosen by the caller.
	data, err := os.ReadFile(filename)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}
	cfg, err := Parse(data)
	if err != nil {
		return Config{}, fmt.Errorf("%s: %w", filename, err)
	}
	return cfg, nil
}

// Parse decodes YAML over the defaults and validates the result.
func Parse(data []byte) (Config, error) {
	cfg := Default()

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks every field constraint.
func (c Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("config validation failed: %w", err)
	}
	return nil
}

// ParallelConfig converts the kernel settings to a parallel.Config.
func (c Config) ParallelConfig() parallel.Config {
	cfg := parallel.DefaultConfig()
	cfg.MinChunkSize = c.Parallel.MinChunkSize
	if c.Parallel.Workers > 0 {
		cfg = cfg.WithWorkers(c.Parallel.Workers)
	}
	return cfg
}
