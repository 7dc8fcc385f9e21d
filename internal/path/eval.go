package path

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/born-ml/lassopath/internal/logging"
	"github.com/born-ml/lassopath/internal/tensor"
)

// ScoreFunc scores predictions against targets. Higher is better by
// convention, but EvalOnPath does not rely on it.
type ScoreFunc func(yTrue, yPred *tensor.RawTensor) (float64, error)

// Evaluation describes one scored path element.
type Evaluation struct {
	Path     int // Index into the paths given to EvalPaths; 0 for EvalOnPath
	Step     int
	Lambda   float64
	Selected int // Number of selected variables
	Score    float64
	Duration time.Duration
}

// Observer receives every successful evaluation. Implementations must be
// safe for concurrent use when passed to EvalPaths.
type Observer interface {
	ObserveEvaluation(Evaluation)
}

// EvalOption configures EvalOnPath and EvalPaths.
type EvalOption func(*evalConfig)

type evalConfig struct {
	score       ScoreFunc
	observer    Observer
	logger      *slog.Logger
	concurrency int
}

// WithScoreFunc scores Predict(X) against y with fn instead of calling the
// model's own Score.
func WithScoreFunc(fn ScoreFunc) EvalOption {
	return func(c *evalConfig) {
		c.score = fn
	}
}

// WithObserver reports every evaluation to o.
func WithObserver(o Observer) EvalOption {
	return func(c *evalConfig) {
		c.observer = o
	}
}

// WithLogger sets the logger. Evaluations are logged at debug level. A nil
// logger keeps the default, which discards.
func WithLogger(logger *slog.Logger) EvalOption {
	return func(c *evalConfig) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithConcurrency bounds the number of paths EvalPaths evaluates at once.
// Values below 1 mean no limit.
func WithConcurrency(n int) EvalOption {
	return func(c *evalConfig) {
		c.concurrency = n
	}
}

func newEvalConfig(opts []EvalOption) evalConfig {
	cfg := evalConfig{logger: logging.NewNop()}
	for _, opt := range opts {
		opt(&cfg)
	}
	return cfg
}

// EvalOnPath loads each element of p into model in order and scores it on
// (X, y), returning one score per element.
//
// The model acts as a cursor: every Load overwrites the previous snapshot,
// and on return the model holds the last element's parameters. By default
// the score is model.Score(X, y); WithScoreFunc switches to
// fn(y, model.Predict(X)).
//
// Load, predict and score errors stop the evaluation and are returned
// wrapped with the failing step.
func EvalOnPath(model Model, p Path, X, y *tensor.RawTensor, opts ...EvalOption) ([]float64, error) {
	cfg := newEvalConfig(opts)
	return evalOnPath(context.Background(), model, p, 0, X, y, &cfg)
}

// EvalPaths evaluates every path with its own model from newModel and
// returns the scores in path order.
//
// Paths run concurrently, at most WithConcurrency at a time. The first
// error cancels the remaining work and is returned; so is ctx's error if it
// is cancelled first.
func EvalPaths(ctx context.Context, newModel func() Model, paths []Path, X, y *tensor.RawTensor, opts ...EvalOption) ([][]float64, error) {
	cfg := newEvalConfig(opts)
	scores := make([][]float64, len(paths))

	g, gctx := errgroup.WithContext(ctx)
	if cfg.concurrency > 0 {
		g.SetLimit(cfg.concurrency)
	}

	for i, p := range paths {
		g.Go(func() error {
			s, err := evalOnPath(gctx, newModel(), p, i, X, y, &cfg)
			if err != nil {
				return fmt.Errorf("path %d: %w", i, err)
			}
			scores[i] = s
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return scores, nil
}

func evalOnPath(ctx context.Context, model Model, p Path, pathIndex int, X, y *tensor.RawTensor, cfg *evalConfig) ([]float64, error) {
	scores := make([]float64, 0, len(p))

	for step, e := range p {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		start := time.Now()
		if err := model.Load(e.StateDict); err != nil {
			return nil, fmt.Errorf("step %d: load: %w", step, err)
		}
		score, err := cfg.scoreOne(model, X, y)
		if err != nil {
			return nil, fmt.Errorf("step %d: %w", step, err)
		}
		scores = append(scores, score)

		ev := Evaluation{
			Path:     pathIndex,
			Step:     step,
			Lambda:   e.Lambda,
			Selected: e.NumSelected(),
			Score:    score,
			Duration: time.Since(start),
		}
		cfg.logger.Debug("evaluated path element",
			"path", ev.Path, "step", ev.Step, "lambda", ev.Lambda,
			"selected", ev.Selected, "score", ev.Score, "duration", ev.Duration)
		if cfg.observer != nil {
			cfg.observer.ObserveEvaluation(ev)
		}
	}

	return scores, nil
}

func (c *evalConfig) scoreOne(model Model, X, y *tensor.RawTensor) (float64, error) {
	if c.score == nil {
		score, err := model.Score(X, y)
		if err != nil {
			return 0, fmt.Errorf("score: %w", err)
		}
		return score, nil
	}

	pred, err := model.Predict(X)
	if err != nil {
		return 0, fmt.Errorf("predict: %w", err)
	}
	score, err := c.score(y, pred)
	if err != nil {
		return 0, fmt.Errorf("score: %w", err)
	}
	return score, nil
}
