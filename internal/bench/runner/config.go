package runner

import (
	"github.com/DjordjeVuckovic/rankeval/internal/bench/metrics"
	"github.com/DjordjeVuckovic/rankeval/internal/bench/spec"
)

const (
	DefaultWarmupRuns = 0
	DefaultRuns       = 1
)

type Config struct {
	Cutoffs    metrics.Cutoffs
	Workers    int
	WarmupRuns int
	Runs       int
}

func DefaultConfig() Config {
	return Config{
		Cutoffs:    spec.DefaultCutoffs,
		WarmupRuns: DefaultWarmupRuns,
		Runs:       DefaultRuns,
	}
}

// ConfigFromSpec takes metric and run settings from a validated spec.
func ConfigFromSpec(s *spec.EvalSpec) Config {
	return Config{
		Cutoffs:    s.Metrics.Cutoffs,
		Workers:    s.Metrics.Workers,
		WarmupRuns: s.Runs.Warmup,
		Runs:       max(s.Runs.Iterations, 1),
	}
}
