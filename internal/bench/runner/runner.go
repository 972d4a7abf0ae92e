package runner

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/DjordjeVuckovic/rankeval/internal/bench/metrics"
	"github.com/DjordjeVuckovic/rankeval/internal/bench/spec"
	"github.com/DjordjeVuckovic/rankeval/internal/dataset"
	"github.com/google/uuid"
)

type Runner struct {
	config Config
}

func New(cfg Config) *Runner {
	if cfg.Runs <= 0 {
		cfg.Runs = DefaultRuns
	}
	return &Runner{config: cfg}
}

// Input is a loaded evaluation problem.
type Input struct {
	Scores         *metrics.Matrix
	Relevance      metrics.Relevance
	TrainRelevance metrics.Relevance
}

// RunAll evaluates every job in spec order. A failing job records its error
// and the remaining jobs still run; only context cancellation stops the run.
func (r *Runner) RunAll(ctx context.Context, es *spec.EvalSpec) (*BenchmarkResult, error) {
	br := &BenchmarkResult{StartedAt: time.Now(), Config: r.config}

	for _, job := range es.Jobs {
		if err := ctx.Err(); err != nil {
			return br, err
		}

		jr := r.RunJob(ctx, job)
		if jr.Failed() {
			slog.Warn("Job failed", "job", job.Name, "error", jr.Error)
		} else {
			slog.Info("Job finished", "job", job.Name, "run_id", jr.RunID, "p50", jr.Latency.P50())
		}
		br.Jobs = append(br.Jobs, jr)
	}

	return br, nil
}

// RunJob loads the job's datasets from disk and evaluates them.
func (r *Runner) RunJob(ctx context.Context, job spec.Job) *JobResult {
	in, err := LoadInput(job)
	if err != nil {
		return &JobResult{RunID: uuid.New(), JobName: job.Name, Offset: job.Offset, ReturnAll: job.ReturnAll, Error: err}
	}
	return r.Evaluate(ctx, job, in)
}

// Evaluate runs the warmup and measured iterations for one loaded job. The
// result of the last measured iteration is kept.
func (r *Runner) Evaluate(ctx context.Context, job spec.Job, in Input) *JobResult {
	jr := &JobResult{
		RunID:         uuid.New(),
		JobName:       job.Name,
		Offset:        job.Offset,
		ReturnAll:     job.ReturnAll,
		TrainExcluded: in.TrainRelevance != nil,
	}
	if in.Scores != nil {
		jr.Shape = in.Scores.Shape()
	}

	cutoffs := job.Cutoffs
	if len(cutoffs) == 0 {
		cutoffs = r.config.Cutoffs
	}
	opts := metrics.Options{
		TrainRelevance: in.TrainRelevance,
		Offset:         job.Offset,
		Workers:        r.config.Workers,
	}

	for i := 0; i < r.config.WarmupRuns; i++ {
		if _, err := metrics.Evaluate(ctx, in.Scores, in.Relevance, cutoffs, opts); err != nil {
			jr.Error = fmt.Errorf("evaluate job %q: %w", job.Name, err)
			return jr
		}
	}

	latencies := make([]time.Duration, 0, r.config.Runs)
	var res *metrics.Result
	for i := 0; i < r.config.Runs; i++ {
		start := time.Now()
		out, err := metrics.Evaluate(ctx, in.Scores, in.Relevance, cutoffs, opts)
		if err != nil {
			jr.Error = fmt.Errorf("evaluate job %q: %w", job.Name, err)
			return jr
		}
		latencies = append(latencies, time.Since(start))
		res = out
	}

	jr.Summary = res.Mean()
	if job.ReturnAll {
		jr.PerRow = res
	}
	jr.Latency = ComputeLatencyStats(latencies)
	return jr
}

// LoadInput reads the scores, relevance and optional training relevance of a job.
func LoadInput(job spec.Job) (Input, error) {
	scores, err := dataset.LoadMatrix(job.Scores)
	if err != nil {
		return Input{}, err
	}

	// sparse CSV relevance must cover every evaluated row
	rows := scores.Rows() + job.Offset

	relevance, err := dataset.LoadRelevance(job.Relevance, rows)
	if err != nil {
		return Input{}, err
	}

	in := Input{Scores: scores, Relevance: relevance}
	if job.TrainRelevance != "" {
		in.TrainRelevance, err = dataset.LoadRelevance(job.TrainRelevance, rows)
		if err != nil {
			return Input{}, err
		}
	}
	return in, nil
}
