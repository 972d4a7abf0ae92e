package runner

import (
	"time"

	"github.com/DjordjeVuckovic/rankeval/internal/bench/metrics"
	"github.com/google/uuid"
)

type JobResult struct {
	RunID     uuid.UUID
	JobName   string
	Shape     [2]int
	Offset    int
	ReturnAll bool
	// TrainExcluded is set when training relevance was applied.
	TrainExcluded bool
	Summary       metrics.Summary
	// PerRow is only kept for jobs with ReturnAll.
	PerRow  *metrics.Result
	Latency LatencyStats
	Error   error
}

func (jr *JobResult) Failed() bool {
	return jr.Error != nil
}

type BenchmarkResult struct {
	StartedAt time.Time
	Jobs      []*JobResult
	Config    Config
}

func (br *BenchmarkResult) ErrorCount() int {
	var n int
	for _, jr := range br.Jobs {
		if jr.Failed() {
			n++
		}
	}
	return n
}
