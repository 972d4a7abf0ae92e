package storage

import (
	"context"
	"errors"
	"time"

	"github.com/DjordjeVuckovic/rankeval/internal/bench/metrics"
	"github.com/google/uuid"
)

// Run is a persisted evaluation summary.
type Run struct {
	ID            uuid.UUID `json:"id"`
	JobName       string    `json:"job_name"`
	Rows          int       `json:"rows"`
	Cols          int       `json:"cols"`
	Offset        int       `json:"offset"`
	TrainExcluded bool      `json:"train_excluded"`
	Cutoffs       []int     `json:"cutoffs"`
	Precision     []float32 `json:"precision"`
	Recall        []float32 `json:"recall"`
	CreatedAt     time.Time `json:"created_at"`
}

func NewRun(jobName string, shape [2]int, offset int, trainExcluded bool, s metrics.Summary) Run {
	return Run{
		ID:            uuid.New(),
		JobName:       jobName,
		Rows:          shape[0],
		Cols:          shape[1],
		Offset:        offset,
		TrainExcluded: trainExcluded,
		Cutoffs:       append([]int(nil), s.Cutoffs...),
		Precision:     append([]float32(nil), s.Precision...),
		Recall:        append([]float32(nil), s.Recall...),
		CreatedAt:     time.Now().UTC(),
	}
}

var ErrRunNotFound = errors.New("run not found")

const DefaultListLimit = 50

type RunStore interface {
	Save(ctx context.Context, run Run) (uuid.UUID, error)
	Get(ctx context.Context, id uuid.UUID) (*Run, error)
	// List returns the newest runs first.
	List(ctx context.Context, limit int) ([]Run, error)
	Healthy(ctx context.Context) bool
}

type Type string

const (
	ES     Type = "es"
	PG     Type = "pg"
	Memory Type = "in_mem"
)

type StorerError string

const (
	ErrUnsupportedStorer StorerError = "unsupported storer type: %s"
)

func (e StorerError) Error() string {
	return string(e)
}

// Prepare fills the id and timestamp of a run about to be saved.
func Prepare(run *Run) {
	if run.ID == uuid.Nil {
		run.ID = uuid.New()
	}
	if run.CreatedAt.IsZero() {
		run.CreatedAt = time.Now().UTC()
	}
}

func NormalizeLimit(limit int) int {
	if limit <= 0 {
		return DefaultListLimit
	}
	return min(limit, 1000)
}
