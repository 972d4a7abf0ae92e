package router

import (
	"encoding/json"
	"time"

	"github.com/DjordjeVuckovic/rankeval/internal/bench/metrics"
	"github.com/DjordjeVuckovic/rankeval/internal/storage"
	"github.com/google/uuid"
)

// EvaluateRequest carries one evaluation. Scores is decoded separately so a
// non 2-D payload reports its shape instead of a generic bind error.
type EvaluateRequest struct {
	JobName        string          `json:"job_name,omitempty" example:"val"`
	Scores         json.RawMessage `json:"scores" swaggertype:"array,number"`
	Relevance      [][]int         `json:"relevance"`
	TrainRelevance [][]int         `json:"train_relevance,omitempty"`
	Cutoffs        metrics.Cutoffs `json:"cutoffs" swaggertype:"array,integer"`
	ReturnAll      bool            `json:"return_all"`
	Offset         int             `json:"offset"`
	Save           bool            `json:"save"`
}

// EvaluateResponse holds per-cutoff means, or per-row values when
// return_all was requested.
type EvaluateResponse struct {
	RunID     *uuid.UUID `json:"run_id,omitempty" swaggertype:"string" format:"uuid"`
	Cutoffs   []int      `json:"cutoffs"`
	Precision any        `json:"precision" swaggertype:"array,number"`
	Recall    any        `json:"recall" swaggertype:"array,number"`
}

// ErrorResponse mirrors the body written by apperr.GlobalErrorHandler.
type ErrorResponse struct {
	Error string `json:"error"`
	Title string `json:"title,omitempty"`
}

type RunResponse struct {
	ID            uuid.UUID `json:"id" swaggertype:"string" format:"uuid"`
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

type RunListResponse struct {
	Runs  []RunResponse `json:"runs"`
	Count int           `json:"count"`
}

func toRunResponse(r storage.Run) RunResponse {
	return RunResponse{
		ID:            r.ID,
		JobName:       r.JobName,
		Rows:          r.Rows,
		Cols:          r.Cols,
		Offset:        r.Offset,
		TrainExcluded: r.TrainExcluded,
		Cutoffs:       r.Cutoffs,
		Precision:     r.Precision,
		Recall:        r.Recall,
		CreatedAt:     r.CreatedAt,
	}
}
