package router

import (
	"bytes"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/DjordjeVuckovic/rankeval/internal/apperr"
	"github.com/DjordjeVuckovic/rankeval/internal/bench/metrics"
	"github.com/DjordjeVuckovic/rankeval/internal/dataset"
	"github.com/DjordjeVuckovic/rankeval/internal/storage"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

const defaultJobName = "api"

type EvalRouter struct {
	e     *echo.Echo
	store storage.RunStore
	opts  metrics.Options
}

type EvalRouterOption func(*EvalRouter)

// WithWorkers bounds the row parallelism of each evaluation.
func WithWorkers(n int) EvalRouterOption {
	return func(r *EvalRouter) {
		r.opts.Workers = n
	}
}

func NewEvalRouter(e *echo.Echo, store storage.RunStore, opts ...EvalRouterOption) *EvalRouter {
	r := &EvalRouter{
		e:     e,
		store: store,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

func (r *EvalRouter) Bind() {
	g := r.e.Group("/v1")
	g.POST("/evaluate", r.evaluateHandler)
	g.GET("/runs", r.listRunsHandler)
	g.GET("/runs/:id", r.getRunHandler)
}

// evaluateHandler godoc
// @Summary Evaluate precision@k and recall@k
// @Description Scores each row's top-k columns against its relevant items, optionally excluding training items and saving the summary
// @Tags evaluate
// @Accept json
// @Produce json
// @Param request body EvaluateRequest true "Scores, relevance and cutoffs"
// @Success 200 {object} EvaluateResponse
// @Failure 400 {object} ErrorResponse
// @Failure 422 {object} ErrorResponse
// @Router /v1/evaluate [post]
func (r *EvalRouter) evaluateHandler(c echo.Context) error {
	var req EvaluateRequest
	if err := c.Bind(&req); err != nil {
		return err
	}

	if len(req.Scores) == 0 {
		return apperr.NewValidation("scores is required")
	}
	if req.Cutoffs == nil {
		return apperr.NewValidation("cutoffs is required")
	}

	scores, err := dataset.ReadMatrixJSON(bytes.NewReader(req.Scores))
	if err != nil {
		return err
	}

	opts := r.opts
	opts.Offset = req.Offset
	if req.TrainRelevance != nil {
		opts.TrainRelevance = metrics.RelevanceFromLists(req.TrainRelevance)
	}

	ctx := c.Request().Context()
	res, err := metrics.Evaluate(ctx, scores, metrics.RelevanceFromLists(req.Relevance), req.Cutoffs, opts)
	if err != nil {
		return err
	}

	summary := res.Mean()
	resp := EvaluateResponse{Cutoffs: res.Cutoffs}
	if req.ReturnAll {
		resp.Precision, resp.Recall = res.Precision, res.Recall
	} else {
		resp.Precision, resp.Recall = summary.Precision, summary.Recall
	}

	if req.Save {
		name := req.JobName
		if name == "" {
			name = defaultJobName
		}
		run := storage.NewRun(name, scores.Shape(), req.Offset, opts.TrainRelevance != nil, summary)
		id, err := r.store.Save(ctx, run)
		if err != nil {
			return err
		}
		resp.RunID = &id
		slog.Info("Run saved", "id", id, "job", name)
	}

	return c.JSON(http.StatusOK, resp)
}

// listRunsHandler godoc
// @Summary List stored runs
// @Tags runs
// @Produce json
// @Param limit query int false "Maximum number of runs" default(50)
// @Success 200 {object} RunListResponse
// @Failure 400 {object} ErrorResponse
// @Router /v1/runs [get]
func (r *EvalRouter) listRunsHandler(c echo.Context) error {
	limit := 0
	if v := c.QueryParam("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			return apperr.NewValidation("limit must be a positive integer")
		}
		limit = n
	}

	runs, err := r.store.List(c.Request().Context(), limit)
	if err != nil {
		return err
	}

	resp := RunListResponse{Runs: make([]RunResponse, 0, len(runs))}
	for _, run := range runs {
		resp.Runs = append(resp.Runs, toRunResponse(run))
	}
	resp.Count = len(resp.Runs)

	return c.JSON(http.StatusOK, resp)
}

// getRunHandler godoc
// @Summary Get a stored run
// @Tags runs
// @Produce json
// @Param id path string true "Run ID"
// @Success 200 {object} RunResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /v1/runs/{id} [get]
func (r *EvalRouter) getRunHandler(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return apperr.NewValidationWrap("invalid run id", err)
	}

	run, err := r.store.Get(c.Request().Context(), id)
	if errors.Is(err, storage.ErrRunNotFound) {
		return echo.NewHTTPError(http.StatusNotFound, "run not found")
	}
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, toRunResponse(*run))
}
