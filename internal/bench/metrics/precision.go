package metrics

import (
	"context"
	"runtime"

	"github.com/DjordjeVuckovic/rankeval/internal/apperr"
	"golang.org/x/sync/errgroup"
)

// Options tune an evaluation call. The zero value evaluates without training
// exclusion, at offset 0, on GOMAXPROCS workers.
type Options struct {
	// TrainRelevance lists items seen during training. When non-nil they are
	// skipped inside the top-k window and never count as hits.
	TrainRelevance Relevance
	// Offset maps matrix row r to relevance[r+Offset].
	Offset  int
	Workers int
}

// Evaluate computes precision@k and recall@k for every row and every cutoff.
//
// A row whose relevance set is empty scores 0 for both metrics. With training
// relevance, training items inside the top-k window are skipped without
// consuming the budget, and the window is not refilled from items ranked
// below k, so fewer than k items may be judged for that row.
func Evaluate(ctx context.Context, scores *Matrix, relevance Relevance, cutoffs Cutoffs, opts Options) (*Result, error) {
	if err := validateInput(scores, cutoffs); err != nil {
		return nil, err
	}

	rows := scores.Rows()
	res := newResult(cutoffs, rows)
	if rows == 0 {
		return res, nil
	}

	workers := opts.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	workers = min(workers, rows)
	chunk := (rows + workers - 1) / workers

	g, gctx := errgroup.WithContext(ctx)
	for start := 0; start < rows; start += chunk {
		end := min(start+chunk, rows)
		g.Go(func() error {
			return evaluateRows(gctx, scores, relevance, cutoffs, opts, res, start, end)
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return res, nil
}

// PrecisionRecall is Evaluate reduced to the mean over rows for each cutoff.
func PrecisionRecall(ctx context.Context, scores *Matrix, relevance Relevance, cutoffs Cutoffs, opts Options) (*Summary, error) {
	res, err := Evaluate(ctx, scores, relevance, cutoffs, opts)
	if err != nil {
		return nil, err
	}
	s := res.Mean()
	return &s, nil
}

func validateInput(scores *Matrix, cutoffs Cutoffs) error {
	if scores == nil {
		return apperr.NewShape(nil, "scores are missing")
	}
	if err := cutoffs.Validate(); err != nil {
		return err
	}
	if cutoffs.Max() > scores.Cols() {
		return apperr.NewCutoffBound(append([]int(nil), cutoffs...), scores.Shape())
	}
	return nil
}

func evaluateRows(ctx context.Context, scores *Matrix, relevance Relevance, cutoffs Cutoffs, opts Options, res *Result, start, end int) error {
	buf := make([]int, scores.Cols())

	for r := start; r < end; r++ {
		if err := ctx.Err(); err != nil {
			return err
		}

		rel, err := relevance.lookup("relevance", r+opts.Offset)
		if err != nil {
			return err
		}
		if rel.Len() == 0 {
			continue
		}

		var train ItemSet
		if opts.TrainRelevance != nil {
			train, err = opts.TrainRelevance.lookup("train_relevance", r+opts.Offset)
			if err != nil {
				return err
			}
		}

		row := scores.Row(r)
		for c, k := range cutoffs {
			hits := countHits(TopK(row, k, buf), k, rel, train)
			res.Precision[c][r] = float32(hits) / float32(k)
			res.Recall[c][r] = float32(hits) / float32(rel.Len())
		}
	}
	return nil
}

// countHits walks the top-k window, skipping training items, until k items
// have been judged or the window is exhausted.
func countHits(window []int, k int, rel, train ItemSet) int {
	var hits, judged int
	for _, id := range window {
		if train.Contains(id) {
			continue
		}
		if rel.Contains(id) {
			hits++
		}
		judged++
		if judged == k {
			break
		}
	}
	return hits
}
