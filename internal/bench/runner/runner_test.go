package runner

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/DjordjeVuckovic/rankeval/internal/apperr"
	"github.com/DjordjeVuckovic/rankeval/internal/bench/metrics"
	"github.com/DjordjeVuckovic/rankeval/internal/bench/spec"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestRunner_RunAll(t *testing.T) {
	dir := t.TempDir()
	scores := writeFile(t, dir, "scores.json", `[[0.9, 0.1, 0.5, 0.2], [0.9, 0.8, 0.7, 0.1]]`)
	rel := writeFile(t, dir, "rel.json", `[[0, 2], [2]]`)
	train := writeFile(t, dir, "train.csv", "row,item\n1,0\n1,1\n")

	es := &spec.EvalSpec{
		Metrics: spec.MetricsConfig{Cutoffs: metrics.Cutoffs{1, 2}},
		Runs:    spec.RunsConfig{Warmup: 1, Iterations: 3},
		Jobs: []spec.Job{
			{Name: "plain", Scores: scores, Relevance: rel},
			{Name: "train", Scores: scores, Relevance: rel, TrainRelevance: train, ReturnAll: true},
			{Name: "missing", Scores: filepath.Join(dir, "nope.json"), Relevance: rel},
			{Name: "too-wide", Scores: scores, Relevance: rel, Cutoffs: metrics.Cutoffs{5}},
		},
	}
	require.NoError(t, spec.Validate(es))

	r := New(ConfigFromSpec(es))
	br, err := r.RunAll(context.Background(), es)
	require.NoError(t, err)
	require.Len(t, br.Jobs, 4)
	assert.Equal(t, 2, br.ErrorCount())

	plain := br.Jobs[0]
	require.NoError(t, plain.Error)
	assert.Equal(t, [2]int{2, 4}, plain.Shape)
	assert.Nil(t, plain.PerRow)
	assert.Equal(t, 3, plain.Latency.SampleCount)
	// row 0: P@1=1 R@1=0.5, P@2=1 R@2=1; row 1: top-2 {0,1} misses item 2
	assert.InDelta(t, 0.5, plain.Summary.Precision[0], 1e-6)
	assert.InDelta(t, 0.25, plain.Summary.Recall[0], 1e-6)
	assert.InDelta(t, 0.5, plain.Summary.Precision[1], 1e-6)
	assert.InDelta(t, 0.5, plain.Summary.Recall[1], 1e-6)

	withTrain := br.Jobs[1]
	require.NoError(t, withTrain.Error)
	assert.True(t, withTrain.TrainExcluded)
	require.NotNil(t, withTrain.PerRow)
	assert.Equal(t, float32(0), withTrain.PerRow.Recall[1][1])

	assert.NotNil(t, br.Jobs[2].Error)
	var ce *apperr.CutoffBoundError
	assert.ErrorAs(t, br.Jobs[3].Error, &ce)
	assert.NotEqual(t, br.Jobs[0].RunID, br.Jobs[1].RunID)
}

func TestRunner_RunAllCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	es := &spec.EvalSpec{Jobs: []spec.Job{{Name: "a", Scores: "s.json", Relevance: "r.json"}}}
	br, err := New(DefaultConfig()).RunAll(ctx, es)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, br.Jobs)
}

func TestRunner_EvaluateOffset(t *testing.T) {
	scores, err := metrics.MatrixFromRows([][]float32{{0.1, 0.9}})
	require.NoError(t, err)
	in := Input{
		Scores:    scores,
		Relevance: metrics.Relevance{metrics.NewItemSet(0), metrics.NewItemSet(1)},
	}

	jr := New(Config{Cutoffs: metrics.Cutoffs{1}}).Evaluate(context.Background(), spec.Job{Name: "o", Offset: 1}, in)
	require.NoError(t, jr.Error)
	assert.Equal(t, []float32{1}, jr.Summary.Precision)
	assert.Equal(t, 1, jr.Latency.SampleCount)
}
