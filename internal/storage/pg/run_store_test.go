package pg

import (
	"context"
	"testing"
	"time"

	"github.com/DjordjeVuckovic/rankeval/internal/bench/metrics"
	"github.com/DjordjeVuckovic/rankeval/internal/storage"
	pkgtesting "github.com/DjordjeVuckovic/rankeval/pkg/testing"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) (*RunStore, context.Context) {
	t.Helper()
	if testing.Short() {
		t.Skip("skipping PostgreSQL integration test in short mode")
	}

	ctx := context.Background()
	container := pkgtesting.NewPGContainerWithCleanup(ctx, t)

	pool, err := NewConnectionPool(ctx, PoolConfig{ConnStr: container.ConnString})
	require.NoError(t, err)
	t.Cleanup(pool.Close)

	return NewRunStore(pool), ctx
}

func TestRunStore_SaveAndGet(t *testing.T) {
	store, ctx := newTestStore(t)

	run := storage.NewRun("val", [2]int{4, 10}, 2, true, metrics.Summary{
		Cutoffs:   []int{1, 5},
		Precision: []float32{0.5, 0.25},
		Recall:    []float32{0.125, 0.75},
	})

	id, err := store.Save(ctx, run)
	require.NoError(t, err)
	assert.Equal(t, run.ID, id)

	got, err := store.Get(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "val", got.JobName)
	assert.Equal(t, 4, got.Rows)
	assert.Equal(t, 10, got.Cols)
	assert.Equal(t, 2, got.Offset)
	assert.True(t, got.TrainExcluded)
	assert.Equal(t, []int{1, 5}, got.Cutoffs)
	assert.Equal(t, []float32{0.5, 0.25}, got.Precision)
	assert.Equal(t, []float32{0.125, 0.75}, got.Recall)
	assert.WithinDuration(t, run.CreatedAt, got.CreatedAt, time.Millisecond)
}

func TestRunStore_GetMissing(t *testing.T) {
	store, ctx := newTestStore(t)

	_, err := store.Get(ctx, uuid.New())
	assert.ErrorIs(t, err, storage.ErrRunNotFound)
}

func TestRunStore_ListNewestFirst(t *testing.T) {
	store, ctx := newTestStore(t)

	base := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	for i, name := range []string{"a", "b", "c"} {
		_, err := store.Save(ctx, storage.Run{
			JobName:   name,
			Cutoffs:   []int{5},
			Precision: []float32{0},
			Recall:    []float32{0},
			CreatedAt: base.Add(time.Duration(i) * time.Minute),
		})
		require.NoError(t, err)
	}

	runs, err := store.List(ctx, 2)
	require.NoError(t, err)
	require.Len(t, runs, 2)
	assert.Equal(t, "c", runs[0].JobName)
	assert.Equal(t, "b", runs[1].JobName)

	assert.True(t, store.Healthy(ctx))
}
