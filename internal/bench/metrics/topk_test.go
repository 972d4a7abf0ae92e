package metrics

import (
	"math"
	"math/rand/v2"
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// assertTopSet checks that no excluded score ranks above a selected one.
func assertTopSet(t *testing.T, row []float32, k int, got []int) {
	t.Helper()
	require.Len(t, got, min(k, len(row)))

	selected := make(map[int]bool, len(got))
	for _, id := range got {
		assert.False(t, selected[id], "duplicate id %d", id)
		selected[id] = true
	}
	for _, in := range got {
		for out := range row {
			if selected[out] {
				continue
			}
			assert.False(t, ranksAbove(row, out, in), "excluded %d (%v) ranks above selected %d (%v)", out, row[out], in, row[in])
		}
	}
}

func TestTopK(t *testing.T) {
	tests := []struct {
		name string
		row  []float32
		k    int
		want []int
	}{
		{name: "single best", row: []float32{0.9, 0.1, 0.5, 0.2}, k: 1, want: []int{0}},
		{name: "two best", row: []float32{0.9, 0.1, 0.5, 0.2}, k: 2, want: []int{0, 2}},
		{name: "last column", row: []float32{0.1, 0.2, 0.3, 0.4}, k: 1, want: []int{3}},
		{name: "whole row", row: []float32{0.3, 0.1, 0.2}, k: 3, want: []int{0, 1, 2}},
		{name: "negative scores", row: []float32{-1, -5, -0.5, -3}, k: 2, want: []int{0, 2}},
		{name: "nan ranks last", row: []float32{float32(math.NaN()), 0.1, 0.2}, k: 2, want: []int{1, 2}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := TopK(tt.row, tt.k, nil)
			got = slices.Clone(got)
			slices.Sort(got)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestTopK_ZeroK(t *testing.T) {
	assert.Empty(t, TopK([]float32{1, 2}, 0, nil))
}

func TestTopK_Ties(t *testing.T) {
	row := []float32{0.5, 0.9, 0.5, 0.5, 0.1, 0.5}
	for k := 1; k <= len(row); k++ {
		assertTopSet(t, row, k, TopK(row, k, nil))
	}

	flat := make([]float32, 1000)
	got := TopK(flat, 10, nil)
	assert.Len(t, got, 10)
}

func TestTopK_Random(t *testing.T) {
	rng := rand.New(rand.NewPCG(3, 5))
	buf := make([]int, 0, 8)

	for trial := 0; trial < 200; trial++ {
		n := 1 + rng.IntN(60)
		row := make([]float32, n)
		for i := range row {
			// few distinct values so ties are frequent
			row[i] = float32(rng.IntN(8))
		}
		k := 1 + rng.IntN(n)
		got := TopK(row, k, buf)
		assertTopSet(t, row, k, got)
		buf = got[:0]
	}
}

func TestTopK_DoesNotModifyRow(t *testing.T) {
	row := []float32{0.4, 0.2, 0.9, 0.1}
	TopK(row, 2, nil)
	assert.Equal(t, []float32{0.4, 0.2, 0.9, 0.1}, row)
}
