package metrics

import (
	"testing"

	"github.com/DjordjeVuckovic/rankeval/internal/apperr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewMatrix(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		m, err := NewMatrix([]int{2, 3}, []float32{1, 2, 3, 4, 5, 6})
		require.NoError(t, err)
		assert.Equal(t, [2]int{2, 3}, m.Shape())
		assert.Equal(t, []float32{4, 5, 6}, m.Row(1))
		assert.Equal(t, float32(3), m.At(0, 2))
	})

	t.Run("copies data", func(t *testing.T) {
		data := []float32{1, 2}
		m, err := NewMatrix([]int{1, 2}, data)
		require.NoError(t, err)
		data[0] = 99
		assert.Equal(t, float32(1), m.At(0, 0))
	})

	shapeErrors := []struct {
		name  string
		shape []int
		data  []float32
	}{
		{name: "1-D", shape: []int{4}, data: []float32{1, 2, 3, 4}},
		{name: "3-D", shape: []int{1, 2, 2}, data: []float32{1, 2, 3, 4}},
		{name: "negative", shape: []int{-1, 2}, data: nil},
		{name: "size mismatch", shape: []int{2, 2}, data: []float32{1, 2, 3}},
	}
	for _, tt := range shapeErrors {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewMatrix(tt.shape, tt.data)
			var se *apperr.ShapeError
			require.ErrorAs(t, err, &se)
			assert.Equal(t, tt.shape, se.Shape)
		})
	}
}

func TestMatrixFromRows(t *testing.T) {
	t.Run("float64 coerced", func(t *testing.T) {
		m, err := MatrixFromRows([][]float64{{0.5, 0.25}, {1, 2}})
		require.NoError(t, err)
		assert.Equal(t, [2]int{2, 2}, m.Shape())
		assert.Equal(t, float32(0.25), m.At(0, 1))
	})

	t.Run("ragged", func(t *testing.T) {
		_, err := MatrixFromRows([][]float32{{1, 2}, {3}})
		var se *apperr.ShapeError
		assert.ErrorAs(t, err, &se)
	})

	t.Run("empty", func(t *testing.T) {
		_, err := MatrixFromRows([][]float32{})
		var se *apperr.ShapeError
		assert.ErrorAs(t, err, &se)
	})
}

func TestMatrix_Slice(t *testing.T) {
	m, err := MatrixFromRows([][]float32{{1, 2}, {3, 4}, {5, 6}})
	require.NoError(t, err)

	s, err := m.Slice(1, 3)
	require.NoError(t, err)
	assert.Equal(t, [2]int{2, 2}, s.Shape())
	assert.Equal(t, []float32{3, 4}, s.Row(0))

	_, err = m.Slice(2, 4)
	assert.Error(t, err)
}
