package metrics

import (
	"fmt"

	"github.com/DjordjeVuckovic/rankeval/internal/apperr"
)

// Matrix is a dense row-major score matrix, one row per subject and one
// column per candidate item.
type Matrix struct {
	rows int
	cols int
	data []float32
}

// NewMatrix builds a matrix from a shape and flat row-major data. The shape
// must have exactly two dimensions. Data is copied.
func NewMatrix(shape []int, data []float32) (*Matrix, error) {
	if len(shape) != 2 {
		return nil, apperr.NewShape(shape, "")
	}
	if shape[0] < 0 || shape[1] < 0 {
		return nil, apperr.NewShape(shape, "negative dimension")
	}
	if len(data) != shape[0]*shape[1] {
		return nil, apperr.NewShape(shape, fmt.Sprintf("data has %d elements, want %d", len(data), shape[0]*shape[1]))
	}

	d := make([]float32, len(data))
	copy(d, data)
	return &Matrix{rows: shape[0], cols: shape[1], data: d}, nil
}

// MatrixFromRows coerces rows of float32 or float64 scores to a float32 matrix.
// Ragged rows and an empty row list are rejected with a shape error.
func MatrixFromRows[T float32 | float64](rows [][]T) (*Matrix, error) {
	if len(rows) == 0 {
		return nil, apperr.NewShape([]int{0}, "no rows")
	}

	cols := len(rows[0])
	data := make([]float32, 0, len(rows)*cols)
	for i, row := range rows {
		if len(row) != cols {
			return nil, apperr.NewShape([]int{len(rows)}, fmt.Sprintf("row %d has %d columns, want %d", i, len(row), cols))
		}
		for _, v := range row {
			data = append(data, float32(v))
		}
	}

	return &Matrix{rows: len(rows), cols: cols, data: data}, nil
}

func (m *Matrix) Rows() int { return m.rows }
func (m *Matrix) Cols() int { return m.cols }

func (m *Matrix) Shape() [2]int { return [2]int{m.rows, m.cols} }

// Row returns row i without copying. Callers must not modify it.
func (m *Matrix) Row(i int) []float32 {
	return m.data[i*m.cols : (i+1)*m.cols : (i+1)*m.cols]
}

func (m *Matrix) At(i, j int) float32 {
	return m.data[i*m.cols+j]
}

// Slice returns rows [from, to) as a new matrix.
func (m *Matrix) Slice(from, to int) (*Matrix, error) {
	if from < 0 || to > m.rows || from > to {
		return nil, apperr.NewValidation(fmt.Sprintf("invalid row range [%d:%d] for %d rows", from, to, m.rows))
	}
	return NewMatrix([]int{to - from, m.cols}, m.data[from*m.cols:to*m.cols])
}
