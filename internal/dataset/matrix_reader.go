package dataset

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/DjordjeVuckovic/rankeval/internal/apperr"
	"github.com/DjordjeVuckovic/rankeval/internal/bench/metrics"
)

// ReadMatrixJSON decodes a nested JSON array of numbers. Only 2-D input is
// accepted; any other nesting depth yields a shape error with the observed shape.
func ReadMatrixJSON(r io.Reader) (*metrics.Matrix, error) {
	var raw any
	dec := json.NewDecoder(r)
	dec.UseNumber()
	if err := dec.Decode(&raw); err != nil {
		return nil, fmt.Errorf("decode scores JSON: %w", err)
	}

	shape, err := shapeOf(raw)
	if err != nil {
		return nil, err
	}
	if len(shape) != 2 {
		return nil, apperr.NewShape(shape, "")
	}

	data := make([]float32, 0, shape[0]*shape[1])
	for _, row := range raw.([]any) {
		for _, v := range row.([]any) {
			f, err := v.(json.Number).Float64()
			if err != nil {
				return nil, fmt.Errorf("decode score %v: %w", v, err)
			}
			data = append(data, float32(f))
		}
	}

	return metrics.NewMatrix(shape, data)
}

// shapeOf walks a decoded JSON value and returns its dimensions, rejecting
// ragged arrays and non-numeric leaves.
func shapeOf(v any) ([]int, error) {
	switch x := v.(type) {
	case json.Number:
		return []int{}, nil
	case []any:
		if len(x) == 0 {
			return []int{0}, nil
		}
		inner, err := shapeOf(x[0])
		if err != nil {
			return nil, err
		}
		for i := 1; i < len(x); i++ {
			s, err := shapeOf(x[i])
			if err != nil {
				return nil, err
			}
			if !equalShape(s, inner) {
				return nil, apperr.NewShape(append([]int{len(x)}, inner...), fmt.Sprintf("element %d has shape %v", i, s))
			}
		}
		return append([]int{len(x)}, inner...), nil
	default:
		return nil, apperr.NewValidation(fmt.Sprintf("scores must contain only numbers, got %T", v))
	}
}

func equalShape(a, b []int) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// ReadMatrixCSV reads one row of scores per line without a header.
func ReadMatrixCSV(r io.Reader) (*metrics.Matrix, error) {
	csvReader := csv.NewReader(r)
	csvReader.FieldsPerRecord = 0
	csvReader.TrimLeadingSpace = true

	var rows [][]float32
	for {
		record, err := csvReader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			var pe *csv.ParseError
			if errors.As(err, &pe) && errors.Is(pe.Err, csv.ErrFieldCount) {
				return nil, apperr.NewShape([]int{len(rows) + 1}, fmt.Sprintf("line %d: %v", pe.Line, pe.Err))
			}
			return nil, fmt.Errorf("read scores CSV: %w", err)
		}

		row := make([]float32, len(record))
		for i, field := range record {
			f, err := strconv.ParseFloat(strings.TrimSpace(field), 32)
			if err != nil {
				return nil, fmt.Errorf("parse score at row %d column %d: %w", len(rows), i, err)
			}
			row[i] = float32(f)
		}
		rows = append(rows, row)
	}

	return metrics.MatrixFromRows(rows)
}
