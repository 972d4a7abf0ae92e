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

// ReadRelevanceJSON decodes a JSON array holding one array of item ids per subject.
func ReadRelevanceJSON(r io.Reader) (metrics.Relevance, error) {
	var lists [][]int
	if err := json.NewDecoder(r).Decode(&lists); err != nil {
		return nil, fmt.Errorf("decode relevance JSON: %w", err)
	}
	return metrics.RelevanceFromLists(lists), nil
}

// MaxRowSlack bounds how far past minRows a CSV row id may reach. One set is
// allocated per row up to the highest id, so larger ids are rejected.
const MaxRowSlack = 1 << 20

// ReadRelevanceCSV reads "row,item" pairs after a header line. The result has
// at least minRows subjects and always covers the highest row id seen.
// Subjects without pairs get an empty set. Row ids at or beyond
// minRows+MaxRowSlack are a ValidationError.
func ReadRelevanceCSV(r io.Reader, minRows int) (metrics.Relevance, error) {
	csvReader := csv.NewReader(r)
	csvReader.FieldsPerRecord = 2
	csvReader.TrimLeadingSpace = true

	if _, err := csvReader.Read(); err != nil {
		if errors.Is(err, io.EOF) {
			return emptyRelevance(minRows), nil
		}
		return nil, fmt.Errorf("read relevance CSV header: %w", err)
	}

	rowLimit := max(minRows, 0) + MaxRowSlack
	var pairs [][2]int
	maxRow := -1
	for {
		record, err := csvReader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read relevance CSV: %w", err)
		}

		row, err := strconv.Atoi(strings.TrimSpace(record[0]))
		if err != nil {
			return nil, fmt.Errorf("parse row id %q: %w", record[0], err)
		}
		item, err := strconv.Atoi(strings.TrimSpace(record[1]))
		if err != nil {
			return nil, fmt.Errorf("parse item id %q: %w", record[1], err)
		}
		if row < 0 || item < 0 {
			return nil, apperr.NewValidation(fmt.Sprintf("ids must be non-negative, got row=%d item=%d", row, item))
		}
		if row >= rowLimit {
			return nil, apperr.NewValidation(fmt.Sprintf("row id %d exceeds limit %d", row, rowLimit))
		}

		pairs = append(pairs, [2]int{row, item})
		maxRow = max(maxRow, row)
	}

	rel := emptyRelevance(max(minRows, maxRow+1))
	for _, p := range pairs {
		rel[p[0]][p[1]] = struct{}{}
	}
	return rel, nil
}

func emptyRelevance(rows int) metrics.Relevance {
	rel := make(metrics.Relevance, max(rows, 0))
	for i := range rel {
		rel[i] = metrics.NewItemSet()
	}
	return rel
}
