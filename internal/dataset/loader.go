package dataset

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/DjordjeVuckovic/rankeval/internal/bench/metrics"
)

type Format string

const (
	JSON Format = "json"
	CSV  Format = "csv"
)

func FormatOf(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return JSON, nil
	case ".csv":
		return CSV, nil
	default:
		return "", fmt.Errorf("unsupported dataset format %q, expected .json or .csv", filepath.Ext(path))
	}
}

func LoadMatrix(path string) (*metrics.Matrix, error) {
	format, err := FormatOf(path)
	if err != nil {
		return nil, err
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open scores file: %w", err)
	}
	defer f.Close()

	var m *metrics.Matrix
	switch format {
	case JSON:
		m, err = ReadMatrixJSON(f)
	case CSV:
		m, err = ReadMatrixCSV(f)
	}
	if err != nil {
		return nil, fmt.Errorf("load scores %s: %w", path, err)
	}

	slog.Debug("Loaded scores", "path", path, "rows", m.Rows(), "cols", m.Cols())
	return m, nil
}

// LoadRelevance loads relevance lists. minRows only applies to CSV input.
func LoadRelevance(path string, minRows int) (metrics.Relevance, error) {
	format, err := FormatOf(path)
	if err != nil {
		return nil, err
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open relevance file: %w", err)
	}
	defer f.Close()

	var rel metrics.Relevance
	switch format {
	case JSON:
		rel, err = ReadRelevanceJSON(f)
	case CSV:
		rel, err = ReadRelevanceCSV(f, minRows)
	}
	if err != nil {
		return nil, fmt.Errorf("load relevance %s: %w", path, err)
	}

	slog.Debug("Loaded relevance", "path", path, "subjects", len(rel))
	return rel, nil
}
