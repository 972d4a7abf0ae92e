package spec

import (
	"fmt"
	"os"

	"github.com/DjordjeVuckovic/rankeval/internal/apperr"
	"github.com/DjordjeVuckovic/rankeval/internal/bench/metrics"
	"gopkg.in/yaml.v3"
)

var DefaultCutoffs = metrics.Cutoffs{5, 10, 20}

func LoadFromFile(path string) (*EvalSpec, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read spec file: %w", err)
	}
	return Parse(data)
}

func Parse(data []byte) (*EvalSpec, error) {
	var s EvalSpec
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, apperr.NewValidationWrap("parse spec YAML", err)
	}
	if err := Validate(&s); err != nil {
		return nil, err
	}
	return &s, nil
}

// Validate checks the spec and fills defaults in place.
func Validate(s *EvalSpec) error {
	if len(s.Jobs) == 0 {
		return apperr.NewValidation("spec has no jobs")
	}

	if len(s.Metrics.Cutoffs) == 0 {
		s.Metrics.Cutoffs = append(metrics.Cutoffs(nil), DefaultCutoffs...)
	}
	if err := s.Metrics.Cutoffs.Validate(); err != nil {
		return apperr.NewValidationWrap("metrics", err)
	}
	if s.Metrics.Workers < 0 {
		return apperr.NewValidation(fmt.Sprintf("workers must not be negative, got %d", s.Metrics.Workers))
	}

	seen := make(map[string]bool, len(s.Jobs))
	for i, j := range s.Jobs {
		if j.Name == "" {
			return apperr.NewValidation(fmt.Sprintf("job at index %d has no name", i))
		}
		if seen[j.Name] {
			return apperr.NewValidation(fmt.Sprintf("duplicate job name %q", j.Name))
		}
		seen[j.Name] = true

		if j.Scores == "" {
			return apperr.NewValidation(fmt.Sprintf("job %q has no scores", j.Name))
		}
		if j.Relevance == "" {
			return apperr.NewValidation(fmt.Sprintf("job %q has no relevance", j.Name))
		}
		if j.Offset < 0 {
			return apperr.NewValidation(fmt.Sprintf("job %q has negative offset %d", j.Name, j.Offset))
		}
		if len(j.Cutoffs) > 0 {
			if err := j.Cutoffs.Validate(); err != nil {
				return apperr.NewValidationWrap(fmt.Sprintf("job %q", j.Name), err)
			}
		}
	}

	if s.Runs.Warmup < 0 {
		s.Runs.Warmup = 0
	}
	if s.Runs.Iterations <= 0 {
		s.Runs.Iterations = 1
	}
	return nil
}
