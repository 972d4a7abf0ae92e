package metrics

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/DjordjeVuckovic/rankeval/internal/apperr"
	"gopkg.in/yaml.v3"
)

// Cutoffs is an ordered list of top-k window sizes. In JSON and YAML it may be
// written either as a single integer or as a list of integers.
type Cutoffs []int

func SingleCutoff(k int) Cutoffs {
	return Cutoffs{k}
}

// ParseCutoffs parses a comma-separated list such as "3,5,10".
func ParseCutoffs(s string) (Cutoffs, error) {
	parts := strings.Split(s, ",")
	vals := make(Cutoffs, 0, len(parts))
	for _, p := range parts {
		v, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil {
			return nil, fmt.Errorf("invalid cutoff %q: %w", p, err)
		}
		vals = append(vals, v)
	}
	if err := vals.Validate(); err != nil {
		return nil, err
	}
	return vals, nil
}

func (c Cutoffs) Max() int {
	var m int
	for _, k := range c {
		m = max(m, k)
	}
	return m
}

func (c Cutoffs) Validate() error {
	if len(c) == 0 {
		return apperr.NewValidation("at least one cutoff is required")
	}
	for _, k := range c {
		if k <= 0 {
			return apperr.NewValidation(fmt.Sprintf("cutoff must be positive, got %d", k))
		}
	}
	return nil
}

func (c *Cutoffs) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.HasPrefix(data, []byte("[")) {
		var ks []int
		if err := json.Unmarshal(data, &ks); err != nil {
			return fmt.Errorf("decode cutoffs: %w", err)
		}
		*c = ks
		return nil
	}

	var k int
	if err := json.Unmarshal(data, &k); err != nil {
		return fmt.Errorf("decode cutoffs: %w", err)
	}
	*c = SingleCutoff(k)
	return nil
}

func (c *Cutoffs) UnmarshalYAML(value *yaml.Node) error {
	switch value.Kind {
	case yaml.ScalarNode:
		var k int
		if err := value.Decode(&k); err != nil {
			return fmt.Errorf("decode cutoffs: %w", err)
		}
		*c = SingleCutoff(k)
	case yaml.SequenceNode:
		var ks []int
		if err := value.Decode(&ks); err != nil {
			return fmt.Errorf("decode cutoffs: %w", err)
		}
		*c = ks
	default:
		return fmt.Errorf("cutoffs must be an integer or a list of integers (line %d)", value.Line)
	}
	return nil
}
