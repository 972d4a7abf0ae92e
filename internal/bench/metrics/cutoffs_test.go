package metrics

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestCutoffs_UnmarshalJSON(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    Cutoffs
		wantErr bool
	}{
		{name: "scalar", input: `5`, want: Cutoffs{5}},
		{name: "list", input: `[1, 5, 10]`, want: Cutoffs{1, 5, 10}},
		{name: "string", input: `"5"`, wantErr: true},
		{name: "list of strings", input: `["5"]`, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var c Cutoffs
			err := json.Unmarshal([]byte(tt.input), &c)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, c)
		})
	}
}

func TestCutoffs_UnmarshalYAML(t *testing.T) {
	var doc struct {
		A Cutoffs `yaml:"a"`
		B Cutoffs `yaml:"b"`
	}
	err := yaml.Unmarshal([]byte("a: 10\nb: [3, 5]\n"), &doc)
	require.NoError(t, err)
	assert.Equal(t, Cutoffs{10}, doc.A)
	assert.Equal(t, Cutoffs{3, 5}, doc.B)

	err = yaml.Unmarshal([]byte("a: {k: 1}\n"), &doc)
	assert.Error(t, err)
}

func TestParseCutoffs(t *testing.T) {
	c, err := ParseCutoffs("3, 5,10")
	require.NoError(t, err)
	assert.Equal(t, Cutoffs{3, 5, 10}, c)
	assert.Equal(t, 10, c.Max())

	_, err = ParseCutoffs("3,x")
	assert.Error(t, err)

	_, err = ParseCutoffs("0")
	assert.Error(t, err)
}
