package experiment

import (
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/DjordjeVuckovic/rankeval/internal/apperr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSelectDevices(t *testing.T) {
	tests := []struct {
		name    string
		input   any
		want    Devices
		wantErr bool
	}{
		{name: "nil", input: nil, want: nil},
		{name: "csv string", input: "1, 2", want: Devices{1, 2}},
		{name: "int", input: 3, want: Devices{3}},
		{name: "int64", input: int64(4), want: Devices{4}},
		{name: "int list", input: []int{0, 1}, want: Devices{0, 1}},
		{name: "yaml list", input: []any{2, 3}, want: Devices{2, 3}},
		{name: "bad csv", input: "a,b", wantErr: true},
		{name: "empty list", input: []int{}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := SelectDevices(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSelectDevices_InvalidType(t *testing.T) {
	for _, v := range []any{1.5, true, map[string]int{"gpu": 0}, []any{"0"}} {
		_, err := SelectDevices(v)
		var ce *apperr.InvalidConfigTypeError
		require.ErrorAs(t, err, &ce)
		assert.Equal(t, "gpu", ce.Field)
		assert.Equal(t, v, ce.Value)
	}
}

func TestDevices_Primary(t *testing.T) {
	id, ok := Devices{2, 0}.Primary()
	assert.True(t, ok)
	assert.Equal(t, 2, id)

	_, ok = Devices(nil).Primary()
	assert.False(t, ok)
}

type snapshot struct {
	Zeta  string `json:"zeta"`
	Alpha int    `json:"alpha"`
	GPU   any    `json:"gpu"`
}

func newProgram(t *testing.T, dir string) string {
	t.Helper()
	program := filepath.Join(dir, "train.py")
	require.NoError(t, os.WriteFile(program, []byte("print('hi')\n"), 0755))
	return program
}

func TestSetup_NoModelDir(t *testing.T) {
	exp, err := Setup(Config{GPU: "0"}, nil, slog.Default())
	require.NoError(t, err)
	assert.Equal(t, Devices{0}, exp.Devices)
	assert.False(t, exp.Created)
}

func TestSetup_InvalidDevice(t *testing.T) {
	_, err := Setup(Config{GPU: 0.5}, nil, nil)
	var ce *apperr.InvalidConfigTypeError
	assert.ErrorAs(t, err, &ce)
}

func TestSetup_WritesLayout(t *testing.T) {
	src := t.TempDir()
	program := newProgram(t, src)

	configs := filepath.Join(src, "configs")
	require.NoError(t, os.MkdirAll(filepath.Join(configs, "nested"), 0755))
	require.NoError(t, os.MkdirAll(filepath.Join(configs, "__pycache__"), 0755))
	files := map[string]string{
		"base.yaml":               "k: 1",
		"nested/model.yaml":       "k: 2",
		"cache.pyc":               "x",
		".hidden":                 "x",
		"#draft":                  "x",
		"matrix.mtx":              "x",
		"blob.pkl":                "x",
		"__pycache__/mod.cpython": "x",
	}
	for name, content := range files {
		require.NoError(t, os.WriteFile(filepath.Join(configs, name), []byte(content), 0644))
	}

	out := filepath.Join(t.TempDir(), "exp1")
	exp, err := Setup(Config{
		ModelDir: out,
		Program:  program,
		CopyDirs: []string{configs},
	}, snapshot{Zeta: "z", Alpha: 1, GPU: "0"}, nil)
	require.NoError(t, err)
	assert.True(t, exp.Created)

	copied, err := os.ReadFile(filepath.Join(out, "train.py"))
	require.NoError(t, err)
	assert.Equal(t, "print('hi')\n", string(copied))

	data, err := os.ReadFile(filepath.Join(out, ConfigFileName))
	require.NoError(t, err)
	assert.Equal(t, "{\n  \"alpha\": 1,\n  \"gpu\": \"0\",\n  \"zeta\": \"z\"\n}", string(data))
	var decoded map[string]any
	require.NoError(t, json.Unmarshal(data, &decoded))

	assert.FileExists(t, filepath.Join(out, "configs", "base.yaml"))
	assert.FileExists(t, filepath.Join(out, "configs", "nested", "model.yaml"))
	for _, skipped := range []string{"cache.pyc", ".hidden", "#draft", "matrix.mtx", "blob.pkl", "__pycache__"} {
		assert.NoFileExists(t, filepath.Join(out, "configs", skipped))
		assert.NoDirExists(t, filepath.Join(out, "configs", skipped))
	}
}

func TestSetup_ExistingExperimentIsLeftAlone(t *testing.T) {
	src := t.TempDir()
	program := newProgram(t, src)
	out := t.TempDir()

	require.NoError(t, os.WriteFile(filepath.Join(out, "train.py"), []byte("old"), 0644))

	exp, err := Setup(Config{ModelDir: out, Program: program}, snapshot{}, nil)
	require.NoError(t, err)
	assert.False(t, exp.Created)
	assert.NoFileExists(t, filepath.Join(out, ConfigFileName))

	data, err := os.ReadFile(filepath.Join(out, "train.py"))
	require.NoError(t, err)
	assert.Equal(t, "old", string(data))
}

func TestCopyTarget(t *testing.T) {
	assert.Equal(t, filepath.Join("src", "utils"), copyTarget("src/utils/"))
	assert.Equal(t, "utils", copyTarget("/abs/utils"))
	assert.Equal(t, "lib", copyTarget("../lib"))
}

func TestWriteConfig_LargeIntegers(t *testing.T) {
	path := filepath.Join(t.TempDir(), ConfigFileName)

	snapshot := struct {
		Seed  int64   `json:"seed"`
		Alpha float64 `json:"alpha"`
		Name  string  `json:"name"`
	}{Seed: 9007199254740993, Alpha: 0.25, Name: "exp"}
	require.NoError(t, WriteConfig(path, snapshot))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "{\n  \"alpha\": 0.25,\n  \"name\": \"exp\",\n  \"seed\": 9007199254740993\n}", string(data))
}
