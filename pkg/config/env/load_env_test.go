package env

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDotEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ".env")
	require.NoError(t, os.WriteFile(path, []byte("RANKEVAL_TEST_A=from-file\nRANKEVAL_TEST_B=from-file\n"), 0o644))

	t.Setenv("ENV_PATH", "")
	t.Setenv("RANKEVAL_TEST_A", "")
	os.Unsetenv("RANKEVAL_TEST_A")
	t.Setenv("RANKEVAL_TEST_B", "preset")

	require.NoError(t, LoadDotEnv(path))
	assert.Equal(t, "from-file", os.Getenv("RANKEVAL_TEST_A"))
	assert.Equal(t, "preset", os.Getenv("RANKEVAL_TEST_B"))
}

func TestLoadDotEnv_Missing(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "nope.env")
	t.Setenv("ENV_PATH", "")

	t.Setenv("APP_ENV", "local")
	assert.Error(t, LoadDotEnv(missing))

	t.Setenv("APP_ENV", "production")
	assert.NoError(t, LoadDotEnv(missing))
}
