package environ_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/syssam/fabrica/fixture/environ"
)

func TestSnapshotRestore(t *testing.T) {
	os.Setenv("ENVIRON_KEEP", "original")
	os.Setenv("ENVIRON_DROP", "present")
	defer os.Unsetenv("ENVIRON_KEEP")
	defer os.Unsetenv("ENVIRON_DROP")

	restore := environ.Snapshot()

	os.Setenv("ENVIRON_KEEP", "changed")
	os.Unsetenv("ENVIRON_DROP")
	os.Setenv("ENVIRON_ADDED", "new")

	restore()

	assert.Equal(t, "original", os.Getenv("ENVIRON_KEEP"))
	assert.Equal(t, "present", os.Getenv("ENVIRON_DROP"))
	_, ok := os.LookupEnv("ENVIRON_ADDED")
	assert.False(t, ok, "added variable should be unset after restore")
}

func TestScoped(t *testing.T) {
	os.Unsetenv("ENVIRON_SCOPED")

	t.Run("mutates inside the scope", func(t *testing.T) {
		environ.Scoped(t)
		os.Setenv("ENVIRON_SCOPED", "inner")
		assert.Equal(t, "inner", os.Getenv("ENVIRON_SCOPED"))
	})

	_, ok := os.LookupEnv("ENVIRON_SCOPED")
	assert.False(t, ok, "scoped variable leaked out of the subtest")
}

func TestApplyFile(t *testing.T) {
	environ.Scoped(t)

	path := filepath.Join(t.TempDir(), "env.yaml")
	require.NoError(t, os.WriteFile(path, []byte("APP_MODE: test\nAPP_PORT: \"8081\"\n"), 0o600))

	require.NoError(t, environ.ApplyFile(path))
	assert.Equal(t, "test", os.Getenv("APP_MODE"))
	assert.Equal(t, "8081", os.Getenv("APP_PORT"))
}

func TestApplyFileErrors(t *testing.T) {
	require.Error(t, environ.ApplyFile(filepath.Join(t.TempDir(), "missing.yaml")))

	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("not: [valid: mapping"), 0o600))
	require.Error(t, environ.ApplyFile(path))
}
