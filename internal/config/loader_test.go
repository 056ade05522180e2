package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/jsonai/jsonai/internal/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveReturnsDefaultsWhenFileMissing(t *testing.T) {
	t.Parallel()

	d, err := Resolve(filepath.Join(t.TempDir(), "missing.toml"))
	require.NoError(t, err)
	assert.Equal(t, *DefaultDefaults(), *d)
}

func TestResolveOverlaysFileOverDefaults(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), ".jsonai.toml")
	require.NoError(t, os.WriteFile(path, []byte(`
mode = "exact"
limit = 50
`), 0o644))

	d, err := Resolve(path)
	require.NoError(t, err)
	assert.Equal(t, core.ModeExact, d.Mode)
	assert.Equal(t, 50, d.Limit)
	// Untouched fields keep their built-in defaults.
	assert.Equal(t, core.OutputMatch, d.OutputMode)
}

func TestResolveEnvOverridesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".jsonai.toml")
	require.NoError(t, os.WriteFile(path, []byte(`mode = "exact"`), 0o644))
	t.Setenv(EnvMode, "regex")

	d, err := Resolve(path)
	require.NoError(t, err)
	assert.Equal(t, core.ModeRegex, d.Mode)
}

func TestResolveErrorsOnInvalidTOML(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), ".jsonai.toml")
	require.NoError(t, os.WriteFile(path, []byte("not [ valid toml"), 0o644))

	_, err := Resolve(path)
	assert.Error(t, err)
}

func TestResolveWithEmptyPathSkipsFile(t *testing.T) {
	t.Parallel()

	d, err := Resolve("")
	require.NoError(t, err)
	assert.Equal(t, *DefaultDefaults(), *d)
}
