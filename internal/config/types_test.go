package config

import (
	"testing"

	"github.com/BurntSushi/toml"
	"github.com/jsonai/jsonai/internal/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultsDecodesFromTOML(t *testing.T) {
	t.Parallel()

	var d Defaults
	_, err := toml.Decode(`
mode = "fuzzy"
output_mode = "hit"
pretty = true
limit = 10
overflow_threshold = 25
max_bytes = 2048
concurrency = 4
`, &d)
	require.NoError(t, err)

	assert.Equal(t, core.ModeFuzzy, d.Mode)
	assert.Equal(t, core.OutputHit, d.OutputMode)
	assert.True(t, d.Pretty)
	assert.Equal(t, 10, d.Limit)
	assert.Equal(t, 25, d.OverflowThreshold)
	assert.Equal(t, 2048, d.MaxBytes)
	assert.Equal(t, 4, d.Concurrency)
}

func TestDefaultsZeroValue(t *testing.T) {
	t.Parallel()

	var d Defaults
	assert.Equal(t, core.MatchMode(""), d.Mode)
	assert.Equal(t, 0, d.Limit)
}
