package config

import (
	"testing"

	"github.com/jsonai/jsonai/internal/core"
	"github.com/stretchr/testify/assert"
)

func TestApplyEnvOverridesFields(t *testing.T) {
	t.Setenv(EnvMode, "fuzzy")
	t.Setenv(EnvOutputMode, "hit")
	t.Setenv(EnvPretty, "true")
	t.Setenv(EnvLimit, "5")
	t.Setenv(EnvOverflowThreshold, "10")
	t.Setenv(EnvMaxBytes, "1024")
	t.Setenv(EnvConcurrency, "2")

	d := DefaultDefaults()
	applyEnv(d)

	assert.Equal(t, core.ModeFuzzy, d.Mode)
	assert.Equal(t, core.OutputHit, d.OutputMode)
	assert.True(t, d.Pretty)
	assert.Equal(t, 5, d.Limit)
	assert.Equal(t, 10, d.OverflowThreshold)
	assert.Equal(t, 1024, d.MaxBytes)
	assert.Equal(t, 2, d.Concurrency)
}

func TestApplyEnvLeavesDefaultsWhenUnset(t *testing.T) {
	d := DefaultDefaults()
	want := *d
	applyEnv(d)
	assert.Equal(t, want, *d)
}

func TestApplyEnvIgnoresUnparsableValues(t *testing.T) {
	t.Setenv(EnvLimit, "not-a-number")
	t.Setenv(EnvPretty, "not-a-bool")

	d := DefaultDefaults()
	wantLimit, wantPretty := d.Limit, d.Pretty
	applyEnv(d)

	assert.Equal(t, wantLimit, d.Limit)
	assert.Equal(t, wantPretty, d.Pretty)
}
