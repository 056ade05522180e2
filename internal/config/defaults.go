package config

import "github.com/jsonai/jsonai/internal/core"

// DefaultDefaults returns the built-in Defaults used when no .jsonai.toml is
// present and no environment variable or flag overrides a field.
//
// Callers receive a fresh copy each time; mutating the returned value does
// not affect subsequent calls.
func DefaultDefaults() *Defaults {
	return &Defaults{
		Mode:              core.ModeText,
		OutputMode:        core.OutputMatch,
		Pretty:            false,
		Limit:             20,
		OverflowThreshold: core.DefaultOverflowThreshold,
		MaxBytes:          0,
		Concurrency:       8,
	}
}
