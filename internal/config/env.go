package config

import (
	"os"
	"strconv"

	"github.com/jsonai/jsonai/internal/core"
)

// Environment variable name constants for JSONAI_ prefixed overrides. These
// sit between a .jsonai.toml file and CLI flags in precedence: a flag always
// wins, an env var wins over the file, the file wins over these defaults.
const (
	// EnvMode overrides the default match mode.
	EnvMode = "JSONAI_MODE"
	// EnvOutputMode overrides the default result shape.
	EnvOutputMode = "JSONAI_OUTPUT_MODE"
	// EnvPretty overrides whether output is pretty-printed.
	EnvPretty = "JSONAI_PRETTY"
	// EnvLimit overrides the default result limit.
	EnvLimit = "JSONAI_LIMIT"
	// EnvOverflowThreshold overrides the overflow-plan trigger count.
	EnvOverflowThreshold = "JSONAI_OVERFLOW_THRESHOLD"
	// EnvMaxBytes overrides the output byte budget.
	EnvMaxBytes = "JSONAI_MAX_BYTES"
	// EnvConcurrency overrides ingest parallelism.
	EnvConcurrency = "JSONAI_CONCURRENCY"
	// EnvLogFormat overrides the log output format (not a Defaults field).
	EnvLogFormat = "JSONAI_LOG_FORMAT"
	// EnvDebug enables debug-level logging (not a Defaults field).
	EnvDebug = "JSONAI_DEBUG"
)

// applyEnv overlays JSONAI_* environment variables onto d, in place. Invalid
// numeric/boolean values are silently skipped so a malformed env var does not
// block the rest of the resolution pipeline; the field simply keeps whatever
// the file (or zero-value default) already set.
func applyEnv(d *Defaults) {
	if v := os.Getenv(EnvMode); v != "" {
		d.Mode = core.MatchMode(v)
	}
	if v := os.Getenv(EnvOutputMode); v != "" {
		d.OutputMode = core.OutputMode(v)
	}
	if v := os.Getenv(EnvPretty); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			d.Pretty = b
		}
	}
	if v := os.Getenv(EnvLimit); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			d.Limit = n
		}
	}
	if v := os.Getenv(EnvOverflowThreshold); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			d.OverflowThreshold = n
		}
	}
	if v := os.Getenv(EnvMaxBytes); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			d.MaxBytes = n
		}
	}
	if v := os.Getenv(EnvConcurrency); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			d.Concurrency = n
		}
	}
}
