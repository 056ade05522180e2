package config

import "github.com/jsonai/jsonai/internal/core"

// Defaults holds the subset of jsonai's behavior controllable from a
// .jsonai.toml file, environment variables, or CLI flags, in that ascending
// precedence order (flags win over environment, environment wins over the
// file, the file wins over the built-in values from DefaultDefaults).
type Defaults struct {
	// Mode selects the match algorithm: "text", "exact", "fuzzy", or "regex".
	Mode core.MatchMode `toml:"mode"`

	// OutputMode selects the result shape: "match", "hit", or "value".
	OutputMode core.OutputMode `toml:"output_mode"`

	// Pretty indents the emitted JSON envelope.
	Pretty bool `toml:"pretty"`

	// Limit caps the number of result records returned per invocation.
	Limit int `toml:"limit"`

	// OverflowThreshold is the post-dedup hit count above which search
	// switches to plan mode instead of returning result records.
	OverflowThreshold int `toml:"overflow_threshold"`

	// MaxBytes caps the serialized size of the output envelope. Zero means
	// unbounded.
	MaxBytes int `toml:"max_bytes"`

	// Concurrency bounds how many files are read and shredded in parallel
	// during ingest.
	Concurrency int `toml:"concurrency"`
}
