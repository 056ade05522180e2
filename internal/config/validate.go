package config

import (
	"fmt"

	"github.com/jsonai/jsonai/internal/core"
)

var validModes = map[core.MatchMode]bool{
	core.ModeText:  true,
	core.ModeExact: true,
	core.ModeFuzzy: true,
	core.ModeRegex: true,
}

var validOutputModes = map[core.OutputMode]bool{
	core.OutputMatch: true,
	core.OutputHit:   true,
	core.OutputValue: true,
}

// Validate checks a resolved Defaults value for internal consistency. It
// accumulates every problem found rather than stopping at the first one.
func Validate(d *Defaults) []ValidationError {
	if d == nil {
		return nil
	}

	var results []ValidationError

	if !validModes[d.Mode] {
		results = append(results, ValidationError{
			Field:   "mode",
			Message: fmt.Sprintf("%q is not a recognized match mode", d.Mode),
			Suggest: "use one of: text, exact, fuzzy, regex",
		})
	}
	if !validOutputModes[d.OutputMode] {
		results = append(results, ValidationError{
			Field:   "output_mode",
			Message: fmt.Sprintf("%q is not a recognized output mode", d.OutputMode),
			Suggest: "use one of: match, hit, value",
		})
	}
	if d.Limit < 0 {
		results = append(results, ValidationError{
			Field:   "limit",
			Message: "must be non-negative",
		})
	}
	if d.OverflowThreshold < 0 {
		results = append(results, ValidationError{
			Field:   "overflow_threshold",
			Message: "must be non-negative",
		})
	}
	if d.MaxBytes < 0 {
		results = append(results, ValidationError{
			Field:   "max_bytes",
			Message: "must be non-negative",
		})
	}
	if d.Concurrency < 0 {
		results = append(results, ValidationError{
			Field:   "concurrency",
			Message: "must be non-negative",
		})
	}

	return results
}
