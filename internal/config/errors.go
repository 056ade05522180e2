package config

import "fmt"

// ValidationError describes a single configuration or flag validation
// problem: a field path, what is wrong, and an optional fix suggestion.
type ValidationError struct {
	Field   string
	Message string
	Suggest string
}

// Error implements the error interface.
func (e ValidationError) Error() string {
	if e.Suggest != "" {
		return fmt.Sprintf("%s: %s (suggestion: %s)", e.Field, e.Message, e.Suggest)
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}
