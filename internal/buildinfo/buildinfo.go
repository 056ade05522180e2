// Package buildinfo holds build-time metadata. The values are injected via
// ldflags into cmd/jsonai's own variables, which main copies into this
// package at startup:
//
//	go build -ldflags "-X main.version=..." ./cmd/jsonai
package buildinfo

import "runtime"

// Build-time variables, overwritten by cmd/jsonai's main before any command
// runs.
var (
	Version   = "dev"
	Commit    = "unknown"
	Date      = "unknown"
	GoVersion = "unknown"
)

// OS returns the operating system (from runtime.GOOS).
func OS() string {
	return runtime.GOOS
}

// Arch returns the architecture (from runtime.GOARCH).
func Arch() string {
	return runtime.GOARCH
}
