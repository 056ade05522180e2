// Package main is the entry point for the jsonai CLI tool.
package main

import (
	"os"

	"github.com/jsonai/jsonai/internal/buildinfo"
	"github.com/jsonai/jsonai/internal/cli"
)

// Build-time metadata injected via ldflags; copied into internal/buildinfo
// before the command tree runs so every subcommand sees the same values.
var (
	version   = "dev"
	commit    = "none"
	date      = "unknown"
	goVersion = "unknown"
)

func main() {
	buildinfo.Version = version
	buildinfo.Commit = commit
	buildinfo.Date = date
	buildinfo.GoVersion = goVersion

	os.Exit(cli.Execute())
}
