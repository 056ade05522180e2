// Package cli implements the Cobra command hierarchy for the jsonai CLI
// tool. The root command defined here is the entry point for every
// subcommand and handles cross-cutting concerns like config resolution,
// logging initialization, and error-to-exit-code mapping.
package cli

import (
	"errors"
	"log/slog"

	"github.com/jsonai/jsonai/internal/config"
	"github.com/jsonai/jsonai/internal/core"
	"github.com/spf13/cobra"
)

// globalFlags holds the parsed global flag values, populated by
// config.BindGlobalFlags during command initialization and validated in
// PersistentPreRunE.
var globalFlags *config.GlobalFlags

// resolvedDefaults is the config.Defaults value resolved from
// .jsonai.toml + environment variables, computed once in
// PersistentPreRunE and consulted by subcommands for flag fallbacks.
var resolvedDefaults *config.Defaults

// exitOverride lets a subcommand that completed without error still select
// a non-zero exit code -- specifically core.ExitNoMatch, which per spec §7
// is not an error (the envelope is still printed) but must still surface
// as exit code 1 to scripts. -1 means "no override, use ExitSuccess".
var exitOverride = -1

// setExitOverride records the exit code a just-completed RunE wants the
// process to use instead of ExitSuccess.
func setExitOverride(code int) {
	exitOverride = code
}

var rootCmd = &cobra.Command{
	Use:   "jsonai",
	Short: "Turn JSON documents into a searchable, mutable dataset.",
	Long: `jsonai shreds JSON documents into addressable records, indexes
them for full-text and structured search, and applies precise,
atomic mutations by RFC 6901 JSON Pointer or RFC 6902 JSON Patch.

It is built for autonomous agents and scripts that need to query and edit
large JSON documents without loading an entire tree into a prompt.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := config.ValidateGlobalFlags(globalFlags); err != nil {
			return err
		}

		level := config.ResolveLogLevel(globalFlags.Verbose, globalFlags.Quiet)
		format := config.ResolveLogFormat()
		config.SetupLogging(level, format)

		configPath := globalFlags.Config
		if configPath == "" {
			configPath = ".jsonai.toml"
		}
		d, err := config.Resolve(configPath)
		if err != nil {
			return core.NewUsageError("resolving configuration", err)
		}
		if issues := config.Validate(d); len(issues) > 0 {
			msgs := make([]string, len(issues))
			for i, iss := range issues {
				msgs[i] = iss.Error()
			}
			return core.NewUsageError("invalid configuration: "+joinErrors(msgs), nil)
		}
		resolvedDefaults = d

		slog.Debug("logging initialized", "level", level, "format", format)
		return nil
	},
}

func joinErrors(msgs []string) string {
	out := msgs[0]
	for _, m := range msgs[1:] {
		out += "; " + m
	}
	return out
}

func init() {
	globalFlags = config.BindGlobalFlags(rootCmd)
}

// Execute runs the root command and returns the process exit code per
// spec §7: 0 on success, 1 when a search completes with zero matches, 2
// for every taxonomy error (usage, input, parse, pointer, patch-test,
// engine).
func Execute() int {
	exitOverride = -1
	if err := rootCmd.Execute(); err != nil {
		slog.Error(err.Error())
		return extractExitCode(err)
	}
	if exitOverride >= 0 {
		return exitOverride
	}
	return int(core.ExitSuccess)
}

// extractExitCode maps err to a process exit code. A *core.Error uses its
// own Code(); any other non-nil error is treated as a usage-level failure.
func extractExitCode(err error) int {
	if err == nil {
		return int(core.ExitSuccess)
	}
	var jsonaiErr *core.Error
	if errors.As(err, &jsonaiErr) {
		return jsonaiErr.Code()
	}
	return int(core.ExitError)
}

// RootCmd returns the root cobra.Command for use in testing and subcommand
// registration.
func RootCmd() *cobra.Command {
	return rootCmd
}

// Defaults returns the resolved config.Defaults. Available after
// PersistentPreRunE has run.
func Defaults() *config.Defaults {
	return resolvedDefaults
}
