// Package cli implements the Cobra command hierarchy for the recon CLI
// tool. The root command defined here is the entry point for all
// subcommands and handles cross-cutting concerns like logging
// initialization and error handling.
package cli

import (
	"context"
	"errors"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/filerecon/recon/internal/config"
	"github.com/filerecon/recon/internal/pipeline"
)

// flagValues holds the parsed global flag values, populated by
// config.BindFlags during command initialization and validated in
// PersistentPreRunE.
var flagValues *config.FlagValues

var rootCmd = &cobra.Command{
	Use:   "recon",
	Short: "Local filesystem reconnaissance for security operators.",
	Long: `recon walks a directory tree, records file metadata into a queryable
SQLite store, and incrementally enriches rows with digests, byte-type
classification, file-magic detection, simhash near-duplicate fingerprints,
and pluggable matchers (digest equality, path/content regex, YARA), so an
operator can drive the whole thing through one SQL query.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := config.ValidateFlags(flagValues); err != nil {
			return err
		}

		level := config.ResolveLogLevel(flagValues.Verbose)
		format := config.ResolveLogFormat()
		config.SetupLogging(level, format)

		slog.Debug("logging initialized", "level", level, "format", format)
		return nil
	},
	// When no subcommand is given, delegate to the run command: recon's
	// primary workflow is "walk/enrich/query", not a noun a user names.
	RunE: func(cmd *cobra.Command, args []string) error {
		return runRecon(cmd, args)
	},
}

func init() {
	flagValues = config.BindFlags(rootCmd)
}

// Execute runs the root command under ctx (canceled by
// cmd/recon/main.go on SIGINT/SIGTERM) and returns an appropriate exit
// code. If the error is a *pipeline.ReconError, its Code is used. Generic
// errors return ExitError (1). Nil returns ExitSuccess (0).
func Execute(ctx context.Context) int {
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		slog.Error(err.Error())
		return extractExitCode(err)
	}
	return int(pipeline.ExitSuccess)
}

// extractExitCode determines the process exit code from an error. If the
// error is a *pipeline.ReconError, its Code field is used. Otherwise,
// ExitError (1) is returned for any non-nil error.
func extractExitCode(err error) int {
	if err == nil {
		return int(pipeline.ExitSuccess)
	}
	var reconErr *pipeline.ReconError
	if errors.As(err, &reconErr) {
		return reconErr.Code
	}
	return int(pipeline.ExitError)
}

// RootCmd returns the root cobra.Command for use in testing and subcommand
// registration.
func RootCmd() *cobra.Command {
	return rootCmd
}

// GlobalFlags returns the parsed global flag values. This is available
// after PersistentPreRunE has run. Subcommands use this to access shared
// configuration.
func GlobalFlags() *config.FlagValues {
	return flagValues
}
