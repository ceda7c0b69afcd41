// Package pipeline defines the central data types shared across the
// coordinator and the top-level CLI: exit codes and the stage-2 selection
// default. The coordinator that drives a full enrichment pass lives in
// internal/pipeline/coordinator.go in this same package.
package pipeline

// ExitCode represents the process exit code returned by the recon CLI.
type ExitCode int

const (
	// ExitSuccess indicates the run completed and any --fail-some/--fail-none
	// condition was satisfied.
	ExitSuccess ExitCode = 0

	// ExitError indicates a fatal error: bad config, store failure, or a
	// triggered --fail-some/--fail-none condition.
	ExitError ExitCode = 1
)

// DefaultSelectionQuery is used for stage 2 (Selection) when the config does
// not set source.before_computed_fields_query.
const DefaultSelectionQuery = "SELECT * FROM files"
