package config

// DefaultFile is the default store path when -f/--file and DATABASE_URL are
// both unset.
const DefaultFile = "recon.db"

// MemoryDSN is the special -f/--file value selecting an in-memory store.
const MemoryDSN = ":memory:"

// DefaultSelectionQuery mirrors pipeline.DefaultSelectionQuery. Duplicated
// as a plain literal (rather than imported) so config has no dependency on
// internal/pipeline; internal/cli passes config values to the pipeline.
const DefaultSelectionQuery = "SELECT * FROM files"

// defaults returns the base layer of the koanf configuration tree, applied
// before the config file, environment, and flags.
func defaults() map[string]any {
	return map[string]any{
		"source.root":                         ".",
		"source.file":                         DefaultFile,
		"source.query":                        DefaultSelectionQuery,
		"source.before_computed_fields_query": DefaultSelectionQuery,
	}
}
