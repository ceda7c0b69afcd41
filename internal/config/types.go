// Package config resolves recon's configuration from defaults, an optional
// YAML file, environment variables, and CLI flags (in that precedence
// order), and sets up process-wide logging. This is a foundational
// cross-cutting concern used by every other internal package.
package config

// Config is the fully-resolved configuration for one recon run, unmarshaled
// from the layered koanf tree built by Load.
type Config struct {
	Source Source `koanf:"source"`
}

// Source mirrors the `source.*` key table (spec.md §6).
type Source struct {
	// Root is the directory the walker starts from.
	Root string `koanf:"root"`

	// File is the store path. The special value ":memory:" selects an
	// in-memory store. Overridden by DATABASE_URL and -f/--file.
	File string `koanf:"file"`

	// Query is the final, user-facing query run at stage 4 and rendered
	// to the configured output format.
	Query string `koanf:"query"`

	// BeforeComputedFieldsQuery is the stage-2 selection predicate.
	// Defaults to pipeline.DefaultSelectionQuery.
	BeforeComputedFieldsQuery string `koanf:"before_computed_fields_query"`

	// DefaultFields configures the four extension-set classifiers
	// (is_archive/is_document/is_media/is_code). A class key absent from
	// this map is left null on every row (spec.md §4.3).
	DefaultFields map[string][]string `koanf:"default_fields"`

	// ComputedFields enables processors and matchers by name. Processor
	// keys (crc32/md5/sha256/sha512/simhash/byte_type/is_binary/file_magic)
	// take a boolean-like presence; matcher keys take their token list /
	// regex / rule blob as a raw value, handled in internal/pipeline wiring.
	ComputedFields map[string]any `koanf:"computed_fields"`
}

// DigestMatchKeys are the computed_fields keys backed by DigestMatcher. Each
// implicitly enables its corresponding digest processor (spec.md §9's
// one-pass topological enable rule).
var DigestMatchKeys = map[string]string{
	"crc32_match":  "crc32",
	"md5_match":    "md5",
	"sha256_match": "sha256",
	"sha512_match": "sha512",
}

// ProcessorKeys are the computed_fields keys that enable a content
// processor directly (spec.md §4.4).
var ProcessorKeys = map[string]struct{}{
	"byte_type":  {},
	"is_binary":  {},
	"file_magic": {},
	"crc32":      {},
	"md5":        {},
	"sha256":     {},
	"sha512":     {},
	"simhash":    {},
}

// MatcherKeys are the computed_fields keys that enable a matcher directly
// (spec.md §4.5), beyond the digest-equality matchers in DigestMatchKeys.
var MatcherKeys = map[string]struct{}{
	"simhash_match": {},
	"path_match":    {},
	"content_match": {},
	"yara_match":    {},
}

// recognizedComputedFieldKeys is the union of every key ComputedFields may
// legally contain (spec.md §6: "Unknown keys are rejected at config load").
func recognizedComputedFieldKeys() map[string]struct{} {
	keys := make(map[string]struct{})
	for k := range ProcessorKeys {
		keys[k] = struct{}{}
	}
	for k := range DigestMatchKeys {
		keys[k] = struct{}{}
	}
	for k := range MatcherKeys {
		keys[k] = struct{}{}
	}
	return keys
}

// recognizedDefaultFieldKeys is the set of legal source.default_fields
// class names.
func recognizedDefaultFieldKeys() map[string]struct{} {
	return map[string]struct{}{
		"is_archive":  {},
		"is_document": {},
		"is_media":    {},
		"is_code":     {},
	}
}
