// Package discovery implements the directory walker and the ignore-file
// chain it (and the is_ignored classifier) consult.
package discovery

import (
	"log/slog"
)

// Ignorer is the interface for all ignore-pattern matchers recon consults.
// The path must be relative to the repository root, using forward slashes.
// isDir indicates whether path is a directory, needed for directory-only
// patterns (trailing "/").
type Ignorer interface {
	IsIgnored(path string, isDir bool) bool
}

// CompositeIgnorer chains multiple Ignorer implementations and reports a
// path ignored if ANY source matches it.
type CompositeIgnorer struct {
	ignorers []Ignorer
	logger   *slog.Logger
}

// NewCompositeIgnorer builds a CompositeIgnorer from the given ignorers.
// Nil entries are skipped, so callers can pass an unconditionally-built
// slice without checking for a disabled GitignoreMatcher first.
func NewCompositeIgnorer(ignorers ...Ignorer) *CompositeIgnorer {
	filtered := make([]Ignorer, 0, len(ignorers))
	for _, ig := range ignorers {
		if ig != nil {
			filtered = append(filtered, ig)
		}
	}
	return &CompositeIgnorer{
		ignorers: filtered,
		logger:   slog.Default().With("component", "composite-ignorer"),
	}
}

// IsIgnored reports whether path is matched by any chained ignorer.
func (c *CompositeIgnorer) IsIgnored(path string, isDir bool) bool {
	for _, ig := range c.ignorers {
		if ig.IsIgnored(path, isDir) {
			return true
		}
	}
	return false
}

// IgnorerCount returns the number of active ignorers in the chain.
func (c *CompositeIgnorer) IgnorerCount() int {
	return len(c.ignorers)
}

var _ Ignorer = (*CompositeIgnorer)(nil)
