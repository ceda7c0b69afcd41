package discovery

import (
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// DefaultIgnorePatterns are the built-in structural noise patterns recon
// always applies in respect-ignore mode, layered on top of .gitignore.
// Patterns are doublestar globs (the same engine the teacher's
// discovery.PatternFilter uses for --include/--exclude matching), evaluated
// against the walk-relative, slash-normalized path.
//
// Unlike the teacher's equivalent list (which also suppresses security-
// sensitive file *names* -- .env, *.key, *secret* -- because its job is to
// avoid leaking secrets into an LLM context), recon's whole purpose is to
// surface exactly those files to a security analyst, so none of that
// category is carried over here. Only conventional, non-sensitive noise
// directories that would otherwise bloat every scan with vendored or
// generated trees are included.
var DefaultIgnorePatterns = []string{
	".git", "**/.git",
	"node_modules", "**/node_modules",
	"vendor", "**/vendor",
	".recon", "**/.recon",
}

// DefaultIgnoreMatcher evaluates DefaultIgnorePatterns as doublestar globs,
// implementing Ignorer.
type DefaultIgnoreMatcher struct {
	logger *slog.Logger
}

// NewDefaultIgnoreMatcher prepares the built-in patterns. It cannot fail:
// DefaultIgnorePatterns are compile-time constants known to be valid globs.
func NewDefaultIgnoreMatcher() *DefaultIgnoreMatcher {
	logger := slog.Default().With("component", "default-ignore")
	logger.Debug("default ignore matcher initialized", "pattern_count", len(DefaultIgnorePatterns))
	return &DefaultIgnoreMatcher{logger: logger}
}

// IsIgnored reports whether path matches a default ignore pattern.
func (d *DefaultIgnoreMatcher) IsIgnored(path string, isDir bool) bool {
	normalizedPath := filepath.ToSlash(path)
	normalizedPath = strings.TrimPrefix(normalizedPath, "./")
	if normalizedPath == "" || normalizedPath == "." {
		return false
	}

	for _, pattern := range DefaultIgnorePatterns {
		if ok, _ := doublestar.Match(pattern, normalizedPath); ok {
			d.logger.Debug("path matched default ignore", "path", normalizedPath, "pattern", pattern)
			return true
		}
	}
	return false
}

var _ Ignorer = (*DefaultIgnoreMatcher)(nil)
