package discovery

import (
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	gitignore "github.com/sabhiram/go-gitignore"
)

// GitignoreMatcher loads and evaluates .gitignore patterns hierarchically.
// Nested .gitignore files add patterns that apply only within their
// subtree; parent rules are inherited by all subdirectories.
//
// Paths passed to IsIgnored must be relative to the root directory used to
// construct the matcher.
type GitignoreMatcher struct {
	root     string
	matchers map[string]*gitignore.GitIgnore
	dirs     []string
	logger   *slog.Logger
}

// NewGitignoreMatcher walks rootDir, discovers every .gitignore file, and
// compiles their patterns. If none exist, IsIgnored always returns false.
// Missing or unreadable .gitignore files at individual directory levels are
// logged and skipped without error.
func NewGitignoreMatcher(rootDir string) (*GitignoreMatcher, error) {
	absRoot, err := filepath.Abs(rootDir)
	if err != nil {
		return nil, fmt.Errorf("resolving root path %s: %w", rootDir, err)
	}

	info, err := os.Stat(absRoot)
	if err != nil {
		return nil, fmt.Errorf("stat root path %s: %w", absRoot, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("root path %s is not a directory", absRoot)
	}

	logger := slog.Default().With("component", "gitignore")
	m := &GitignoreMatcher{
		root:     absRoot,
		matchers: make(map[string]*gitignore.GitIgnore),
		logger:   logger,
	}

	if err := m.discover(); err != nil {
		return nil, fmt.Errorf("discovering .gitignore files in %s: %w", absRoot, err)
	}

	logger.Debug("gitignore matcher initialized", "root", absRoot, "gitignore_count", len(m.matchers))
	return m, nil
}

func (m *GitignoreMatcher) discover() error {
	err := filepath.WalkDir(m.root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			m.logger.Debug("skipping unreadable path", "path", path, "error", err)
			return filepath.SkipDir
		}
		if d.IsDir() && d.Name() == ".git" {
			return filepath.SkipDir
		}
		if d.IsDir() || d.Name() != ".gitignore" {
			return nil
		}

		dirPath := filepath.Dir(path)
		relDir, err := filepath.Rel(m.root, dirPath)
		if err != nil {
			m.logger.Debug("skipping .gitignore, cannot compute relative path", "path", path, "error", err)
			return nil
		}

		compiled, err := gitignore.CompileIgnoreFile(path)
		if err != nil {
			m.logger.Debug("skipping unreadable .gitignore", "path", path, "error", err)
			return nil
		}

		if relDir == "" {
			relDir = "."
		}
		m.matchers[relDir] = compiled
		m.logger.Debug("loaded .gitignore", "dir", relDir, "path", path)
		return nil
	})
	if err != nil {
		return fmt.Errorf("walking directory tree: %w", err)
	}

	m.dirs = make([]string, 0, len(m.matchers))
	for dir := range m.matchers {
		m.dirs = append(m.dirs, dir)
	}
	sort.Strings(m.dirs)
	return nil
}

// IsIgnored reports whether path is matched by a loaded .gitignore, walking
// from root toward path's parent directory so deeper rules are checked
// alongside inherited ones (performance: O(patterns across applicable
// files), not O(files)).
func (m *GitignoreMatcher) IsIgnored(path string, isDir bool) bool {
	normalizedPath := filepath.ToSlash(path)
	normalizedPath = strings.TrimPrefix(normalizedPath, "./")
	if normalizedPath == "" || normalizedPath == "." {
		return false
	}

	matchPath := normalizedPath
	if isDir && !strings.HasSuffix(matchPath, "/") {
		matchPath += "/"
	}

	for _, dir := range m.dirs {
		matcher := m.matchers[dir]

		if dir != "." {
			prefix := dir + "/"
			if !strings.HasPrefix(normalizedPath, prefix) {
				continue
			}
		}

		var relPath string
		if dir == "." {
			relPath = matchPath
		} else {
			relPath = strings.TrimPrefix(matchPath, dir+"/")
		}

		if matcher.MatchesPath(relPath) {
			m.logger.Debug("path matched gitignore", "path", normalizedPath, "gitignore_dir", dir, "rel_path", relPath)
			return true
		}
	}

	return false
}

// PatternCount returns the number of .gitignore files loaded.
func (m *GitignoreMatcher) PatternCount() int {
	return len(m.matchers)
}

var _ Ignorer = (*GitignoreMatcher)(nil)
