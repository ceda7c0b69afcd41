package discovery

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
)

// SymlinkResolver tracks visited real paths to detect symlink loops while
// walking: the walker follows directories but never symlinks (spec's
// walker semantics), so this is used purely to recognize and skip symlink
// entries that would otherwise be double-reported via two different paths,
// not to traverse through them.
type SymlinkResolver struct {
	visited map[string]bool
	mu      sync.RWMutex
	logger  *slog.Logger
}

// NewSymlinkResolver creates a resolver with an empty visited set.
func NewSymlinkResolver() *SymlinkResolver {
	return &SymlinkResolver{
		visited: make(map[string]bool),
		logger:  slog.Default().With("component", "symlink-resolver"),
	}
}

// Resolve resolves path through any symlinks and reports whether the
// resolved real path has already been visited (a loop/duplicate). err is
// non-nil for a dangling symlink or other filesystem error.
func (s *SymlinkResolver) Resolve(path string) (realPath string, isLoop bool, err error) {
	resolved, err := filepath.EvalSymlinks(path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", false, fmt.Errorf("dangling symlink %s: %w", path, err)
		}
		return "", false, fmt.Errorf("resolving symlink %s: %w", path, err)
	}

	s.mu.RLock()
	loop := s.visited[resolved]
	s.mu.RUnlock()

	if loop {
		s.logger.Debug("symlink loop or duplicate detected", "path", path, "real_path", resolved)
		return resolved, true, nil
	}
	return resolved, false, nil
}

// MarkVisited records realPath as visited.
func (s *SymlinkResolver) MarkVisited(realPath string) {
	s.mu.Lock()
	s.visited[realPath] = true
	s.mu.Unlock()
}
