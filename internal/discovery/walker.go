package discovery

import (
	"context"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/filerecon/recon/internal/metadata"
)

// Result aggregates summary statistics for one walk, independent of
// whether base rows were actually inserted (used for progress logging and
// for tests).
type Result struct {
	TotalFound   int
	TotalSkipped int
	SkipReasons  map[string]int
}

// WalkerConfig configures one Walk call.
type WalkerConfig struct {
	// Root is the directory to walk.
	Root string

	// GitignoreMatcher handles .gitignore pattern matching. Pass nil when
	// --all disables ignore-file consultation.
	GitignoreMatcher Ignorer

	// DefaultIgnorer handles the built-in structural noise patterns. Pass
	// nil when --all disables ignore-file consultation.
	DefaultIgnorer Ignorer
}

// Walker is the directory-traversal engine: a lazy, finite, single-producer
// sequence of filesystem entries. Unlike the teacher's walker, recon's never
// reads file content -- content is only ever read later, once per candidate,
// during the pipeline's Enrich stage. This is the core structural divergence
// from the teacher (see DESIGN.md): the teacher's Walk loads every matched
// file's bytes eagerly in a second phase, which is exactly the
// "enrich everything unconditionally" behavior recon's staged, resumable
// computed-field model is designed to avoid.
type Walker struct {
	logger *slog.Logger
}

// NewWalker creates a new Walker.
func NewWalker() *Walker {
	return &Walker{logger: slog.Default().With("component", "walker")}
}

// Visit is called once per accepted (non-directory, non-ignored) entry.
// A non-nil error from Visit aborts the walk.
type Visit func(metadata.Entry) error

// Walk traverses cfg.Root, applying the ignore chain (when configured), and
// calls visit once per accepted entry in filepath.WalkDir order (stable
// within a run, unspecified across runs/platforms). Directory-read errors
// are logged and the subtree is skipped; Walk itself only returns an error
// for a failure at the root or for ctx cancellation or a visit error.
func (w *Walker) Walk(ctx context.Context, cfg WalkerConfig, visit Visit) (*Result, error) {
	root, err := filepath.Abs(cfg.Root)
	if err != nil {
		return nil, fmt.Errorf("resolving root path %s: %w", cfg.Root, err)
	}

	// Resolve symlinks in the root itself so every descendant's AbsPath
	// inherits a canonical prefix, per the data model's abs_path invariant.
	if resolved, err := filepath.EvalSymlinks(root); err == nil {
		root = resolved
	}

	info, err := os.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("stat root %s: %w", root, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("root %s is not a directory", root)
	}

	composite := NewCompositeIgnorer(cfg.DefaultIgnorer, cfg.GitignoreMatcher)
	symResolver := NewSymlinkResolver()

	totalFound := 0
	skipReasons := make(map[string]int)

	walkErr := filepath.WalkDir(root, func(path string, d fs.DirEntry, walkErr error) error {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		if walkErr != nil {
			w.logger.Debug("walk error", "path", path, "error", walkErr)
			return nil
		}

		relPath, err := filepath.Rel(root, path)
		if err != nil {
			return nil
		}
		relPath = filepath.ToSlash(relPath)
		if relPath == "." {
			return nil
		}

		isDir := d.IsDir()

		if isDir && d.Name() == ".git" {
			return fs.SkipDir
		}

		if composite.IsIgnored(relPath, isDir) {
			if isDir {
				return fs.SkipDir
			}
			totalFound++
			skipReasons["ignored"]++
			return nil
		}

		if isDir {
			return nil
		}

		totalFound++

		absPath := path
		if d.Type()&os.ModeSymlink != 0 {
			realPath, isLoop, err := symResolver.Resolve(path)
			if err != nil {
				w.logger.Debug("symlink error", "path", relPath, "error", err)
				skipReasons["symlink_error"]++
				return nil
			}
			if isLoop {
				skipReasons["symlink_duplicate"]++
				return nil
			}
			symResolver.MarkVisited(realPath)
		}

		if err := visit(metadata.Entry{AbsPath: absPath, Path: relPath}); err != nil {
			return fmt.Errorf("visiting %s: %w", relPath, err)
		}
		return nil
	})

	if walkErr != nil {
		return nil, fmt.Errorf("walking directory %s: %w", root, walkErr)
	}

	totalSkipped := 0
	for _, n := range skipReasons {
		totalSkipped += n
	}

	return &Result{
		TotalFound:   totalFound,
		TotalSkipped: totalSkipped,
		SkipReasons:  skipReasons,
	}, nil
}
