// Package metadata turns a walked filesystem entry into a base store.BaseRow:
// path, mode, sizes, times, ownership, directory/symlink flags, and
// extension. It never reads file content.
package metadata

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/filerecon/recon/internal/store"
)

// Entry is what the walker hands to Extract for a single path.
type Entry struct {
	// AbsPath is the canonical absolute path (directory-prefix symlinks
	// resolved; the leaf itself is left unresolved so the row still reports
	// IsSymlink accurately).
	AbsPath string

	// Path is the path as yielded by the walker, relative to the walk root.
	Path string
}

// Extract stats entry.AbsPath and builds a store.BaseRow from it. Class
// fields (IsArchive/IsDocument/IsMedia/IsCode/IsIgnored) are left at their
// zero value -- the pipeline coordinator fills those in afterwards, the four
// classes via internal/classify and IsIgnored from the discovery ignore
// matchers.
func Extract(entry Entry) (store.BaseRow, error) {
	info, err := os.Lstat(entry.AbsPath)
	if err != nil {
		return store.BaseRow{}, fmt.Errorf("stat %s: %w", entry.AbsPath, err)
	}

	isSymlink := info.Mode()&os.ModeSymlink != 0

	row := store.BaseRow{
		AbsPath:   entry.AbsPath,
		Path:      entry.Path,
		Ext:       ext(entry.AbsPath),
		Mode:      info.Mode().String(),
		IsDir:     info.IsDir(),
		IsFile:    info.Mode().IsRegular(),
		IsSymlink: isSymlink,
		IsEmpty:   info.Size() == 0,
		Size:      info.Size(),
	}

	populateOwnership(&row, info)
	populateTimes(&row, info)

	return row, nil
}

// ext returns the file's extension, lowercased and without the leading dot.
// A file with no extension (or whose name is only a dot-prefix, e.g.
// ".gitignore") returns "".
func ext(path string) string {
	base := filepath.Base(path)
	e := filepath.Ext(base)
	if e == "" || e == base {
		return ""
	}
	return strings.ToLower(strings.TrimPrefix(e, "."))
}
