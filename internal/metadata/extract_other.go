//go:build !unix

package metadata

import (
	"time"

	"github.com/filerecon/recon/internal/store"
)

// populateOwnership is a no-op on platforms without a syscall.Stat_t
// (spec's "where the host OS exposes them" clause): user/group/uid/gid stay
// null.
func populateOwnership(row *store.BaseRow, info interface{ Sys() any }) {}

// populateTimes fills only MTime, the one timestamp every platform's
// os.FileInfo exposes uniformly; atime/ctime stay null.
func populateTimes(row *store.BaseRow, info interface {
	Sys() any
	ModTime() time.Time
}) {
	mtime := info.ModTime()
	row.MTime = &mtime
}
