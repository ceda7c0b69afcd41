//go:build unix

package metadata

import (
	"os/user"
	"strconv"
	"sync"
	"syscall"
	"time"

	"github.com/filerecon/recon/internal/store"
)

// userCache/groupCache memoize uid/gid -> name lookups: a single large scan
// can stat thousands of files owned by the same handful of accounts, and
// os/user.LookupId hits NSS/getpwuid on every call.
var (
	userCacheMu  sync.Mutex
	userCache    = map[int]string{}
	groupCacheMu sync.Mutex
	groupCache   = map[int]string{}
)

func lookupUser(uid int) string {
	userCacheMu.Lock()
	defer userCacheMu.Unlock()
	if name, ok := userCache[uid]; ok {
		return name
	}
	name := strconv.Itoa(uid)
	if u, err := user.LookupId(name); err == nil {
		name = u.Username
	}
	userCache[uid] = name
	return name
}

func lookupGroup(gid int) string {
	groupCacheMu.Lock()
	defer groupCacheMu.Unlock()
	if name, ok := groupCache[gid]; ok {
		return name
	}
	name := strconv.Itoa(gid)
	if g, err := user.LookupGroupId(name); err == nil {
		name = g.Name
	}
	groupCache[gid] = name
	return name
}

func populateOwnership(row *store.BaseRow, info interface {
	Sys() any
}) {
	stat, ok := info.Sys().(*syscall.Stat_t)
	if !ok {
		return
	}
	uid := int(stat.Uid)
	gid := int(stat.Gid)
	userName := lookupUser(uid)
	groupName := lookupGroup(gid)
	row.UID = &uid
	row.GID = &gid
	row.User = &userName
	row.Group = &groupName
}

func populateTimes(row *store.BaseRow, info interface {
	Sys() any
	ModTime() time.Time
}) {
	mtime := info.ModTime()
	row.MTime = &mtime

	stat, ok := info.Sys().(*syscall.Stat_t)
	if !ok {
		return
	}
	atime := time.Unix(stat.Atim.Sec, stat.Atim.Nsec) //nolint:unconvert
	ctime := time.Unix(stat.Ctim.Sec, stat.Ctim.Nsec) //nolint:unconvert
	row.ATime = &atime
	row.CTime = &ctime
}
