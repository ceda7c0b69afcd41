// Package store wraps the embedded relational database holding the single
// `files` table described by the data model: a dense-id row per scanned
// file, keyed uniquely by abs_path, enriched incrementally by the pipeline
// coordinator.
//
// The store treats the embedded database as a black box for user queries --
// it never parses or rewrites user-supplied SQL (stage 4, Serve). Internal
// statements (upsert, selection-id extraction, enrichment update) are the
// only SQL the store itself authors.
package store

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"time"

	_ "modernc.org/sqlite"
)

// MemoryDSN is the special -f/--file value that selects an in-memory store.
const MemoryDSN = ":memory:"

// Store is a single-file (or in-memory) SQLite-backed database holding the
// files table. All access is funneled through a single *sql.DB with a
// max-open-conns of 1: the pipeline coordinator's enrichment workers call
// the store concurrently, and the single connection is what serializes
// their statements. SQLite itself only supports one writer at a time, so a
// single connection avoids SQLITE_BUSY churn entirely rather than papering
// over it with busy-timeout retries.
type Store struct {
	db     *sql.DB
	path   string
	logger *slog.Logger
}

// Open opens (creating if necessary) the store at path, applying forward
// migrations. path == MemoryDSN (or "") opens an in-memory database in
// SQLite's shared cache, so in-memory Stores open at the same time in one
// process see the same data.
func Open(path string) (*Store, error) {
	dsn := path
	if path == MemoryDSN || path == "" {
		dsn = "file::memory:?cache=shared"
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("opening store %s: %w", path, err)
	}
	db.SetMaxOpenConns(1)

	if err := migrate(db); err != nil {
		db.Close() //nolint:errcheck
		return nil, fmt.Errorf("migrating store %s: %w", path, err)
	}

	return &Store{
		db:     db,
		path:   path,
		logger: slog.Default().With("component", "store"),
	}, nil
}

// Delete removes the on-disk store file before stage 1, implementing -d.
// It is a no-op for in-memory stores.
func Delete(path string) error {
	if path == MemoryDSN || path == "" {
		return nil
	}
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("deleting store %s: %w", path, err)
	}
	return nil
}

// Close closes the underlying database handle.
func (s *Store) Close() error {
	return s.db.Close()
}

// Path returns the DSN or file path this store was opened with.
func (s *Store) Path() string {
	return s.path
}

// HasRows reports whether the files table currently has at least one row.
// Used by the coordinator to decide whether the default (no -u) mode can
// skip straight to stage 4.
func (s *Store) HasRows(ctx context.Context) (bool, error) {
	var n int
	err := s.db.QueryRowContext(ctx, `SELECT EXISTS(SELECT 1 FROM files LIMIT 1)`).Scan(&n)
	if err != nil {
		return false, fmt.Errorf("checking row existence: %w", err)
	}
	return n == 1, nil
}

// BaseRow is the set of fields the extractor and classifiers populate before
// a row is inserted or upserted. Computed (content-derived) fields are never
// part of a BaseRow -- they are written later, one file at a time, via
// UpdateEnrichment.
type BaseRow struct {
	AbsPath string
	Path    string
	Ext     string

	Mode      string
	IsDir     bool
	IsFile    bool
	IsSymlink bool
	IsEmpty   bool
	Size      int64

	User  *string
	Group *string
	UID   *int
	GID   *int

	ATime *time.Time
	MTime *time.Time
	CTime *time.Time

	IsArchive  *bool
	IsDocument *bool
	IsMedia    *bool
	IsCode     *bool
	IsIgnored  bool
}

// UpsertBase inserts a new row for row.AbsPath, or updates the existing row
// with the same abs_path in place, refreshing entry_time. A new row starts
// with computed = false; an existing row keeps its computed flag, so a
// re-walk does not cause already-enriched rows to be enriched again (two
// inserts with the same abs_path upsert the same row). Returns the row's id.
func (s *Store) UpsertBase(ctx context.Context, row BaseRow, now time.Time) (int64, error) {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO files (
			abs_path, path, ext, mode, is_dir, is_file, is_symlink, is_empty, size,
			user, "group", uid, gid, atime, mtime, ctime,
			is_archive, is_document, is_media, is_code, is_ignored,
			entry_time, computed
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, 0)
		ON CONFLICT(abs_path) DO UPDATE SET
			path = excluded.path,
			ext = excluded.ext,
			mode = excluded.mode,
			is_dir = excluded.is_dir,
			is_file = excluded.is_file,
			is_symlink = excluded.is_symlink,
			is_empty = excluded.is_empty,
			size = excluded.size,
			user = excluded.user,
			"group" = excluded."group",
			uid = excluded.uid,
			gid = excluded.gid,
			atime = excluded.atime,
			mtime = excluded.mtime,
			ctime = excluded.ctime,
			is_archive = excluded.is_archive,
			is_document = excluded.is_document,
			is_media = excluded.is_media,
			is_code = excluded.is_code,
			is_ignored = excluded.is_ignored,
			entry_time = excluded.entry_time
	`,
		row.AbsPath, row.Path, nullableString(row.Ext), row.Mode, row.IsDir, row.IsFile, row.IsSymlink, row.IsEmpty, row.Size,
		row.User, row.Group, row.UID, row.GID,
		nullableTime(row.ATime), nullableTime(row.MTime), nullableTime(row.CTime),
		row.IsArchive, row.IsDocument, row.IsMedia, row.IsCode, row.IsIgnored,
		now.Unix(),
	)
	if err != nil {
		return 0, fmt.Errorf("upserting base row for %s: %w", row.AbsPath, err)
	}

	var id int64
	if err := s.db.QueryRowContext(ctx, `SELECT id FROM files WHERE abs_path = ?`, row.AbsPath).Scan(&id); err != nil {
		return 0, fmt.Errorf("fetching id for %s: %w", row.AbsPath, err)
	}
	return id, nil
}

func nullableString(s string) any {
	if s == "" {
		return nil
	}
	return s
}

func nullableTime(t *time.Time) any {
	if t == nil {
		return nil
	}
	return t.Unix()
}
