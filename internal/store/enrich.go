package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"
)

// Candidate is the subset of base-row fields the Enrich stage (pipeline
// stage 3) needs before it can open and process a file's content.
type Candidate struct {
	ID        int64
	AbsPath   string
	Path      string
	Ext       string
	IsDir     bool
	IsFile    bool
	IsSymlink bool
	Size      int64
	MTime     *time.Time
	QuickHash *string
	Computed  bool
}

// SelectCandidateIDs runs the configured before-computed-fields query
// (selectionQuery) and returns the ids of the rows it selects. The query is
// expected to select from the files table (directly or via a WHERE/ORDER/
// LIMIT-only override of the default "SELECT * FROM files") -- its own
// column list is irrelevant as long as an `id` column is present, since this
// method only extracts ids and GetCandidate re-fetches the full row.
//
// When onlyUncomputed is true, rows with computed = true are excluded --
// this is the default-mode/-u resumability filter described in the data
// model's lifecycle section: a resumed run only re-admits unfinished rows.
// --delete and --inmem runs always start with an empty store, so the filter
// is moot for them; a plain rerun over an existing store passes
// onlyUncomputed = true so previously enriched rows are not redone.
func (s *Store) SelectCandidateIDs(ctx context.Context, selectionQuery string, onlyUncomputed bool) ([]int64, error) {
	query := fmt.Sprintf(`SELECT sel.id FROM (%s) AS sel`, selectionQuery)
	if onlyUncomputed {
		query = fmt.Sprintf(
			`SELECT sel.id FROM (%s) AS sel JOIN files f ON f.id = sel.id WHERE f.computed = 0`,
			selectionQuery,
		)
	}

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("running selection query: %w", err)
	}
	defer rows.Close()

	var ids []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scanning selection id: %w", err)
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

// GetCandidate fetches the fields needed to enrich row id.
func (s *Store) GetCandidate(ctx context.Context, id int64) (*Candidate, error) {
	var c Candidate
	var ext sql.NullString
	var mtime sql.NullInt64
	var quickHash sql.NullString

	err := s.db.QueryRowContext(ctx, `
		SELECT id, abs_path, path, ext, is_dir, is_file, is_symlink, size, mtime, quick_hash, computed
		FROM files WHERE id = ?
	`, id).Scan(&c.ID, &c.AbsPath, &c.Path, &ext, &c.IsDir, &c.IsFile, &c.IsSymlink, &c.Size, &mtime, &quickHash, &c.Computed)
	if err != nil {
		return nil, fmt.Errorf("fetching candidate %d: %w", id, err)
	}

	c.Ext = ext.String
	if mtime.Valid {
		t := time.Unix(mtime.Int64, 0)
		c.MTime = &t
	}
	if quickHash.Valid {
		c.QuickHash = &quickHash.String
	}
	return &c, nil
}

// EnrichmentUpdate carries the combined output of all enabled processors and
// matchers for a single file, written back atomically. Every pointer/match
// field left nil is written as SQL NULL -- the "not configured" tri-state.
// Match fields use *string holding a pre-encoded JSON array (or the literal
// "[]"); nil means the matcher did not run.
type EnrichmentUpdate struct {
	IsBinary  *bool
	BytesType *string
	FileMagic *string
	CRC32     *string
	SHA256    *string
	SHA512    *string
	MD5       *string
	SimHash   *string

	CRC32Match   *string
	SHA256Match  *string
	SHA512Match  *string
	MD5Match     *string
	SimHashMatch *string
	PathMatch    *string
	ContentMatch *string
	YaraMatch    *string

	QuickHash *string
}

// UpdateEnrichment writes the combined computed-field update for row id and
// flips computed = true. This is called exactly once per candidate per
// enrichment pass, after every configured processor/matcher has either
// produced a value or failed (in which case its field is left nil): the
// computed flag is only ever raised once every configured field has been
// written, per the data model's invariant, so a reader never observes a
// half-enriched row.
func (s *Store) UpdateEnrichment(ctx context.Context, id int64, u EnrichmentUpdate, now time.Time) error {
	_, err := s.db.ExecContext(ctx, `
		UPDATE files SET
			is_binary = ?, bytes_type = ?, file_magic = ?,
			crc32 = ?, sha256 = ?, sha512 = ?, md5 = ?, simhash = ?,
			crc32_match = ?, sha256_match = ?, sha512_match = ?, md5_match = ?,
			simhash_match = ?, path_match = ?, content_match = ?, yara_match = ?,
			quick_hash = ?, entry_time = ?, computed = 1
		WHERE id = ?
	`,
		u.IsBinary, u.BytesType, u.FileMagic,
		u.CRC32, u.SHA256, u.SHA512, u.MD5, u.SimHash,
		u.CRC32Match, u.SHA256Match, u.SHA512Match, u.MD5Match,
		u.SimHashMatch, u.PathMatch, u.ContentMatch, u.YaraMatch,
		u.QuickHash, now.Unix(), id,
	)
	if err != nil {
		return fmt.Errorf("updating enrichment for row %d: %w", id, err)
	}
	return nil
}

// MarkComputedOnly flips computed = true without touching any content field.
// Used by the quick-hash short-circuit (SPEC_FULL.md section 4.6): a
// candidate whose quick hash is unchanged from a prior completed pass is
// re-confirmed rather than re-processed.
func (s *Store) MarkComputedOnly(ctx context.Context, id int64, now time.Time) error {
	_, err := s.db.ExecContext(ctx, `UPDATE files SET computed = 1, entry_time = ? WHERE id = ?`, now.Unix(), id)
	if err != nil {
		return fmt.Errorf("marking row %d computed: %w", id, err)
	}
	return nil
}
