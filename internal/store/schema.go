package store

// schemaVersion is the current forward-migration level. store.Open applies
// every migration from the store's recorded version up to this one inside a
// single transaction before any other statement runs.
const schemaVersion = 1

// createFilesTable is migration v1: the initial files table plus the
// uniqueness index on abs_path required by spec's data model.
const createFilesTable = `
CREATE TABLE IF NOT EXISTS schema_meta (
	version INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS files (
	id          INTEGER PRIMARY KEY AUTOINCREMENT,
	abs_path    TEXT NOT NULL,
	path        TEXT NOT NULL,
	ext         TEXT,

	mode        TEXT,
	is_dir      BOOLEAN,
	is_file     BOOLEAN,
	is_symlink  BOOLEAN,
	is_empty    BOOLEAN,
	size        INTEGER,
	user        TEXT,
	"group"     TEXT,
	uid         INTEGER,
	gid         INTEGER,
	atime       INTEGER,
	mtime       INTEGER,
	ctime       INTEGER,

	is_archive  BOOLEAN,
	is_document BOOLEAN,
	is_media    BOOLEAN,
	is_code     BOOLEAN,
	is_ignored  BOOLEAN,

	is_binary   BOOLEAN,
	bytes_type  TEXT,
	file_magic  TEXT,
	crc32       TEXT,
	sha256      TEXT,
	sha512      TEXT,
	md5         TEXT,
	simhash     TEXT,

	crc32_match   TEXT,
	sha256_match  TEXT,
	sha512_match  TEXT,
	md5_match     TEXT,
	simhash_match TEXT,
	path_match    TEXT,
	content_match TEXT,
	yara_match    TEXT,

	quick_hash  TEXT,
	entry_time  INTEGER,
	computed    BOOLEAN NOT NULL DEFAULT 0
);

CREATE UNIQUE INDEX IF NOT EXISTS idx_files_abs_path ON files(abs_path);
`
