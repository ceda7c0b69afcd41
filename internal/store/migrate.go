package store

import (
	"database/sql"
	"fmt"
)

// migrate applies forward migrations from the store's current recorded
// schema_meta.version up to schemaVersion, inside a single transaction. A
// brand-new store (no schema_meta row) starts at version 0.
func migrate(db *sql.DB) error {
	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("begin migration transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	if _, err := tx.Exec(createFilesTable); err != nil {
		return fmt.Errorf("apply v1 schema: %w", err)
	}

	var current int
	row := tx.QueryRow(`SELECT version FROM schema_meta LIMIT 1`)
	switch err := row.Scan(&current); {
	case err == sql.ErrNoRows:
		if _, err := tx.Exec(`INSERT INTO schema_meta (version) VALUES (?)`, schemaVersion); err != nil {
			return fmt.Errorf("record schema version: %w", err)
		}
	case err != nil:
		return fmt.Errorf("read schema version: %w", err)
	case current < schemaVersion:
		if _, err := tx.Exec(`UPDATE schema_meta SET version = ?`, schemaVersion); err != nil {
			return fmt.Errorf("update schema version: %w", err)
		}
	}

	return tx.Commit()
}
