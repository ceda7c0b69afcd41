package store

import (
	"context"
	"fmt"
)

// QueryResult is the generic, column-name-agnostic result of a user-supplied
// SQL statement (stage 4, Serve). The store never interprets the query or
// its result -- internal/render and internal/mcpserve consume QueryResult,
// and both treat every column as opaque.
type QueryResult struct {
	Columns []string
	Rows    [][]any
}

// Query executes sqlText (the user's final query, or any other read
// statement) against the store and returns its result set verbatim. The
// statement is passed through to the embedded database unchanged: recon
// never parses or rewrites user SQL.
func (s *Store) Query(ctx context.Context, sqlText string) (*QueryResult, error) {
	rows, err := s.db.QueryContext(ctx, sqlText)
	if err != nil {
		return nil, fmt.Errorf("executing query: %w", err)
	}
	defer rows.Close()

	cols, err := rows.Columns()
	if err != nil {
		return nil, fmt.Errorf("reading result columns: %w", err)
	}

	result := &QueryResult{Columns: cols}
	for rows.Next() {
		vals := make([]any, len(cols))
		ptrs := make([]any, len(cols))
		for i := range vals {
			ptrs[i] = &vals[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return nil, fmt.Errorf("scanning result row: %w", err)
		}
		result.Rows = append(result.Rows, vals)
	}
	return result, rows.Err()
}

// Exec runs a non-query statement against the store, passed through
// unchanged.
func (s *Store) Exec(ctx context.Context, sqlText string) error {
	if _, err := s.db.ExecContext(ctx, sqlText); err != nil {
		return fmt.Errorf("executing statement: %w", err)
	}
	return nil
}
