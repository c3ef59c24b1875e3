// Package statedb reads and prunes the editors' embedded per-workspace
// key-value databases (state.vscdb): a single ItemTable with text key and
// opaque value columns. Every call opens, works, and closes; no connection
// outlives a call.
package statedb

import (
	"context"
	"database/sql"
	"fmt"
	"os"

	_ "github.com/mattn/go-sqlite3"
)

const itemTable = "ItemTable"

// CountMatches counts rows whose key matches any of the LIKE patterns.
// A pattern matching a row already counted by an earlier pattern counts
// again; callers only care whether the total is zero.
func CountMatches(ctx context.Context, dbPath string, patterns []string) (int, error) {
	if len(patterns) == 0 {
		return 0, nil
	}

	db, err := sql.Open("sqlite3", "file:"+dbPath+"?mode=ro")
	if err != nil {
		return 0, fmt.Errorf("failed to open database %s: %w", dbPath, err)
	}
	defer db.Close()

	total := 0
	for _, pattern := range patterns {
		var n int
		query := fmt.Sprintf("SELECT COUNT(*) FROM %s WHERE key LIKE ?", itemTable)
		if err := db.QueryRowContext(ctx, query, pattern).Scan(&n); err != nil {
			return 0, fmt.Errorf("failed to query %s: %w", dbPath, err)
		}
		total += n
	}
	return total, nil
}

// PruneRows deletes all rows whose key matches any of the LIKE patterns and
// returns the number of rows removed. All patterns are applied inside one
// transaction with a single commit. A missing database is a no-op success.
// A failure on one database never affects any other; callers record the
// error per database and move on.
func PruneRows(ctx context.Context, dbPath string, patterns []string) (int, error) {
	if len(patterns) == 0 {
		return 0, nil
	}
	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		return 0, nil
	}

	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return 0, fmt.Errorf("failed to open database %s: %w", dbPath, err)
	}
	defer db.Close()

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction on %s: %w", dbPath, err)
	}

	removed := 0
	stmt := fmt.Sprintf("DELETE FROM %s WHERE key LIKE ?", itemTable)
	for _, pattern := range patterns {
		res, err := tx.ExecContext(ctx, stmt, pattern)
		if err != nil {
			tx.Rollback()
			return 0, fmt.Errorf("failed to delete rows matching %q in %s: %w", pattern, dbPath, err)
		}
		if n, err := res.RowsAffected(); err == nil {
			removed += int(n)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit deletes on %s: %w", dbPath, err)
	}
	return removed, nil
}
