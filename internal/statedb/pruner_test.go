package statedb

import (
	"context"
	"database/sql"
	"os"
	"path/filepath"
	"testing"
)

// newStateDB creates a state.vscdb fixture with the given keys.
func newStateDB(t *testing.T, keys ...string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "state.vscdb")

	db, err := sql.Open("sqlite3", path)
	if err != nil {
		t.Fatalf("failed to open fixture database: %v", err)
	}
	defer db.Close()

	if _, err := db.Exec("CREATE TABLE ItemTable (key TEXT UNIQUE ON CONFLICT REPLACE, value BLOB)"); err != nil {
		t.Fatalf("failed to create ItemTable: %v", err)
	}
	for _, key := range keys {
		if _, err := db.Exec("INSERT INTO ItemTable (key, value) VALUES (?, ?)", key, "x"); err != nil {
			t.Fatalf("failed to insert %q: %v", key, err)
		}
	}
	return path
}

func countRows(t *testing.T, path string) int {
	t.Helper()
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		t.Fatalf("failed to reopen database: %v", err)
	}
	defer db.Close()

	var n int
	if err := db.QueryRow("SELECT COUNT(*) FROM ItemTable").Scan(&n); err != nil {
		t.Fatalf("failed to count rows: %v", err)
	}
	return n
}

func TestCountMatches(t *testing.T) {
	path := newStateDB(t,
		"augment.chat.state",
		"vscode-augment.session",
		"workbench.panel.position",
		"editor.fontSize",
	)

	n, err := CountMatches(context.Background(), path, []string{"%augment%"})
	if err != nil {
		t.Fatalf("CountMatches returned error: %v", err)
	}
	if n != 2 {
		t.Errorf("CountMatches = %d, want 2", n)
	}
}

func TestCountMatchesNoPatterns(t *testing.T) {
	path := newStateDB(t, "augment.chat.state")

	n, err := CountMatches(context.Background(), path, nil)
	if err != nil {
		t.Fatalf("CountMatches returned error: %v", err)
	}
	if n != 0 {
		t.Errorf("CountMatches = %d, want 0 with no patterns", n)
	}
}

func TestPruneRowsRemovesOnlyMatches(t *testing.T) {
	path := newStateDB(t,
		"augment.chat.state",
		"AugmentCode.settings",
		"workbench.panel.position",
	)

	removed, err := PruneRows(context.Background(), path, []string{"%augment%"})
	if err != nil {
		t.Fatalf("PruneRows returned error: %v", err)
	}
	// SQLite LIKE is case-insensitive for ASCII, so both augment rows go.
	if removed != 2 {
		t.Errorf("PruneRows removed %d rows, want 2", removed)
	}
	if n := countRows(t, path); n != 1 {
		t.Errorf("rows remaining = %d, want 1", n)
	}
}

func TestPruneRowsIdempotent(t *testing.T) {
	path := newStateDB(t, "augment.chat.state", "editor.fontSize")
	patterns := []string{"%augment%"}

	if _, err := PruneRows(context.Background(), path, patterns); err != nil {
		t.Fatalf("first prune returned error: %v", err)
	}
	removed, err := PruneRows(context.Background(), path, patterns)
	if err != nil {
		t.Fatalf("second prune returned error: %v", err)
	}
	if removed != 0 {
		t.Errorf("second prune removed %d rows, want 0", removed)
	}
}

func TestPruneRowsCorruptedDatabase(t *testing.T) {
	bad := filepath.Join(t.TempDir(), "state.vscdb")
	if err := os.WriteFile(bad, []byte("not an sqlite file"), 0o644); err != nil {
		t.Fatalf("failed to write corrupted fixture: %v", err)
	}

	if _, err := PruneRows(context.Background(), bad, []string{"%augment%"}); err == nil {
		t.Fatal("expected an error pruning a corrupted database")
	}

	// One broken database must never stop a healthy one from being pruned.
	good := newStateDB(t, "augment.chat.state", "editor.fontSize")
	removed, err := PruneRows(context.Background(), good, []string{"%augment%"})
	if err != nil {
		t.Fatalf("PruneRows on healthy database returned error: %v", err)
	}
	if removed != 1 {
		t.Errorf("removed = %d, want 1", removed)
	}
}

func TestPruneRowsMissingDatabase(t *testing.T) {
	path := filepath.Join(t.TempDir(), "absent.vscdb")

	removed, err := PruneRows(context.Background(), path, []string{"%augment%"})
	if err != nil {
		t.Fatalf("PruneRows on missing database returned error: %v", err)
	}
	if removed != 0 {
		t.Errorf("removed = %d, want 0", removed)
	}
}
