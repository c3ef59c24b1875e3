package statedb

import (
	"os"
	"path/filepath"
	"sort"

	"github.com/Nunuaa/AugmentCleaner/internal/editor"
)

// ListDatabases returns every embedded database below an editor data root:
// the global one plus one per workspace-storage entry. Only files that
// exist are returned, sorted for stable output.
func ListDatabases(root string) []string {
	var dbs []string

	global := filepath.Join(editor.GlobalStorageDir(root), editor.StateDBName)
	if info, err := os.Stat(global); err == nil && info.Mode().IsRegular() {
		dbs = append(dbs, global)
	}

	entries, err := os.ReadDir(editor.WorkspaceStorageDir(root))
	if err != nil {
		return dbs
	}
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		db := filepath.Join(editor.WorkspaceStorageDir(root), entry.Name(), editor.StateDBName)
		if info, err := os.Stat(db); err == nil && info.Mode().IsRegular() {
			dbs = append(dbs, db)
		}
	}

	sort.Strings(dbs)
	return dbs
}
