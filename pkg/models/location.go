package models

import "time"

// Category classifies a discovered location by the storage subsystem it
// belongs to.
type Category string

const (
	CategoryGlobalStorage    Category = "global_storage"
	CategoryWorkspaceStorage Category = "workspace_storage"
	CategoryDatabase         Category = "database"
	CategoryConfigFile       Category = "config_file"
	CategoryOtherFile        Category = "other_file"
)

// DatabaseHit is one embedded database together with the number of rows
// that matched the configured key patterns at scan time.
type DatabaseHit struct {
	Path        string `json:"path"`
	MatchedRows int    `json:"matched_rows"`
}

// ScanResult is the output of one scanner pass. It is a pure snapshot of
// on-disk state at the instant of the scan; it owns nothing it names.
type ScanResult struct {
	EditorKey string    `json:"editor_key"`
	ScanTime  time.Time `json:"scan_time"`

	GlobalStorageDirs    []string      `json:"global_storage_dirs"`
	WorkspaceStorageDirs []string      `json:"workspace_storage_dirs"`
	DatabaseHits         []DatabaseHit `json:"database_hits"`
	ConfigFileHits       []string      `json:"config_file_hits"`
	OtherFileHits        []string      `json:"other_file_hits"`

	// Errors collects per-item read failures that were skipped over.
	Errors []string `json:"errors,omitempty"`
}

// NewScanResult creates an empty result for the given editor.
func NewScanResult(editorKey string) *ScanResult {
	return &ScanResult{
		EditorKey: editorKey,
		ScanTime:  time.Now(),
	}
}

// TotalCount is the number of discovered locations across all categories.
// Database hits count as one per file, not per row.
func (r *ScanResult) TotalCount() int {
	return len(r.GlobalStorageDirs) +
		len(r.WorkspaceStorageDirs) +
		len(r.DatabaseHits) +
		len(r.ConfigFileHits) +
		len(r.OtherFileHits)
}

// AddGlobalStorageDir records a global storage directory, once.
func (r *ScanResult) AddGlobalStorageDir(path string) {
	r.GlobalStorageDirs = appendUnique(r.GlobalStorageDirs, path)
}

// AddWorkspaceStorageDir records a workspace storage directory, once.
func (r *ScanResult) AddWorkspaceStorageDir(path string) {
	r.WorkspaceStorageDirs = appendUnique(r.WorkspaceStorageDirs, path)
}

// AddDatabaseHit records a database file with its matched-row count.
// Order of insertion is preserved.
func (r *ScanResult) AddDatabaseHit(path string, rows int) {
	for _, h := range r.DatabaseHits {
		if h.Path == path {
			return
		}
	}
	r.DatabaseHits = append(r.DatabaseHits, DatabaseHit{Path: path, MatchedRows: rows})
}

// AddConfigFileHit records a configuration file, once.
func (r *ScanResult) AddConfigFileHit(path string) {
	r.ConfigFileHits = appendUnique(r.ConfigFileHits, path)
}

// AddOtherFileHit records a loose file not covered by another category.
func (r *ScanResult) AddOtherFileHit(path string) {
	if r.HasDatabase(path) {
		return
	}
	r.OtherFileHits = appendUnique(r.OtherFileHits, path)
}

// HasDatabase reports whether the path is already listed as a database hit.
func (r *ScanResult) HasDatabase(path string) bool {
	for _, h := range r.DatabaseHits {
		if h.Path == path {
			return true
		}
	}
	return false
}

// AddError records a skipped per-item failure.
func (r *ScanResult) AddError(msg string) {
	r.Errors = append(r.Errors, msg)
}

// CategoryCounts returns the per-category location counts.
func (r *ScanResult) CategoryCounts() map[Category]int {
	return map[Category]int{
		CategoryGlobalStorage:    len(r.GlobalStorageDirs),
		CategoryWorkspaceStorage: len(r.WorkspaceStorageDirs),
		CategoryDatabase:         len(r.DatabaseHits),
		CategoryConfigFile:       len(r.ConfigFileHits),
		CategoryOtherFile:        len(r.OtherFileHits),
	}
}

func appendUnique(list []string, item string) []string {
	for _, v := range list {
		if v == item {
			return list
		}
	}
	return append(list, item)
}
