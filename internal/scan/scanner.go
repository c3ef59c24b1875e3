// Package scan locates filesystem and database state belonging to the
// target extension inside one editor's data root. Each detection pass is
// independent and tolerant of missing directories and unreadable files:
// a bad item is logged, recorded, and skipped, never fatal to the scan.
package scan

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"github.com/Nunuaa/AugmentCleaner/internal/config"
	"github.com/Nunuaa/AugmentCleaner/internal/editor"
	"github.com/Nunuaa/AugmentCleaner/internal/statedb"
	"github.com/Nunuaa/AugmentCleaner/pkg/models"
)

// Scanner walks one resolved editor root with multiple detection passes and
// produces a categorized set of candidate locations. It holds no state
// between calls: two scans with no intervening mutation yield identical
// results.
type Scanner struct {
	cfg    *config.Config
	logger *zap.Logger

	root             string
	globalStorage    string
	workspaceStorage string

	markers    []string // lowercased marker substrings
	dbPatterns []string // LIKE patterns for the database passes
}

// pass is one detection strategy. Adding a strategy is a table entry, not
// new control flow.
type pass struct {
	name string
	run  func(ctx context.Context, result *models.ScanResult)
}

// New creates a scanner over the given editor data root.
func New(cfg *config.Config, root string, logger *zap.Logger) *Scanner {
	markers := make([]string, 0, len(cfg.Markers))
	for _, m := range cfg.Markers {
		markers = append(markers, strings.ToLower(m))
	}
	return &Scanner{
		cfg:              cfg,
		logger:           logger,
		root:             root,
		globalStorage:    editor.GlobalStorageDir(root),
		workspaceStorage: editor.WorkspaceStorageDir(root),
		markers:          markers,
		dbPatterns:       cfg.PatternsFor("augment_specific"),
	}
}

// Scan runs every detection pass and returns the merged result. Passes
// share set semantics on paths: a location found twice is recorded once.
func (s *Scanner) Scan(ctx context.Context) (*models.ScanResult, error) {
	result := models.NewScanResult(s.cfg.Editor)

	passes := []pass{
		{"exact_extension_id", s.exactIDPass},
		{"global_storage_substring", s.substringPass},
		{"workspace_heuristics", s.workspacePass},
		{"database_keyword_sweep", s.databasePass},
		{"config_content", s.configPass},
		{"loose_file", s.looseFilePass},
	}

	for _, p := range passes {
		if err := ctx.Err(); err != nil {
			return result, err
		}
		p.run(ctx, result)
		s.logger.Debug("Scan pass finished",
			zap.String("pass", p.name),
			zap.Int("total_count", result.TotalCount()))
	}

	return result, nil
}

// exactIDPass checks globalStorage/<identifier> for every known extension
// identifier.
func (s *Scanner) exactIDPass(_ context.Context, result *models.ScanResult) {
	for _, id := range s.cfg.ExtensionIDs {
		dir := filepath.Join(s.globalStorage, id)
		info, err := os.Stat(dir)
		if err != nil {
			continue
		}
		if info.IsDir() {
			result.AddGlobalStorageDir(dir)
		}
	}
}

// substringPass flags immediate children of globalStorage whose name
// contains a marker, deduplicated against the exact-ID pass.
func (s *Scanner) substringPass(_ context.Context, result *models.ScanResult) {
	entries, err := os.ReadDir(s.globalStorage)
	if err != nil {
		if !os.IsNotExist(err) {
			s.recordError(result, "read global storage", s.globalStorage, err)
		}
		return
	}
	for _, entry := range entries {
		if entry.IsDir() && s.containsMarker(entry.Name()) {
			result.AddGlobalStorageDir(filepath.Join(s.globalStorage, entry.Name()))
		}
	}
}

// workspacePass flags a workspace storage directory when ANY heuristic
// fires: manifest text contains a marker, a child filename contains a
// marker, or the embedded database has at least one matching row. One
// positive is sufficient; heuristics never have to agree.
func (s *Scanner) workspacePass(ctx context.Context, result *models.ScanResult) {
	entries, err := os.ReadDir(s.workspaceStorage)
	if err != nil {
		if !os.IsNotExist(err) {
			s.recordError(result, "read workspace storage", s.workspaceStorage, err)
		}
		return
	}

	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		dir := filepath.Join(s.workspaceStorage, entry.Name())

		if s.manifestMatches(result, dir) ||
			s.childNameMatches(result, dir) ||
			s.databaseMatches(ctx, result, dir) {
			result.AddWorkspaceStorageDir(dir)
		}
	}
}

func (s *Scanner) manifestMatches(result *models.ScanResult, dir string) bool {
	manifest := filepath.Join(dir, editor.WorkspaceManifestName)
	content, err := os.ReadFile(manifest)
	if err != nil {
		if !os.IsNotExist(err) {
			s.recordError(result, "read manifest", manifest, err)
		}
		return false
	}
	return s.containsMarker(string(content))
}

func (s *Scanner) childNameMatches(result *models.ScanResult, dir string) bool {
	children, err := os.ReadDir(dir)
	if err != nil {
		s.recordError(result, "read workspace dir", dir, err)
		return false
	}
	for _, child := range children {
		if s.containsMarker(child.Name()) {
			return true
		}
	}
	return false
}

func (s *Scanner) databaseMatches(ctx context.Context, result *models.ScanResult, dir string) bool {
	dbPath := filepath.Join(dir, editor.StateDBName)
	if _, err := os.Stat(dbPath); err != nil {
		return false
	}
	count, err := statedb.CountMatches(ctx, dbPath, s.dbPatterns)
	if err != nil {
		s.recordError(result, "query database", dbPath, err)
		return false
	}
	return count > 0
}

// databasePass records every embedded database under workspace storage with
// a nonzero matched-row count, in directory order.
func (s *Scanner) databasePass(ctx context.Context, result *models.ScanResult) {
	entries, err := os.ReadDir(s.workspaceStorage)
	if err != nil {
		return
	}
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		dbPath := filepath.Join(s.workspaceStorage, entry.Name(), editor.StateDBName)
		if _, err := os.Stat(dbPath); err != nil {
			continue
		}
		count, err := statedb.CountMatches(ctx, dbPath, s.dbPatterns)
		if err != nil {
			s.recordError(result, "query database", dbPath, err)
			continue
		}
		if count > 0 {
			result.AddDatabaseHit(dbPath, count)
		}
	}
}

// configPass flags fixed configuration files whose raw text contains a
// marker.
func (s *Scanner) configPass(_ context.Context, result *models.ScanResult) {
	for _, file := range []string{
		editor.SettingsPath(s.root),
		editor.KeybindingsPath(s.root),
	} {
		content, err := os.ReadFile(file)
		if err != nil {
			if !os.IsNotExist(err) {
				s.recordError(result, "read config file", file, err)
			}
			continue
		}
		if s.containsMarker(string(content)) {
			result.AddConfigFileHit(file)
		}
	}
}

// looseFilePass walks the User directory for files whose name contains a
// marker and that no other pass already covers. Subtrees of directories
// already slated for removal are skipped: deleting the parent deletes them.
func (s *Scanner) looseFilePass(ctx context.Context, result *models.ScanResult) {
	userDir := editor.UserDir(s.root)

	claimed := make(map[string]bool)
	for _, dir := range result.GlobalStorageDirs {
		claimed[dir] = true
	}
	for _, dir := range result.WorkspaceStorageDirs {
		claimed[dir] = true
	}

	err := filepath.WalkDir(userDir, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			s.logger.Debug("Skipping unreadable path", zap.String("path", path), zap.Error(err))
			return nil
		}
		if cerr := ctx.Err(); cerr != nil {
			return cerr
		}
		if d.IsDir() {
			if claimed[path] {
				return filepath.SkipDir
			}
			return nil
		}
		if s.containsMarker(d.Name()) {
			result.AddOtherFileHit(path)
		}
		return nil
	})
	if err != nil && !errors.Is(err, context.Canceled) && !errors.Is(err, context.DeadlineExceeded) {
		s.recordError(result, "walk user dir", userDir, err)
	}
}

func (s *Scanner) containsMarker(text string) bool {
	lower := strings.ToLower(text)
	for _, m := range s.markers {
		if strings.Contains(lower, m) {
			return true
		}
	}
	return false
}

func (s *Scanner) recordError(result *models.ScanResult, op, path string, err error) {
	s.logger.Warn("Scan item failed",
		zap.String("op", op),
		zap.String("path", path),
		zap.Error(err))
	result.AddError(fmt.Sprintf("%s %s: %v", op, path, err))
}
