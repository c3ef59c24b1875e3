// Package augmentenv manages the extension's home directory state under
// ~/.augment. It can report, archive and selectively clear the directory
// while keeping items the user configured as preserved.
package augmentenv

import (
	"archive/zip"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/Nunuaa/AugmentCleaner/internal/fsutil"
	"github.com/Nunuaa/AugmentCleaner/pkg/models"
)

// EnvInfo describes the current state of the environment directory.
type EnvInfo struct {
	Path      string   `json:"path"`
	Exists    bool     `json:"exists"`
	Items     []string `json:"items,omitempty"`
	TotalSize int64    `json:"total_size"`
}

// Manager operates on a single environment directory.
type Manager struct {
	dir      string
	home     string
	preserve []string
	gate     fsutil.Gate
	logger   *zap.Logger
}

// NewManager builds a manager for the .augment directory below home.
// preserve lists entry names that Clean must leave in place.
func NewManager(home string, preserve []string, gate fsutil.Gate, logger *zap.Logger) *Manager {
	return &Manager{
		dir:      filepath.Join(home, ".augment"),
		home:     home,
		preserve: preserve,
		gate:     gate,
		logger:   logger,
	}
}

// Dir returns the managed directory path.
func (m *Manager) Dir() string { return m.dir }

// Info lists the directory's top-level entries and total size.
func (m *Manager) Info() (*EnvInfo, error) {
	info := &EnvInfo{Path: m.dir}

	entries, err := os.ReadDir(m.dir)
	if os.IsNotExist(err) {
		return info, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", m.dir, err)
	}

	info.Exists = true
	for _, entry := range entries {
		info.Items = append(info.Items, entry.Name())
	}
	filepath.WalkDir(m.dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil || d.IsDir() {
			return nil
		}
		if fi, err := d.Info(); err == nil {
			info.TotalSize += fi.Size()
		}
		return nil
	})
	return info, nil
}

// Backup writes a zip archive of the directory next to it and returns the
// archive path. A missing directory is an error.
func (m *Manager) Backup() (string, error) {
	if _, err := os.Stat(m.dir); err != nil {
		return "", fmt.Errorf("nothing to back up: %w", err)
	}

	archive := filepath.Join(m.home, fmt.Sprintf(".augment-backup-%s.zip", time.Now().Format("20060102-150405")))
	f, err := os.Create(archive)
	if err != nil {
		return "", fmt.Errorf("failed to create archive: %w", err)
	}
	defer f.Close()

	zw := zip.NewWriter(f)
	err = filepath.WalkDir(m.dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil || d.IsDir() {
			return err
		}
		rel, err := filepath.Rel(m.dir, path)
		if err != nil {
			return err
		}
		w, err := zw.Create(filepath.ToSlash(rel))
		if err != nil {
			return err
		}
		src, err := os.Open(path)
		if err != nil {
			return err
		}
		defer src.Close()
		_, err = io.Copy(w, src)
		return err
	})
	if err != nil {
		zw.Close()
		return "", fmt.Errorf("failed to archive %s: %w", m.dir, err)
	}
	if err := zw.Close(); err != nil {
		return "", fmt.Errorf("failed to finish archive: %w", err)
	}

	m.logger.Info("Backed up environment directory",
		zap.String("dir", m.dir),
		zap.String("archive", archive))
	return archive, nil
}

// Clean removes every top-level entry except the preserved ones. The whole
// directory is never removed, only its contents, so preserved items keep
// their place. Entries outside the home directory are refused outright.
func (m *Manager) Clean() ([]models.DeletionOutcome, error) {
	if !m.underHome(m.dir) {
		return nil, fmt.Errorf("refusing to clean %s: outside home directory", m.dir)
	}

	entries, err := os.ReadDir(m.dir)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", m.dir, err)
	}

	var outcomes []models.DeletionOutcome
	for _, entry := range entries {
		if m.preserved(entry.Name()) {
			m.logger.Debug("Preserving item", zap.String("name", entry.Name()))
			continue
		}
		outcome := fsutil.Remove(filepath.Join(m.dir, entry.Name()), models.CategoryOtherFile, m.gate, m.logger)
		outcomes = append(outcomes, outcome)
	}
	return outcomes, nil
}

func (m *Manager) preserved(name string) bool {
	for _, p := range m.preserve {
		if strings.EqualFold(p, name) {
			return true
		}
	}
	return false
}

func (m *Manager) underHome(path string) bool {
	rel, err := filepath.Rel(m.home, path)
	if err != nil {
		return false
	}
	return rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator))
}
