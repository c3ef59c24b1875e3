// Package fsutil holds the shared gated-removal primitive used by every
// mutating component.
package fsutil

import (
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/Nunuaa/AugmentCleaner/pkg/models"
)

// Gate vetoes deletions of protected paths.
type Gate interface {
	IsForbidden(path string) bool
}

// Remove deletes one path and reports what happened. Existence and the
// safety gate are checked immediately before the delete, never from an
// earlier snapshot; the filesystem may have changed since the scan.
// A missing target is a no-op success, a gate veto is always a skip, a
// permission failure is recorded. Remove never panics the batch: every
// failure is an outcome entry.
func Remove(path string, category models.Category, gate Gate, logger *zap.Logger) models.DeletionOutcome {
	outcome := models.DeletionOutcome{Path: path, Category: category}

	info, err := os.Lstat(path)
	if os.IsNotExist(err) {
		outcome.Skipped = true
		outcome.Reason = models.SkipNotFound
		return outcome
	}
	if err != nil {
		outcome.Error = err.Error()
		return outcome
	}

	if gate.IsForbidden(path) {
		logger.Warn("Refusing to delete protected path", zap.String("path", path))
		outcome.Skipped = true
		outcome.Reason = models.SkipDangerousPath
		return outcome
	}

	items, bytes := CountContents(path, info)

	if info.IsDir() {
		err = os.RemoveAll(path)
	} else {
		err = os.Remove(path)
	}
	if err != nil {
		if os.IsPermission(err) {
			outcome.Skipped = true
			outcome.Reason = models.SkipPermissionDenied
		}
		outcome.Error = err.Error()
		logger.Warn("Delete failed", zap.String("path", path), zap.Error(err))
		return outcome
	}

	outcome.ItemsRemoved = items
	outcome.BytesRemoved = bytes
	logger.Info("Deleted",
		zap.String("path", path),
		zap.String("category", string(category)),
		zap.Int("items", items))
	return outcome
}

// CountContents sizes a target before removal so outcomes can report items
// and bytes. Best effort: unreadable children count as zero.
func CountContents(path string, info os.FileInfo) (int, int64) {
	if !info.IsDir() {
		return 1, info.Size()
	}
	items := 0
	var bytes int64
	filepath.WalkDir(path, func(p string, d os.DirEntry, err error) error {
		if err != nil || p == path {
			return nil
		}
		items++
		if fi, err := d.Info(); err == nil && !d.IsDir() {
			bytes += fi.Size()
		}
		return nil
	})
	return items, bytes
}
