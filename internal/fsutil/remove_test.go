package fsutil

import (
	"os"
	"path/filepath"
	"testing"

	"go.uber.org/zap"

	"github.com/Nunuaa/AugmentCleaner/pkg/models"
)

type allowAllGate struct{}

func (allowAllGate) IsForbidden(string) bool { return false }

type denyAllGate struct{}

func (denyAllGate) IsForbidden(string) bool { return true }

func TestRemoveFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "augment.log")
	if err := os.WriteFile(path, []byte("12345"), 0o644); err != nil {
		t.Fatal(err)
	}

	outcome := Remove(path, models.CategoryOtherFile, allowAllGate{}, zap.NewNop())

	if outcome.Skipped || outcome.Error != "" {
		t.Fatalf("outcome = %+v, want clean removal", outcome)
	}
	if outcome.ItemsRemoved != 1 {
		t.Errorf("ItemsRemoved = %d, want 1", outcome.ItemsRemoved)
	}
	if outcome.BytesRemoved != 5 {
		t.Errorf("BytesRemoved = %d, want 5", outcome.BytesRemoved)
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Error("file still exists")
	}
}

func TestRemoveDirectoryCountsContents(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "ext")
	if err := os.MkdirAll(filepath.Join(dir, "sub"), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "a.json"), []byte("aa"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "sub", "b.json"), []byte("bbb"), 0o644); err != nil {
		t.Fatal(err)
	}

	outcome := Remove(dir, models.CategoryGlobalStorage, allowAllGate{}, zap.NewNop())

	if outcome.Skipped || outcome.Error != "" {
		t.Fatalf("outcome = %+v, want clean removal", outcome)
	}
	// Two files plus the sub directory.
	if outcome.ItemsRemoved != 3 {
		t.Errorf("ItemsRemoved = %d, want 3", outcome.ItemsRemoved)
	}
	if outcome.BytesRemoved != 5 {
		t.Errorf("BytesRemoved = %d, want 5", outcome.BytesRemoved)
	}
}

func TestRemoveMissingTarget(t *testing.T) {
	outcome := Remove(filepath.Join(t.TempDir(), "gone"), models.CategoryOtherFile, allowAllGate{}, zap.NewNop())

	if !outcome.Skipped || outcome.Reason != models.SkipNotFound {
		t.Errorf("outcome = %+v, want not_found skip", outcome)
	}
}

func TestRemoveGated(t *testing.T) {
	path := filepath.Join(t.TempDir(), "protected.json")
	if err := os.WriteFile(path, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}

	outcome := Remove(path, models.CategoryConfigFile, denyAllGate{}, zap.NewNop())

	if !outcome.Skipped || outcome.Reason != models.SkipDangerousPath {
		t.Errorf("outcome = %+v, want dangerous_path skip", outcome)
	}
	if _, err := os.Stat(path); err != nil {
		t.Error("gated file was deleted")
	}
}
