package augmentenv

import (
	"archive/zip"
	"os"
	"path/filepath"
	"testing"

	"go.uber.org/zap"
)

type allowAllGate struct{}

func (allowAllGate) IsForbidden(string) bool { return false }

func newEnvDir(t *testing.T) (string, *Manager) {
	t.Helper()
	home := t.TempDir()
	dir := filepath.Join(home, ".augment")
	for _, f := range []string{"settings.json", "session.db", "cache.bin"} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(filepath.Join(dir, f), []byte("data"), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	if err := os.MkdirAll(filepath.Join(dir, "binaries"), 0o755); err != nil {
		t.Fatal(err)
	}

	mgr := NewManager(home, []string{"settings.json", "binaries"}, allowAllGate{}, zap.NewNop())
	return home, mgr
}

func TestInfo(t *testing.T) {
	_, mgr := newEnvDir(t)

	info, err := mgr.Info()
	if err != nil {
		t.Fatalf("Info returned error: %v", err)
	}
	if !info.Exists {
		t.Fatal("Exists = false for populated directory")
	}
	if len(info.Items) != 4 {
		t.Errorf("Items = %d (%v), want 4", len(info.Items), info.Items)
	}
	if info.TotalSize != 12 {
		t.Errorf("TotalSize = %d, want 12", info.TotalSize)
	}
}

func TestInfoMissingDirectory(t *testing.T) {
	mgr := NewManager(t.TempDir(), nil, allowAllGate{}, zap.NewNop())

	info, err := mgr.Info()
	if err != nil {
		t.Fatalf("Info returned error: %v", err)
	}
	if info.Exists {
		t.Error("Exists = true for missing directory")
	}
}

func TestCleanPreservesConfiguredItems(t *testing.T) {
	_, mgr := newEnvDir(t)

	outcomes, err := mgr.Clean()
	if err != nil {
		t.Fatalf("Clean returned error: %v", err)
	}
	if len(outcomes) != 2 {
		t.Errorf("outcomes = %d, want 2 removable entries", len(outcomes))
	}

	entries, err := os.ReadDir(mgr.Dir())
	if err != nil {
		t.Fatal(err)
	}
	names := make(map[string]bool)
	for _, e := range entries {
		names[e.Name()] = true
	}
	if !names["settings.json"] || !names["binaries"] {
		t.Errorf("preserved items missing after clean: %v", names)
	}
	if names["session.db"] || names["cache.bin"] {
		t.Errorf("removable items survived clean: %v", names)
	}
}

func TestCleanMissingDirectory(t *testing.T) {
	mgr := NewManager(t.TempDir(), nil, allowAllGate{}, zap.NewNop())

	outcomes, err := mgr.Clean()
	if err != nil {
		t.Fatalf("Clean on missing directory returned error: %v", err)
	}
	if len(outcomes) != 0 {
		t.Errorf("outcomes = %d, want 0", len(outcomes))
	}
}

func TestBackupArchivesEverything(t *testing.T) {
	_, mgr := newEnvDir(t)

	archive, err := mgr.Backup()
	if err != nil {
		t.Fatalf("Backup returned error: %v", err)
	}

	zr, err := zip.OpenReader(archive)
	if err != nil {
		t.Fatalf("archive unreadable: %v", err)
	}
	defer zr.Close()

	if len(zr.File) != 3 {
		t.Errorf("archive holds %d files, want 3", len(zr.File))
	}
}

func TestBackupMissingDirectory(t *testing.T) {
	mgr := NewManager(t.TempDir(), nil, allowAllGate{}, zap.NewNop())
	if _, err := mgr.Backup(); err == nil {
		t.Fatal("Backup on missing directory returned nil error")
	}
}
