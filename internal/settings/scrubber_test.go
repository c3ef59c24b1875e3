package settings

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"go.uber.org/zap"
)

func newScrubber() *Scrubber {
	return NewScrubber([]string{"augment"}, zap.NewNop())
}

func TestScrubSettingsRemovesMarkedKeys(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.json")
	content := `{
		"editor.fontSize": 14,
		"augment.enableChat": true,
		"Augment.advanced": {"mode": "full"},
		"workbench.startupEditor": "augment-welcome"
	}`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	res, err := newScrubber().ScrubSettings(path)
	if err != nil {
		t.Fatalf("ScrubSettings returned error: %v", err)
	}
	if res.Removed != 3 {
		t.Errorf("Removed = %d (%v), want 3", res.Removed, res.RemovedIDs)
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	var remaining map[string]json.RawMessage
	if err := json.Unmarshal(raw, &remaining); err != nil {
		t.Fatalf("rewritten settings unparseable: %v", err)
	}
	if len(remaining) != 1 {
		t.Errorf("remaining keys = %d (%v), want 1", len(remaining), remaining)
	}
	if _, ok := remaining["editor.fontSize"]; !ok {
		t.Error("unrelated key editor.fontSize was removed")
	}

	if _, err := os.Stat(res.BackupPath); err != nil {
		t.Errorf("backup file missing: %v", err)
	}
}

func TestScrubSettingsNoMatchesLeavesFileAlone(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.json")
	content := `{"editor.fontSize": 14}`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	res, err := newScrubber().ScrubSettings(path)
	if err != nil {
		t.Fatalf("ScrubSettings returned error: %v", err)
	}
	if res.Removed != 0 {
		t.Errorf("Removed = %d, want 0", res.Removed)
	}
	if res.BackupPath != "" {
		t.Errorf("backup written for a no-op scrub: %s", res.BackupPath)
	}

	raw, _ := os.ReadFile(path)
	if string(raw) != content {
		t.Error("file rewritten despite no matches")
	}
}

func TestScrubSettingsMissingFile(t *testing.T) {
	res, err := newScrubber().ScrubSettings(filepath.Join(t.TempDir(), "settings.json"))
	if err != nil {
		t.Fatalf("missing file should be a no-op, got error: %v", err)
	}
	if res.Removed != 0 {
		t.Errorf("Removed = %d, want 0", res.Removed)
	}
}

func TestScrubSettingsMalformedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.json")
	if err := os.WriteFile(path, []byte("{not json"), 0o644); err != nil {
		t.Fatal(err)
	}

	if _, err := newScrubber().ScrubSettings(path); err == nil {
		t.Fatal("malformed settings file should be an error")
	}

	raw, _ := os.ReadFile(path)
	if string(raw) != "{not json" {
		t.Error("malformed file was modified")
	}
}

func TestScrubKeybindingsRemovesMarkedEntries(t *testing.T) {
	path := filepath.Join(t.TempDir(), "keybindings.json")
	content := `[
		{"key": "ctrl+k", "command": "workbench.action.terminal.clear"},
		{"key": "ctrl+i", "command": "augment.chat.open"},
		{"key": "ctrl+m", "command": "vscode-augment.nextSuggestion"}
	]`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	res, err := newScrubber().ScrubKeybindings(path)
	if err != nil {
		t.Fatalf("ScrubKeybindings returned error: %v", err)
	}
	if res.Removed != 2 {
		t.Errorf("Removed = %d, want 2", res.Removed)
	}

	raw, _ := os.ReadFile(path)
	var remaining []json.RawMessage
	if err := json.Unmarshal(raw, &remaining); err != nil {
		t.Fatalf("rewritten keybindings unparseable: %v", err)
	}
	if len(remaining) != 1 {
		t.Errorf("remaining entries = %d, want 1", len(remaining))
	}
}
