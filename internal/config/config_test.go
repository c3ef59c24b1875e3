package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}

	if cfg.Editor != "vscode" {
		t.Errorf("Editor = %q, want vscode", cfg.Editor)
	}
	if len(cfg.ExtensionIDs) == 0 {
		t.Error("ExtensionIDs is empty")
	}
	if len(cfg.Markers) == 0 {
		t.Error("Markers is empty")
	}
	if cfg.MaxRounds != 3 {
		t.Errorf("MaxRounds = %d, want 3", cfg.MaxRounds)
	}
	if cfg.SettleDelay != 2*time.Second {
		t.Errorf("SettleDelay = %v, want 2s", cfg.SettleDelay)
	}
	if cfg.KillWait != 5*time.Second {
		t.Errorf("KillWait = %v, want 5s", cfg.KillWait)
	}
	if len(cfg.PatternsFor("augment_specific")) == 0 {
		t.Error("augment_specific pattern group is empty")
	}
	if len(cfg.PreserveItems) == 0 {
		t.Error("PreserveItems is empty")
	}
}

func TestLoadFileOverrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), "augclean.yaml")
	content := "editor: cursor\nmax_rounds: 5\nsettle_delay: 500ms\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.Editor != "cursor" {
		t.Errorf("Editor = %q, want cursor", cfg.Editor)
	}
	if cfg.MaxRounds != 5 {
		t.Errorf("MaxRounds = %d, want 5", cfg.MaxRounds)
	}
	if cfg.SettleDelay != 500*time.Millisecond {
		t.Errorf("SettleDelay = %v, want 500ms", cfg.SettleDelay)
	}
	// Untouched keys keep their defaults.
	if len(cfg.ExtensionIDs) == 0 {
		t.Error("file override dropped default ExtensionIDs")
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Fatal("Load with missing explicit config file returned nil error")
	}
}

func TestPatternsForUnknownGroup(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatal(err)
	}
	if got := cfg.PatternsFor("no-such-group"); got != nil {
		t.Errorf("PatternsFor(unknown) = %v, want nil", got)
	}
}

func TestDatabaseGroups(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatal(err)
	}

	got := cfg.DatabaseGroups()
	want := []string{"analytics", "augment_specific", "chat"}
	if len(got) != len(want) {
		t.Fatalf("DatabaseGroups = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("DatabaseGroups[%d] = %q, want %q", i, got[i], want[i])
		}
	}
	// Every built-in group must carry patterns a prune run can apply.
	for _, group := range want {
		if len(cfg.PatternsFor(group)) == 0 {
			t.Errorf("pattern group %q is empty", group)
		}
	}
}

func TestAllDatabasePatternsDeduplicates(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatal(err)
	}
	all := cfg.AllDatabasePatterns()
	seen := make(map[string]bool)
	for _, p := range all {
		if seen[p] {
			t.Errorf("pattern %q appears twice", p)
		}
		seen[p] = true
	}
	// %chat% lives in two groups but must appear once.
	if !seen["%chat%"] {
		t.Errorf("merged patterns missing %s", "%chat%")
	}
}
