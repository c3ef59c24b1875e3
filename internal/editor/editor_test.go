package editor

import (
	"errors"
	"path/filepath"
	"testing"
)

func TestResolve(t *testing.T) {
	p, err := Resolve("vscode")
	if err != nil {
		t.Fatalf("Resolve(vscode) returned error: %v", err)
	}
	if p.DisplayName != "Code" {
		t.Errorf("DisplayName = %q, want %q", p.DisplayName, "Code")
	}

	_, err = Resolve("emacs")
	if !errors.Is(err, ErrUnknownEditor) {
		t.Errorf("Resolve(emacs) error = %v, want ErrUnknownEditor", err)
	}
}

func TestRootFor(t *testing.T) {
	tests := []struct {
		name string
		key  string
		goos string
		want string
	}{
		{"linux vscode", "vscode", "linux", filepath.Join("/home/u", ".config", "Code")},
		{"darwin cursor", "cursor", "darwin", filepath.Join("/home/u", "Library", "Application Support", "Cursor")},
		{"windows windsurf", "windsurf", "windows", filepath.Join("/home/u", "AppData", "Roaming", "Windsurf")},
		{"linux insiders", "vscode-insiders", "linux", filepath.Join("/home/u", ".config", "Code - Insiders")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := RootFor(tt.key, tt.goos, "/home/u")
			if err != nil {
				t.Fatalf("RootFor returned error: %v", err)
			}
			if got != tt.want {
				t.Errorf("RootFor = %q, want %q", got, tt.want)
			}
		})
	}

	if _, err := RootFor("nope", "linux", "/home/u"); !errors.Is(err, ErrUnknownEditor) {
		t.Errorf("RootFor(nope) error = %v, want ErrUnknownEditor", err)
	}
}

func TestPathHelpers(t *testing.T) {
	root := filepath.Join("/home/u", ".config", "Code")

	if got, want := GlobalStorageDir(root), filepath.Join(root, "User", "globalStorage"); got != want {
		t.Errorf("GlobalStorageDir = %q, want %q", got, want)
	}
	if got, want := WorkspaceStorageDir(root), filepath.Join(root, "User", "workspaceStorage"); got != want {
		t.Errorf("WorkspaceStorageDir = %q, want %q", got, want)
	}
	if got, want := StorageJSONPath(root), filepath.Join(root, "User", "globalStorage", "storage.json"); got != want {
		t.Errorf("StorageJSONPath = %q, want %q", got, want)
	}
	if got, want := SettingsPath(root), filepath.Join(root, "User", "settings.json"); got != want {
		t.Errorf("SettingsPath = %q, want %q", got, want)
	}
}

func TestKeysSortedAndResolvable(t *testing.T) {
	keys := Keys()
	if len(keys) == 0 {
		t.Fatal("Keys returned no editors")
	}
	for i := 1; i < len(keys); i++ {
		if keys[i-1] >= keys[i] {
			t.Errorf("Keys not sorted: %q before %q", keys[i-1], keys[i])
		}
	}
	for _, k := range keys {
		if _, err := Resolve(k); err != nil {
			t.Errorf("Resolve(%q) returned error: %v", k, err)
		}
	}
}
