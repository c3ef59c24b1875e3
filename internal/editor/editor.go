// Package editor maps editor keys to their on-disk layout. Everything here
// is pure path arithmetic; no function requires the paths to exist.
package editor

import (
	"errors"
	"fmt"
	"path/filepath"
	"sort"
)

// ErrUnknownEditor is returned when an editor key is not in the registry.
// It is fatal to the caller: no valid data root can be resolved.
var ErrUnknownEditor = errors.New("unknown editor")

// Profile identifies one supported editor variant. Profiles are defined at
// process start and never mutated.
type Profile struct {
	Key          string   // registry key, e.g. "vscode"
	DisplayName  string   // per-user data directory name, e.g. "Code"
	ProcessNames []string // substrings matched against running process names
	CLINames     []string // candidate command-line binary names
}

// profiles covers the VS Code editor family. DisplayName doubles as the
// config-root directory name on every platform.
var profiles = map[string]Profile{
	"vscode": {
		Key: "vscode", DisplayName: "Code",
		ProcessNames: []string{"code", "Code Helper"},
		CLINames:     []string{"code"},
	},
	"cursor": {
		Key: "cursor", DisplayName: "Cursor",
		ProcessNames: []string{"cursor", "Cursor Helper"},
		CLINames:     []string{"cursor"},
	},
	"windsurf": {
		Key: "windsurf", DisplayName: "Windsurf",
		ProcessNames: []string{"windsurf"},
		CLINames:     []string{"windsurf"},
	},
	"vscodium": {
		Key: "vscodium", DisplayName: "VSCodium",
		ProcessNames: []string{"codium", "VSCodium Helper"},
		CLINames:     []string{"codium", "vscodium"},
	},
	"code-oss": {
		Key: "code-oss", DisplayName: "Code - OSS",
		ProcessNames: []string{"code-oss"},
		CLINames:     []string{"code-oss"},
	},
	"vscode-insiders": {
		Key: "vscode-insiders", DisplayName: "Code - Insiders",
		ProcessNames: []string{"code-insiders"},
		CLINames:     []string{"code-insiders"},
	},
	"codebuddy": {
		Key: "codebuddy", DisplayName: "CodeBuddy",
		ProcessNames: []string{"codebuddy"},
		CLINames:     []string{"codebuddy"},
	},
	"kiro": {
		Key: "kiro", DisplayName: "Kiro",
		ProcessNames: []string{"kiro"},
		CLINames:     []string{"kiro"},
	},
	"trae": {
		Key: "trae", DisplayName: "Trae",
		ProcessNames: []string{"trae"},
		CLINames:     []string{"trae"},
	},
	"qoder": {
		Key: "qoder", DisplayName: "Qoder",
		ProcessNames: []string{"qoder"},
		CLINames:     []string{"qoder"},
	},
	"theia": {
		Key: "theia", DisplayName: "Theia",
		ProcessNames: []string{"theia"},
		CLINames:     []string{"theia"},
	},
	"openvscode": {
		Key: "openvscode", DisplayName: "OpenVSCode",
		ProcessNames: []string{"openvscode-server"},
		CLINames:     []string{"openvscode-server"},
	},
	"code-server": {
		Key: "code-server", DisplayName: "code-server",
		ProcessNames: []string{"code-server"},
		CLINames:     []string{"code-server"},
	},
}

// Resolve looks up a profile by key.
func Resolve(key string) (Profile, error) {
	p, ok := profiles[key]
	if !ok {
		return Profile{}, fmt.Errorf("%w: %q", ErrUnknownEditor, key)
	}
	return p, nil
}

// Keys lists the supported editor keys, sorted.
func Keys() []string {
	keys := make([]string, 0, len(profiles))
	for k := range profiles {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// RootFor resolves the editor's per-user data root for a platform.
// Windows: <home>/AppData/Roaming/<DisplayName>
// macOS:   <home>/Library/Application Support/<DisplayName>
// Linux:   <home>/.config/<DisplayName>
func RootFor(key, goos, home string) (string, error) {
	p, err := Resolve(key)
	if err != nil {
		return "", err
	}
	switch goos {
	case "windows":
		return filepath.Join(home, "AppData", "Roaming", p.DisplayName), nil
	case "darwin":
		return filepath.Join(home, "Library", "Application Support", p.DisplayName), nil
	default:
		return filepath.Join(home, ".config", p.DisplayName), nil
	}
}

// UserDir returns the User directory under a resolved root.
func UserDir(root string) string {
	return filepath.Join(root, "User")
}

// GlobalStorageDir returns the per-extension global storage directory.
func GlobalStorageDir(root string) string {
	return filepath.Join(root, "User", "globalStorage")
}

// WorkspaceStorageDir returns the per-workspace storage directory.
func WorkspaceStorageDir(root string) string {
	return filepath.Join(root, "User", "workspaceStorage")
}

// StorageJSONPath returns the telemetry storage file.
func StorageJSONPath(root string) string {
	return filepath.Join(root, "User", "globalStorage", "storage.json")
}

// SettingsPath returns the user settings file.
func SettingsPath(root string) string {
	return filepath.Join(root, "User", "settings.json")
}

// KeybindingsPath returns the user keybindings file.
func KeybindingsPath(root string) string {
	return filepath.Join(root, "User", "keybindings.json")
}

// StateDBName is the embedded per-workspace database filename.
const StateDBName = "state.vscdb"

// WorkspaceManifestName is the per-workspace manifest filename.
const WorkspaceManifestName = "workspace.json"
