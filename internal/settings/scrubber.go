// Package settings removes extension-related entries from the editor's
// settings.json and keybindings.json, keeping the rest of the files intact.
// A backup copy is written before any edit.
package settings

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"go.uber.org/zap"
)

// ScrubResult reports one file edit.
type ScrubResult struct {
	File       string   `json:"file"`
	BackupPath string   `json:"backup_path,omitempty"`
	Removed    int      `json:"removed"`
	RemovedIDs []string `json:"removed_ids,omitempty"`
}

// Scrubber edits user configuration files in place.
type Scrubber struct {
	markers []string
	logger  *zap.Logger
}

// NewScrubber creates a scrubber for the given case-insensitive markers.
func NewScrubber(markers []string, logger *zap.Logger) *Scrubber {
	lowered := make([]string, 0, len(markers))
	for _, m := range markers {
		lowered = append(lowered, strings.ToLower(m))
	}
	return &Scrubber{markers: lowered, logger: logger}
}

// ScrubSettings drops every top-level settings key whose name or raw value
// contains a marker. A missing file is a no-op; an unparseable file is an
// error and the file is left untouched.
func (s *Scrubber) ScrubSettings(path string) (*ScrubResult, error) {
	result := &ScrubResult{File: path}

	raw, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return result, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read settings %s: %w", path, err)
	}

	var entries map[string]json.RawMessage
	if err := json.Unmarshal(raw, &entries); err != nil {
		return nil, fmt.Errorf("failed to parse settings %s: %w", path, err)
	}

	for key, value := range entries {
		if s.matches(key) || s.matches(string(value)) {
			delete(entries, key)
			result.Removed++
			result.RemovedIDs = append(result.RemovedIDs, key)
		}
	}
	if result.Removed == 0 {
		return result, nil
	}

	result.BackupPath = path + ".settings_bak"
	if err := os.WriteFile(result.BackupPath, raw, 0o644); err != nil {
		return nil, fmt.Errorf("failed to back up settings %s: %w", path, err)
	}

	out, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to encode settings: %w", err)
	}
	if err := os.WriteFile(path, out, 0o644); err != nil {
		return nil, fmt.Errorf("failed to write settings %s: %w", path, err)
	}

	s.logger.Info("Scrubbed settings",
		zap.String("file", path),
		zap.Int("removed", result.Removed))
	return result, nil
}

// ScrubKeybindings drops every keybinding entry whose raw text contains a
// marker. Same missing/unparseable semantics as ScrubSettings.
func (s *Scrubber) ScrubKeybindings(path string) (*ScrubResult, error) {
	result := &ScrubResult{File: path}

	raw, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return result, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read keybindings %s: %w", path, err)
	}

	var entries []json.RawMessage
	if err := json.Unmarshal(raw, &entries); err != nil {
		return nil, fmt.Errorf("failed to parse keybindings %s: %w", path, err)
	}

	kept := entries[:0]
	for _, entry := range entries {
		if s.matches(string(entry)) {
			result.Removed++
			continue
		}
		kept = append(kept, entry)
	}
	if result.Removed == 0 {
		return result, nil
	}

	result.BackupPath = path + ".keybindings_bak"
	if err := os.WriteFile(result.BackupPath, raw, 0o644); err != nil {
		return nil, fmt.Errorf("failed to back up keybindings %s: %w", path, err)
	}

	out, err := json.MarshalIndent(kept, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to encode keybindings: %w", err)
	}
	if err := os.WriteFile(path, out, 0o644); err != nil {
		return nil, fmt.Errorf("failed to write keybindings %s: %w", path, err)
	}

	s.logger.Info("Scrubbed keybindings",
		zap.String("file", path),
		zap.Int("removed", result.Removed))
	return result, nil
}

func (s *Scrubber) matches(text string) bool {
	lower := strings.ToLower(text)
	for _, m := range s.markers {
		if strings.Contains(lower, m) {
			return true
		}
	}
	return false
}
