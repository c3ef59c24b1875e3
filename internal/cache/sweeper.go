// Package cache wipes the editors' well-known fixed cache locations. These
// are one-shot sweeps without convergence semantics: each target is checked
// and removed once per invocation.
package cache

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	wildcard "github.com/IGLOU-EU/go-wildcard"
	"go.uber.org/zap"

	"github.com/Nunuaa/AugmentCleaner/internal/editor"
	"github.com/Nunuaa/AugmentCleaner/internal/fsutil"
	"github.com/Nunuaa/AugmentCleaner/pkg/models"
)

// group is one named sweep: fixed paths under the editor root, per-platform
// paths under home, and wildcard patterns matched against temp-dir entries.
// Adding a sweep is a table entry, not new code.
type group struct {
	name    string
	rootRel [][]string                               // joined below the editor data root
	homeRel func(goos, home, display string) []string // platform-dependent locations
	tempPat func(display string) []string             // wildcard patterns over temp-dir entries
}

var groups = []group{
	{
		name: "browser",
		rootRel: [][]string{
			{"GPUCache"}, {"DawnGraphiteCache"}, {"WebviewCache"},
			{"CachedData"}, {"blob_storage"}, {"Local Storage"}, {"Session Storage"},
		},
	},
	{
		name: "network",
		rootRel: [][]string{
			{"HTTPCache"}, {"Code Cache"}, {"Network Persistent State"}, {"TransportSecurity"},
		},
	},
	{
		name: "logs",
		rootRel: [][]string{
			{"logs"}, {"crashes"}, {"User", "logs"},
		},
		homeRel: func(goos, home, display string) []string {
			switch goos {
			case "windows":
				return []string{filepath.Join(home, "AppData", "Local", display, "logs")}
			case "darwin":
				return []string{filepath.Join(home, "Library", "Logs", display)}
			default:
				return []string{filepath.Join(home, ".cache", display, "logs")}
			}
		},
		tempPat: func(display string) []string {
			return []string{strings.ToLower(display) + "-*"}
		},
	},
	{
		name: "extensions",
		rootRel: [][]string{
			{"CachedExtensions"}, {"CachedExtensionVSIXs"}, {"extensions", ".obsolete"},
		},
	},
	{
		name: "cdn",
		rootRel: [][]string{
			{"CachedData"}, {"Code Cache", "js"}, {"Code Cache", "wasm"},
		},
		homeRel: func(goos, home, display string) []string {
			switch goos {
			case "windows":
				return []string{filepath.Join(home, "AppData", "Local", display, "cdn-cache")}
			case "darwin":
				return []string{filepath.Join(home, "Library", "Caches", display, "cdn-cache")}
			default:
				return []string{filepath.Join(home, ".cache", display, "cdn-cache")}
			}
		},
	},
	{
		name: "temp",
		tempPat: func(display string) []string {
			return []string{
				"*" + strings.ToLower(display) + "*",
				"*vscode*",
				"*augment*",
			}
		},
	},
}

// GroupResult is the outcome of one sweep group.
type GroupResult struct {
	Group      string                   `json:"group"`
	Outcomes   []models.DeletionOutcome `json:"outcomes,omitempty"`
	FilesFreed int                      `json:"files_freed"`
	BytesFreed int64                    `json:"bytes_freed"`
}

// Sweeper removes fixed cache locations for one editor, every target gated.
type Sweeper struct {
	profile editor.Profile
	root    string
	home    string
	goos    string
	tempDir string
	gate    fsutil.Gate
	logger  *zap.Logger
}

// NewSweeper creates a sweeper over a resolved editor root.
func NewSweeper(profile editor.Profile, root, home, goos string, gate fsutil.Gate, logger *zap.Logger) *Sweeper {
	return &Sweeper{
		profile: profile,
		root:    root,
		home:    home,
		goos:    goos,
		tempDir: os.TempDir(),
		gate:    gate,
		logger:  logger,
	}
}

// Groups lists the available sweep group names, in table order.
func Groups() []string {
	names := make([]string, len(groups))
	for i, g := range groups {
		names[i] = g.name
	}
	return names
}

// Sweep runs the named groups (all of them when names is empty) and returns
// one result per group. Unknown names are ignored. A failed target never
// stops the rest of its group.
func (s *Sweeper) Sweep(ctx context.Context, names []string) []GroupResult {
	wanted := make(map[string]bool)
	for _, n := range names {
		wanted[n] = true
	}

	var results []GroupResult
	for _, g := range groups {
		if len(names) > 0 && !wanted[g.name] {
			continue
		}
		if ctx.Err() != nil {
			break
		}
		results = append(results, s.sweepGroup(g))
	}
	return results
}

func (s *Sweeper) sweepGroup(g group) GroupResult {
	result := GroupResult{Group: g.name}
	s.logger.Info("Sweeping cache group", zap.String("group", g.name))

	var targets []string
	for _, rel := range g.rootRel {
		targets = append(targets, filepath.Join(append([]string{s.root}, rel...)...))
	}
	if g.homeRel != nil {
		targets = append(targets, g.homeRel(s.goos, s.home, s.profile.DisplayName)...)
	}
	if g.tempPat != nil {
		targets = append(targets, s.matchTempEntries(g.tempPat(s.profile.DisplayName))...)
	}

	for _, target := range targets {
		outcome := fsutil.Remove(target, models.CategoryOtherFile, s.gate, s.logger)
		result.FilesFreed += outcome.ItemsRemoved
		result.BytesFreed += outcome.BytesRemoved
		result.Outcomes = append(result.Outcomes, outcome)
	}
	return result
}

// matchTempEntries resolves wildcard patterns against the immediate entries
// of the temp directory. An unreadable temp dir yields nothing.
func (s *Sweeper) matchTempEntries(patterns []string) []string {
	entries, err := os.ReadDir(s.tempDir)
	if err != nil {
		s.logger.Debug("Cannot read temp dir", zap.String("dir", s.tempDir), zap.Error(err))
		return nil
	}
	var matched []string
	for _, entry := range entries {
		name := strings.ToLower(entry.Name())
		for _, pattern := range patterns {
			if wildcard.Match(pattern, name) {
				matched = append(matched, filepath.Join(s.tempDir, entry.Name()))
				break
			}
		}
	}
	return matched
}
