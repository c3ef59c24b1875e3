// Package safety decides which paths deletion must never touch. The Gate is
// the single authority consulted immediately before every delete in every
// component; verdicts are never cached across the scan/clean boundary
// because the filesystem may change in between.
package safety

import (
	"path/filepath"
	"strings"

	wildcard "github.com/IGLOU-EU/go-wildcard"
)

// Gate vetoes deletion of the home directory itself, of platform system
// roots, and of anything matching the configured extra patterns.
//
// Subdirectories of home are deliberately NOT protected: the whole point of
// the tool is deleting data inside the user's own application-support
// subtree. A custom editor root pointed at something like ~/Documents will
// be cleaned without complaint. Sharp edge, by contract.
type Gate struct {
	home  string
	goos  string
	extra []string
}

// NewGate builds a gate for the given home directory and platform. extra is
// a list of wildcard patterns (e.g. "*/Dropbox/*") that are additionally
// forbidden.
func NewGate(home, goos string, extra []string) *Gate {
	return &Gate{
		home:  filepath.Clean(home),
		goos:  goos,
		extra: extra,
	}
}

// criticalRoots lists paths whose subtree must never be deleted.
func criticalRoots(goos string) []string {
	switch goos {
	case "windows":
		return []string{
			`c:\`, `c:\windows`, `c:\program files`, `c:\program files (x86)`,
			`c:\system`, `c:\boot`, `c:\recovery`,
		}
	case "darwin":
		return []string{
			"/", "/System", "/usr", "/bin", "/sbin", "/Library/System",
			"/boot", "/etc", "/var/root",
		}
	default:
		return []string{
			"/", "/usr", "/bin", "/sbin", "/boot", "/etc", "/sys", "/proc",
			"/root", "/var/lib", "/opt",
		}
	}
}

// exactRoots lists paths forbidden themselves but whose children are not:
// the containers of user home directories. A subtree match here would veto
// every path inside the user's own home and with it everything this tool
// exists to delete.
func exactRoots(goos string) []string {
	switch goos {
	case "windows":
		return []string{`c:\users`}
	case "darwin":
		return []string{"/Users"}
	default:
		return []string{"/home"}
	}
}

// IsForbidden reports whether the path must not be deleted.
func (g *Gate) IsForbidden(path string) bool {
	p := g.normalize(path)

	if p == g.normalize(g.home) {
		return true
	}

	for _, root := range criticalRoots(g.goos) {
		if g.underRoot(p, g.normalize(root)) {
			return true
		}
	}

	for _, root := range exactRoots(g.goos) {
		if p == g.normalize(root) {
			return true
		}
	}

	for _, pattern := range g.extra {
		if wildcard.Match(g.normalize(pattern), p) {
			return true
		}
	}

	return false
}

// normalize cleans the path and, on Windows, folds case and separators so
// comparisons are boundary-exact regardless of how the path was spelled.
func (g *Gate) normalize(path string) string {
	p := filepath.Clean(path)
	if g.goos == "windows" {
		p = strings.ToLower(strings.ReplaceAll(p, "/", `\`))
	}
	return p
}

// underRoot reports whether p equals root or lies beneath it, with the
// match bounded at a path separator so "/usr2" does not match "/usr".
// The filesystem root itself ("/", "c:\") only matches exactly, otherwise
// every absolute path would be forbidden.
func (g *Gate) underRoot(p, root string) bool {
	if p == root {
		return true
	}
	sep := "/"
	if g.goos == "windows" {
		sep = `\`
	}
	if strings.HasSuffix(root, sep) {
		return false
	}
	return strings.HasPrefix(p, root+sep)
}
