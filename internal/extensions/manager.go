// Package extensions drives the editor's own command line interface to
// list, uninstall and reinstall extensions.
package extensions

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/Nunuaa/AugmentCleaner/internal/editor"
)

// ErrCLINotFound is returned when none of the editor's known command line
// binaries are present on PATH.
var ErrCLINotFound = errors.New("editor command line binary not found")

// Manager wraps the editor CLI.
type Manager struct {
	profile *editor.Profile
	timeout time.Duration
	logger  *zap.Logger

	lookPath func(string) (string, error)
}

// NewManager builds a manager for the given editor profile. Commands run
// with the supplied per-invocation timeout.
func NewManager(profile *editor.Profile, timeout time.Duration, logger *zap.Logger) *Manager {
	return &Manager{
		profile:  profile,
		timeout:  timeout,
		logger:   logger,
		lookPath: exec.LookPath,
	}
}

// CLIPath resolves the first editor binary found on PATH.
func (m *Manager) CLIPath() (string, error) {
	for _, name := range m.profile.CLINames {
		if path, err := m.lookPath(name); err == nil {
			return path, nil
		}
	}
	return "", fmt.Errorf("%w: tried %s", ErrCLINotFound, strings.Join(m.profile.CLINames, ", "))
}

// List returns all installed extension identifiers.
func (m *Manager) List(ctx context.Context) ([]string, error) {
	out, err := m.run(ctx, "--list-extensions")
	if err != nil {
		return nil, err
	}
	var ids []string
	for _, line := range strings.Split(out, "\n") {
		line = strings.TrimSpace(line)
		if line != "" {
			ids = append(ids, line)
		}
	}
	return ids, nil
}

// ListMatching returns installed extension identifiers containing any of
// the given case-insensitive markers.
func (m *Manager) ListMatching(ctx context.Context, markers []string) ([]string, error) {
	all, err := m.List(ctx)
	if err != nil {
		return nil, err
	}
	var matched []string
	for _, id := range all {
		lower := strings.ToLower(id)
		for _, marker := range markers {
			if strings.Contains(lower, strings.ToLower(marker)) {
				matched = append(matched, id)
				break
			}
		}
	}
	return matched, nil
}

// Uninstall removes one extension by identifier.
func (m *Manager) Uninstall(ctx context.Context, id string) error {
	_, err := m.run(ctx, "--uninstall-extension", id)
	if err != nil {
		return fmt.Errorf("failed to uninstall %s: %w", id, err)
	}
	m.logger.Info("Uninstalled extension", zap.String("id", id))
	return nil
}

// Install installs one extension by identifier.
func (m *Manager) Install(ctx context.Context, id string) error {
	_, err := m.run(ctx, "--install-extension", id)
	if err != nil {
		return fmt.Errorf("failed to install %s: %w", id, err)
	}
	m.logger.Info("Installed extension", zap.String("id", id))
	return nil
}

// Reinstall uninstalls then installs an extension, forcing the editor to
// fetch a fresh copy.
func (m *Manager) Reinstall(ctx context.Context, id string) error {
	if err := m.Uninstall(ctx, id); err != nil {
		return err
	}
	return m.Install(ctx, id)
}

func (m *Manager) run(ctx context.Context, args ...string) (string, error) {
	bin, err := m.CLIPath()
	if err != nil {
		return "", err
	}

	runCtx, cancel := context.WithTimeout(ctx, m.timeout)
	defer cancel()

	cmd := exec.CommandContext(runCtx, bin, args...)
	out, err := cmd.CombinedOutput()
	if err != nil {
		return "", fmt.Errorf("%s %s: %w: %s", bin, strings.Join(args, " "), err, strings.TrimSpace(string(out)))
	}
	return string(out), nil
}
