// Package procs finds and terminates running editor processes so their
// data files can be deleted without the editor rewriting them.
package procs

import (
	"context"
	"os"
	"strings"
	"syscall"
	"time"

	ps "github.com/mitchellh/go-ps"
	"go.uber.org/zap"

	"github.com/Nunuaa/AugmentCleaner/internal/editor"
)

// KillReport lists what happened to the editor's processes.
type KillReport struct {
	EditorKey string `json:"editor_key"`
	Found     []int  `json:"found"`
	Killed    []int  `json:"killed"`
	Remaining []int  `json:"remaining"`
}

// Killer terminates one editor's processes: graceful signal first, then a
// bounded wait, then force kill. It never waits indefinitely.
type Killer struct {
	profile editor.Profile
	wait    time.Duration
	logger  *zap.Logger
}

// NewKiller creates a killer for the given editor profile. wait bounds the
// graceful-exit poll before stragglers are force killed.
func NewKiller(profile editor.Profile, wait time.Duration, logger *zap.Logger) *Killer {
	return &Killer{profile: profile, wait: wait, logger: logger}
}

// TerminateAll signals every matching process, waits up to the configured
// bound for exits, and force-kills whatever is left. The report is always
// returned; a process that survives even SIGKILL lands in Remaining.
func (k *Killer) TerminateAll(ctx context.Context) (*KillReport, error) {
	report := &KillReport{EditorKey: k.profile.Key}

	pids, err := k.findProcesses()
	if err != nil {
		return report, err
	}
	report.Found = pids
	if len(pids) == 0 {
		k.logger.Info("No editor processes running", zap.String("editor", k.profile.Key))
		return report, nil
	}

	k.logger.Info("Terminating editor processes",
		zap.String("editor", k.profile.Key),
		zap.Ints("pids", pids))

	for _, pid := range pids {
		k.signal(pid, syscall.SIGTERM)
	}

	remaining := k.waitForExit(ctx, pids)

	for _, pid := range remaining {
		k.logger.Warn("Force killing process", zap.Int("pid", pid))
		if proc, err := os.FindProcess(pid); err == nil {
			if err := proc.Kill(); err != nil {
				k.logger.Warn("Kill failed", zap.Int("pid", pid), zap.Error(err))
			}
		}
	}

	// One last look to report stragglers honestly.
	still, err := k.findProcesses()
	if err != nil {
		still = nil
	}
	report.Remaining = still
	for _, pid := range pids {
		if !containsPid(still, pid) {
			report.Killed = append(report.Killed, pid)
		}
	}
	return report, nil
}

// findProcesses returns PIDs whose executable name matches the profile,
// excluding this process itself.
func (k *Killer) findProcesses() ([]int, error) {
	procs, err := ps.Processes()
	if err != nil {
		return nil, err
	}

	self := os.Getpid()
	var pids []int
	for _, p := range procs {
		if p.Pid() == self || p.Pid() == os.Getppid() {
			continue
		}
		name := strings.ToLower(p.Executable())
		for _, needle := range k.profile.ProcessNames {
			if strings.Contains(name, strings.ToLower(needle)) {
				pids = append(pids, p.Pid())
				break
			}
		}
	}
	return pids, nil
}

// signal delivers sig best effort; unsupported platforms fall through to
// the force-kill stage.
func (k *Killer) signal(pid int, sig syscall.Signal) {
	proc, err := os.FindProcess(pid)
	if err != nil {
		return
	}
	if err := proc.Signal(sig); err != nil {
		k.logger.Debug("Signal not delivered", zap.Int("pid", pid), zap.Error(err))
	}
}

// waitForExit polls until all pids are gone, the wait bound elapses, or the
// context is cancelled. Returns the pids still alive.
func (k *Killer) waitForExit(ctx context.Context, pids []int) []int {
	deadline := time.Now().Add(k.wait)
	ticker := time.NewTicker(250 * time.Millisecond)
	defer ticker.Stop()

	remaining := pids
	for time.Now().Before(deadline) && len(remaining) > 0 {
		select {
		case <-ctx.Done():
			return remaining
		case <-ticker.C:
		}
		alive, err := k.findProcesses()
		if err != nil {
			return remaining
		}
		var still []int
		for _, pid := range remaining {
			if containsPid(alive, pid) {
				still = append(still, pid)
			}
		}
		remaining = still
	}
	return remaining
}

func containsPid(pids []int, pid int) bool {
	for _, p := range pids {
		if p == pid {
			return true
		}
	}
	return false
}
