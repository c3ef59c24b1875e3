package procs

import (
	"context"
	"os"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/Nunuaa/AugmentCleaner/internal/editor"
)

func TestTerminateAllNoMatches(t *testing.T) {
	// A profile whose process names cannot exist on a test machine.
	profile := editor.Profile{
		Key:          "vscode",
		DisplayName:  "Code",
		ProcessNames: []string{"augclean-test-no-such-process-a7f3"},
	}
	k := NewKiller(profile, time.Second, zap.NewNop())

	report, err := k.TerminateAll(context.Background())
	if err != nil {
		t.Fatalf("TerminateAll returned error: %v", err)
	}
	if len(report.Found) != 0 {
		t.Errorf("Found = %v, want none", report.Found)
	}
	if len(report.Killed) != 0 || len(report.Remaining) != 0 {
		t.Errorf("report = %+v, want empty", report)
	}
	if report.EditorKey != "vscode" {
		t.Errorf("EditorKey = %q, want vscode", report.EditorKey)
	}
}

func TestFindProcessesExcludesSelf(t *testing.T) {
	// The test binary's name contains "procs.test"; matching on "test"
	// must still never return our own pid.
	profile := editor.Profile{
		Key:          "vscode",
		DisplayName:  "Code",
		ProcessNames: []string{"test"},
	}
	k := NewKiller(profile, time.Second, zap.NewNop())

	pids, err := k.findProcesses()
	if err != nil {
		t.Fatalf("findProcesses returned error: %v", err)
	}
	if containsPid(pids, os.Getpid()) {
		t.Error("findProcesses returned the test process itself")
	}
}

func TestContainsPid(t *testing.T) {
	if !containsPid([]int{1, 2, 3}, 2) {
		t.Error("containsPid missed a present pid")
	}
	if containsPid([]int{1, 2, 3}, 9) {
		t.Error("containsPid found an absent pid")
	}
	if containsPid(nil, 1) {
		t.Error("containsPid found a pid in nil slice")
	}
}
