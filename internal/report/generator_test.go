package report

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/Nunuaa/AugmentCleaner/internal/config"
	"github.com/Nunuaa/AugmentCleaner/pkg/models"
)

func TestFormatDuration(t *testing.T) {
	tests := []struct {
		d    time.Duration
		want string
	}{
		{250 * time.Millisecond, "250.00ms"},
		{3 * time.Second, "3.00s"},
		{90 * time.Second, "1m30.00s"},
		{3690 * time.Second, "1h1m30.00s"},
	}
	for _, tt := range tests {
		if got := FormatDuration(tt.d); got != tt.want {
			t.Errorf("FormatDuration(%v) = %q, want %q", tt.d, got, tt.want)
		}
	}
}

func sampleReport() *models.ReconcileReport {
	rep := &models.ReconcileReport{EditorKey: "vscode", StartTime: time.Now()}
	scan := models.NewScanResult("vscode")
	scan.AddGlobalStorageDir("/g/augmentcode.augment")
	rep.AddRound(&models.CleanRound{
		Round: 1,
		Scan:  scan,
		Outcomes: []models.DeletionOutcome{
			{Path: "/g/augmentcode.augment", Category: models.CategoryGlobalStorage, ItemsRemoved: 12},
		},
		Prunes: []models.PruneOutcome{
			{Path: "/w/1/state.vscdb", RowsRemoved: 4},
		},
		Verify: models.NewScanResult("vscode"),
	})
	rep.Finalize(models.StatusConverged)
	return rep
}

func TestGenerateJSON(t *testing.T) {
	out := filepath.Join(t.TempDir(), "report.json")
	cfg := &config.Config{ReportFormat: "json", OutputFile: out}

	path, err := NewGenerator(cfg, zap.NewNop()).Generate(sampleReport())
	if err != nil {
		t.Fatalf("Generate returned error: %v", err)
	}
	if path == "" {
		t.Fatal("Generate returned empty path for file format")
	}

	raw, err := os.ReadFile(out)
	if err != nil {
		t.Fatalf("report file missing: %v", err)
	}
	var decoded models.ReconcileReport
	if err := json.Unmarshal(raw, &decoded); err != nil {
		t.Fatalf("report not valid JSON: %v", err)
	}
	if decoded.Status != models.StatusConverged {
		t.Errorf("decoded status = %q, want converged", decoded.Status)
	}
	if decoded.TotalFilesRemoved != 12 {
		t.Errorf("decoded files removed = %d, want 12", decoded.TotalFilesRemoved)
	}
}

func TestGenerateMarkdown(t *testing.T) {
	out := filepath.Join(t.TempDir(), "report.md")
	cfg := &config.Config{ReportFormat: "md", OutputFile: out}

	if _, err := NewGenerator(cfg, zap.NewNop()).Generate(sampleReport()); err != nil {
		t.Fatalf("Generate returned error: %v", err)
	}

	raw, err := os.ReadFile(out)
	if err != nil {
		t.Fatalf("report file missing: %v", err)
	}
	body := string(raw)
	for _, want := range []string{"# AugmentCleaner Session Report", "CONVERGED", "No traces remain"} {
		if !strings.Contains(body, want) {
			t.Errorf("markdown report missing %q", want)
		}
	}
}

func TestGenerateUnknownFormat(t *testing.T) {
	cfg := &config.Config{ReportFormat: "xml"}
	if _, err := NewGenerator(cfg, zap.NewNop()).Generate(sampleReport()); err == nil {
		t.Fatal("unknown format should be an error")
	}
}
