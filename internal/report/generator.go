package report

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/Nunuaa/AugmentCleaner/internal/config"
	"github.com/Nunuaa/AugmentCleaner/pkg/models"
)

// ANSI color codes
const (
	colorReset  = "\033[0m"
	colorBold   = "\033[1m"
	colorDim    = "\033[2m"
	colorRed    = "\033[31m"
	colorGreen  = "\033[32m"
	colorYellow = "\033[33m"
	colorWhite  = "\033[37m"
	colorOrange = "\033[38;5;208m"
	colorGray   = "\033[38;5;245m"
)

// FormatDuration formats duration to a human-readable string with max 2 decimal places
func FormatDuration(d time.Duration) string {
	if d < time.Second {
		return fmt.Sprintf("%.2fms", float64(d.Nanoseconds())/1e6)
	} else if d < time.Minute {
		return fmt.Sprintf("%.2fs", d.Seconds())
	} else if d < time.Hour {
		mins := int(d.Minutes())
		secs := d.Seconds() - float64(mins*60)
		return fmt.Sprintf("%dm%.2fs", mins, secs)
	}
	hours := int(d.Hours())
	mins := int(d.Minutes()) - hours*60
	secs := d.Seconds() - float64(hours*3600) - float64(mins*60)
	return fmt.Sprintf("%dh%dm%.2fs", hours, mins, secs)
}

// Generator renders cleaning reports in various formats
type Generator struct {
	config *config.Config
	logger *zap.Logger
}

// NewGenerator creates a new report generator
func NewGenerator(cfg *config.Config, logger *zap.Logger) *Generator {
	return &Generator{
		config: cfg,
		logger: logger,
	}
}

// Generate renders a report for one cleaning session. With no format
// configured it prints to the console and returns an empty path; otherwise
// it writes a file and returns its absolute path.
func (g *Generator) Generate(rep *models.ReconcileReport) (string, error) {
	format := g.config.ReportFormat
	outputFile := g.config.OutputFile

	if format == "" {
		g.printConsole(rep)
		return "", nil
	}

	if outputFile == "" {
		timestamp := time.Now().Format("20060102-150405")
		switch format {
		case "json":
			outputFile = fmt.Sprintf("AUGCLEAN-REPORT-%s.json", timestamp)
		case "md", "markdown":
			outputFile = fmt.Sprintf("AUGCLEAN-REPORT-%s.md", timestamp)
		default:
			return "", fmt.Errorf("unknown report format: %s", format)
		}
	}

	g.logger.Info("Generating report",
		zap.String("format", format),
		zap.String("output", outputFile))

	var err error
	switch format {
	case "json":
		err = g.generateJSON(rep, outputFile)
	case "md", "markdown":
		err = g.generateMarkdown(rep, outputFile)
	}

	if err != nil {
		return "", fmt.Errorf("failed to generate %s report: %w", format, err)
	}

	absPath, _ := filepath.Abs(outputFile)
	return absPath, nil
}

// printConsole prints the session result to stdout with colors
func (g *Generator) printConsole(rep *models.ReconcileReport) {
	fmt.Println()
	fmt.Printf("%s%sCLEANING COMPLETE%s\n", colorBold, colorOrange, colorReset)
	fmt.Println()

	fmt.Printf("  %sEditor:%s    %s\n", colorGray, colorReset, rep.EditorKey)
	fmt.Printf("  %sStatus:%s    %s%s%s\n", colorGray, colorReset, statusColor(rep.Status), strings.ToUpper(string(rep.Status)), colorReset)
	fmt.Printf("  %sRounds:%s    %d\n", colorGray, colorReset, len(rep.Rounds))
	fmt.Printf("  %sFiles:%s     %d removed\n", colorGray, colorReset, rep.TotalFilesRemoved)
	fmt.Printf("  %sRows:%s      %d pruned\n", colorGray, colorReset, rep.TotalRowsRemoved)
	fmt.Printf("  %sDuration:%s  %s\n", colorGray, colorReset, FormatDuration(rep.Duration))
	fmt.Println()

	if rep.FullyClean {
		fmt.Printf("  %s%s✓ No traces remain%s\n", colorBold, colorGreen, colorReset)
		fmt.Println()
		return
	}

	if len(rep.Residual) > 0 {
		fmt.Printf("  %s%s⚠ RESIDUAL LOCATIONS%s\n", colorBold, colorRed, colorReset)
		fmt.Println()
		for _, cat := range categoryOrder {
			if n := rep.Residual[cat]; n > 0 {
				fmt.Printf("      %s%-20s%s %d\n", colorGray, string(cat), colorReset, n)
			}
		}
		fmt.Println()
	}

	fmt.Printf("%s───────────────────────────────────────────────────────────────%s\n", colorGray, colorReset)

	for _, round := range rep.Rounds {
		fmt.Printf("\n  %s%s[Round %d]%s found %d, removed %d files, pruned %d rows\n",
			colorBold, colorWhite, round.Round, colorReset,
			round.Scan.TotalCount(), round.FilesRemoved(), round.RowsRemoved())

		for _, o := range round.Outcomes {
			if o.Skipped {
				fmt.Printf("      %sskip%s  %s %s(%s)%s\n", colorYellow, colorReset, o.Path, colorDim, o.Reason, colorReset)
			} else if o.Error != "" {
				fmt.Printf("      %sfail%s  %s %s(%s)%s\n", colorRed, colorReset, o.Path, colorDim, truncate(o.Error, 80), colorReset)
			} else {
				fmt.Printf("      %sdel%s   %s\n", colorGreen, colorReset, o.Path)
			}
		}
		for _, p := range round.Prunes {
			if p.Error != "" {
				fmt.Printf("      %sfail%s  %s %s(%s)%s\n", colorRed, colorReset, p.Path, colorDim, truncate(p.Error, 80), colorReset)
			} else if !p.Skipped {
				fmt.Printf("      %sdb%s    %s (%d rows)\n", colorGreen, colorReset, p.Path, p.RowsRemoved)
			}
		}
	}

	fmt.Println()
	fmt.Printf("%s───────────────────────────────────────────────────────────────%s\n", colorGray, colorReset)
	fmt.Println()
}

// PrintScan prints a standalone scan snapshot to stdout
func (g *Generator) PrintScan(scan *models.ScanResult) {
	fmt.Println()
	fmt.Printf("%s%sSCAN COMPLETE%s\n", colorBold, colorOrange, colorReset)
	fmt.Println()
	fmt.Printf("  %sEditor:%s    %s\n", colorGray, colorReset, scan.EditorKey)
	fmt.Printf("  %sFound:%s     %d locations\n", colorGray, colorReset, scan.TotalCount())
	fmt.Println()

	if scan.TotalCount() == 0 {
		fmt.Printf("  %s%s✓ No traces found%s\n", colorBold, colorGreen, colorReset)
		fmt.Println()
		return
	}

	printList := func(label string, paths []string) {
		for _, p := range paths {
			fmt.Printf("  %s%-18s%s %s\n", colorGray, label, colorReset, p)
		}
	}
	printList("global storage", scan.GlobalStorageDirs)
	printList("workspace storage", scan.WorkspaceStorageDirs)
	for _, h := range scan.DatabaseHits {
		fmt.Printf("  %s%-18s%s %s %s(%d rows)%s\n", colorGray, "database", colorReset, h.Path, colorDim, h.MatchedRows, colorReset)
	}
	printList("config file", scan.ConfigFileHits)
	printList("other file", scan.OtherFileHits)

	if len(scan.Errors) > 0 {
		fmt.Println()
		fmt.Printf("  %s%s⚠ %d items could not be read%s\n", colorBold, colorYellow, len(scan.Errors), colorReset)
	}
	fmt.Println()
}

var categoryOrder = []models.Category{
	models.CategoryGlobalStorage,
	models.CategoryWorkspaceStorage,
	models.CategoryDatabase,
	models.CategoryConfigFile,
	models.CategoryOtherFile,
}

// statusColor returns ANSI color for a terminal status
func statusColor(status models.ReconcileStatus) string {
	switch status {
	case models.StatusConverged:
		return colorGreen + colorBold
	case models.StatusExhausted:
		return colorOrange
	case models.StatusAborted:
		return colorRed
	default:
		return colorWhite
	}
}

// truncate shortens a message for console output
func truncate(msg string, maxLen int) string {
	msg = strings.TrimSpace(strings.ReplaceAll(msg, "\n", " "))
	if len(msg) > maxLen {
		return msg[:maxLen] + "..."
	}
	return msg
}
