package report

import (
	"fmt"
	"os"
	"strings"

	"github.com/Nunuaa/AugmentCleaner/pkg/models"
)

// generateMarkdown writes the session report as a Markdown document
func (g *Generator) generateMarkdown(rep *models.ReconcileReport, outputFile string) error {
	var sb strings.Builder

	sb.WriteString("# AugmentCleaner Session Report\n\n")

	sb.WriteString("## Summary\n\n")
	sb.WriteString("| Parameter | Value |\n")
	sb.WriteString("|-----------|-------|\n")
	sb.WriteString(fmt.Sprintf("| Editor | %s |\n", rep.EditorKey))
	sb.WriteString(fmt.Sprintf("| Status | %s %s |\n", statusEmoji(rep.Status), strings.ToUpper(string(rep.Status))))
	sb.WriteString(fmt.Sprintf("| Start Time | %s |\n", rep.StartTime.Format("2006-01-02 15:04:05")))
	sb.WriteString(fmt.Sprintf("| End Time | %s |\n", rep.EndTime.Format("2006-01-02 15:04:05")))
	sb.WriteString(fmt.Sprintf("| Duration | %s |\n", FormatDuration(rep.Duration)))
	sb.WriteString(fmt.Sprintf("| Rounds | %d |\n", len(rep.Rounds)))
	sb.WriteString(fmt.Sprintf("| **Files Removed** | **%d** |\n", rep.TotalFilesRemoved))
	sb.WriteString(fmt.Sprintf("| **Rows Pruned** | **%d** |\n", rep.TotalRowsRemoved))
	sb.WriteString("\n")

	if rep.FullyClean {
		sb.WriteString("> ✅ **No traces remain**\n\n")
		return os.WriteFile(outputFile, []byte(sb.String()), 0644)
	}

	if len(rep.Residual) > 0 {
		sb.WriteString("## Residual Locations\n\n")
		sb.WriteString("| Category | Count |\n")
		sb.WriteString("|----------|-------|\n")
		for _, cat := range categoryOrder {
			if n := rep.Residual[cat]; n > 0 {
				sb.WriteString(fmt.Sprintf("| %s | %d |\n", string(cat), n))
			}
		}
		sb.WriteString("\n")
	}

	sb.WriteString("## Rounds\n\n")
	for _, round := range rep.Rounds {
		sb.WriteString(fmt.Sprintf("### Round %d\n\n", round.Round))
		sb.WriteString("| Metric | Value |\n")
		sb.WriteString("|--------|-------|\n")
		sb.WriteString(fmt.Sprintf("| Locations Found | %d |\n", round.Scan.TotalCount()))
		sb.WriteString(fmt.Sprintf("| Files Removed | %d |\n", round.FilesRemoved()))
		sb.WriteString(fmt.Sprintf("| Rows Pruned | %d |\n", round.RowsRemoved()))
		if round.Verify != nil {
			sb.WriteString(fmt.Sprintf("| Residual After Verify | %d |\n", round.Verify.TotalCount()))
		}
		sb.WriteString("\n")

		if len(round.Outcomes) > 0 {
			sb.WriteString("| Path | Category | Result |\n")
			sb.WriteString("|------|----------|--------|\n")
			for _, o := range round.Outcomes {
				result := fmt.Sprintf("removed %d items", o.ItemsRemoved)
				if o.Skipped {
					result = fmt.Sprintf("skipped (%s)", o.Reason)
				} else if o.Error != "" {
					result = fmt.Sprintf("failed: %s", o.Error)
				}
				sb.WriteString(fmt.Sprintf("| `%s` | %s | %s |\n", o.Path, string(o.Category), result))
			}
			sb.WriteString("\n")
		}

		if len(round.Prunes) > 0 {
			sb.WriteString("| Database | Rows Pruned |\n")
			sb.WriteString("|----------|-------------|\n")
			for _, p := range round.Prunes {
				if p.Error != "" {
					sb.WriteString(fmt.Sprintf("| `%s` | failed: %s |\n", p.Path, p.Error))
				} else {
					sb.WriteString(fmt.Sprintf("| `%s` | %d |\n", p.Path, p.RowsRemoved))
				}
			}
			sb.WriteString("\n")
		}
	}

	sb.WriteString("---\n\n")
	sb.WriteString("*Generated by AugmentCleaner*\n")

	return os.WriteFile(outputFile, []byte(sb.String()), 0644)
}

// statusEmoji returns emoji for a terminal status
func statusEmoji(status models.ReconcileStatus) string {
	switch status {
	case models.StatusConverged:
		return "🟢"
	case models.StatusExhausted:
		return "🟠"
	case models.StatusAborted:
		return "🔴"
	default:
		return "⚪"
	}
}
