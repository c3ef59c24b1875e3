package report

import (
	"encoding/json"
	"os"

	"github.com/Nunuaa/AugmentCleaner/pkg/models"
)

// generateJSON writes the full session report as indented JSON
func (g *Generator) generateJSON(rep *models.ReconcileReport, outputFile string) error {
	data, err := json.MarshalIndent(rep, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(outputFile, data, 0644)
}
