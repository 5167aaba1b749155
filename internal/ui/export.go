package ui

import (
	"fmt"
	"os"
	"strings"
	"time"

	"trackmon/internal/models"
)

// WriteMarkdownReport renders the run report to path. It mirrors the console
// table (same columns, most recent first) and embeds the two category charts
// rendered next to it in the data directory.
func WriteMarkdownReport(path string, records []models.TrackerRecord, stats models.CategoryStats) error {
	var sb strings.Builder

	sb.WriteString("# Tracker Status Report\n")
	sb.WriteString(fmt.Sprintf("> Last Updated: %s\n\n", time.Now().Format("2006-01-02 15:04:05")))

	sb.WriteString("## Statistics\n")
	sb.WriteString(fmt.Sprintf("- Total Active Trackers: %d\n", len(records)))
	sb.WriteString(fmt.Sprintf("- Total Categories: %d\n\n", len(stats)))

	sb.WriteString("## Category Distribution\n")
	sb.WriteString(fmt.Sprintf("![Distribution](./%s)\n", DistributionChartFile))
	sb.WriteString(fmt.Sprintf("![Percentage](./%s)\n\n", PercentageChartFile))

	sb.WriteString("## Active Trackers\n")
	sb.WriteString("| Tracker | Categories | Open Date | Status |\n")
	sb.WriteString("|---------|------------|-----------|--------|\n")
	for _, r := range sortedByDateDesc(records) {
		sb.WriteString(fmt.Sprintf("| %s | %s | %s | %s |\n",
			r.Name,
			joinCategories(r.Categories),
			r.OpenedAt.Format("2006-01-02"),
			r.Status.Label()))
	}

	if err := os.WriteFile(path, []byte(sb.String()), 0o644); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}
	return nil
}
