package ui

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"trackmon/internal/models"
)

func reportRecords() []models.TrackerRecord {
	return []models.TrackerRecord{
		{
			Name:       "MiddleBits",
			OpenedAt:   time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC),
			Categories: []string{"General"},
			URL:        "https://example.org/middle",
			Status:     models.StatusOpen,
		},
		{
			Name:       "OldBits",
			OpenedAt:   time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
			Categories: nil,
			URL:        "https://example.org/old",
			Status:     models.StatusOpen,
		},
		{
			Name:       "NewBits",
			OpenedAt:   time.Date(2024, 1, 3, 0, 0, 0, 0, time.UTC),
			Categories: []string{"General", "Movies"},
			URL:        "https://example.org/new",
			Status:     models.StatusOpen,
		},
	}
}

func TestWriteMarkdownReport(t *testing.T) {
	path := filepath.Join(t.TempDir(), "README.md")
	records := reportRecords()
	stats := models.CountCategories(records)

	require.NoError(t, WriteMarkdownReport(path, records, stats))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	report := string(data)

	assert.Contains(t, report, "# Tracker Status Report")
	assert.Contains(t, report, "> Last Updated: ")
	assert.Contains(t, report, "- Total Active Trackers: 3")
	assert.Contains(t, report, "- Total Categories: 2")
	assert.Contains(t, report, "![Distribution](./category_distribution.png)")
	assert.Contains(t, report, "![Percentage](./category_percentage.png)")
	assert.Contains(t, report, "| Tracker | Categories | Open Date | Status |")

	// Rows are ordered most recent first.
	newIdx := strings.Index(report, "| NewBits |")
	midIdx := strings.Index(report, "| MiddleBits |")
	oldIdx := strings.Index(report, "| OldBits |")
	require.NotEqual(t, -1, newIdx)
	require.NotEqual(t, -1, midIdx)
	require.NotEqual(t, -1, oldIdx)
	assert.Less(t, newIdx, midIdx)
	assert.Less(t, midIdx, oldIdx)

	assert.Contains(t, report, "| NewBits | General, Movies | 2024-01-03 | 🟢 Open |")
	assert.Contains(t, report, "| OldBits | - | 2024-01-01 | 🟢 Open |", "empty categories render as a placeholder")
}

func TestSortedByDateDescLeavesInputAlone(t *testing.T) {
	records := reportRecords()
	sorted := sortedByDateDesc(records)

	require.Len(t, sorted, 3)
	assert.Equal(t, "NewBits", sorted[0].Name)
	assert.Equal(t, "MiddleBits", sorted[1].Name)
	assert.Equal(t, "OldBits", sorted[2].Name)

	// Original slice keeps source order (WordPress before Reddit).
	assert.Equal(t, "MiddleBits", records[0].Name)
}

func TestJoinCategories(t *testing.T) {
	assert.Equal(t, "-", joinCategories(nil))
	assert.Equal(t, "General", joinCategories([]string{"General"}))
	assert.Equal(t, "General, Movies", joinCategories([]string{"General", "Movies"}))
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", truncate("short", 10))
	assert.Equal(t, "exactlyten", truncate("exactlyten", 10))
	assert.Equal(t, "toolong...", truncate("toolongvalue", 10))
}
