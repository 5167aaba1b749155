package ui

import (
	"fmt"
	"sort"
	"strings"

	"trackmon/internal/models"
)

// Column widths for the console table
var colWidths = []int{30, 24, 10, 9}

// PrintTrackerTable prints the fetched trackers as a styled table, most
// recently opened first.
//
// This is a CLI report (non-interactive), so the table structure is plain
// string formatting; lipgloss is used only to color the output text.
func PrintTrackerTable(records []models.TrackerRecord) {
	if len(records) == 0 {
		PrintNotice("No trackers found")
		return
	}

	fmt.Println()
	fmt.Println(titleStyle.Render(fmt.Sprintf("Tracker Announcements (%d)", len(records))))

	totalWidth := 2
	for _, w := range colWidths {
		totalWidth += w + 3
	}
	totalWidth--
	separator := strings.Repeat("─", totalWidth-2)

	fmt.Println(borderStyle.Render("┌" + separator + "┐"))

	header := fmt.Sprintf("│ %-*s │ %-*s │ %-*s │ %-*s │",
		colWidths[0], "Tracker",
		colWidths[1], "Categories",
		colWidths[2], "Date",
		colWidths[3], "Status")
	fmt.Println(headerStyle.Render(header))

	fmt.Println(borderStyle.Render("├" + separator + "┤"))

	for _, r := range sortedByDateDesc(records) {
		row := fmt.Sprintf("│ %-*s │ %-*s │ %-*s │ %-*s │",
			colWidths[0], truncate(r.Name, colWidths[0]),
			colWidths[1], truncate(joinCategories(r.Categories), colWidths[1]),
			colWidths[2], r.OpenedAt.Format("2006-01-02"),
			colWidths[3], r.Status.Label())
		fmt.Println(rowStyle.Render(row))
	}

	fmt.Println(borderStyle.Render("└" + separator + "┘"))
	fmt.Println()
}

// PrintScrapedPosts prints the standalone scraper's results, one block per
// post.
func PrintScrapedPosts(posts []models.ScrapedPost) {
	divider := strings.Repeat("=", 50)

	fmt.Println()
	fmt.Println(titleStyle.Render(divider))
	fmt.Println(titleStyle.Render(fmt.Sprintf("Found %d trackers", len(posts))))
	fmt.Println(titleStyle.Render(divider))
	fmt.Println()

	for _, post := range posts {
		fmt.Println(headerStyle.Render("📌 " + post.Title))
		fmt.Println(linkStyle.Render("🔗 " + post.Link))
		fmt.Println(rowStyle.Render("📅 " + post.Date))
		if post.Summary != "" {
			fmt.Println(summaryStyle.Render("📝 " + post.Summary))
		}
		fmt.Println(borderStyle.Render(strings.Repeat("-", 50)))
		fmt.Println()
	}
}

// PrintNotice prints an operator-facing notice (distinct from error logs).
func PrintNotice(message string) {
	fmt.Println(noticeStyle.Render(message))
}

// sortedByDateDesc returns a copy of records ordered most recent first. The
// input is left untouched since records are immutable once built.
func sortedByDateDesc(records []models.TrackerRecord) []models.TrackerRecord {
	sorted := make([]models.TrackerRecord, len(records))
	copy(sorted, records)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].OpenedAt.After(sorted[j].OpenedAt)
	})
	return sorted
}

func joinCategories(categories []string) string {
	if len(categories) == 0 {
		return "-"
	}
	return strings.Join(categories, ", ")
}

func truncate(value string, width int) string {
	runes := []rune(value)
	if len(runes) <= width {
		return value
	}
	return string(runes[:width-3]) + "..."
}
