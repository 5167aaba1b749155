package models

import "time"

// Status is the signup state of a tracker. The sources never announce
// closures explicitly, so every record the adapters produce today is open;
// the closed variant exists for display and snapshot compatibility.
type Status bool

const (
	StatusOpen   Status = true
	StatusClosed Status = false
)

// Label returns the glyph+text form used in tables and reports.
func (s Status) Label() string {
	if s == StatusOpen {
		return "🟢 Open"
	}
	return "🔴 Closed"
}

// TrackerRecord is one normalized tracker announcement. Records are built
// once per fetched item and never mutated afterwards; nothing survives a run
// except the snapshot files.
type TrackerRecord struct {
	Name        string
	OpenedAt    time.Time // normalized to UTC
	Description string
	Categories  []string // source order preserved, may be empty
	URL         string   // always absolute
	Status      Status
}

// CategoryStats counts tracker records per category label.
type CategoryStats map[string]int

// CountCategories tallies every category occurrence across records. A record
// listing multiple categories increments each of them.
func CountCategories(records []TrackerRecord) CategoryStats {
	stats := make(CategoryStats)
	for _, r := range records {
		for _, category := range r.Categories {
			stats[category]++
		}
	}
	return stats
}
