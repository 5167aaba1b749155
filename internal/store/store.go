package store

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"trackmon/internal/models"
)

const (
	latestFile     = "latest.json"
	datedFormat    = "trackers_%s.json"
	snapshotIndent = "    "
	scrapedIndent  = "  "
)

// Snapshot is the on-disk shape of one monitor run.
type Snapshot struct {
	LastUpdated string           `json:"last_updated"`
	Trackers    []SnapshotRecord `json:"trackers"`
}

// SnapshotRecord is a TrackerRecord with its date rendered as an RFC3339
// string for the JSON files.
type SnapshotRecord struct {
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Categories  []string `json:"categories"`
	URL         string   `json:"url"`
	Status      bool     `json:"status"`
	Date        string   `json:"date"`
}

// Store writes monitor run outputs under a single data directory.
type Store struct {
	dir string
}

func New(dir string) *Store { return &Store{dir: dir} }

// Dir returns the data directory the store writes to.
func (s *Store) Dir() string { return s.dir }

// SaveSnapshots writes identical snapshot content to the dated file for
// today's calendar date and to latest.json. Rerunning the same day
// overwrites that day's file; the dated files accumulate one per day.
func (s *Store) SaveSnapshots(records []models.TrackerRecord) error {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return fmt.Errorf("failed to create data dir: %w", err)
	}

	now := time.Now()
	snap := Snapshot{
		LastUpdated: now.Format(time.RFC3339),
		Trackers:    make([]SnapshotRecord, 0, len(records)),
	}
	for _, r := range records {
		snap.Trackers = append(snap.Trackers, SnapshotRecord{
			Name:        r.Name,
			Description: r.Description,
			Categories:  r.Categories,
			URL:         r.URL,
			Status:      bool(r.Status),
			Date:        r.OpenedAt.Format(time.RFC3339),
		})
	}

	dated := filepath.Join(s.dir, fmt.Sprintf(datedFormat, now.Format("2006-01-02")))
	latest := filepath.Join(s.dir, latestFile)
	for _, path := range []string{dated, latest} {
		if err := writeJSON(path, snap, snapshotIndent); err != nil {
			return err
		}
	}
	return nil
}

// LatestPath returns the path of the rolling latest.json snapshot.
func (s *Store) LatestPath() string {
	return filepath.Join(s.dir, latestFile)
}

// ReadSnapshot loads a snapshot file back into tracker records.
func ReadSnapshot(path string) (time.Time, []models.TrackerRecord, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return time.Time{}, nil, fmt.Errorf("failed to read snapshot: %w", err)
	}

	var snap Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return time.Time{}, nil, fmt.Errorf("failed to parse snapshot: %w", err)
	}

	lastUpdated, err := time.Parse(time.RFC3339, snap.LastUpdated)
	if err != nil {
		return time.Time{}, nil, fmt.Errorf("bad last_updated stamp: %w", err)
	}

	records := make([]models.TrackerRecord, 0, len(snap.Trackers))
	for _, t := range snap.Trackers {
		openedAt, err := time.Parse(time.RFC3339, t.Date)
		if err != nil {
			return time.Time{}, nil, fmt.Errorf("bad date on %q: %w", t.Name, err)
		}
		records = append(records, models.TrackerRecord{
			Name:        t.Name,
			OpenedAt:    openedAt,
			Description: t.Description,
			Categories:  t.Categories,
			URL:         t.URL,
			Status:      models.Status(t.Status),
		})
	}
	return lastUpdated, records, nil
}

// WriteScraped writes archive scrape results to path as a flat JSON array.
func WriteScraped(path string, posts []models.ScrapedPost) error {
	return writeJSON(path, posts, scrapedIndent)
}

// writeJSON writes human-readable JSON with HTML escaping disabled so
// non-ASCII tracker names and URLs with ampersands survive untouched.
func writeJSON(path string, v any, indent string) error {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", indent)
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("failed to encode %s: %w", filepath.Base(path), err)
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}
