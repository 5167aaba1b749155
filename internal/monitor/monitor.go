package monitor

import (
	"errors"
	"path/filepath"
	"sync"

	"github.com/charmbracelet/log"

	"trackmon/internal/api"
	"trackmon/internal/config"
	"trackmon/internal/models"
	"trackmon/internal/store"
	"trackmon/internal/ui"
)

// ErrNoTrackers signals that both sources came back empty. Callers treat it
// as a clean terminal condition for the run (nothing to persist), not a
// failure.
var ErrNoTrackers = errors.New("no trackers found")

// source is one REST-style announcement source. Both adapters satisfy it.
type source interface {
	FetchPosts() []models.TrackerRecord
	Close()
}

// Monitor wires the two REST adapters to persistence and reporting for a
// single run. A fresh Monitor is built per run; nothing is shared across
// runs except the snapshot files.
type Monitor struct {
	wordpress source
	reddit    source
	store     *store.Store
	logger    *log.Logger
}

func New(cfg config.Config, logger *log.Logger) *Monitor {
	return &Monitor{
		wordpress: api.NewWordPressClient(cfg.WordPressURL, logger),
		reddit:    api.NewRedditClient(cfg.Subreddit, logger),
		store:     store.New(cfg.DataDir),
		logger:    logger,
	}
}

// Run performs one collect-persist-report cycle: fetch both sources, merge
// (WordPress first), snapshot, charts, console table, markdown report.
func (m *Monitor) Run() error {
	defer m.wordpress.Close()
	defer m.reddit.Close()

	// The two fetches are independent, so they run concurrently into
	// separate slices; aggregation starts only after both return.
	var (
		wg        sync.WaitGroup
		wpRecords []models.TrackerRecord
		rdRecords []models.TrackerRecord
	)
	wg.Add(2)
	go func() {
		defer wg.Done()
		wpRecords = m.wordpress.FetchPosts()
	}()
	go func() {
		defer wg.Done()
		rdRecords = m.reddit.FetchPosts()
	}()
	wg.Wait()

	trackers := make([]models.TrackerRecord, 0, len(wpRecords)+len(rdRecords))
	trackers = append(trackers, wpRecords...)
	trackers = append(trackers, rdRecords...)
	if len(trackers) == 0 {
		ui.PrintNotice("No trackers found")
		return ErrNoTrackers
	}
	m.logger.Info("Fetched trackers", "wordpress", len(wpRecords), "reddit", len(rdRecords))

	if err := m.store.SaveSnapshots(trackers); err != nil {
		return err
	}

	stats := models.CountCategories(trackers)
	if err := ui.RenderCharts(m.store.Dir(), stats, m.logger); err != nil {
		return err
	}

	ui.PrintTrackerTable(trackers)

	reportPath := filepath.Join(m.store.Dir(), "README.md")
	if err := ui.WriteMarkdownReport(reportPath, trackers, stats); err != nil {
		return err
	}
	m.logger.Info("Run complete", "trackers", len(trackers), "categories", len(stats))
	return nil
}
