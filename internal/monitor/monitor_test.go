package monitor

import (
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"trackmon/internal/models"
	"trackmon/internal/store"
)

type fakeSource struct {
	records []models.TrackerRecord
	closed  bool
}

func (f *fakeSource) FetchPosts() []models.TrackerRecord { return f.records }

func (f *fakeSource) Close() { f.closed = true }

func newTestMonitor(dir string, wp, rd *fakeSource) *Monitor {
	return &Monitor{
		wordpress: wp,
		reddit:    rd,
		store:     store.New(dir),
		logger:    log.New(io.Discard),
	}
}

func TestRunEmptySourcesWritesNothing(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "data")
	wp := &fakeSource{}
	rd := &fakeSource{}

	err := newTestMonitor(dir, wp, rd).Run()
	require.ErrorIs(t, err, ErrNoTrackers)

	_, statErr := os.Stat(dir)
	assert.True(t, os.IsNotExist(statErr), "empty run must not create the data dir")
	assert.True(t, wp.closed, "clients released on the empty path too")
	assert.True(t, rd.closed)
}

func TestRunFullPipeline(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "data")
	wp := &fakeSource{records: []models.TrackerRecord{
		{
			Name:       "SuperBits",
			OpenedAt:   time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC),
			Categories: []string{"General", "Movies"},
			URL:        "https://opentrackers.org/superbits/",
			Status:     models.StatusOpen,
		},
	}}
	rd := &fakeSource{records: []models.TrackerRecord{
		{
			Name:     "TorrentLeech",
			OpenedAt: time.Date(2024, 1, 5, 0, 0, 0, 0, time.UTC),
			URL:      "https://torrentleech.org/signup",
			Status:   models.StatusOpen,
		},
	}}

	require.NoError(t, newTestMonitor(dir, wp, rd).Run())
	assert.True(t, wp.closed)
	assert.True(t, rd.closed)

	// Snapshot pair, report and both charts all land in the data dir.
	for _, name := range []string{
		"latest.json",
		"trackers_" + time.Now().Format("2006-01-02") + ".json",
		"README.md",
		"category_distribution.png",
		"category_percentage.png",
	} {
		_, err := os.Stat(filepath.Join(dir, name))
		assert.NoError(t, err, "missing %s", name)
	}

	// Merge preserves source order with WordPress first.
	_, records, err := store.ReadSnapshot(filepath.Join(dir, "latest.json"))
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "SuperBits", records[0].Name)
	assert.Equal(t, "TorrentLeech", records[1].Name)

	report, err := os.ReadFile(filepath.Join(dir, "README.md"))
	require.NoError(t, err)
	assert.Contains(t, string(report), "- Total Active Trackers: 2")
	assert.Contains(t, string(report), "- Total Categories: 2")
}

func TestRunNoCategoriesSkipsCharts(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "data")
	rd := &fakeSource{records: []models.TrackerRecord{
		{
			Name:     "RedditOnly",
			OpenedAt: time.Date(2024, 1, 5, 0, 0, 0, 0, time.UTC),
			URL:      "https://www.reddit.com/r/OpenSignup",
			Status:   models.StatusOpen,
		},
	}}

	require.NoError(t, newTestMonitor(dir, &fakeSource{}, rd).Run())

	_, err := os.Stat(filepath.Join(dir, "category_distribution.png"))
	assert.True(t, os.IsNotExist(err), "no chart without category data")
	_, err = os.Stat(filepath.Join(dir, "latest.json"))
	assert.NoError(t, err, "snapshots still written")
}
