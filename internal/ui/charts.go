package ui

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"

	"github.com/charmbracelet/log"
	"github.com/wcharczuk/go-chart/v2"

	"trackmon/internal/models"
)

// Chart output filenames, also referenced by the markdown report.
const (
	DistributionChartFile = "category_distribution.png"
	PercentageChartFile   = "category_percentage.png"
)

// RenderCharts draws the category bar and pie charts into dir. When there is
// no category data at all (e.g. only Reddit results) both charts are skipped
// with a notice rather than rendering empty images.
func RenderCharts(dir string, stats models.CategoryStats, logger *log.Logger) error {
	if len(stats) == 0 {
		logger.Info("No category data available for visualization")
		return nil
	}

	// Stable label order so reruns produce comparable images.
	names := make([]string, 0, len(stats))
	for name := range stats {
		names = append(names, name)
	}
	sort.Strings(names)

	values := make([]chart.Value, 0, len(names))
	maxCount := 0
	for _, name := range names {
		values = append(values, chart.Value{Label: name, Value: float64(stats[name])})
		if stats[name] > maxCount {
			maxCount = stats[name]
		}
	}

	bar := chart.BarChart{
		Title:    "Category Distribution",
		Width:    1200,
		Height:   600,
		BarWidth: 60,
		// Explicit range: go-chart rejects a zero-span data range, which
		// uniform counts (a single category, or every category appearing
		// once) would otherwise produce.
		YAxis: chart.YAxis{
			Range: &chart.ContinuousRange{Min: 0, Max: float64(maxCount + 1)},
		},
		Bars: values,
	}
	if err := renderPNG(filepath.Join(dir, DistributionChartFile), bar.Render); err != nil {
		return fmt.Errorf("failed to render bar chart: %w", err)
	}

	pie := chart.PieChart{
		Title:  "Category Percentage",
		Width:  1000,
		Height: 1000,
		Values: values,
	}
	if err := renderPNG(filepath.Join(dir, PercentageChartFile), pie.Render); err != nil {
		return fmt.Errorf("failed to render pie chart: %w", err)
	}

	logger.Info("Charts rendered", "dir", dir)
	return nil
}

func renderPNG(path string, render func(chart.RendererProvider, io.Writer) error) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := render(chart.PNG, f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
