package main

import (
	"errors"
	"os"

	"github.com/charmbracelet/log"
	"github.com/joho/godotenv"

	"trackmon/internal/config"
	"trackmon/internal/monitor"
)

func main() {
	// Load .env file if it exists (silently ignore if not found)
	_ = godotenv.Load()

	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          "trackmon",
	})

	m := monitor.New(config.Load(), logger)
	if err := m.Run(); err != nil {
		if errors.Is(err, monitor.ErrNoTrackers) {
			// Empty sources are a clean outcome, not a failure.
			return
		}
		logger.Error("Run failed", "err", err)
		os.Exit(1)
	}
}
