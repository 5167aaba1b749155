package main

import (
	"os"

	"github.com/charmbracelet/log"
	"github.com/joho/godotenv"

	"trackmon/internal/config"
	"trackmon/internal/scraper"
	"trackmon/internal/store"
	"trackmon/internal/ui"
)

func main() {
	// Load .env file if it exists (silently ignore if not found)
	_ = godotenv.Load()

	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          "scrape-archive",
	})

	cfg := config.Load()
	logger.Info("Fetching archive page", "url", cfg.ScrapeURL)

	s := scraper.New(cfg.ScrapeURL, logger)
	defer s.Close()

	posts := s.Extract()
	if len(posts) == 0 {
		ui.PrintNotice("No posts found. Check the site markup or try again later.")
		return
	}

	if err := store.WriteScraped(cfg.ScrapeOut, posts); err != nil {
		logger.Error("Failed to write scrape results", "err", err)
		os.Exit(1)
	}

	ui.PrintScrapedPosts(posts)
	logger.Info("Scrape complete", "posts", len(posts), "file", cfg.ScrapeOut)
}
