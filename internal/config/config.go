package config

import "os"

// Config holds the runtime settings for both entry points. Everything has a
// working default; env vars exist for pointing the monitor at a mirror or a
// test server.
type Config struct {
	WordPressURL string // base site URL, no trailing slash needed
	Subreddit    string
	DataDir      string
	ScrapeURL    string // tag archive page for the HTML scraper
	ScrapeOut    string // output file for scrape results
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

// Load reads configuration from the environment.
func Load() Config {
	return Config{
		WordPressURL: getenv("TRACKMON_WORDPRESS_URL", "https://opentrackers.org"),
		Subreddit:    getenv("TRACKMON_SUBREDDIT", "OpenSignup"),
		DataDir:      getenv("TRACKMON_DATA_DIR", "data"),
		ScrapeURL:    getenv("TRACKMON_SCRAPE_URL", "https://opentrackers.org/tag/limited-signup/"),
		ScrapeOut:    getenv("TRACKMON_SCRAPE_OUT", "tracker_data.json"),
	}
}
