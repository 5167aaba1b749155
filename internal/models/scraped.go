package models

// ScrapedPost is the looser record produced by the HTML archive scraper.
// Date carries the raw text (or datetime attribute) found on the page and is
// deliberately not parsed to a timestamp.
type ScrapedPost struct {
	Title     string `json:"title"`
	Link      string `json:"link"` // rewritten to absolute
	Date      string `json:"date"`
	Summary   string `json:"summary"` // truncated to 200 chars + ellipsis
	ScrapedAt string `json:"scraped_at"`
}
