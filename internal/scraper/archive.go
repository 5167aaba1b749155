package scraper

import (
	"bytes"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"regexp"
	"sort"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/charmbracelet/log"
	"golang.org/x/net/html/charset"

	"trackmon/internal/models"
)

const (
	fetchTimeout = 30 * time.Second
	maxAttempts  = 3
	retryDelay   = 2 * time.Second
	summaryLimit = 200

	scraperUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"
)

var whitespaceRe = regexp.MustCompile(`\s+`)

// ArchiveScraper pulls announcement posts straight from the site's
// limited-signup tag archive page. It is the fallback path for when the REST
// API stops cooperating, so extraction leans on loose heuristics instead of
// fixed selectors and has to tolerate markup drift.
type ArchiveScraper struct {
	pageURL    string
	origin     string // scheme://host, used to absolutize relative links
	httpClient *http.Client
	logger     *log.Logger
}

func New(pageURL string, logger *log.Logger) *ArchiveScraper {
	origin := ""
	if u, err := url.Parse(pageURL); err == nil && u.Host != "" {
		origin = u.Scheme + "://" + u.Host
	}
	return &ArchiveScraper{
		pageURL:    pageURL,
		origin:     origin,
		httpClient: &http.Client{Timeout: fetchTimeout},
		logger:     logger,
	}
}

// containerStrategy locates candidate post containers. Strategies run in
// order and the first one yielding at least one node wins.
type containerStrategy struct {
	name string
	find func(doc *goquery.Document) *goquery.Selection
}

var containerStrategies = []containerStrategy{
	{"article tag", func(doc *goquery.Document) *goquery.Selection {
		return doc.Find("article")
	}},
	{"class contains post", func(doc *goquery.Document) *goquery.Selection {
		return doc.Find("div[class]").FilterFunction(func(_ int, s *goquery.Selection) bool {
			cls, _ := s.Attr("class")
			return strings.Contains(strings.ToLower(cls), "post")
		})
	}},
	{"post-list class", func(doc *goquery.Document) *goquery.Selection {
		return doc.Find("div.post-list")
	}},
}

// Extract fetches the archive page and returns every post it can recognize,
// most recent first (by raw date text, so the order is only as good as the
// site's date format). A dead page or unrecognizable markup yields an empty
// slice, never an error.
func (s *ArchiveScraper) Extract() []models.ScrapedPost {
	body, contentType, err := s.fetchPage()
	if err != nil {
		s.logger.Error("Archive page unavailable", "url", s.pageURL, "err", err)
		return nil
	}

	posts, err := s.parse(body, contentType)
	if err != nil {
		s.logger.Error("Archive page parse failed", "err", err)
		return nil
	}
	return posts
}

// Close releases the scraper's idle connections.
func (s *ArchiveScraper) Close() {
	s.httpClient.CloseIdleConnections()
}

// fetchPage retries a fixed number of times with a fixed delay. No backoff
// growth: the site either recovers within seconds or the run moves on.
func (s *ArchiveScraper) fetchPage() ([]byte, string, error) {
	var lastErr error
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		if attempt > 1 {
			time.Sleep(retryDelay)
		}
		body, contentType, err := s.get()
		if err == nil {
			return body, contentType, nil
		}
		lastErr = err
		s.logger.Warn("Archive fetch attempt failed", "attempt", attempt, "maxAttempts", maxAttempts, "err", err)
	}
	return nil, "", lastErr
}

func (s *ArchiveScraper) get() ([]byte, string, error) {
	req, err := http.NewRequest(http.MethodGet, s.pageURL, nil)
	if err != nil {
		return nil, "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", scraperUserAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,image/avif,image/webp,image/apng,*/*;q=0.8")
	req.Header.Set("Accept-Language", "en-US,en;q=0.9")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, "", fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, "", fmt.Errorf("archive page returned status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, "", fmt.Errorf("failed to read response: %w", err)
	}
	return body, resp.Header.Get("Content-Type"), nil
}

func (s *ArchiveScraper) parse(body []byte, contentType string) ([]models.ScrapedPost, error) {
	// Decode to UTF-8 first; archive pages are not guaranteed to be served
	// as UTF-8.
	reader, err := charset.NewReader(bytes.NewReader(body), contentType)
	if err != nil {
		return nil, fmt.Errorf("failed to determine charset: %w", err)
	}
	doc, err := goquery.NewDocumentFromReader(reader)
	if err != nil {
		return nil, fmt.Errorf("failed to parse HTML: %w", err)
	}

	containers, strategy := findContainers(doc)
	if containers == nil {
		s.logger.Warn("No post containers found on archive page")
		return nil, nil
	}
	s.logger.Info("Found post containers", "strategy", strategy, "count", containers.Length())

	scrapedAt := time.Now().Format("2006-01-02 15:04:05")
	var posts []models.ScrapedPost
	containers.Each(func(_ int, sel *goquery.Selection) {
		post, ok := s.parseContainer(sel, scrapedAt)
		if !ok {
			return // skip only this container
		}
		posts = append(posts, post)
	})

	sort.SliceStable(posts, func(i, j int) bool {
		return posts[i].Date > posts[j].Date
	})
	return posts, nil
}

func findContainers(doc *goquery.Document) (*goquery.Selection, string) {
	for _, strategy := range containerStrategies {
		if sel := strategy.find(doc); sel.Length() > 0 {
			return sel, strategy.name
		}
	}
	return nil, ""
}

// parseContainer extracts one post from a container element. Containers
// without a recognizable heading or anchor are skipped.
func (s *ArchiveScraper) parseContainer(sel *goquery.Selection, scrapedAt string) (models.ScrapedPost, bool) {
	var title string
	for _, tag := range []string{"h1", "h2", "h3"} {
		if h := sel.Find(tag).First(); h.Length() > 0 {
			title = collapseWhitespace(h.Text())
			break
		}
	}
	if title == "" {
		return models.ScrapedPost{}, false
	}

	link, _ := sel.Find("a").First().Attr("href")
	if link == "" {
		return models.ScrapedPost{}, false
	}

	return models.ScrapedPost{
		Title:     title,
		Link:      s.absoluteURL(link),
		Date:      collapseWhitespace(s.extractDate(sel)),
		Summary:   extractSummary(sel),
		ScrapedAt: scrapedAt,
	}, true
}

// extractDate prefers a semantic time element, then anything whose class
// mentions a date; a machine-readable datetime attribute beats element text.
// With neither present the current date stands in.
func (s *ArchiveScraper) extractDate(sel *goquery.Selection) string {
	elem := sel.Find("time").First()
	if elem.Length() == 0 {
		elem = sel.Find("[class]").FilterFunction(func(_ int, e *goquery.Selection) bool {
			cls, _ := e.Attr("class")
			return strings.Contains(strings.ToLower(cls), "date")
		}).First()
	}
	if elem.Length() == 0 {
		return time.Now().Format("2006-01-02")
	}
	if dt, ok := elem.Attr("datetime"); ok && dt != "" {
		return dt
	}
	return elem.Text()
}

// extractSummary tries the usual WordPress content classes before settling
// for the first paragraph. Non-empty summaries are cut to summaryLimit runes
// with an ellipsis appended.
func extractSummary(sel *goquery.Selection) string {
	elem := sel.Find(".entry-content").First()
	if elem.Length() == 0 {
		elem = sel.Find(".content").First()
	}
	if elem.Length() == 0 {
		elem = sel.Find("p").First()
	}
	if elem.Length() == 0 {
		return ""
	}

	text := collapseWhitespace(elem.Text())
	if text == "" {
		return ""
	}
	if runes := []rune(text); len(runes) > summaryLimit {
		text = string(runes[:summaryLimit])
	}
	return text + "..."
}

func (s *ArchiveScraper) absoluteURL(link string) string {
	if strings.HasPrefix(link, "http") {
		return link
	}
	return s.origin + link
}

func collapseWhitespace(text string) string {
	return strings.TrimSpace(whitespaceRe.ReplaceAllString(text, " "))
}
