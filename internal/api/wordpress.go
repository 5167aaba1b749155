package api

import (
	"encoding/json"
	"fmt"
	"html"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/microcosm-cc/bluemonday"

	"trackmon/internal/models"
)

const (
	requestTimeout = 30 * time.Second
	pageSize       = 100

	// limitedSignupTag is the opentrackers.org tag id for limited-signup
	// announcement posts.
	limitedSignupTag = 93

	wordPressUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36"
)

// wpPost mirrors the fields we read from a WordPress REST post object.
// Everything else in the payload is ignored.
type wpPost struct {
	ID    int64  `json:"id"`
	Date  string `json:"date"`
	Link  string `json:"link"`
	Title struct {
		Rendered string `json:"rendered"`
	} `json:"title"`
	Excerpt struct {
		Rendered string `json:"rendered"`
	} `json:"excerpt"`
	Embedded struct {
		// wp:term is a list of term lists, one per taxonomy; categories
		// come first but each term also names its taxonomy, which is
		// what we filter on.
		Terms [][]wpTerm `json:"wp:term"`
	} `json:"_embedded"`
}

type wpTerm struct {
	Name     string `json:"name"`
	Taxonomy string `json:"taxonomy"`
}

// WordPressClient fetches limited-signup announcements from a WordPress
// site's REST API.
type WordPressClient struct {
	baseURL    string
	httpClient *http.Client
	stripper   *bluemonday.Policy
	logger     *log.Logger
}

// NewWordPressClient creates a client against the given site base URL
// (scheme + host, e.g. "https://opentrackers.org").
func NewWordPressClient(baseURL string, logger *log.Logger) *WordPressClient {
	return &WordPressClient{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: requestTimeout},
		stripper:   bluemonday.StrictPolicy(),
		logger:     logger,
	}
}

// FetchPosts returns all limited-signup announcements from the WordPress
// API. It never fails the run: transport or payload errors degrade to an
// empty slice and are logged, and a malformed post only skips itself.
func (c *WordPressClient) FetchPosts() []models.TrackerRecord {
	posts, err := c.fetch()
	if err != nil {
		c.logger.Error("WordPress fetch failed", "err", err)
		return nil
	}

	records := make([]models.TrackerRecord, 0, len(posts))
	for _, post := range posts {
		record, err := c.parsePost(post)
		if err != nil {
			c.logger.Warn("Skipping malformed WordPress post", "id", post.ID, "err", err)
			continue
		}
		records = append(records, record)
	}
	return records
}

// Close releases the client's idle connections. Safe to call after a failed
// fetch as well.
func (c *WordPressClient) Close() {
	c.httpClient.CloseIdleConnections()
}

func (c *WordPressClient) fetch() ([]wpPost, error) {
	rawURL := fmt.Sprintf("%s/wp-json/wp/v2/posts?tags=%d&per_page=%d&_embed=true",
		c.baseURL, limitedSignupTag, pageSize)

	req, err := http.NewRequest(http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", wordPressUserAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("WordPress API returned status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	var posts []wpPost
	if err := json.Unmarshal(body, &posts); err != nil {
		return nil, fmt.Errorf("failed to parse JSON: %w", err)
	}
	return posts, nil
}

func (c *WordPressClient) parsePost(post wpPost) (models.TrackerRecord, error) {
	if post.Link == "" {
		return models.TrackerRecord{}, fmt.Errorf("post has no link")
	}

	openedAt, err := parseWordPressDate(post.Date)
	if err != nil {
		return models.TrackerRecord{}, err
	}

	name, status := parseTitle(post.Title.Rendered, fmt.Sprintf("post-%d", post.ID))

	// Strip markup first, then decode entities: bluemonday re-escapes text
	// content, so the order matters.
	description := strings.TrimSpace(html.UnescapeString(c.stripper.Sanitize(post.Excerpt.Rendered)))

	// Only the category taxonomy counts; the same embed carries post tags
	// and formats too.
	var categories []string
	if len(post.Embedded.Terms) > 0 {
		for _, term := range post.Embedded.Terms[0] {
			if term.Taxonomy == "category" {
				categories = append(categories, term.Name)
			}
		}
	}

	return models.TrackerRecord{
		Name:        name,
		OpenedAt:    openedAt,
		Description: description,
		Categories:  categories,
		URL:         post.Link,
		Status:      status,
	}, nil
}
