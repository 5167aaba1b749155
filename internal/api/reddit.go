package api

import (
	"encoding/json"
	"fmt"
	"html"
	"io"
	"net/http"
	"strings"

	"github.com/charmbracelet/log"

	"trackmon/internal/models"
)

const redditUserAgent = "Mozilla/5.0 (compatible; TrackerMonitorBot/1.0; +https://example.com/bot)"

type redditListing struct {
	Data struct {
		Children []struct {
			Data redditPost `json:"data"`
		} `json:"children"`
	} `json:"data"`
}

type redditPost struct {
	ID         string  `json:"id"`
	Title      string  `json:"title"`
	Selftext   string  `json:"selftext"`
	CreatedUTC float64 `json:"created_utc"`
	URL        string  `json:"url"`
}

// RedditClient fetches open-signup announcements from a subreddit's public
// JSON listing.
type RedditClient struct {
	subreddit  string
	baseURL    string
	httpClient *http.Client
	logger     *log.Logger
}

func NewRedditClient(subreddit string, logger *log.Logger) *RedditClient {
	return &RedditClient{
		subreddit:  subreddit,
		baseURL:    "https://www.reddit.com/r/" + subreddit,
		httpClient: &http.Client{Timeout: requestTimeout},
		logger:     logger,
	}
}

// FetchPosts returns the subreddit's current listing as tracker records.
// Same contract as the WordPress client: failures degrade to an empty slice
// and are logged, never propagated.
func (c *RedditClient) FetchPosts() []models.TrackerRecord {
	posts, err := c.fetch()
	if err != nil {
		c.logger.Error("Reddit fetch failed", "subreddit", c.subreddit, "err", err)
		return nil
	}

	records := make([]models.TrackerRecord, 0, len(posts))
	for _, post := range posts {
		records = append(records, c.parsePost(post))
	}
	return records
}

// Close releases the client's idle connections.
func (c *RedditClient) Close() {
	c.httpClient.CloseIdleConnections()
}

func (c *RedditClient) fetch() ([]redditPost, error) {
	rawURL := fmt.Sprintf("%s.json?limit=%d", c.baseURL, pageSize)

	req, err := http.NewRequest(http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", redditUserAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("Reddit API returned status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	var listing redditListing
	if err := json.Unmarshal(body, &listing); err != nil {
		return nil, fmt.Errorf("failed to parse JSON: %w", err)
	}

	posts := make([]redditPost, 0, len(listing.Data.Children))
	for _, child := range listing.Data.Children {
		posts = append(posts, child.Data)
	}
	return posts, nil
}

// parsePost cannot fail: every field has a defaulted fallback, matching the
// looser shape of Reddit posts (no taxonomy, optional url/created_utc).
func (c *RedditClient) parsePost(post redditPost) models.TrackerRecord {
	fallback := post.ID
	if fallback == "" {
		fallback = "No Title"
	}
	name, status := parseTitle(post.Title, fallback)

	url := post.URL
	if url == "" {
		url = c.baseURL
	}

	return models.TrackerRecord{
		Name:        name,
		OpenedAt:    epochToUTC(post.CreatedUTC),
		Description: strings.TrimSpace(html.UnescapeString(post.Selftext)),
		Categories:  nil, // Reddit has no taxonomy
		URL:         url,
		Status:      status,
	}
}
