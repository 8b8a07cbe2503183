package wiki

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/time/rate"
)

const DefaultBaseURL = "https://en.wikipedia.org"

// RecentChange is one article-namespace edit from the MediaWiki
// recent-changes feed.
type RecentChange struct {
	Title      string
	PageID     int64
	RevisionID int64
	Timestamp  time.Time
	URL        string
}

// Client polls the MediaWiki API for recent changes, rate limited so
// repeated polling stays well inside Wikipedia's etiquette limits.
type Client struct {
	baseURL    string
	httpClient *http.Client
	limiter    *rate.Limiter
}

type ClientConfig struct {
	BaseURL   string
	RateLimit float64 // requests per second
	Timeout   time.Duration
}

func NewClientWithConfig(config ClientConfig) *Client {
	if config.BaseURL == "" {
		config.BaseURL = DefaultBaseURL
	}
	if config.RateLimit == 0 {
		config.RateLimit = 1
	}
	if config.Timeout == 0 {
		config.Timeout = 30 * time.Second
	}

	return &Client{
		baseURL:    config.BaseURL,
		httpClient: &http.Client{Timeout: config.Timeout},
		limiter:    rate.NewLimiter(rate.Limit(config.RateLimit), 1),
	}
}

func NewClient() *Client {
	return NewClientWithConfig(ClientConfig{})
}

// RecentChanges returns up to limit recent article edits, newest first.
// Edits outside the article namespace are excluded by the query itself.
func (c *Client) RecentChanges(limit int) ([]RecentChange, error) {
	if err := c.limiter.Wait(context.Background()); err != nil {
		return nil, err
	}

	endpoint := fmt.Sprintf(
		"%s/w/api.php?action=query&list=recentchanges&rcnamespace=0&rctype=edit%%7Cnew&rcprop=title%%7Cids%%7Ctimestamp&rclimit=%d&format=json",
		c.baseURL, limit,
	)

	resp, err := c.httpClient.Get(endpoint)
	if err != nil {
		return nil, fmt.Errorf("recentchanges fetch: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("recentchanges fetch: status %d", resp.StatusCode)
	}

	var raw recentChangesResponse
	if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
		return nil, fmt.Errorf("recentchanges decode: %w", err)
	}

	changes := make([]RecentChange, 0, len(raw.Query.RecentChanges))
	for _, item := range raw.Query.RecentChanges {
		ts, err := time.Parse(time.RFC3339, item.Timestamp)
		if err != nil {
			ts = time.Time{}
		}

		changes = append(changes, RecentChange{
			Title:      item.Title,
			PageID:     item.PageID,
			RevisionID: item.RevID,
			Timestamp:  ts,
			URL:        ArticleURL(c.baseURL, item.Title),
		})
	}

	return changes, nil
}

// ArticleURL builds the canonical page URL for a title.
func ArticleURL(baseURL, title string) string {
	slug := strings.ReplaceAll(title, " ", "_")
	return fmt.Sprintf("%s/wiki/%s", baseURL, url.PathEscape(slug))
}

// TitleFromURL recovers the human-readable title from a page URL.
func TitleFromURL(articleURL string) string {
	parsed, err := url.Parse(articleURL)
	if err != nil {
		return articleURL
	}
	slug := strings.TrimPrefix(parsed.Path, "/wiki/")
	decoded, err := url.PathUnescape(slug)
	if err != nil {
		decoded = slug
	}
	return strings.ReplaceAll(decoded, "_", " ")
}

type recentChangesResponse struct {
	Query struct {
		RecentChanges []recentChangeItem `json:"recentchanges"`
	} `json:"query"`
}

type recentChangeItem struct {
	Title     string `json:"title"`
	PageID    int64  `json:"pageid"`
	RevID     int64  `json:"revid"`
	Timestamp string `json:"timestamp"`
}
