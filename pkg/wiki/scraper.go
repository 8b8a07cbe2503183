package wiki

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"regexp"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/parea-ai/wikichat-parea/internal/model"
	"golang.org/x/time/rate"
)

// citationRefs matches footnote markers like [1] or [note 2] left in the
// rendered article text.
var citationRefs = regexp.MustCompile(`\[[^\]]{1,10}\]`)

// Scraper fetches a single article page and extracts its prose content.
type Scraper struct {
	httpClient *http.Client
	limiter    *rate.Limiter
}

type ScraperConfig struct {
	RateLimit float64
	Timeout   time.Duration
}

func NewScraperWithConfig(config ScraperConfig) *Scraper {
	if config.RateLimit == 0 {
		config.RateLimit = 2
	}
	if config.Timeout == 0 {
		config.Timeout = 30 * time.Second
	}

	return &Scraper{
		httpClient: &http.Client{Timeout: config.Timeout},
		limiter:    rate.NewLimiter(rate.Limit(config.RateLimit), 1),
	}
}

func NewScraper() *Scraper {
	return NewScraperWithConfig(ScraperConfig{})
}

// Scrape loads the article content from its URL and cleans it up.
func (s *Scraper) Scrape(meta model.ArticleMetadata) (*model.Article, error) {
	if err := s.limiter.Wait(context.Background()); err != nil {
		return nil, err
	}

	resp, err := s.httpClient.Get(meta.URL)
	if err != nil {
		return nil, fmt.Errorf("article fetch: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("article fetch: status %d for %s", resp.StatusCode, meta.URL)
	}

	return s.Parse(resp.Body, meta)
}

// Parse extracts the article prose from rendered page HTML.
func (s *Scraper) Parse(body io.Reader, meta model.ArticleMetadata) (*model.Article, error) {
	doc, err := goquery.NewDocumentFromReader(body)
	if err != nil {
		return nil, fmt.Errorf("article parse: %w", err)
	}

	if meta.Title == "" {
		meta.Title = strings.TrimSpace(doc.Find("#firstHeading").First().Text())
	}

	content := extractProse(doc)
	if content == "" {
		return nil, fmt.Errorf("no article content found for %s", meta.URL)
	}

	return &model.Article{
		Metadata: meta,
		Content:  content,
	}, nil
}

// extractProse collects the paragraph text of the article body, skipping
// infoboxes, tables and navigation chrome.
func extractProse(doc *goquery.Document) string {
	var paragraphs []string

	body := doc.Find("#mw-content-text .mw-parser-output")
	if body.Length() == 0 {
		body = doc.Find("body")
	}

	body.ChildrenFiltered("p").Each(func(_ int, sel *goquery.Selection) {
		text := cleanText(sel.Text())
		if text != "" {
			paragraphs = append(paragraphs, text)
		}
	})

	// Section paragraphs sit beside headings rather than nested under them.
	body.Find("section > p").Each(func(_ int, sel *goquery.Selection) {
		text := cleanText(sel.Text())
		if text != "" {
			paragraphs = append(paragraphs, text)
		}
	})

	return strings.Join(paragraphs, "\n\n")
}

func cleanText(text string) string {
	text = citationRefs.ReplaceAllString(text, "")
	text = strings.Join(strings.Fields(text), " ")
	return strings.TrimSpace(text)
}
