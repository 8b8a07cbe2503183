package wiki

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/parea-ai/wikichat-parea/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const articleHTML = `<!DOCTYPE html>
<html>
<head><title>Aurora - Wikipedia</title></head>
<body>
<h1 id="firstHeading">Aurora</h1>
<div id="mw-content-text"><div class="mw-parser-output">
<table class="infobox"><tbody><tr><td>Type</td><td>Light display</td></tr></tbody></table>
<p>An aurora is a natural light display in Earth's sky.[1]</p>
<p>Auroras are mostly seen in high-latitude regions.[2][note 1]</p>
<p>   </p>
<div class="navbox"><p>Navigation chrome that must not leak in.</p></div>
<section><p>Solar wind disturbances cause most displays.</p></section>
</div></div>
</body>
</html>`

func TestParse(t *testing.T) {
	scraper := NewScraper()
	meta := model.ArticleMetadata{URL: "https://en.wikipedia.org/wiki/Aurora", Title: "Aurora"}

	article, err := scraper.Parse(strings.NewReader(articleHTML), meta)
	require.NoError(t, err)

	assert.Equal(t, "Aurora", article.Metadata.Title)
	assert.Contains(t, article.Content, "natural light display")
	assert.Contains(t, article.Content, "high-latitude regions")
	assert.Contains(t, article.Content, "Solar wind disturbances")

	// Citation markers are stripped, non-paragraph chrome skipped.
	assert.NotContains(t, article.Content, "[1]")
	assert.NotContains(t, article.Content, "[note 1]")
	assert.NotContains(t, article.Content, "Navigation chrome")
	assert.NotContains(t, article.Content, "Light display")
}

func TestParseFillsMissingTitle(t *testing.T) {
	scraper := NewScraper()
	meta := model.ArticleMetadata{URL: "https://en.wikipedia.org/wiki/Aurora"}

	article, err := scraper.Parse(strings.NewReader(articleHTML), meta)
	require.NoError(t, err)
	assert.Equal(t, "Aurora", article.Metadata.Title)
}

func TestParseNoContent(t *testing.T) {
	scraper := NewScraper()
	meta := model.ArticleMetadata{URL: "https://en.wikipedia.org/wiki/Empty"}

	_, err := scraper.Parse(strings.NewReader("<html><body><div id=\"mw-content-text\"><div class=\"mw-parser-output\"></div></div></body></html>"), meta)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no article content")
}

func TestScrape(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(articleHTML))
	}))
	defer server.Close()

	scraper := NewScraperWithConfig(ScraperConfig{RateLimit: 1000})
	meta := model.ArticleMetadata{URL: server.URL + "/wiki/Aurora", Title: "Aurora"}

	article, err := scraper.Scrape(meta)
	require.NoError(t, err)
	assert.Contains(t, article.Content, "natural light display")
}

func TestScrapeNotFound(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	scraper := NewScraperWithConfig(ScraperConfig{RateLimit: 1000})
	meta := model.ArticleMetadata{URL: server.URL + "/wiki/Missing"}

	_, err := scraper.Scrape(meta)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 404")
}

func TestCleanText(t *testing.T) {
	assert.Equal(t, "A sentence.", cleanText("  A   sentence.[3]  "))
	assert.Equal(t, "", cleanText("   \n  "))
	assert.Equal(t, "Keep [this longer bracket segment intact] here.", cleanText("Keep [this longer bracket segment intact] here."))
}
