package pipeline

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/parea-ai/wikichat-parea/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type countingLoader struct {
	mu   sync.Mutex
	urls []string
}

func (c *countingLoader) Scrape(meta model.ArticleMetadata) (*model.Article, error) {
	c.mu.Lock()
	c.urls = append(c.urls, meta.URL)
	c.mu.Unlock()
	return &model.Article{Metadata: meta, Content: "Some article content."}, nil
}

func newTestRunner(loader Loader, config RunnerConfig) *Runner {
	p := New(loader, NewChunker(), &fakeMetadataStore{}, &fakeChunkStore{}, &fakeRecentStore{}, &fakePipelineEmbedder{})
	return NewRunner(p, config)
}

func TestRunnerProcessesAllSubmitted(t *testing.T) {
	loader := &countingLoader{}
	runner := newTestRunner(loader, RunnerConfig{Workers: 3})

	runner.Start(context.Background())
	for i := 0; i < 20; i++ {
		ok := runner.Submit(model.ArticleMetadata{URL: fmt.Sprintf("https://en.wikipedia.org/wiki/Article_%d", i)})
		require.True(t, ok)
	}
	runner.Stop()

	assert.Len(t, loader.urls, 20)
}

func TestRunnerMaxItems(t *testing.T) {
	loader := &countingLoader{}
	runner := newTestRunner(loader, RunnerConfig{Workers: 2, MaxItems: 5})

	runner.Start(context.Background())

	accepted := 0
	for i := 0; i < 10; i++ {
		if runner.Submit(model.ArticleMetadata{URL: fmt.Sprintf("https://en.wikipedia.org/wiki/Article_%d", i)}) {
			accepted++
		}
	}
	runner.Stop()

	assert.Equal(t, 5, accepted)
	assert.Len(t, loader.urls, 5)
}

func TestRunnerStopDrainsQueue(t *testing.T) {
	loader := &countingLoader{}
	runner := newTestRunner(loader, RunnerConfig{Workers: 1, QueueSize: 50})

	runner.Start(context.Background())
	for i := 0; i < 10; i++ {
		runner.Submit(model.ArticleMetadata{URL: fmt.Sprintf("https://en.wikipedia.org/wiki/Article_%d", i)})
	}
	runner.Stop()

	// Everything queued before Stop is processed before it returns.
	assert.Len(t, loader.urls, 10)
}
