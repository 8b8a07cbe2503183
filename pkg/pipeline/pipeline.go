package pipeline

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/parea-ai/wikichat-parea/internal/metrics"
	"github.com/parea-ai/wikichat-parea/internal/model"
)

// recentChunkSample is how many leading chunk texts each article
// contributes to the recent-articles document.
const recentChunkSample = 3

type Loader interface {
	Scrape(meta model.ArticleMetadata) (*model.Article, error)
}

type MetadataStore interface {
	GetMetadataByURL(url string) (*model.ChunkedArticleMetadata, error)
	UpsertMetadata(m *model.ChunkedArticleMetadata) error
}

type ChunkStore interface {
	InsertChunks(article model.ArticleMetadata, chunks []model.VectoredChunk) (inserted int, skipped int, err error)
	DeleteChunks(hashes []string) error
}

type RecentStore interface {
	Get(ctx context.Context) (*model.RecentArticles, error)
	Put(ctx context.Context, doc *model.RecentArticles) error
}

type Embedder interface {
	CreateEmbeddings(texts []string) ([][]float32, error)
}

// Pipeline runs the per-article processing sequence: load, chunk, diff,
// embed, store, update the recent-articles document.
type Pipeline struct {
	loader   Loader
	chunker  Chunker
	metadata MetadataStore
	chunks   ChunkStore
	recent   RecentStore
	embedder Embedder
}

func New(loader Loader, chunker Chunker, metadata MetadataStore, chunks ChunkStore, recent RecentStore, embedder Embedder) *Pipeline {
	return &Pipeline{
		loader:   loader,
		chunker:  chunker,
		metadata: metadata,
		chunks:   chunks,
		recent:   recent,
		embedder: embedder,
	}
}

// Process ingests one article end to end.
func (p *Pipeline) Process(ctx context.Context, meta model.ArticleMetadata) error {
	article, err := p.loader.Scrape(meta)
	if err != nil {
		metrics.ArticlesFailed.Inc()
		return fmt.Errorf("load %s: %w", meta.URL, err)
	}

	chunked := p.chunker.Chunk(*article)
	metrics.ChunksCreated.Add(float64(len(chunked.Chunks)))
	slog.Debug("chunked article", "url", meta.URL, "chunks", len(chunked.Chunks))

	prev, err := p.metadata.GetMetadataByURL(meta.URL)
	if err != nil {
		metrics.ArticlesFailed.Inc()
		return fmt.Errorf("load metadata %s: %w", meta.URL, err)
	}

	diff := Diff(chunked, prev)
	slog.Debug("chunk delta",
		"url", meta.URL,
		"new", len(diff.New),
		"deleted", len(diff.Deleted),
		"unchanged", len(diff.Unchanged),
	)

	if err := p.storeDiff(diff); err != nil {
		metrics.ArticlesFailed.Inc()
		return err
	}

	if err := p.metadata.UpsertMetadata(MetadataFrom(chunked)); err != nil {
		metrics.ArticlesFailed.Inc()
		return fmt.Errorf("store metadata %s: %w", meta.URL, err)
	}

	p.updateRecent(ctx, chunked)

	metrics.ArticlesProcessed.Inc()
	slog.Info("article processed",
		"url", meta.URL,
		"new_chunks", len(diff.New),
		"deleted_chunks", len(diff.Deleted),
	)
	return nil
}

func (p *Pipeline) storeDiff(diff model.ChunkDiff) error {
	meta := diff.Article.Article.Metadata

	if len(diff.New) > 0 {
		texts := make([]string, len(diff.New))
		for i, chunk := range diff.New {
			texts[i] = chunk.Content
		}

		embeddings, err := p.embedder.CreateEmbeddings(texts)
		if err != nil {
			return fmt.Errorf("embed %s: %w", meta.URL, err)
		}
		metrics.ChunksVectorized.Add(float64(len(embeddings)))

		vectored := make([]model.VectoredChunk, len(diff.New))
		for i, chunk := range diff.New {
			vectored[i] = model.VectoredChunk{Chunk: chunk, Embedding: embeddings[i]}
		}

		inserted, skipped, err := p.chunks.InsertChunks(meta, vectored)
		if err != nil {
			return fmt.Errorf("insert chunks %s: %w", meta.URL, err)
		}
		metrics.ChunksInserted.Add(float64(inserted))
		if skipped > 0 {
			metrics.ChunkCollisions.Add(float64(skipped))
			slog.Warn("existing chunks skipped on insert", "url", meta.URL, "skipped", skipped)
		}
	}

	if len(diff.Deleted) > 0 {
		hashes := make([]string, len(diff.Deleted))
		for i, cm := range diff.Deleted {
			hashes[i] = cm.Hash
		}

		if err := p.chunks.DeleteChunks(hashes); err != nil {
			return fmt.Errorf("delete chunks %s: %w", meta.URL, err)
		}
		metrics.ChunksDeleted.Add(float64(len(hashes)))
	}

	return nil
}

// updateRecent folds the article into the rolling recent-articles document.
// Failures here are logged and swallowed: the index is already up to date
// and the suggestions endpoint tolerates a stale document.
func (p *Pipeline) updateRecent(ctx context.Context, chunked model.ChunkedArticle) {
	doc, err := p.recent.Get(ctx)
	if err != nil {
		slog.Error("error reading recent articles document", "error", err)
		return
	}

	if doc == nil {
		doc = &model.RecentArticles{}
	}

	sample := make([]string, 0, recentChunkSample)
	for _, chunk := range chunked.Chunks {
		if len(sample) == recentChunkSample {
			break
		}
		sample = append(sample, chunk.Content)
	}

	doc.Push(model.RecentArticle{
		URL:         chunked.Article.Metadata.URL,
		Title:       chunked.Article.Metadata.Title,
		LastUpdated: chunked.Article.Metadata.LastUpdated,
		Chunks:      sample,
	})

	if err := p.recent.Put(ctx, doc); err != nil {
		slog.Error("error writing recent articles document", "error", err)
	}
}
