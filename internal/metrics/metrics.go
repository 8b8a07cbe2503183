package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	ArticlesProcessed = promauto.NewCounter(prometheus.CounterOpts{
		Name: "wikichat_articles_processed_total",
		Help: "Articles that completed the ingestion pipeline.",
	})

	ArticlesFailed = promauto.NewCounter(prometheus.CounterOpts{
		Name: "wikichat_articles_failed_total",
		Help: "Articles that failed the ingestion pipeline.",
	})

	ChunksCreated = promauto.NewCounter(prometheus.CounterOpts{
		Name: "wikichat_chunks_created_total",
		Help: "Chunks produced by the splitter.",
	})

	ChunksVectorized = promauto.NewCounter(prometheus.CounterOpts{
		Name: "wikichat_chunks_vectorized_total",
		Help: "Chunks sent through the embeddings API.",
	})

	ChunksInserted = promauto.NewCounter(prometheus.CounterOpts{
		Name: "wikichat_chunks_inserted_total",
		Help: "Embedding rows inserted into the vector store.",
	})

	ChunksDeleted = promauto.NewCounter(prometheus.CounterOpts{
		Name: "wikichat_chunks_deleted_total",
		Help: "Embedding rows deleted from the vector store.",
	})

	ChunkCollisions = promauto.NewCounter(prometheus.CounterOpts{
		Name: "wikichat_chunk_collisions_total",
		Help: "Inserts skipped because the chunk hash already existed.",
	})

	LLMLatency = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "wikichat_llm_request_seconds",
		Help:    "Latency of outbound LLM calls.",
		Buckets: prometheus.DefBuckets,
	}, []string{"operation", "status"})
)
