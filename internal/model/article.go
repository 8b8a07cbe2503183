package model

import "time"

const (
	StatusPending    = "pending"
	StatusProcessing = "processing"
	StatusCompleted  = "completed"
	StatusFailed     = "failed"
)

type ArticleMetadata struct {
	URL         string
	Title       string
	RevisionID  int64
	LastUpdated time.Time
}

type Article struct {
	Metadata ArticleMetadata
	Content  string
}

type ChunkMetadata struct {
	Index  int    `json:"index"`
	Length int    `json:"length"`
	Hash   string `json:"hash"`
}

type Chunk struct {
	Content  string
	Metadata ChunkMetadata
}

type ChunkedArticle struct {
	Article Article
	Chunks  []Chunk
}

// ChunkedArticleMetadata is what gets persisted per article: the article
// metadata plus chunk metadata keyed by content hash. Chunk identity is
// the hash, never the index.
type ChunkedArticleMetadata struct {
	Article ArticleMetadata
	Chunks  map[string]ChunkMetadata
}

// ChunkDiff is the delta between a freshly chunked article and its stored
// metadata. A modified chunk shows up as one deleted plus one new chunk;
// there is no modified state.
type ChunkDiff struct {
	Article   ChunkedArticle
	New       []Chunk
	Deleted   []ChunkMetadata
	Unchanged []Chunk
}

type VectoredChunk struct {
	Chunk     Chunk
	Embedding []float32
}

type ProcessingError struct {
	ID           int64
	URL          string
	ErrorMessage string
	ErrorType    string
	CreatedAt    time.Time
}
