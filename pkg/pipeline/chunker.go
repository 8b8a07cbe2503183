package pipeline

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"

	"github.com/parea-ai/wikichat-parea/internal/model"
)

type ChunkerConfig struct {
	ChunkSize    int
	ChunkOverlap int
}

type Chunker struct {
	config ChunkerConfig
}

func NewChunkerWithConfig(config ChunkerConfig) Chunker {
	if config.ChunkSize == 0 {
		config.ChunkSize = 512
	}
	if config.ChunkOverlap == 0 {
		config.ChunkOverlap = 100
	}

	return Chunker{config: config}
}

func NewChunker() Chunker {
	return NewChunkerWithConfig(ChunkerConfig{})
}

// Chunk splits the article content and hashes every chunk. The hash is the
// chunk's identity for diffing and storage.
func (c *Chunker) Chunk(article model.Article) model.ChunkedArticle {
	pieces := c.Split(article.Content)

	chunks := make([]model.Chunk, 0, len(pieces))
	for i, piece := range pieces {
		chunks = append(chunks, model.Chunk{
			Content: piece,
			Metadata: model.ChunkMetadata{
				Index:  i,
				Length: len(piece),
				Hash:   HashChunk(piece),
			},
		})
	}

	return model.ChunkedArticle{
		Article: article,
		Chunks:  chunks,
	}
}

// Split cuts text into chunks of at most ChunkSize characters with
// ChunkOverlap characters carried over between neighbours. Cuts prefer
// paragraph and word boundaries over mid-word breaks.
func (c *Chunker) Split(text string) []string {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil
	}

	if len(text) <= c.config.ChunkSize {
		return []string{text}
	}

	var chunks []string
	start := 0
	for start < len(text) {
		end := start + c.config.ChunkSize
		if end >= len(text) {
			chunk := strings.TrimSpace(text[start:])
			if chunk != "" {
				chunks = append(chunks, chunk)
			}
			break
		}

		cut := breakpoint(text, start, end)
		chunk := strings.TrimSpace(text[start:cut])
		if chunk != "" {
			chunks = append(chunks, chunk)
		}

		next := cut - c.config.ChunkOverlap
		if next <= start {
			next = cut
		}
		start = next
	}

	return chunks
}

// breakpoint finds the best cut position at or before end: the last
// paragraph break, then the last newline, then the last space, falling back
// to the hard limit.
func breakpoint(text string, start, end int) int {
	window := text[start:end]

	for _, sep := range []string{"\n\n", "\n", " "} {
		if idx := strings.LastIndex(window, sep); idx > 0 {
			return start + idx + len(sep)
		}
	}

	return end
}

func HashChunk(content string) string {
	sum := sha256.Sum256([]byte(content))
	return hex.EncodeToString(sum[:])
}
