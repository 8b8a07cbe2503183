package pipeline

import (
	"testing"

	"github.com/parea-ai/wikichat-parea/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func chunkedArticle(contents ...string) model.ChunkedArticle {
	chunks := make([]model.Chunk, 0, len(contents))
	for i, content := range contents {
		chunks = append(chunks, model.Chunk{
			Content: content,
			Metadata: model.ChunkMetadata{
				Index:  i,
				Length: len(content),
				Hash:   HashChunk(content),
			},
		})
	}

	return model.ChunkedArticle{
		Article: model.Article{
			Metadata: model.ArticleMetadata{URL: "https://en.wikipedia.org/wiki/Diff", Title: "Diff"},
		},
		Chunks: chunks,
	}
}

func TestDiffNoPrevious(t *testing.T) {
	chunked := chunkedArticle("first", "second")

	diff := Diff(chunked, nil)

	assert.Len(t, diff.New, 2)
	assert.Empty(t, diff.Unchanged)
	assert.Empty(t, diff.Deleted)
}

func TestDiffUnchanged(t *testing.T) {
	chunked := chunkedArticle("first", "second")
	prev := MetadataFrom(chunked)

	diff := Diff(chunked, prev)

	assert.Empty(t, diff.New)
	assert.Len(t, diff.Unchanged, 2)
	assert.Empty(t, diff.Deleted)
}

func TestDiffModifiedChunk(t *testing.T) {
	prev := MetadataFrom(chunkedArticle("first", "second"))
	chunked := chunkedArticle("first", "second edited")

	diff := Diff(chunked, prev)

	require.Len(t, diff.New, 1)
	assert.Equal(t, "second edited", diff.New[0].Content)
	require.Len(t, diff.Unchanged, 1)
	assert.Equal(t, "first", diff.Unchanged[0].Content)
	require.Len(t, diff.Deleted, 1)
	assert.Equal(t, HashChunk("second"), diff.Deleted[0].Hash)
}

func TestDiffIgnoresIndexShifts(t *testing.T) {
	// A chunk that moved position but kept its content is unchanged.
	prev := MetadataFrom(chunkedArticle("first", "second"))
	chunked := chunkedArticle("second", "first")

	diff := Diff(chunked, prev)

	assert.Empty(t, diff.New)
	assert.Len(t, diff.Unchanged, 2)
	assert.Empty(t, diff.Deleted)
}

func TestDiffDeletedArticleContent(t *testing.T) {
	prev := MetadataFrom(chunkedArticle("first", "second", "third"))
	chunked := chunkedArticle("first")

	diff := Diff(chunked, prev)

	assert.Empty(t, diff.New)
	assert.Len(t, diff.Unchanged, 1)
	assert.Len(t, diff.Deleted, 2)
}

func TestMetadataFromCollapsesDuplicateContent(t *testing.T) {
	// Repetitive articles produce chunks with identical hashes; the
	// hash-keyed map keeps one entry per distinct content, matching the
	// vector store's one-row-per-hash layout.
	chunked := chunkedArticle("repeated", "repeated", "repeated", "unique")

	meta := MetadataFrom(chunked)

	assert.Len(t, chunked.Chunks, 4)
	assert.Len(t, meta.Chunks, 2)

	diff := Diff(chunked, meta)
	assert.Empty(t, diff.New)
	assert.Empty(t, diff.Deleted)
	assert.Len(t, diff.Unchanged, 4)
}

func TestMetadataFrom(t *testing.T) {
	chunked := chunkedArticle("first", "second")

	meta := MetadataFrom(chunked)

	assert.Equal(t, chunked.Article.Metadata, meta.Article)
	require.Len(t, meta.Chunks, 2)

	entry, ok := meta.Chunks[HashChunk("second")]
	require.True(t, ok)
	assert.Equal(t, 1, entry.Index)
	assert.Equal(t, len("second"), entry.Length)
}
