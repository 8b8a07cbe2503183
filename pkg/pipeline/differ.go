package pipeline

import "github.com/parea-ai/wikichat-parea/internal/model"

// MetadataFrom reduces a chunked article to the metadata persisted per
// article: chunk metadata keyed by hash.
func MetadataFrom(chunked model.ChunkedArticle) *model.ChunkedArticleMetadata {
	chunks := make(map[string]model.ChunkMetadata, len(chunked.Chunks))
	for _, chunk := range chunked.Chunks {
		chunks[chunk.Metadata.Hash] = chunk.Metadata
	}

	return &model.ChunkedArticleMetadata{
		Article: chunked.Article.Metadata,
		Chunks:  chunks,
	}
}

// Diff works out which chunks are new or deleted against the previously
// stored metadata. Comparison is by chunk hash, never by index. With no
// previous metadata every chunk is new.
func Diff(chunked model.ChunkedArticle, prev *model.ChunkedArticleMetadata) model.ChunkDiff {
	if prev == nil {
		return model.ChunkDiff{
			Article: chunked,
			New:     chunked.Chunks,
		}
	}

	current := MetadataFrom(chunked)

	var diff model.ChunkDiff
	diff.Article = chunked

	for _, chunk := range chunked.Chunks {
		if _, ok := prev.Chunks[chunk.Metadata.Hash]; ok {
			diff.Unchanged = append(diff.Unchanged, chunk)
		} else {
			diff.New = append(diff.New, chunk)
		}
	}

	// Only metadata is known for deleted chunks; the content is gone.
	for hash, meta := range prev.Chunks {
		if _, ok := current.Chunks[hash]; !ok {
			diff.Deleted = append(diff.Deleted, meta)
		}
	}

	return diff
}
