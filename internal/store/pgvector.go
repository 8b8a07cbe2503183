package store

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/parea-ai/wikichat-parea/internal/model"
	"github.com/pgvector/pgvector-go"
)

const insertBatchSize = 20

type VectorStoreConfig struct {
	ConnString string
	TableName  string
	VectorDim  int
}

// VectorStore keeps one embedding row per chunk; the row id is the chunk's
// content hash, so re-inserting an existing chunk is a no-op.
type VectorStore struct {
	config VectorStoreConfig
	pool   *pgxpool.Pool
}

func NewWithConfig(config VectorStoreConfig) (*VectorStore, error) {
	if config.TableName == "" {
		config.TableName = "article_embedding"
	}
	if config.VectorDim == 0 {
		config.VectorDim = 1536
	}

	pool, err := pgxpool.New(context.Background(), config.ConnString)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	vs := &VectorStore{
		config: config,
		pool:   pool,
	}

	if err := vs.initialize(); err != nil {
		pool.Close()
		return nil, err
	}

	return vs, nil
}

func (vs *VectorStore) initialize() error {
	ctx := context.Background()

	_, err := vs.pool.Exec(ctx, "CREATE EXTENSION IF NOT EXISTS vector")
	if err != nil {
		return fmt.Errorf("failed to create vector extension: %w", err)
	}

	createTable := fmt.Sprintf(`
		CREATE TABLE IF NOT EXISTS %s (
			id TEXT PRIMARY KEY,
			url TEXT NOT NULL,
			title TEXT,
			content TEXT,
			chunk_index INTEGER,
			embedding vector(%d)
		)`, vs.config.TableName, vs.config.VectorDim)

	_, err = vs.pool.Exec(ctx, createTable)
	if err != nil {
		return fmt.Errorf("failed to create table: %w", err)
	}

	createIndex := fmt.Sprintf(`
		CREATE INDEX IF NOT EXISTS %s_embedding_idx
		ON %s
		USING ivfflat (embedding vector_cosine_ops)
		WITH (lists = 100)`,
		vs.config.TableName, vs.config.TableName)

	_, err = vs.pool.Exec(ctx, createIndex)
	if err != nil {
		return fmt.Errorf("failed to create index: %w", err)
	}

	return nil
}

// InsertChunks writes vectored chunks in batches. Rows whose hash already
// exists are skipped rather than treated as errors; the skipped count is
// reported so the caller can log the collisions.
func (vs *VectorStore) InsertChunks(article model.ArticleMetadata, chunks []model.VectoredChunk) (int, int, error) {
	ctx := context.Background()

	stmt := fmt.Sprintf(`
		INSERT INTO %s (id, url, title, content, chunk_index, embedding)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (id) DO NOTHING`,
		vs.config.TableName)

	inserted := 0
	for start := 0; start < len(chunks); start += insertBatchSize {
		end := start + insertBatchSize
		if end > len(chunks) {
			end = len(chunks)
		}

		tx, err := vs.pool.Begin(ctx)
		if err != nil {
			return inserted, 0, fmt.Errorf("failed to begin transaction: %w", err)
		}

		for _, chunk := range chunks[start:end] {
			tag, err := tx.Exec(ctx, stmt,
				chunk.Chunk.Metadata.Hash,
				article.URL,
				article.Title,
				chunk.Chunk.Content,
				chunk.Chunk.Metadata.Index,
				pgvector.NewVector(chunk.Embedding),
			)
			if err != nil {
				tx.Rollback(ctx)
				return inserted, 0, fmt.Errorf("failed to insert chunk: %w", err)
			}
			inserted += int(tag.RowsAffected())
		}

		if err := tx.Commit(ctx); err != nil {
			return inserted, 0, fmt.Errorf("failed to commit transaction: %w", err)
		}
	}

	return inserted, len(chunks) - inserted, nil
}

func (vs *VectorStore) DeleteChunks(hashes []string) error {
	ctx := context.Background()

	stmt := fmt.Sprintf("DELETE FROM %s WHERE id = ANY($1)", vs.config.TableName)
	_, err := vs.pool.Exec(ctx, stmt, hashes)
	if err != nil {
		return fmt.Errorf("failed to delete chunks: %w", err)
	}

	return nil
}

// SearchResult is one retrieved chunk with its source article.
type SearchResult struct {
	Hash    string
	URL     string
	Title   string
	Content string
}

func (vs *VectorStore) Query(embedding []float32, limit int) ([]SearchResult, error) {
	ctx := context.Background()

	if limit == 0 {
		limit = 5
	}

	query := fmt.Sprintf(`
		SELECT id, url, title, content
		FROM %s
		ORDER BY embedding <=> $1
		LIMIT $2`,
		vs.config.TableName)

	rows, err := vs.pool.Query(ctx, query, pgvector.NewVector(embedding), limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query chunks: %w", err)
	}
	defer rows.Close()

	var results []SearchResult
	for rows.Next() {
		var r SearchResult
		if err := rows.Scan(&r.Hash, &r.URL, &r.Title, &r.Content); err != nil {
			return nil, fmt.Errorf("failed to scan row: %w", err)
		}
		results = append(results, r)
	}

	return results, rows.Err()
}

func (vs *VectorStore) Close() {
	if vs.pool != nil {
		vs.pool.Close()
	}
}
