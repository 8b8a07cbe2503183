package repository

import (
	"database/sql"
	"encoding/json"

	"github.com/parea-ai/wikichat-parea/internal/model"
)

type ArticleRepository struct {
	db *sql.DB
}

func NewArticleRepository(db *sql.DB) *ArticleRepository {
	return &ArticleRepository{db: db}
}

func (r *ArticleRepository) GetMetadataByURL(url string) (*model.ChunkedArticleMetadata, error) {
	var m model.ChunkedArticleMetadata
	var chunksJSON []byte
	err := r.db.QueryRow(`
		SELECT url, title, revision_id, last_updated, chunks
		FROM article_metadata
		WHERE url = $1
	`, url).Scan(&m.Article.URL, &m.Article.Title, &m.Article.RevisionID, &m.Article.LastUpdated, &chunksJSON)

	if err == sql.ErrNoRows {
		return nil, nil
	}

	if err != nil {
		return nil, err
	}

	if err := json.Unmarshal(chunksJSON, &m.Chunks); err != nil {
		return nil, err
	}

	return &m, nil
}

func (r *ArticleRepository) UpsertMetadata(m *model.ChunkedArticleMetadata) error {
	chunks, err := json.Marshal(m.Chunks)
	if err != nil {
		return err
	}

	_, err = r.db.Exec(`
		INSERT INTO article_metadata(url, title, revision_id, last_updated, chunks, status)
		VALUES($1, $2, $3, $4, $5, $6)
		ON CONFLICT (url) DO UPDATE SET
			title = EXCLUDED.title,
			revision_id = EXCLUDED.revision_id,
			last_updated = EXCLUDED.last_updated,
			chunks = EXCLUDED.chunks,
			status = EXCLUDED.status
	`, m.Article.URL, m.Article.Title, m.Article.RevisionID, m.Article.LastUpdated, chunks, model.StatusCompleted)

	return err
}

func (r *ArticleRepository) UpdateStatus(url string, status string) error {
	_, err := r.db.Exec(`
		UPDATE article_metadata SET status = $1 WHERE url = $2
	`, status, url)
	return err
}

func (r *ArticleRepository) GetRecent(limit, offset int) ([]model.ArticleMetadata, error) {
	rows, err := r.db.Query(`
		SELECT url, title, revision_id, last_updated
		FROM article_metadata
		ORDER BY last_updated DESC
		LIMIT $1 OFFSET $2
	`, limit, offset)

	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var articles []model.ArticleMetadata
	for rows.Next() {
		var a model.ArticleMetadata
		err := rows.Scan(&a.URL, &a.Title, &a.RevisionID, &a.LastUpdated)
		if err != nil {
			return nil, err
		}
		articles = append(articles, a)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return articles, nil
}

func (r *ArticleRepository) GetTotal() (int, error) {
	var total int
	err := r.db.QueryRow(`
		SELECT COUNT(*) FROM article_metadata
	`).Scan(&total)
	return total, err
}

func (r *ArticleRepository) SaveError(url string, errMsg string, errType string) error {
	_, err := r.db.Exec(`
		INSERT INTO processing_error(url, error_message, error_type)
		VALUES($1, $2, $3)
	`, url, errMsg, errType)

	return err
}

func (r *ArticleRepository) GetErrorCount(url string) (int, error) {
	var count int
	err := r.db.QueryRow(`
		SELECT COUNT(*) FROM processing_error
		WHERE url = $1
	`, url).Scan(&count)

	return count, err
}
