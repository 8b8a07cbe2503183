package repository

import (
	"context"
	"encoding/json"

	"github.com/parea-ai/wikichat-parea/internal/model"
	"github.com/redis/go-redis/v9"
)

// RecentRepository stores the rolling recent-articles document in Redis
// under a single fixed key.
type RecentRepository struct {
	client *redis.Client
	key    string
}

func NewRecentRepository(client *redis.Client, key string) *RecentRepository {
	return &RecentRepository{client: client, key: key}
}

// Get returns the cached document, or nil when the key does not exist.
func (r *RecentRepository) Get(ctx context.Context) (*model.RecentArticles, error) {
	data, err := r.client.Get(ctx, r.key).Bytes()
	if err == redis.Nil {
		return nil, nil
	}

	if err != nil {
		return nil, err
	}

	var doc model.RecentArticles
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, err
	}

	return &doc, nil
}

func (r *RecentRepository) Put(ctx context.Context, doc *model.RecentArticles) error {
	data, err := json.Marshal(doc)
	if err != nil {
		return err
	}

	return r.client.Set(ctx, r.key, data, 0).Err()
}
