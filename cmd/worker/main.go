package main

import (
	"context"
	"encoding/json"
	"log"
	"log/slog"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/parea-ai/wikichat-parea/db"
	"github.com/parea-ai/wikichat-parea/internal/model"
	"github.com/parea-ai/wikichat-parea/internal/repository"
	"github.com/parea-ai/wikichat-parea/internal/store"
	"github.com/parea-ai/wikichat-parea/pkg/llm"
	"github.com/parea-ai/wikichat-parea/pkg/pipeline"
	"github.com/parea-ai/wikichat-parea/pkg/wiki"
	"github.com/redis/go-redis/v9"
)

func main() {

	godotenv.Load()

	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, nil)))

	const maxRetries = 3
	const popTimeout = 30 * time.Second

	err := db.ConnectRedis()
	if err != nil {
		log.Fatalf("error connecting to Redis: %v", err)
	}
	defer db.CloseRedis()

	err = db.Connect()
	if err != nil {
		log.Fatalf("error connecting to DB: %v", err)
	}
	defer db.Close()

	vectorStore, err := store.NewWithConfig(store.VectorStoreConfig{
		ConnString: os.Getenv("DATABASE_URL"),
	})
	if err != nil {
		log.Fatalf("error connecting to vector store: %v", err)
	}
	defer vectorStore.Close()

	articleRepo := repository.NewArticleRepository(db.DB)
	recentRepo := repository.NewRecentRepository(db.Redis, db.RecentArticlesKey)
	openAIClient := llm.NewOpenAIClient(os.Getenv("OPENAI_API_KEY"))

	p := pipeline.New(
		wiki.NewScraper(),
		pipeline.NewChunker(),
		articleRepo,
		vectorStore,
		recentRepo,
		openAIClient,
	)

	ctx := context.Background()

	for {
		payload, err := db.PopFromQueue(db.IngestQueueKey, popTimeout)
		if err == redis.Nil {
			continue
		}
		if err != nil {
			slog.Error("error popping from Redis queue", "error", err)
			break
		}

		var meta model.ArticleMetadata
		if err := json.Unmarshal([]byte(payload), &meta); err != nil {
			slog.Error("invalid article metadata in queue", "payload", payload, "error", err)
			continue
		}

		errorCount, err := articleRepo.GetErrorCount(meta.URL)
		if err != nil {
			slog.Error("error getting error count", "error", err, "url", meta.URL)
			continue
		}

		if errorCount >= maxRetries {
			slog.Warn("article exceeded max retries, dead-lettering", "url", meta.URL, "error_count", errorCount)
			articleRepo.UpdateStatus(meta.URL, model.StatusFailed)
			db.PushToQueue(db.DeadLetterKey, payload)
			continue
		}

		if err := p.Process(ctx, meta); err != nil {
			slog.Error("error processing article", "error", err, "url", meta.URL)

			articleRepo.SaveError(meta.URL, err.Error(), "pipeline_error")

			db.PushToQueue(db.IngestQueueKey, payload)

			time.Sleep(5 * time.Second)
			continue
		}
	}
}
