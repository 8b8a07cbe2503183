package main

import (
	"encoding/json"
	"log"
	"log/slog"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"github.com/parea-ai/wikichat-parea/db"
	"github.com/parea-ai/wikichat-parea/internal/model"
	"github.com/parea-ai/wikichat-parea/pkg/wiki"
)

func main() {

	godotenv.Load()

	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, nil)))

	err := db.ConnectRedis()
	if err != nil {
		log.Fatalf("error connecting to Redis: %v", err)
	}
	defer db.CloseRedis()

	limit := 50
	if v := os.Getenv("FETCH_LIMIT"); v != "" {
		parsed, err := strconv.Atoi(v)
		if err != nil {
			slog.Warn("invalid FETCH_LIMIT, using default", "value", v, "error", err)
		} else {
			limit = parsed
		}
	}

	client := wiki.NewClient()

	changes, err := client.RecentChanges(limit)
	if err != nil {
		log.Fatalf("error fetching recent changes: %v", err)
	}

	var queued, duplicated, errors int
	seen := make(map[string]bool)

	for _, change := range changes {
		// The feed repeats a page once per edit; queue each page once.
		if seen[change.URL] {
			duplicated++
			continue
		}
		seen[change.URL] = true

		meta := model.ArticleMetadata{
			URL:         change.URL,
			Title:       change.Title,
			RevisionID:  change.RevisionID,
			LastUpdated: change.Timestamp,
		}

		payload, err := json.Marshal(meta)
		if err != nil {
			slog.Error("error encoding article metadata", "url", change.URL, "error", err)
			errors++
			continue
		}

		if err := db.PushToQueue(db.IngestQueueKey, string(payload)); err != nil {
			slog.Error("error pushing to Redis queue", "url", change.URL, "error", err)
			errors++
			continue
		}

		queued++
	}

	slog.Info("fetch complete", "queued", queued, "duplicated", duplicated, "errors", errors)
}
