package main

import (
	"bufio"
	"context"
	"flag"
	"log"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/parea-ai/wikichat-parea/db"
	"github.com/parea-ai/wikichat-parea/internal/model"
	"github.com/parea-ai/wikichat-parea/internal/repository"
	"github.com/parea-ai/wikichat-parea/internal/store"
	"github.com/parea-ai/wikichat-parea/pkg/llm"
	"github.com/parea-ai/wikichat-parea/pkg/pipeline"
	"github.com/parea-ai/wikichat-parea/pkg/wiki"
)

// The loader runs the base load: a file of article titles, one per line,
// pushed through the same pipeline the worker uses, capped by -max-items.
func main() {

	godotenv.Load()

	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, nil)))

	var titlesPath string
	var workers int
	var maxItems int
	flag.StringVar(&titlesPath, "titles", "articles.txt", "File with one article title per line")
	flag.IntVar(&workers, "workers", 5, "Number of pipeline workers")
	flag.IntVar(&maxItems, "max-items", 100, "Maximum number of articles to process")
	flag.Parse()

	err := db.Connect()
	if err != nil {
		log.Fatalf("error connecting to DB: %v", err)
	}
	defer db.Close()

	err = db.ConnectRedis()
	if err != nil {
		log.Fatalf("error connecting to Redis: %v", err)
	}
	defer db.CloseRedis()

	vectorStore, err := store.NewWithConfig(store.VectorStoreConfig{
		ConnString: os.Getenv("DATABASE_URL"),
	})
	if err != nil {
		log.Fatalf("error connecting to vector store: %v", err)
	}
	defer vectorStore.Close()

	file, err := os.Open(titlesPath)
	if err != nil {
		log.Fatalf("error opening titles file: %v", err)
	}
	defer file.Close()

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

	runner := pipeline.NewRunner(p, pipeline.RunnerConfig{
		Workers:  workers,
		MaxItems: maxItems,
	})
	runner.Start(context.Background())

	submitted := 0
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		title := strings.TrimSpace(scanner.Text())
		if title == "" || strings.HasPrefix(title, "#") {
			continue
		}

		meta := model.ArticleMetadata{
			URL:         wiki.ArticleURL(wiki.DefaultBaseURL, title),
			Title:       title,
			LastUpdated: time.Now(),
		}

		if !runner.Submit(meta) {
			slog.Info("reached max number of items to process, stopping", "max_items", maxItems)
			break
		}
		submitted++
	}

	if err := scanner.Err(); err != nil {
		slog.Error("error reading titles file", "error", err)
	}

	runner.Stop()

	slog.Info("base load complete", "submitted", submitted)
}
