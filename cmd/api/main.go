package main

import (
	"log"
	"log/slog"
	"os"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/parea-ai/wikichat-parea/db"
	"github.com/parea-ai/wikichat-parea/internal/handler"
	"github.com/parea-ai/wikichat-parea/internal/repository"
	"github.com/parea-ai/wikichat-parea/internal/store"
	"github.com/parea-ai/wikichat-parea/pkg/llm"
	"github.com/parea-ai/wikichat-parea/pkg/trace"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func main() {

	godotenv.Load()

	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, nil)))

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

	articleRepo := repository.NewArticleRepository(db.DB)
	recentRepo := repository.NewRecentRepository(db.Redis, db.RecentArticlesKey)

	openAIClient := llm.NewOpenAIClient(os.Getenv("OPENAI_API_KEY"))

	var suggester llm.SuggestionClient = openAIClient
	var answerer llm.AnswerClient = openAIClient
	if os.Getenv("LLM_PROVIDER") == "anthropic" {
		anthropicClient := llm.NewAnthropicClient(os.Getenv("ANTHROPIC_API_KEY"))
		suggester = anthropicClient
		answerer = anthropicClient
	}

	tracer := trace.NewTracer(os.Getenv("PAREA_API_KEY"))

	articleHandler := handler.NewArticleHandler(articleRepo)
	suggestionHandler := handler.NewSuggestionHandler(recentRepo, suggester, tracer)
	chatHandler := handler.NewChatHandler(openAIClient, vectorStore, answerer, tracer)

	r := gin.Default()

	allowedOrigins := []string{"http://localhost:3000"}

	if frontendURL := os.Getenv("FRONTEND_URL"); frontendURL != "" {
		allowedOrigins = append(allowedOrigins, frontendURL)
	}

	slog.Info("AllowOrigins URL:", "urls", allowedOrigins)

	r.Use(cors.New(cors.Config{
		AllowOrigins: allowedOrigins,
		AllowMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders: []string{"Origin", "Content-Type"},
	}))

	r.GET("/suggestions", suggestionHandler.GetSuggestions)
	r.POST("/chat", chatHandler.PostChat)
	r.GET("/articles", articleHandler.GetArticles)
	r.GET("/health", articleHandler.GetHealth)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	err = r.Run(":" + port)
	if err != nil {
		log.Fatalf("error starting server: %v", err)
	}
}
