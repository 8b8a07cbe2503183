package handler

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/parea-ai/wikichat-parea/internal/store"
	"github.com/parea-ai/wikichat-parea/pkg/llm"
	"github.com/parea-ai/wikichat-parea/pkg/trace"
)

const searchLimit = 5

type ChunkSearcher interface {
	Query(embedding []float32, limit int) ([]store.SearchResult, error)
}

type ChatHandler struct {
	embedder llm.Embedder
	search   ChunkSearcher
	llm      llm.AnswerClient
	tracer   *trace.Tracer
}

func NewChatHandler(embedder llm.Embedder, search ChunkSearcher, client llm.AnswerClient, tracer *trace.Tracer) *ChatHandler {
	return &ChatHandler{embedder: embedder, search: search, llm: client, tracer: tracer}
}

func (h *ChatHandler) PostChat(c *gin.Context) {
	var req ChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	question := strings.TrimSpace(req.Question)
	if question == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Question is required"})
		return
	}

	embeddings, err := h.embedder.CreateEmbeddings([]string{question})
	if err != nil {
		slog.Error("error embedding question", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Embedding error"})
		return
	}

	results, err := h.search.Query(embeddings[0], searchLimit)
	if err != nil {
		slog.Error("error searching chunks", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Search error"})
		return
	}

	chunks := make([]llm.ContextChunk, len(results))
	for i, r := range results {
		chunks[i] = llm.ContextChunk{
			URL:     r.URL,
			Title:   r.Title,
			Content: r.Content,
		}
	}

	var answer *llm.AnswerResult
	err = h.tracer.Observe("chat_answer", map[string]string{
		"question": truncateMeta(question),
	}, func() error {
		var callErr error
		answer, callErr = h.llm.Answer(question, chunks)
		return callErr
	})

	if err != nil {
		slog.Error("error generating answer", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "LLM error"})
		return
	}

	var sources []string
	seen := make(map[string]bool)
	for _, r := range results {
		if !seen[r.URL] {
			sources = append(sources, r.URL)
			seen[r.URL] = true
		}
	}

	c.JSON(http.StatusOK, ChatResponse{
		Answer:    answer.Answer,
		Sources:   sources,
		ModelUsed: answer.ModelUsed,
	})
}

func truncateMeta(s string) string {
	const max = 200
	if len(s) <= max {
		return s
	}
	return s[:max]
}
