package handler

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/parea-ai/wikichat-parea/internal/model"
	"github.com/parea-ai/wikichat-parea/pkg/llm"
	"github.com/parea-ai/wikichat-parea/pkg/trace"
)

type RecentStore interface {
	Get(ctx context.Context) (*model.RecentArticles, error)
}

type SuggestionHandler struct {
	recent RecentStore
	llm    llm.SuggestionClient
	tracer *trace.Tracer
}

func NewSuggestionHandler(recent RecentStore, client llm.SuggestionClient, tracer *trace.Tracer) *SuggestionHandler {
	return &SuggestionHandler{recent: recent, llm: client, tracer: tracer}
}

// GetSuggestions reads the cached recent-articles document, prompts the
// model with it and returns the raw function-call response. A failed or
// missing document lookup is logged and swallowed: the model is prompted
// with whatever was found.
func (h *SuggestionHandler) GetSuggestions(c *gin.Context) {
	doc, err := h.recent.Get(c.Request.Context())
	if err != nil {
		slog.Error("error fetching recent articles document", "error", err)
		doc = nil
	}

	articleCount := 0
	if doc != nil {
		articleCount = len(doc.Articles)
	}

	var resp *llm.SuggestionResponse
	err = h.tracer.Observe("suggested_questions", map[string]string{
		"article_count":  strconv.Itoa(articleCount),
		"prompt_version": llm.PromptVersion,
	}, func() error {
		var callErr error
		resp, callErr = h.llm.SuggestQuestions(doc)
		return callErr
	})

	if err != nil {
		slog.Error("error generating suggestions", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "LLM error"})
		return
	}

	// The model response is passed through as-is.
	c.Data(http.StatusOK, "application/json", []byte(resp.Raw))
}
