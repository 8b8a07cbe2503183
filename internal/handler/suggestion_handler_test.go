package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/assert/v2"
	"github.com/parea-ai/wikichat-parea/internal/model"
	"github.com/parea-ai/wikichat-parea/pkg/llm"
	"github.com/parea-ai/wikichat-parea/pkg/trace"
)

type fakeRecentStore struct {
	doc *model.RecentArticles
	err error
}

func (f *fakeRecentStore) Get(ctx context.Context) (*model.RecentArticles, error) {
	return f.doc, f.err
}

type fakeSuggester struct {
	raw    string
	err    error
	gotDoc *model.RecentArticles
	called bool
}

func (f *fakeSuggester) SuggestQuestions(doc *model.RecentArticles) (*llm.SuggestionResponse, error) {
	f.called = true
	f.gotDoc = doc
	if f.err != nil {
		return nil, f.err
	}
	return &llm.SuggestionResponse{Raw: f.raw, ModelUsed: "test-model"}, nil
}

func newSuggestionRouter(recent RecentStore, suggester llm.SuggestionClient) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	h := NewSuggestionHandler(recent, suggester, trace.NewTracer(""))
	r.GET("/suggestions", h.GetSuggestions)
	return r
}

func TestGetSuggestions_ReturnsRawResponse(t *testing.T) {
	raw := `{"questions":[{"category":"science","question":"What is CRISPR?"}]}`
	store := &fakeRecentStore{
		doc: &model.RecentArticles{
			Articles: []model.RecentArticle{{URL: "https://en.wikipedia.org/wiki/CRISPR", Title: "CRISPR"}},
		},
	}
	suggester := &fakeSuggester{raw: raw}

	r := newSuggestionRouter(store, suggester)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/suggestions", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))
	assert.Equal(t, raw, w.Body.String())

	var parsed struct {
		Questions []model.SuggestedQuestion `json:"questions"`
	}
	json.Unmarshal(w.Body.Bytes(), &parsed)
	assert.Equal(t, 1, len(parsed.Questions))
	assert.Equal(t, "science", parsed.Questions[0].Category)
}

func TestGetSuggestions_LookupErrorSwallowed(t *testing.T) {
	store := &fakeRecentStore{err: errors.New("redis down")}
	suggester := &fakeSuggester{raw: `{"questions":[]}`}

	r := newSuggestionRouter(store, suggester)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/suggestions", nil)
	r.ServeHTTP(w, req)

	// The failed lookup is logged, the model still gets called.
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, true, suggester.called)
	assert.Equal(t, (*model.RecentArticles)(nil), suggester.gotDoc)
}

func TestGetSuggestions_MissingDocument(t *testing.T) {
	store := &fakeRecentStore{}
	suggester := &fakeSuggester{raw: `{"questions":[]}`}

	r := newSuggestionRouter(store, suggester)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/suggestions", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, true, suggester.called)
}

func TestGetSuggestions_LLMError(t *testing.T) {
	store := &fakeRecentStore{doc: &model.RecentArticles{}}
	suggester := &fakeSuggester{err: errors.New("rate limited")}

	r := newSuggestionRouter(store, suggester)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/suggestions", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
}
