package llm

import "github.com/parea-ai/wikichat-parea/internal/model"

// SuggestionResponse carries the raw model output for the suggestions
// endpoint. Raw is the function-call arguments JSON exactly as returned;
// it is passed through to the client without validation.
type SuggestionResponse struct {
	Raw       string
	ModelUsed string
}

// ContextChunk is a retrieved chunk handed to the chat model as context.
type ContextChunk struct {
	URL     string
	Title   string
	Content string
}

type AnswerResult struct {
	Answer    string
	ModelUsed string
}

type SuggestionClient interface {
	SuggestQuestions(doc *model.RecentArticles) (*SuggestionResponse, error)
}

type AnswerClient interface {
	Answer(question string, chunks []ContextChunk) (*AnswerResult, error)
}

type Embedder interface {
	CreateEmbeddings(texts []string) ([][]float32, error)
}
