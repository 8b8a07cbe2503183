package llm

import (
	"context"
	"fmt"
	"strings"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
	"github.com/parea-ai/wikichat-parea/internal/model"
)

const anthropicSuggestionSuffix = `

Output as JSON only, no other text:
{
  "questions": [
    {"category": "one of: ` + suggestionCategories + `", "question": "the suggested question"}
  ]
}`

type AnthropicClient struct {
	client    *anthropic.Client
	model     anthropic.Model
	modelName string
}

func NewAnthropicClient(apiKey string) *AnthropicClient {
	client := anthropic.NewClient(option.WithAPIKey(apiKey))
	return &AnthropicClient{
		client:    &client,
		model:     anthropic.ModelClaudeHaiku4_5,
		modelName: "claude-4.5-haiku",
	}
}

// SuggestQuestions asks for the same {category, question} list shape as the
// OpenAI tool schema, but via JSON-in-text prompting.
func (c *AnthropicClient) SuggestQuestions(doc *model.RecentArticles) (*SuggestionResponse, error) {
	userPrompt := FormatRecentArticles(doc)

	resp, err := c.client.Messages.New(context.Background(), anthropic.MessageNewParams{
		Model:     c.model,
		MaxTokens: 1024,
		System: []anthropic.TextBlockParam{
			{Text: suggestionSystemPrompt + anthropicSuggestionSuffix},
		},
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(userPrompt)),
		},
	})

	if err != nil {
		return nil, fmt.Errorf("anthropic API error: %w", err)
	}

	if len(resp.Content) == 0 {
		return nil, fmt.Errorf("no response from anthropic")
	}

	return &SuggestionResponse{
		Raw:       cleanJSONResponse(resp.Content[0].Text),
		ModelUsed: c.modelName,
	}, nil
}

func (c *AnthropicClient) Answer(question string, chunks []ContextChunk) (*AnswerResult, error) {
	userPrompt := formatAnswerPrompt(question, chunks)

	resp, err := c.client.Messages.New(context.Background(), anthropic.MessageNewParams{
		Model:     c.model,
		MaxTokens: 1024,
		System: []anthropic.TextBlockParam{
			{Text: answerSystemPrompt},
		},
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(userPrompt)),
		},
	})

	if err != nil {
		return nil, fmt.Errorf("anthropic API error: %w", err)
	}

	if len(resp.Content) == 0 {
		return nil, fmt.Errorf("no response from anthropic")
	}

	return &AnswerResult{
		Answer:    resp.Content[0].Text,
		ModelUsed: c.modelName,
	}, nil
}

func cleanJSONResponse(content string) string {
	content = strings.TrimSpace(content)
	content = strings.TrimPrefix(content, "```json")
	content = strings.TrimPrefix(content, "```")
	content = strings.TrimSuffix(content, "```")
	content = strings.TrimSpace(content)

	// Some model responses include extra prose around JSON.
	start := strings.Index(content, "{")
	end := strings.LastIndex(content, "}")
	if start >= 0 && end > start {
		content = content[start : end+1]
	}
	return content
}
