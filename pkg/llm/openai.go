package llm

import (
	"context"
	"fmt"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
	"github.com/parea-ai/wikichat-parea/internal/model"
)

const suggestionToolName = "suggested_questions"

// suggestionToolParameters is the function-calling schema the model fills
// in: a list of {category, question} pairs.
var suggestionToolParameters = openai.FunctionParameters{
	"type": "object",
	"properties": map[string]interface{}{
		"questions": map[string]interface{}{
			"type":        "array",
			"description": "Suggested questions about the recent articles",
			"items": map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"category": map[string]interface{}{
						"type":        "string",
						"description": "One of: " + suggestionCategories,
					},
					"question": map[string]interface{}{
						"type": "string",
					},
				},
				"required": []string{"category", "question"},
			},
		},
	},
	"required": []string{"questions"},
}

type OpenAIClient struct {
	client         *openai.Client
	model          openai.ChatModel
	embeddingModel openai.EmbeddingModel
	modelName      string
}

func NewOpenAIClient(apiKey string) *OpenAIClient {
	client := openai.NewClient(option.WithAPIKey(apiKey))
	return &OpenAIClient{
		client:         &client,
		model:          openai.ChatModelGPT4oMini,
		embeddingModel: openai.EmbeddingModelTextEmbedding3Small,
		modelName:      "gpt-4o-mini",
	}
}

// SuggestQuestions calls the chat completion API with the suggestion tool
// schema and returns the raw function-call arguments. When the model
// answers in plain text instead of calling the tool, the text is returned
// after the usual fenced-JSON cleanup.
func (c *OpenAIClient) SuggestQuestions(doc *model.RecentArticles) (*SuggestionResponse, error) {
	userPrompt := FormatRecentArticles(doc)

	resp, err := c.client.Chat.Completions.New(context.Background(), openai.ChatCompletionNewParams{
		Model: c.model,
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(suggestionSystemPrompt),
			openai.UserMessage(userPrompt),
		},
		Tools: []openai.ChatCompletionToolParam{
			{
				Function: openai.FunctionDefinitionParam{
					Name:        suggestionToolName,
					Description: openai.String("Report the suggested questions, one category per question."),
					Parameters:  suggestionToolParameters,
				},
			},
		},
	})

	if err != nil {
		return nil, fmt.Errorf("openai API error: %w", err)
	}

	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("no response from openai")
	}

	msg := resp.Choices[0].Message
	if len(msg.ToolCalls) > 0 {
		return &SuggestionResponse{
			Raw:       msg.ToolCalls[0].Function.Arguments,
			ModelUsed: c.modelName,
		}, nil
	}

	return &SuggestionResponse{
		Raw:       cleanJSONResponse(msg.Content),
		ModelUsed: c.modelName,
	}, nil
}

func (c *OpenAIClient) Answer(question string, chunks []ContextChunk) (*AnswerResult, error) {
	userPrompt := formatAnswerPrompt(question, chunks)

	resp, err := c.client.Chat.Completions.New(context.Background(), openai.ChatCompletionNewParams{
		Model: c.model,
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(answerSystemPrompt),
			openai.UserMessage(userPrompt),
		},
	})

	if err != nil {
		return nil, fmt.Errorf("openai API error: %w", err)
	}

	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("no response from openai")
	}

	return &AnswerResult{
		Answer:    resp.Choices[0].Message.Content,
		ModelUsed: c.modelName,
	}, nil
}

func (c *OpenAIClient) CreateEmbeddings(texts []string) ([][]float32, error) {
	resp, err := c.client.Embeddings.New(context.Background(), openai.EmbeddingNewParams{
		Model: c.embeddingModel,
		Input: openai.EmbeddingNewParamsInputUnion{OfArrayOfStrings: texts},
	})

	if err != nil {
		return nil, fmt.Errorf("openai embeddings error: %w", err)
	}

	if len(resp.Data) != len(texts) {
		return nil, fmt.Errorf("expected %d embeddings, got %d", len(texts), len(resp.Data))
	}

	vectors := make([][]float32, len(resp.Data))
	for _, d := range resp.Data {
		vec := make([]float32, len(d.Embedding))
		for i, v := range d.Embedding {
			vec[i] = float32(v)
		}
		vectors[d.Index] = vec
	}

	return vectors, nil
}
