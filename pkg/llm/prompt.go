package llm

import (
	"fmt"
	"strings"

	"github.com/parea-ai/wikichat-parea/internal/model"
)

// PromptVersion tags trace logs so prompt changes show up in Parea.
const PromptVersion = "v1"

const suggestionSystemPrompt = `You are a helpful assistant for a chat application that answers questions about Wikipedia articles.

You will receive a list of recently updated articles with sample passages. Suggest questions a curious reader could ask about them.

Rules:
1. Suggest 5 questions in total
2. Each question must be answerable from the listed articles alone
3. Questions are short, standalone and specific (no "this article" phrasing)
4. Assign each question one category: people, places, events, science, culture
5. Spread questions across different articles where possible`

const suggestionCategories = "people, places, events, science, culture"

const maxChunkChars = 300

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max] + "..."
}

// FormatRecentArticles renders the cached document into the user prompt.
// A nil or empty document produces a minimal prompt; the model is still
// called (the endpoint never fails on a missing document).
func FormatRecentArticles(doc *model.RecentArticles) string {
	if doc == nil || len(doc.Articles) == 0 {
		return "No recent articles are available. Suggest general questions about Wikipedia's current events coverage."
	}

	var sb strings.Builder
	sb.WriteString("Recently updated articles:\n\n")
	for i, a := range doc.Articles {
		sb.WriteString(fmt.Sprintf("[%d] Title: %s\n", i, a.Title))
		sb.WriteString(fmt.Sprintf("    URL: %s\n", a.URL))
		sb.WriteString(fmt.Sprintf("    Updated: %s\n", a.LastUpdated.Format("2006-01-02 15:04")))
		for _, chunk := range a.Chunks {
			sb.WriteString(fmt.Sprintf("    Passage: %s\n", truncate(chunk, maxChunkChars)))
		}
		sb.WriteString("\n")
	}
	return sb.String()
}

const answerSystemPrompt = `You are a helpful assistant that answers questions using passages from Wikipedia articles.

Rules:
1. Answer only from the provided passages
2. If the passages do not contain the answer, say so plainly
3. Keep answers to a few sentences
4. Never invent facts, dates or numbers`

func formatAnswerPrompt(question string, chunks []ContextChunk) string {
	var sb strings.Builder
	sb.WriteString("Passages:\n\n")
	for _, c := range chunks {
		sb.WriteString(fmt.Sprintf("Source: %s (%s)\n%s\n\n", c.Title, c.URL, c.Content))
	}
	sb.WriteString(fmt.Sprintf("Question: %s", question))
	return sb.String()
}
