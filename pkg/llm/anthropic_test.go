package llm

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCleanJSONResponse(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "plain JSON",
			input:    `{"questions": []}`,
			expected: `{"questions": []}`,
		},
		{
			name:     "json fenced",
			input:    "```json\n{\"questions\": []}\n```",
			expected: `{"questions": []}`,
		},
		{
			name:     "plain fenced",
			input:    "```\n{\"questions\": []}\n```",
			expected: `{"questions": []}`,
		},
		{
			name:     "surrounding prose",
			input:    "Here are the questions:\n{\"questions\": []}\nLet me know if you need more.",
			expected: `{"questions": []}`,
		},
		{
			name:     "whitespace",
			input:    "  \n{\"questions\": []}\n  ",
			expected: `{"questions": []}`,
		},
		{
			name:     "no JSON at all",
			input:    "I cannot answer that.",
			expected: "I cannot answer that.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, cleanJSONResponse(tt.input))
		})
	}
}
