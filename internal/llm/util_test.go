package llm

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCleanJSONBlock(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "plain JSON untouched",
			input:    `{"company": "Acme"}`,
			expected: `{"company": "Acme"}`,
		},
		{
			name:     "json fence",
			input:    "```json\n{\"company\": \"Acme\"}\n```",
			expected: `{"company": "Acme"}`,
		},
		{
			name:     "bare fence",
			input:    "```\n{\"company\": \"Acme\"}\n```",
			expected: `{"company": "Acme"}`,
		},
		{
			name:     "fence with language identifier",
			input:    "```javascript\n{\"company\": \"Acme\"}\n```",
			expected: `{"company": "Acme"}`,
		},
		{
			name:     "surrounding whitespace",
			input:    "  \n```json\n{\"a\": 1}\n```  \n",
			expected: `{"a": 1}`,
		},
		{
			name:     "empty string",
			input:    "",
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, CleanJSONBlock(tt.input))
		})
	}
}
