package retrieval

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractKeywords(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{
			name:  "drops stop words and short tokens",
			input: "show me some red sneakers",
			want:  []string{"red", "sneakers"},
		},
		{
			name:  "lowercases and strips punctuation",
			input: "Do you have Tote-Bags?",
			want:  []string{"tote", "bags"},
		},
		{
			name:  "nothing survives",
			input: "do you have it",
			want:  nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ExtractKeywords(tt.input))
		})
	}
}

func TestIsRefinementQuery(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  bool
	}{
		{"price follow-up", "how much is it", true},
		{"color follow-up", "what color is that", true},
		{"short pick", "the cheaper one", true},
		{"fresh search", "show me red sneakers", false},
		{"long question", "how much is the classic tote bag today", false},
		{"pronoun with product noun", "is that hoodie available", false},
		{"empty", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsRefinementQuery(tt.input))
		})
	}
}
