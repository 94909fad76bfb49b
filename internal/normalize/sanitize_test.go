package normalize

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSanitizeQuestion(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want string
	}{
		{
			name: "clean question stays unchanged",
			raw:  "What is a goroutine?",
			want: "What is a goroutine?",
		},
		{
			name: "question mark is appended",
			raw:  "Explain event loops",
			want: "Explain event loops?",
		},
		{
			name: "trailing punctuation run collapses to one question mark",
			raw:  "What is Go?!...",
			want: "What is Go?",
		},
		{
			name: "trailing ellipsis is stripped",
			raw:  "What is dependency injection…",
			want: "What is dependency injection?",
		},
		{
			name: "whitespace runs collapse",
			raw:  "What  is\n\ta closure?",
			want: "What is a closure?",
		},
		{
			name: "leading ordinal marker is stripped",
			raw:  "1. What is a closure?",
			want: "What is a closure?",
		},
		{
			name: "leading parenthesis marker is stripped",
			raw:  "2) Explain how channels work",
			want: "Explain how channels work?",
		},
		{
			name: "leading bullet marker is stripped",
			raw:  "- What is REST?",
			want: "What is REST?",
		},
		{
			name: "number that is part of the question survives",
			raw:  "How does 2D graphics rendering work?",
			want: "How does 2D graphics rendering work?",
		},
		{
			name: "leading version number survives",
			raw:  "3.11 introduced what major CPython change",
			want: "3.11 introduced what major CPython change?",
		},
		{
			name: "leading dotted version survives",
			raw:  "2.7.18 was the last release of which Python line",
			want: "2.7.18 was the last release of which Python line?",
		},
		{
			name: "leading decimal survives",
			raw:  "1.5 second latency budgets force which tradeoffs",
			want: "1.5 second latency budgets force which tradeoffs?",
		},
		{
			name: "run of leading markers is stripped",
			raw:  "• • What is eventual consistency",
			want: "What is eventual consistency?",
		},
		{
			name: "fenced code block is removed",
			raw:  "What does this print ```go\nfmt.Println(1)\n``` in Go",
			want: "What does this print in Go?",
		},
		{
			name: "stray fence marker is removed",
			raw:  "```python What is a decorator",
			want: "What is a decorator?",
		},
		{
			name: "html tags are removed",
			raw:  "<b>What is REST</b>?",
			want: "What is REST?",
		},
		{
			name: "empty input",
			raw:  "",
			want: "",
		},
		{
			name: "whitespace only",
			raw:  "   \n\t",
			want: "",
		},
		{
			name: "marker only",
			raw:  "1.",
			want: "",
		},
		{
			name: "punctuation only",
			raw:  "...",
			want: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := sanitizeQuestion(tt.raw)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, got, sanitizeQuestion(got), "sanitizing twice must not change the result")
		})
	}
}

func TestStripFenceMarkers(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want string
	}{
		{
			name: "fence markers removed, code kept",
			raw:  "```go\nfunc main() {}\n```",
			want: "func main() {}",
		},
		{
			name: "plain code unchanged",
			raw:  "func main() {}",
			want: "func main() {}",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, stripFenceMarkers(tt.raw))
		})
	}
}
