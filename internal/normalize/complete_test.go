package normalize

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"prepdeck/internal/flashcard"
)

func TestCompleteRecordQuestionType(t *testing.T) {
	tests := []struct {
		name     string
		question string
		supplied string
		want     flashcard.QuestionType
	}{
		{
			name:     "supplied technical type wins",
			question: "Tell me about your favorite language",
			supplied: "technical",
			want:     flashcard.QuestionTypeTechnical,
		},
		{
			name:     "supplied behavioral type wins",
			question: "What is a goroutine",
			supplied: "Behavioral",
			want:     flashcard.QuestionTypeBehavioral,
		},
		{
			name:     "describe a time",
			question: "Describe a time you disagreed with your manager",
			want:     flashcard.QuestionTypeBehavioral,
		},
		{
			name:     "tell me about",
			question: "Tell me about a project you are proud of",
			want:     flashcard.QuestionTypeBehavioral,
		},
		{
			name:     "how did you handle",
			question: "How did you handle an outage under pressure",
			want:     flashcard.QuestionTypeBehavioral,
		},
		{
			name:     "give an example",
			question: "Give an example of a process you improved",
			want:     flashcard.QuestionTypeBehavioral,
		},
		{
			name:     "walk me through",
			question: "Walk me through a difficult debugging session",
			want:     flashcard.QuestionTypeBehavioral,
		},
		{
			name:     "no phrase means technical",
			question: "What is the difference between a mutex and a channel",
			want:     flashcard.QuestionTypeTechnical,
		},
		{
			name:     "unknown supplied type falls back to phrase detection",
			question: "Tell me about a conflict you resolved",
			supplied: "trivia",
			want:     flashcard.QuestionTypeBehavioral,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			normalizer := NewNormalizer(ModeRich, DefaultMinSentenceLength)
			record, ok := normalizer.completeRecord(candidate{Question: tt.question, Type: tt.supplied}, "mid-level")
			require.True(t, ok)
			assert.Equal(t, tt.want, record.Type)
		})
	}
}

func TestCompleteRecordDifficulty(t *testing.T) {
	tests := []struct {
		name               string
		supplied           string
		fallbackExperience string
		want               flashcard.Difficulty
	}{
		{
			name:     "supplied junior",
			supplied: "junior",
			want:     flashcard.DifficultyJunior,
		},
		{
			name:     "supplied entry level maps to junior",
			supplied: "Entry Level",
			want:     flashcard.DifficultyJunior,
		},
		{
			name:     "supplied senior",
			supplied: "Senior",
			want:     flashcard.DifficultySenior,
		},
		{
			name:     "supplied lead maps to senior",
			supplied: "tech lead",
			want:     flashcard.DifficultySenior,
		},
		{
			name:               "supplied wins over the fallback",
			supplied:           "entry",
			fallbackExperience: "senior",
			want:               flashcard.DifficultyJunior,
		},
		{
			name:     "unrecognized supplied value maps to mid-level",
			supplied: "principal",
			want:     flashcard.DifficultyMidLevel,
		},
		{
			name:               "fallback experience fills the gap",
			fallbackExperience: "senior engineer",
			want:               flashcard.DifficultySenior,
		},
		{
			name: "nothing supplied means mid-level",
			want: flashcard.DifficultyMidLevel,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			normalizer := NewNormalizer(ModeRich, DefaultMinSentenceLength)
			record, ok := normalizer.completeRecord(candidate{
				Question:   "What is a goroutine",
				Difficulty: tt.supplied,
			}, tt.fallbackExperience)
			require.True(t, ok)
			assert.Equal(t, tt.want, record.Difficulty)
		})
	}
}

func TestCompleteRecordFields(t *testing.T) {
	normalizer := NewNormalizer(ModeRich, DefaultMinSentenceLength)

	t.Run("supplied fields survive", func(t *testing.T) {
		record, ok := normalizer.completeRecord(candidate{
			Question:        "What is a goroutine",
			Type:            "technical",
			SuggestedAnswer: "  A lightweight thread managed by the runtime.  ",
			KeyTips:         []string{" Mention the scheduler ", "", "Compare with OS threads"},
			Keywords:        []string{"Goroutine", "goroutine", "Scheduler"},
			CodeExample:     "```go\ngo func() {}()\n```",
			ReferenceURL:    "https://go.dev/tour/concurrency/1",
		}, "senior")
		require.True(t, ok)

		assert.Equal(t, "A lightweight thread managed by the runtime.", record.SuggestedAnswer)
		assert.Equal(t, []string{"Mention the scheduler", "Compare with OS threads"}, record.KeyTips)
		assert.Equal(t, []string{"Goroutine", "Scheduler"}, record.Keywords, "keywords are deduplicated case-insensitively")
		assert.Equal(t, "go func() {}()", record.CodeExample, "fence markers are stripped from code examples")
		assert.Equal(t, "https://go.dev/tour/concurrency/1", record.ReferenceURL)
	})

	t.Run("defaults fill technical gaps", func(t *testing.T) {
		record, ok := normalizer.completeRecord(candidate{Question: "What is a goroutine"}, "mid-level")
		require.True(t, ok)

		assert.Contains(t, record.SuggestedAnswer, "definition")
		assert.Len(t, record.KeyTips, 3)
		assert.Empty(t, record.CodeExample)
		assert.Empty(t, record.BehavioralStructure)
	})

	t.Run("defaults fill behavioral gaps with STAR structure", func(t *testing.T) {
		record, ok := normalizer.completeRecord(candidate{Question: "Tell me about a conflict you resolved"}, "mid-level")
		require.True(t, ok)

		require.Len(t, record.BehavioralStructure, 4)
		assert.Contains(t, record.BehavioralStructure[0], "Situation:")
		assert.Contains(t, record.BehavioralStructure[1], "Task:")
		assert.Contains(t, record.BehavioralStructure[2], "Action:")
		assert.Contains(t, record.BehavioralStructure[3], "Result:")
		assert.Len(t, record.KeyTips, 3)
	})

	t.Run("code example on a behavioral question is dropped", func(t *testing.T) {
		record, ok := normalizer.completeRecord(candidate{
			Question:    "Tell me about a conflict you resolved",
			CodeExample: "go func() {}()",
		}, "mid-level")
		require.True(t, ok)
		assert.Empty(t, record.CodeExample)
	})

	t.Run("behavioral structure on a technical question is dropped", func(t *testing.T) {
		record, ok := normalizer.completeRecord(candidate{
			Question:            "What is a goroutine",
			BehavioralStructure: []string{"Situation: anything"},
		}, "mid-level")
		require.True(t, ok)
		assert.Empty(t, record.BehavioralStructure)
	})

	t.Run("relative reference URL is dropped", func(t *testing.T) {
		record, ok := normalizer.completeRecord(candidate{
			Question:     "What is a goroutine",
			ReferenceURL: "go.dev/tour/concurrency/1",
		}, "mid-level")
		require.True(t, ok)
		assert.Empty(t, record.ReferenceURL)
	})

	t.Run("unsanitizable question drops the candidate", func(t *testing.T) {
		_, ok := normalizer.completeRecord(candidate{Question: "```"}, "mid-level")
		assert.False(t, ok)
	})
}

func TestDeriveKeywords(t *testing.T) {
	tests := []struct {
		name     string
		question string
		want     []string
	}{
		{
			name:     "first five distinct long tokens, capitalized",
			question: "What is the difference between a mutex and a channel?",
			want:     []string{"What", "The", "Difference", "Between", "Mutex"},
		},
		{
			name:     "short tokens are skipped and duplicates collapse",
			question: "Why use Go? why WHY go?",
			want:     []string{"Why", "Use"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, deriveKeywords(tt.question))
		})
	}
}
