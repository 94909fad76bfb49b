// Package flashcard defines the question records produced by a generation
// request and the deck that holds them between submissions.
package flashcard

// QuestionType classifies what an interview question probes for.
type QuestionType string

const (
	QuestionTypeTechnical  QuestionType = "technical"
	QuestionTypeBehavioral QuestionType = "behavioral"
)

// Difficulty is the seniority tier a question targets.
type Difficulty string

const (
	DifficultyJunior   Difficulty = "Junior"
	DifficultyMidLevel Difficulty = "Mid-Level"
	DifficultySenior   Difficulty = "Senior"
)

// QuestionRecord is a single normalized interview question. Question is the
// only required field: it is never empty and always ends in exactly one
// question mark. The remaining fields are optional guidance for the back of
// the card.
type QuestionRecord struct {
	Question            string       `json:"question"`
	Type                QuestionType `json:"type,omitempty"`
	Difficulty          Difficulty   `json:"difficulty,omitempty"`
	SuggestedAnswer     string       `json:"suggestedAnswer,omitempty"`
	KeyTips             []string     `json:"keyTips,omitempty"`
	Keywords            []string     `json:"keywords,omitempty"`
	CodeExample         string       `json:"codeExample,omitempty"`
	BehavioralStructure []string     `json:"behavioralStructure,omitempty"`
	ReferenceURL        string       `json:"referenceUrl,omitempty"`
}
