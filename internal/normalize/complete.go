package normalize

import (
	"net/url"
	"strings"
	"unicode"
	"unicode/utf8"

	"prepdeck/internal/flashcard"
)

// candidate is one raw parsed question before field completion. Only the
// structured-JSON stage can populate anything beyond Question.
type candidate struct {
	Question            string   `json:"question"`
	Type                string   `json:"type"`
	Difficulty          string   `json:"difficulty"`
	SuggestedAnswer     string   `json:"suggestedAnswer"`
	KeyTips             []string `json:"keyTips"`
	Keywords            []string `json:"keywords"`
	CodeExample         string   `json:"codeExample"`
	BehavioralStructure []string `json:"behavioralStructure"`
	ReferenceURL        string   `json:"referenceUrl"`
}

// behavioralPhrases marks a question as behavioral when any phrase appears
// in it.
var behavioralPhrases = []string{
	"describe a time",
	"tell me about",
	"how did you handle",
	"give an example",
	"walk me through",
}

const (
	maxKeywords      = 5
	minKeywordLength = 3
)

// completeRecord turns a raw candidate into a full question record. The
// question text goes through sanitization; a candidate whose question
// sanitizes to nothing is dropped. In rich mode every optional field is
// resolved, either from the candidate or from a derived default; a code
// example stays source-supplied and technical-only, and a reference URL is
// kept only when it parses as an absolute URL.
func (normalizer *Normalizer) completeRecord(c candidate, fallbackExperience string) (flashcard.QuestionRecord, bool) {
	question := sanitizeQuestion(c.Question)
	if question == "" {
		return flashcard.QuestionRecord{}, false
	}

	record := flashcard.QuestionRecord{Question: question}
	if normalizer.mode == ModeMinimal {
		return record, true
	}

	record.Type = questionType(c.Type, question)
	record.Difficulty = difficulty(c.Difficulty, fallbackExperience)

	record.SuggestedAnswer = strings.TrimSpace(c.SuggestedAnswer)
	if record.SuggestedAnswer == "" {
		record.SuggestedAnswer = defaultSuggestedAnswer(record.Type)
	}
	record.KeyTips = cleanList(c.KeyTips)
	if len(record.KeyTips) == 0 {
		record.KeyTips = defaultKeyTips(record.Type)
	}
	record.Keywords = dedupeKeywords(c.Keywords)
	if len(record.Keywords) == 0 {
		record.Keywords = deriveKeywords(question)
	}

	if record.Type == flashcard.QuestionTypeTechnical {
		if code := strings.TrimSpace(c.CodeExample); code != "" {
			record.CodeExample = stripFenceMarkers(code)
		}
	}
	if record.Type == flashcard.QuestionTypeBehavioral {
		record.BehavioralStructure = cleanList(c.BehavioralStructure)
		if len(record.BehavioralStructure) == 0 {
			record.BehavioralStructure = defaultBehavioralStructure()
		}
	}
	if reference := strings.TrimSpace(c.ReferenceURL); isAbsoluteURL(reference) {
		record.ReferenceURL = reference
	}
	return record, true
}

func questionType(supplied, question string) flashcard.QuestionType {
	switch strings.ToLower(strings.TrimSpace(supplied)) {
	case string(flashcard.QuestionTypeTechnical):
		return flashcard.QuestionTypeTechnical
	case string(flashcard.QuestionTypeBehavioral):
		return flashcard.QuestionTypeBehavioral
	}

	lower := strings.ToLower(question)
	for _, phrase := range behavioralPhrases {
		if strings.Contains(lower, phrase) {
			return flashcard.QuestionTypeBehavioral
		}
	}
	return flashcard.QuestionTypeTechnical
}

func difficulty(supplied, fallbackExperience string) flashcard.Difficulty {
	for _, source := range []string{supplied, fallbackExperience} {
		source = strings.ToLower(strings.TrimSpace(source))
		if source == "" {
			continue
		}
		switch {
		case strings.Contains(source, "junior") || strings.Contains(source, "entry"):
			return flashcard.DifficultyJunior
		case strings.Contains(source, "senior") || strings.Contains(source, "lead"):
			return flashcard.DifficultySenior
		}
		return flashcard.DifficultyMidLevel
	}
	return flashcard.DifficultyMidLevel
}

// deriveKeywords picks the first distinct tokens longer than two characters
// from the question text, capitalized, deduplicated case-insensitively.
func deriveKeywords(question string) []string {
	tokens := strings.FieldsFunc(question, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})

	seen := make(map[string]struct{}, maxKeywords)
	keywords := make([]string, 0, maxKeywords)
	for _, token := range tokens {
		if utf8.RuneCountInString(token) < minKeywordLength {
			continue
		}
		key := strings.ToLower(token)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		keywords = append(keywords, capitalize(token))
		if len(keywords) == maxKeywords {
			break
		}
	}
	return keywords
}

func dedupeKeywords(supplied []string) []string {
	seen := make(map[string]struct{}, len(supplied))
	var keywords []string
	for _, keyword := range supplied {
		keyword = strings.TrimSpace(keyword)
		if keyword == "" {
			continue
		}
		key := strings.ToLower(keyword)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		keywords = append(keywords, keyword)
		if len(keywords) == maxKeywords {
			break
		}
	}
	return keywords
}

func cleanList(items []string) []string {
	var cleaned []string
	for _, item := range items {
		item = strings.TrimSpace(item)
		if item == "" {
			continue
		}
		cleaned = append(cleaned, item)
	}
	return cleaned
}

func capitalize(token string) string {
	first, size := utf8.DecodeRuneInString(token)
	return string(unicode.ToUpper(first)) + token[size:]
}

func defaultSuggestedAnswer(questionType flashcard.QuestionType) string {
	if questionType == flashcard.QuestionTypeBehavioral {
		return "Answer with a concrete situation from your own experience: set the scene briefly, explain what you were responsible for, describe the actions you took, and finish with the measurable outcome."
	}
	return "Start with a concise definition, explain how it works in practice, and mention one trade-off or common pitfall you have run into."
}

func defaultKeyTips(questionType flashcard.QuestionType) []string {
	if questionType == flashcard.QuestionTypeBehavioral {
		return []string{
			"Pick one specific situation rather than speaking in generalities",
			"Keep the focus on your own contribution, not the team's",
			"End with the result and what you learned",
		}
	}
	return []string{
		"Define the concept before diving into details",
		"Use a small concrete example to back up the explanation",
		"Mention trade-offs to show depth of understanding",
	}
}

func defaultBehavioralStructure() []string {
	return []string{
		"Situation: set the scene and give the necessary context",
		"Task: describe what you were responsible for",
		"Action: explain the steps you took",
		"Result: share the outcome and what you learned",
	}
}

func isAbsoluteURL(reference string) bool {
	if reference == "" {
		return false
	}
	parsed, err := url.Parse(reference)
	return err == nil && parsed.IsAbs() && parsed.Host != ""
}
