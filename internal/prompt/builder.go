// Package prompt renders the instruction text sent to the generation
// service. Building a prompt is a pure function of the role, the experience
// level, and the configured output format.
package prompt

import (
	"fmt"
	"strings"
)

// Format selects the output shape the prompt asks the model to produce.
type Format string

const (
	// FormatJSONObjects asks for a JSON array of fully structured question
	// objects.
	FormatJSONObjects Format = "json_objects"
	// FormatJSONStrings asks for a JSON array of plain question strings.
	FormatJSONStrings Format = "json_strings"
	// FormatNumberedList asks for a plain numbered list, one question per
	// line.
	FormatNumberedList Format = "numbered_list"
)

const (
	DefaultRole            = "software engineer"
	DefaultExperienceLevel = "mid-level"

	questionCount = 5
)

type Builder struct {
	format Format
}

func NewBuilder(format Format) Builder {
	if format == "" {
		format = FormatJSONObjects
	}
	return Builder{format: format}
}

// Build renders the deterministic instruction text for one submission.
// Inputs are trimmed; an empty role or experience level falls back to the
// package defaults.
func (builder Builder) Build(role, experienceLevel string) string {
	role = strings.TrimSpace(role)
	if role == "" {
		role = DefaultRole
	}
	experienceLevel = strings.TrimSpace(experienceLevel)
	if experienceLevel == "" {
		experienceLevel = DefaultExperienceLevel
	}

	var text strings.Builder
	text.WriteString("You are an experienced technical interviewer.\n")
	text.WriteString(fmt.Sprintf(
		"Generate exactly %d interview questions for a %s position at %s experience level.\n\n",
		questionCount, role, experienceLevel,
	))
	text.WriteString("Requirements:\n")
	text.WriteString(fmt.Sprintf("1. Produce exactly %d questions, each ending with a question mark.\n", questionCount))
	text.WriteString("2. Mix technical questions with at least one behavioral question.\n")
	text.WriteString(fmt.Sprintf("3. Match the difficulty to a %s candidate.\n", experienceLevel))

	switch builder.format {
	case FormatJSONStrings:
		text.WriteString(fmt.Sprintf("4. Return ONLY a JSON array of exactly %d question strings.\n", questionCount))
		text.WriteString("5. Do not include markdown, code fences, numbering, or any commentary outside the JSON array.\n")
	case FormatNumberedList:
		text.WriteString(fmt.Sprintf("4. Return ONLY a plain numbered list (1. to %d.), one question per line.\n", questionCount))
		text.WriteString("5. Do not include markdown, headings, or any commentary before or after the list.\n")
	default:
		text.WriteString(fmt.Sprintf("4. Return ONLY a JSON array of exactly %d objects with these fields:\n", questionCount))
		text.WriteString(`   "question", "type" ("technical" or "behavioral"), "difficulty" ("Junior", "Mid-Level" or "Senior"),` + "\n")
		text.WriteString(`   "suggestedAnswer", "keyTips" (array of strings), "keywords" (array of strings),` + "\n")
		text.WriteString(`   "codeExample" (only for technical questions, empty string otherwise),` + "\n")
		text.WriteString(`   "behavioralStructure" (only for behavioral questions, empty array otherwise),` + "\n")
		text.WriteString(`   "referenceUrl" (an absolute URL or empty string).` + "\n")
		text.WriteString("5. Do not include markdown, code fences, or any text outside the JSON array.\n")
	}

	return text.String()
}
