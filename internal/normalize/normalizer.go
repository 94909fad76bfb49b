// Package normalize converts the raw text returned by the generation
// service into a bounded, well-formed list of question records. Parsing
// strategies are layered: structured JSON first, then numbered or bulleted
// lists, then sentence splitting, then line splitting. The first stage that
// yields records wins.
package normalize

import (
	"encoding/json"
	"errors"
	"log/slog"
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"prepdeck/internal/flashcard"
)

// ErrEmptyResult reports that no fallback stage could extract a single
// usable question from the response text.
var ErrEmptyResult = errors.New("no questions could be extracted from the response text")

// Mode selects how much of each record the normalizer fills in.
type Mode string

const (
	// ModeMinimal emits bare question-only records.
	ModeMinimal Mode = "minimal"
	// ModeRich resolves every optional field, either from the source or
	// from a derived default.
	ModeRich Mode = "rich"
)

const (
	// maxRecords caps the records returned from any single submission.
	maxRecords = 5

	// DefaultMinSentenceLength filters stray fragments out of the
	// sentence-split fallback stage.
	DefaultMinSentenceLength = 20
)

var (
	listMarkerPattern      = regexp.MustCompile(`(?m)(?:^|\s)(?:\d{1,2}[.)]|[-*•])\s+`)
	lineStartMarkerPattern = regexp.MustCompile(`(?m)^\s*(?:\d{1,2}[.)]|[-*•])\s+`)
	sentenceEndPattern     = regexp.MustCompile(`[.!?]["')\]]?\s+`)
)

type Normalizer struct {
	mode              Mode
	minSentenceLength int
}

func NewNormalizer(mode Mode, minSentenceLength int) *Normalizer {
	if mode == "" {
		mode = ModeRich
	}
	if minSentenceLength <= 0 {
		minSentenceLength = DefaultMinSentenceLength
	}
	return &Normalizer{
		mode:              mode,
		minSentenceLength: minSentenceLength,
	}
}

// Normalize extracts at most five question records from raw response text.
// fallbackExperience seeds the difficulty of records whose source does not
// supply one. ErrEmptyResult is returned when no stage yields anything.
func (normalizer *Normalizer) Normalize(raw, fallbackExperience string) ([]flashcard.QuestionRecord, error) {
	stages := []func(string) []candidate{
		normalizer.parseStructuredJSON,
		normalizer.parseMarkedList,
		normalizer.splitSentences,
		normalizer.splitLines,
	}

	for _, stage := range stages {
		records := normalizer.assemble(stage(raw), fallbackExperience)
		if len(records) == 0 {
			continue
		}
		if len(records) > maxRecords {
			records = records[:maxRecords]
		}
		return records, nil
	}
	return nil, ErrEmptyResult
}

func (normalizer *Normalizer) assemble(candidates []candidate, fallbackExperience string) []flashcard.QuestionRecord {
	records := make([]flashcard.QuestionRecord, 0, len(candidates))
	for _, c := range candidates {
		record, ok := normalizer.completeRecord(c, fallbackExperience)
		if !ok {
			continue
		}
		records = append(records, record)
	}
	return records
}

// parseStructuredJSON locates the first JSON object or array in the text and
// maps it to candidates when it parses as an array of question objects or as
// an array of plain strings. Malformed JSON is logged and falls through to
// the next stage.
func (normalizer *Normalizer) parseStructuredJSON(raw string) []candidate {
	block, ok := extractJSONBlock(raw)
	if !ok {
		return nil
	}

	var objects []candidate
	objectsErr := json.Unmarshal([]byte(block), &objects)
	if objectsErr == nil {
		return objects
	}

	var questions []string
	if err := json.Unmarshal([]byte(block), &questions); err == nil {
		candidates := make([]candidate, 0, len(questions))
		for _, question := range questions {
			candidates = append(candidates, candidate{Question: question})
		}
		return candidates
	}

	slog.Default().Warn("response contained a JSON-like block that did not parse, falling back to text parsing",
		"error", objectsErr,
		"block_length", len(block),
	)
	return nil
}

// extractJSONBlock returns the first balanced JSON object or array in the
// text. Brackets inside JSON strings are ignored while matching. When the
// block is unbalanced, everything through the last closing delimiter is
// returned so the parse attempt can report it.
func extractJSONBlock(text string) (string, bool) {
	start := strings.IndexAny(text, "[{")
	if start < 0 {
		return "", false
	}
	open := text[start]
	closing := byte(']')
	if open == '{' {
		closing = '}'
	}

	depth := 0
	inString := false
	escapeNext := false
	for i := start; i < len(text); i++ {
		ch := text[i]
		if escapeNext {
			escapeNext = false
			continue
		}
		if ch == '\\' && inString {
			escapeNext = true
			continue
		}
		if ch == '"' {
			inString = !inString
			continue
		}
		if inString {
			continue
		}
		switch ch {
		case open:
			depth++
		case closing:
			depth--
			if depth == 0 {
				return text[start : i+1], true
			}
		}
	}

	end := strings.LastIndexByte(text, closing)
	if end > start {
		return text[start : end+1], true
	}
	return "", false
}

// parseMarkedList extracts segments introduced by an ordinal marker ("1.",
// "2)") or a bullet marker ("-", "*"). A segment runs to the next marker or
// the end of the text. A single marker that never opens a line reads as a
// decimal inside running prose, so it yields nothing and the sentence
// splitter handles the text instead.
func (normalizer *Normalizer) parseMarkedList(raw string) []candidate {
	matches := listMarkerPattern.FindAllStringIndex(raw, -1)
	if len(matches) == 0 {
		return nil
	}
	if len(matches) == 1 && !lineStartMarkerPattern.MatchString(raw) {
		return nil
	}

	candidates := make([]candidate, 0, len(matches))
	for i, match := range matches {
		end := len(raw)
		if i+1 < len(matches) {
			end = matches[i+1][0]
		}
		candidates = append(candidates, candidate{Question: raw[match[1]:end]})
	}
	return candidates
}

// splitSentences splits on sentence-ending punctuation followed by a capital
// letter or digit. Segments are kept when they already read as questions or
// are long enough to not be stray fragments.
func (normalizer *Normalizer) splitSentences(raw string) []candidate {
	text := collapseWhitespace(raw)
	if text == "" {
		return nil
	}

	var segments []string
	start := 0
	for _, loc := range sentenceEndPattern.FindAllStringIndex(text, -1) {
		next, _ := utf8.DecodeRuneInString(text[loc[1]:])
		if !unicode.IsUpper(next) && !unicode.IsDigit(next) {
			continue
		}
		segments = append(segments, text[start:loc[1]])
		start = loc[1]
	}
	if start < len(text) {
		segments = append(segments, text[start:])
	}

	var candidates []candidate
	for _, segment := range segments {
		segment = strings.TrimSpace(segment)
		if segment == "" {
			continue
		}
		if !strings.HasSuffix(segment, "?") && utf8.RuneCountInString(segment) <= normalizer.minSentenceLength {
			continue
		}
		candidates = append(candidates, candidate{Question: segment})
	}
	return candidates
}

// splitLines is the last-resort stage: every non-empty line becomes a
// candidate. Leading markers are stripped by sanitization.
func (normalizer *Normalizer) splitLines(raw string) []candidate {
	var candidates []candidate
	for _, line := range strings.Split(raw, "\n") {
		if strings.TrimSpace(line) == "" {
			continue
		}
		candidates = append(candidates, candidate{Question: line})
	}
	return candidates
}
