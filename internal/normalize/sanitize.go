package normalize

import (
	"regexp"
	"strings"

	"golang.org/x/net/html"
)

var (
	fencedBlockPattern   = regexp.MustCompile("(?s)```.*?```")
	fenceMarkerPattern   = regexp.MustCompile("```[a-zA-Z0-9_+-]*[ \t]*\n?")
	whitespacePattern    = regexp.MustCompile(`\s+`)
	leadingMarkerPattern = regexp.MustCompile(`^(?:(?:\d{1,2}[.)]|[-*•])(?:\s+|$))+`)
)

// trailingCutset holds every rune stripped off the end of a question before
// the single trailing question mark is applied.
const trailingCutset = " \t\n.,;:!…?-—–'\"”’`"

// sanitizeQuestion applies every cleanup rule a question string must pass:
// fenced code blocks and HTML-like tags are removed, whitespace runs
// collapse to single spaces, leading list markers and trailing punctuation
// are stripped, and the result ends in exactly one question mark. An empty
// result means the candidate carries no usable question. Sanitizing an
// already sanitized question returns it unchanged.
func sanitizeQuestion(raw string) string {
	text := fencedBlockPattern.ReplaceAllString(raw, " ")
	text = fenceMarkerPattern.ReplaceAllString(text, " ")
	text = stripHTMLTags(text)
	text = collapseWhitespace(text)
	text = leadingMarkerPattern.ReplaceAllString(text, "")
	text = strings.TrimRight(text, trailingCutset)
	if text == "" {
		return ""
	}
	return text + "?"
}

// stripFenceMarkers removes markdown code-fence markers while keeping the
// code between them.
func stripFenceMarkers(text string) string {
	return strings.TrimSpace(fenceMarkerPattern.ReplaceAllString(text, ""))
}

func collapseWhitespace(text string) string {
	return strings.TrimSpace(whitespacePattern.ReplaceAllString(text, " "))
}

func stripHTMLTags(text string) string {
	if !strings.Contains(text, "<") {
		return text
	}

	tokenizer := html.NewTokenizer(strings.NewReader(text))
	var builder strings.Builder
	for {
		tokenType := tokenizer.Next()
		if tokenType == html.ErrorToken {
			break
		}
		if tokenType == html.TextToken {
			builder.WriteString(tokenizer.Token().Data)
		}
	}
	return builder.String()
}
