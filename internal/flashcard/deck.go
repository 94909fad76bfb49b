package flashcard

import (
	"fmt"
	"strings"
)

// Deck holds the records of the most recent completed submission. Each
// submission replaces the contents wholesale; nothing is ever merged.
type Deck struct {
	records []QuestionRecord
}

func NewDeck() *Deck {
	return &Deck{}
}

// Replace swaps the deck contents with the given records.
func (deck *Deck) Replace(records []QuestionRecord) {
	deck.records = records
}

// Clear empties the deck.
func (deck *Deck) Clear() {
	deck.records = nil
}

func (deck *Deck) Records() []QuestionRecord {
	return deck.records
}

func (deck *Deck) Size() int {
	return len(deck.records)
}

func (deck *Deck) IsEmpty() bool {
	return len(deck.records) == 0
}

// NumberedText renders the deck as a newline-joined, 1-indexed numbered
// list of questions. This is the plain-text form used for clipboard copies.
func (deck *Deck) NumberedText() string {
	var builder strings.Builder
	for i, record := range deck.records {
		if i > 0 {
			builder.WriteString("\n")
		}
		builder.WriteString(fmt.Sprintf("%d. %s", i+1, record.Question))
	}
	return builder.String()
}
