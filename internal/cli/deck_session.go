// Package cli implements the interactive flashcard session: ask for a role
// and an experience level, generate a deck of interview questions, then
// review it card by card.
package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"

	"github.com/fatih/color"
	"prepdeck/internal/flashcard"
	"prepdeck/internal/inference"
	"prepdeck/internal/normalize"
	"prepdeck/internal/session"
)

// DeckSession holds the state of one interactive run. A session alternates
// between two phases: prompting for generation inputs while the deck is
// empty, and reviewing cards once a deck exists.
type DeckSession struct {
	coordinator  *session.Coordinator
	stdinReader  *bufio.Reader
	stdoutWriter io.Writer
	bold         *color.Color
	italic       *color.Color
	cards        []flashcard.QuestionRecord
	position     int
	flipped      bool
}

func NewDeckSession(coordinator *session.Coordinator) *DeckSession {
	return &DeckSession{
		coordinator:  coordinator,
		stdinReader:  bufio.NewReader(os.Stdin),
		stdoutWriter: os.Stdout,
		bold:         color.New(color.Bold),
		italic:       color.New(color.Italic),
	}
}

type Session interface {
	Session(context context.Context) error
}

var (
	errEnd = errors.New("end")
)

func (s *DeckSession) Run(ctx context.Context, session Session) error {
	ctx, cancel := signal.NotifyContext(
		ctx,
		os.Interrupt,
	)
	defer cancel()

	errCh := make(chan error)
	go func() {
		defer close(errCh)

	LOOP:
		for {
			select {
			case <-ctx.Done():
				break LOOP
			default:
			}

			if err := session.Session(ctx); err != nil {
				if errors.Is(err, errEnd) {
					break
				}
				errCh <- err
				break
			}
		}
	}()
	select {
	case <-ctx.Done():
		fmt.Fprintln(s.stdoutWriter, "Received interrupt signal, exiting...")
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("error: %w", err)
		}
	}
	return nil
}

func (s *DeckSession) Session(ctx context.Context) error {
	if len(s.cards) == 0 {
		return s.promptAndGenerate(ctx)
	}
	return s.reviewCard()
}

func (s *DeckSession) promptAndGenerate(ctx context.Context) error {
	fmt.Fprint(s.stdoutWriter, "Role (e.g. frontend developer): ")
	roleInput, err := s.stdinReader.ReadString('\n')
	if err != nil {
		return fmt.Errorf("error reading role input: %w", err)
	}
	role := strings.TrimSpace(roleInput)
	if role == "quit" || role == "exit" {
		fmt.Fprintln(s.stdoutWriter, "Session ended.")
		return errEnd
	}

	fmt.Fprint(s.stdoutWriter, "Experience level (junior, mid-level, senior): ")
	levelInput, err := s.stdinReader.ReadString('\n')
	if err != nil {
		return fmt.Errorf("error reading experience level input: %w", err)
	}
	level := strings.TrimSpace(levelInput)
	if level == "quit" || level == "exit" {
		fmt.Fprintln(s.stdoutWriter, "Session ended.")
		return errEnd
	}

	fmt.Fprintln(s.stdoutWriter, "Generating questions...")
	records, err := s.coordinator.Submit(ctx, role, level)
	if err != nil {
		return s.reportGenerationFailure(err)
	}

	s.cards = records
	s.position = 0
	s.flipped = false
	_, _ = s.bold.Fprintf(s.stdoutWriter, "Generated %d questions.\n", len(records))
	return nil
}

// reportGenerationFailure keeps the session alive on failures the user can
// recover from by trying again, and only ends the loop on unexpected ones.
// Error details go to the log, not the screen.
func (s *DeckSession) reportGenerationFailure(err error) error {
	switch {
	case errors.Is(err, normalize.ErrEmptyResult):
		fmt.Fprintln(s.stdoutWriter, "No questions could be extracted from the response. Try a different role or experience level.")
		return nil
	case errors.Is(err, session.ErrRequestInFlight):
		fmt.Fprintln(s.stdoutWriter, "A generation request is already in progress.")
		return nil
	}

	var requestErr *inference.RequestError
	if errors.As(err, &requestErr) {
		slog.Default().Error("question generation failed", "error", err)
		fmt.Fprintln(s.stdoutWriter, "Question generation failed. Please try again.")
		return nil
	}
	return fmt.Errorf("coordinator.Submit > %w", err)
}

func (s *DeckSession) reviewCard() error {
	s.renderCard()

	_, _ = s.italic.Fprint(s.stdoutWriter, "[f]lip [n]ext [p]revious [c]opy all [r]estart [q]uit: ")
	input, err := s.stdinReader.ReadString('\n')
	if err != nil {
		return fmt.Errorf("error reading action input: %w", err)
	}

	switch strings.ToLower(strings.TrimSpace(input)) {
	case "f", "flip":
		s.flipped = !s.flipped
	case "n", "next":
		if s.position+1 >= len(s.cards) {
			fmt.Fprintln(s.stdoutWriter, "This is the last card.")
			break
		}
		s.position++
		s.flipped = false
	case "p", "previous":
		if s.position == 0 {
			fmt.Fprintln(s.stdoutWriter, "This is the first card.")
			break
		}
		s.position--
		s.flipped = false
	case "c", "copy":
		count, err := s.coordinator.CopyAll()
		if err != nil {
			slog.Default().Error("copying questions failed", "error", err)
			fmt.Fprintln(s.stdoutWriter, "Could not copy the questions to the clipboard.")
			break
		}
		fmt.Fprintf(s.stdoutWriter, "Copied %d questions to the clipboard.\n", count)
	case "r", "restart":
		s.cards = nil
		s.position = 0
		s.flipped = false
		s.coordinator.Clear()
		fmt.Fprintln(s.stdoutWriter, "Starting over.")
	case "q", "quit", "exit":
		fmt.Fprintln(s.stdoutWriter, "Session ended.")
		return errEnd
	default:
		fmt.Fprintf(s.stdoutWriter, "Unknown action %q.\n", strings.TrimSpace(input))
	}
	return nil
}

func (s *DeckSession) renderCard() {
	card := s.cards[s.position]

	fmt.Fprintln(s.stdoutWriter)
	if card.Type != "" && card.Difficulty != "" {
		fmt.Fprintf(s.stdoutWriter, "Card %d of %d [%s, %s]\n", s.position+1, len(s.cards), card.Type, card.Difficulty)
	} else {
		fmt.Fprintf(s.stdoutWriter, "Card %d of %d\n", s.position+1, len(s.cards))
	}
	_, _ = s.bold.Fprintln(s.stdoutWriter, card.Question)

	if !s.flipped {
		return
	}
	fmt.Fprint(s.stdoutWriter, FormatCardBack(card))
}

// FormatCardBack renders the answer side of a card. Fields the record does
// not carry are left out.
func FormatCardBack(card flashcard.QuestionRecord) string {
	var back string
	if card.SuggestedAnswer != "" {
		back += fmt.Sprintf("\nSuggested answer:\n%s\n", card.SuggestedAnswer)
	}
	if len(card.KeyTips) > 0 {
		back += "\nKey tips:\n"
		for _, tip := range card.KeyTips {
			back += fmt.Sprintf("  - %s\n", tip)
		}
	}
	if len(card.Keywords) > 0 {
		back += fmt.Sprintf("\nKeywords: %s\n", strings.Join(card.Keywords, ", "))
	}
	if card.CodeExample != "" {
		back += fmt.Sprintf("\nCode example:\n%s\n", card.CodeExample)
	}
	if len(card.BehavioralStructure) > 0 {
		back += "\nHow to structure the answer:\n"
		for _, step := range card.BehavioralStructure {
			back += fmt.Sprintf("  - %s\n", step)
		}
	}
	if card.ReferenceURL != "" {
		back += fmt.Sprintf("\nReference: %s\n", card.ReferenceURL)
	}
	return back
}
