// Package session coordinates a single round of question generation: it
// turns user inputs into a prompt, calls the inference client, normalizes
// the raw model output and keeps the resulting deck of flashcards.
package session

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"prepdeck/internal/clipboard"
	"prepdeck/internal/flashcard"
	"prepdeck/internal/inference"
	"prepdeck/internal/normalize"
	"prepdeck/internal/prompt"
)

type Coordinator struct {
	client          inference.Client
	builder         prompt.Builder
	normalizer      *normalize.Normalizer
	clip            *clipboard.Writer
	deck            *flashcard.Deck
	tracker         *Tracker
	temperature     float64
	maxOutputTokens int
}

func NewCoordinator(
	client inference.Client,
	builder prompt.Builder,
	normalizer *normalize.Normalizer,
	clip *clipboard.Writer,
	temperature float64,
	maxOutputTokens int,
) *Coordinator {
	return &Coordinator{
		client:          client,
		builder:         builder,
		normalizer:      normalizer,
		clip:            clip,
		deck:            flashcard.NewDeck(),
		tracker:         NewTracker(),
		temperature:     temperature,
		maxOutputTokens: maxOutputTokens,
	}
}

// Submit runs one generation round and replaces the deck with the result.
// While a round is running, further submissions fail with
// ErrRequestInFlight and leave both the deck and the running round alone.
// When a round fails, the deck is cleared so stale cards are never shown
// next to an error.
func (coordinator *Coordinator) Submit(ctx context.Context, role, experienceLevel string) ([]flashcard.QuestionRecord, error) {
	if err := coordinator.tracker.Begin(); err != nil {
		return nil, err
	}
	defer coordinator.tracker.End()

	requestID := uuid.NewString()
	slog.Default().Debug("starting question generation",
		"request_id", requestID,
		"role", role,
		"experience_level", experienceLevel,
	)

	response, err := coordinator.client.GenerateQuestions(ctx, inference.GenerateRequest{
		Role:            role,
		ExperienceLevel: experienceLevel,
		Prompt:          coordinator.builder.Build(role, experienceLevel),
		Temperature:     coordinator.temperature,
		MaxOutputTokens: coordinator.maxOutputTokens,
	})
	if err != nil {
		coordinator.deck.Clear()
		return nil, fmt.Errorf("client.GenerateQuestions > %w", err)
	}

	records, err := coordinator.normalizer.Normalize(response.Text, experienceLevel)
	if err != nil {
		coordinator.deck.Clear()
		return nil, fmt.Errorf("normalizer.Normalize > %w", err)
	}

	coordinator.deck.Replace(records)
	slog.Default().Debug("question generation completed",
		"request_id", requestID,
		"questions", len(records),
		"total_tokens", response.TotalTokens,
	)
	return records, nil
}

func (coordinator *Coordinator) Records() []flashcard.QuestionRecord {
	return coordinator.deck.Records()
}

func (coordinator *Coordinator) Clear() {
	coordinator.deck.Clear()
}

func (coordinator *Coordinator) InFlight() bool {
	return coordinator.tracker.InFlight()
}

// CopyAll copies every question as a numbered list to the clipboard and
// reports how many questions were copied. An empty deck is a no-op.
func (coordinator *Coordinator) CopyAll() (int, error) {
	if coordinator.deck.IsEmpty() {
		return 0, nil
	}
	if err := coordinator.clip.Copy(coordinator.deck.NumberedText()); err != nil {
		return 0, fmt.Errorf("clip.Copy > %w", err)
	}
	return coordinator.deck.Size(), nil
}
