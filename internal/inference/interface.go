package inference

import (
	"context"
)

//go:generate mockgen -source=interface.go -destination=../mocks/inference/mock_client.go -package=mock_inference

// Client interface defines the methods for generative-text operations
type Client interface {
	GenerateQuestions(ctx context.Context, params GenerateRequest) (GenerateResponse, error)
}

// GenerateRequest carries one submission to the generation service. It is
// built fresh per submission and never mutated afterwards.
type GenerateRequest struct {
	Role            string
	ExperienceLevel string
	Prompt          string
	Temperature     float64
	MaxOutputTokens int
}

// GenerateResponse holds the raw text extracted from the service reply. No
// structure is guaranteed; normalization happens downstream.
type GenerateResponse struct {
	Text        string
	TotalTokens int
}

const (
	DefaultMaxRetryAttempts = 3
)
