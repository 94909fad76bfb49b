// Package gemini implements the inference client for the Gemini
// generateContent REST API.
package gemini

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	"github.com/avast/retry-go"
	"prepdeck/internal/inference"
	"resty.dev/v3"
)

const defaultBaseURL = "https://generativelanguage.googleapis.com"

type Client struct {
	httpClient       *resty.Client
	model            string
	apiVersion       string
	maxRetryAttempts uint
}

func NewClient(apiKey, model, apiVersion string, retryAttempts uint) *Client {
	client := resty.New()
	client.SetBaseURL(defaultBaseURL)
	client.SetHeader("x-goog-api-key", apiKey)
	client.SetHeader("Content-Type", "application/json")

	return &Client{
		httpClient:       client,
		model:            model,
		apiVersion:       apiVersion,
		maxRetryAttempts: retryAttempts,
	}
}

func (client Client) Close() error {
	return client.httpClient.Close()
}

type GenerateContentRequest struct {
	Contents         []Content        `json:"contents"`
	GenerationConfig GenerationConfig `json:"generationConfig"`
}

type Content struct {
	Role  string `json:"role,omitempty"`
	Parts []Part `json:"parts"`
}

type Part struct {
	Text string `json:"text"`
}

type GenerationConfig struct {
	Temperature     float64 `json:"temperature"`
	MaxOutputTokens int     `json:"maxOutputTokens"`
}

type GenerateContentResponse struct {
	Candidates    []Candidate   `json:"candidates"`
	UsageMetadata UsageMetadata `json:"usageMetadata"`
}

type Candidate struct {
	Content      Content `json:"content"`
	FinishReason string  `json:"finishReason,omitempty"`
}

type UsageMetadata struct {
	PromptTokenCount     int `json:"promptTokenCount"`
	CandidatesTokenCount int `json:"candidatesTokenCount"`
	TotalTokenCount      int `json:"totalTokenCount"`
}

type errorResponse struct {
	Error errorDetail `json:"error"`
}

type errorDetail struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Status  string `json:"status"`
}

// GenerateQuestions implements the inference.Client interface
func (client *Client) GenerateQuestions(
	ctx context.Context,
	params inference.GenerateRequest,
) (inference.GenerateResponse, error) {
	var result inference.GenerateResponse
	var lastErr error
	if err := retry.Do(
		func() error {
			response, err := client.generateQuestions(ctx, params)
			if err != nil {
				lastErr = err
				if !isRetryableError(err) {
					return retry.Unrecoverable(err)
				}
				return err
			}
			result = response
			return nil
		},
		retry.Context(ctx),
		retry.Attempts(client.maxRetryAttempts+1),
		retry.DelayType(retry.BackOffDelay),
	); err != nil {
		// Return the typed error from the last attempt so callers can
		// classify the failure instead of the aggregate retry error.
		if lastErr != nil {
			return inference.GenerateResponse{}, lastErr
		}
		return inference.GenerateResponse{}, err
	}
	return result, nil
}

func (client *Client) generateQuestions(
	ctx context.Context,
	params inference.GenerateRequest,
) (inference.GenerateResponse, error) {
	if strings.TrimSpace(params.Prompt) == "" {
		return inference.GenerateResponse{}, nil
	}

	requestBody := GenerateContentRequest{
		Contents: []Content{
			{
				Role:  "user",
				Parts: []Part{{Text: params.Prompt}},
			},
		},
		GenerationConfig: GenerationConfig{
			Temperature:     params.Temperature,
			MaxOutputTokens: params.MaxOutputTokens,
		},
	}

	path := fmt.Sprintf("/%s/models/%s:generateContent", client.apiVersion, client.model)
	response, err := client.httpClient.R().
		SetContext(ctx).
		SetBody(requestBody).
		SetResult(&GenerateContentResponse{}).
		Post(path)
	if err != nil {
		return inference.GenerateResponse{}, fmt.Errorf("httpClient.Post > %w", err)
	}
	if response.IsError() {
		return inference.GenerateResponse{}, &inference.RequestError{
			StatusCode: response.StatusCode(),
			Message:    errorMessage(response.String(), response.Status()),
		}
	}

	responseBody := response.Result().(*GenerateContentResponse)
	if responseBody == nil || len(responseBody.Candidates) == 0 {
		return inference.GenerateResponse{}, &inference.RequestError{
			Message: fmt.Sprintf("no candidates in response: %s", response.String()),
		}
	}

	var text strings.Builder
	for _, part := range responseBody.Candidates[0].Content.Parts {
		text.WriteString(part.Text)
	}
	if text.Len() == 0 {
		return inference.GenerateResponse{}, &inference.RequestError{
			Message: fmt.Sprintf("empty candidate content: %s", response.String()),
		}
	}

	slog.Default().Debug("gemini response",
		"model", client.model,
		"finish_reason", responseBody.Candidates[0].FinishReason,
		"total_tokens", responseBody.UsageMetadata.TotalTokenCount,
	)

	return inference.GenerateResponse{
		Text:        text.String(),
		TotalTokens: responseBody.UsageMetadata.TotalTokenCount,
	}, nil
}

// errorMessage digs the nested error.message out of a non-2xx body. A body
// that does not parse falls back to the HTTP status text.
func errorMessage(body, statusText string) string {
	var decoded errorResponse
	if err := json.Unmarshal([]byte(body), &decoded); err == nil && decoded.Error.Message != "" {
		return decoded.Error.Message
	}
	return statusText
}
