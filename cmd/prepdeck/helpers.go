package main

import (
	"fmt"

	"prepdeck/internal/clipboard"
	"prepdeck/internal/config"
	"prepdeck/internal/inference/gemini"
	"prepdeck/internal/normalize"
	"prepdeck/internal/prompt"
	"prepdeck/internal/session"
)

func loadConfig() (*config.Config, error) {
	loader, err := config.NewLoader(configFile)
	if err != nil {
		return nil, fmt.Errorf("failed to create config loader: %w", err)
	}
	return loader.Load()
}

// newCoordinator wires a generation pipeline from the loaded configuration.
// The caller owns closing the returned client.
func newCoordinator(cfg *config.Config) (*session.Coordinator, *gemini.Client) {
	client := gemini.NewClient(
		cfg.Gemini.APIKey,
		cfg.Gemini.Model,
		cfg.Gemini.APIVersion,
		uint(cfg.Gemini.RetryAttempts),
	)

	mode := normalize.Mode(cfg.Normalizer.Mode)
	coordinator := session.NewCoordinator(
		client,
		prompt.NewBuilder(formatForMode(mode)),
		normalize.NewNormalizer(mode, cfg.Normalizer.MinSentenceLength),
		clipboard.NewWriter(),
		cfg.Generation.Temperature,
		cfg.Generation.MaxOutputTokens,
	)
	return coordinator, client
}

// formatForMode asks the model for the output shape the normalizer gets the
// most out of: full JSON objects in rich mode, a plain JSON string array in
// minimal mode.
func formatForMode(mode normalize.Mode) prompt.Format {
	if mode == normalize.ModeMinimal {
		return prompt.FormatJSONStrings
	}
	return prompt.FormatJSONObjects
}
