package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"prepdeck/internal/cli"
)

func newSessionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "session",
		Short: "Interactive flashcard session for interview preparation",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return fmt.Errorf("failed to load configuration: %w", err)
			}

			coordinator, client := newCoordinator(cfg)
			defer func() {
				_ = client.Close()
			}()

			fmt.Printf("Using Gemini provider (model: %s)\n", cfg.Gemini.Model)
			fmt.Println("Interview flashcard session started!")
			fmt.Println("Enter a role and an experience level. Type 'quit' to exit.")
			fmt.Println()

			deckSession := cli.NewDeckSession(coordinator)
			return deckSession.Run(context.Background(), deckSession)
		},
	}
}
