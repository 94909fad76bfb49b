package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"prepdeck/internal/cli"
)

func newGenerateCommand() *cobra.Command {
	var (
		role        string
		level       string
		copyAll     bool
		showDetails bool
	)

	command := &cobra.Command{
		Use:   "generate",
		Short: "Generate interview questions once and print them",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return fmt.Errorf("failed to load configuration: %w", err)
			}

			coordinator, client := newCoordinator(cfg)
			defer func() {
				_ = client.Close()
			}()

			records, err := coordinator.Submit(context.Background(), role, level)
			if err != nil {
				return fmt.Errorf("coordinator.Submit > %w", err)
			}

			for i, record := range records {
				if record.Type != "" && record.Difficulty != "" {
					fmt.Printf("%d. %s [%s, %s]\n", i+1, record.Question, record.Type, record.Difficulty)
				} else {
					fmt.Printf("%d. %s\n", i+1, record.Question)
				}
				if showDetails {
					fmt.Print(cli.FormatCardBack(record))
					fmt.Println()
				}
			}

			if copyAll {
				count, err := coordinator.CopyAll()
				if err != nil {
					return fmt.Errorf("coordinator.CopyAll > %w", err)
				}
				fmt.Printf("Copied %d questions to the clipboard.\n", count)
			}
			return nil
		},
	}

	command.Flags().StringVar(&role, "role", "", "target role (default: software engineer)")
	command.Flags().StringVar(&level, "level", "", "experience level (default: mid-level)")
	command.Flags().BoolVar(&copyAll, "copy", false, "copy the generated questions to the clipboard")
	command.Flags().BoolVar(&showDetails, "details", false, "print suggested answers and tips for each question")

	return command
}
