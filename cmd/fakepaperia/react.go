package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var reactCmd = &cobra.Command{
	Use:   "react",
	Short: "Generate a reviewer reaction for a paper",
	Long: `React asks the chat model for a one-line comedic reviewer reaction to
the given title and abstract, and looks up a matching GIF when a Giphy
key is configured.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		title, _ := cmd.Flags().GetString("title")
		abstract, _ := cmd.Flags().GetString("abstract")
		if title == "" {
			return fmt.Errorf("--title is required")
		}

		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		chat, err := newChatClient(cfg.Reaction.AIConfig)
		if err != nil {
			return err
		}
		react, err := newReactor(cfg.Reaction, chat)
		if err != nil {
			return err
		}

		line, gifURL, err := react(cmd.Context(), title, abstract)
		if err != nil {
			return fmt.Errorf("reaction failed: %w", err)
		}

		fmt.Printf("💬 %s\n", line)
		if gifURL != "" {
			fmt.Printf("🎬 %s\n", gifURL)
		}
		return nil
	},
}

func init() {
	reactCmd.Flags().String("title", "", "paper title")
	reactCmd.Flags().String("abstract", "", "paper abstract")

	rootCmd.AddCommand(reactCmd)
}
