package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/fakepaperia/fakepaperia/internal/papersearch"
)

var searchCmd = &cobra.Command{
	Use:   "search",
	Short: "Search DBpia for papers matching a research question",
	Long: `Search extracts keywords from a free-text research question, queries
DBpia for each keyword, and prints the deduplicated union of open-access
papers with their scraped abstracts indexed for generation.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		query, _ := cmd.Flags().GetString("query")
		if query == "" {
			return fmt.Errorf("--query is required")
		}
		asJSON, _ := cmd.Flags().GetBool("json")

		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		chat, err := newChatClient(cfg.Generation.AIConfig)
		if err != nil {
			return err
		}
		apiKey, err := resolveDBpiaKey(cfg.Search)
		if err != nil {
			return err
		}

		searcher := newSearcher(cfg, chat, apiKey, os.Stderr)
		result, err := searcher.Search(cmd.Context(), query, os.Stderr)
		if err != nil {
			return fmt.Errorf("search failed: %w", err)
		}

		if asJSON {
			return papersearch.FormatJSON(result, os.Stdout)
		}
		papersearch.FormatTable(result, os.Stdout)
		return nil
	},
}

func init() {
	searchCmd.Flags().String("query", "", "free-text research question")
	searchCmd.Flags().Bool("json", false, "output results as JSON")

	rootCmd.AddCommand(searchCmd)
}
