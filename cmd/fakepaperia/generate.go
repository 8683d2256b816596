package main

import (
	"fmt"
	"math/rand"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/fakepaperia/fakepaperia/internal/fakegen"
	"github.com/fakepaperia/fakepaperia/pkg/types"
)

// journalStyles are the mastheads a generated paper can be issued under.
var journalStyles = []string{
	"📜 황당무계 학회지",
	"🎭 허구연구 저널",
	"🎪 망상과학 논문집",
	"🎨 상상력 연구회보",
	"🎯 헛소리 학술지",
}

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Run the full pipeline and print a generated paper",
	Long: `Generate runs search, indexing, and generation in one process: it finds
real papers for the query, builds a session vector store from their
abstracts, and prints the generated eight-section paper as markdown
together with the reviewer reaction.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		query, _ := cmd.Flags().GetString("query")
		if query == "" {
			return fmt.Errorf("--query is required")
		}

		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		if maxTokens, _ := cmd.Flags().GetInt("max-tokens"); maxTokens > 0 {
			cfg.Generation.MaxTokens = maxTokens
		}

		chat, err := newChatClient(cfg.Generation.AIConfig)
		if err != nil {
			return err
		}
		apiKey, err := resolveDBpiaKey(cfg.Search)
		if err != nil {
			return err
		}

		ctx := cmd.Context()
		searcher := newSearcher(cfg, chat, apiKey, os.Stderr)
		result, err := searcher.Search(ctx, query, os.Stderr)
		if err != nil {
			return fmt.Errorf("search failed: %w", err)
		}
		fmt.Fprintf(os.Stderr, "found %d papers\n", len(result.Papers))

		store, err := newSessionStore(cfg, chat)
		if err != nil {
			return err
		}
		if err := store.Add(ctx, result.Papers); err != nil {
			return fmt.Errorf("indexing abstracts: %w", err)
		}

		paper, err := fakegen.Generate(ctx, store, chat, cfg.Generation.Model, query, cfg.Generation.MaxTokens)
		if err != nil {
			return fmt.Errorf("generating paper: %w", err)
		}

		react, err := newReactor(cfg.Reaction, chat)
		if err != nil {
			return err
		}
		line, gifURL, err := react(ctx, paper.Title, paper.Abstract)
		if err != nil {
			fmt.Fprintf(os.Stderr, "warning: reaction failed: %v\n", err)
		}

		printPaper(paper, line, gifURL)
		return nil
	},
}

func printPaper(paper types.GeneratedPaper, reaction, gifURL string) {
	journal := journalStyles[rand.Intn(len(journalStyles))]
	fmt.Printf("%s\n발행일: %s\n\n", journal, time.Now().Format("2006년 01월 02일"))

	fmt.Printf("# %s\n\n", paper.Title)
	sections := []struct {
		heading string
		body    string
	}{
		{"## 초록", paper.Abstract},
		{"## 1. 서론", paper.Introduction},
		{"## 2. 이론적 배경", paper.Background},
		{"## 3. 연구 방법", paper.Method},
		{"## 4. 연구 결과", paper.Results},
		{"## 5. 결론 및 제언", paper.Conclusion},
		{"## 참고문헌", paper.References},
	}
	for _, s := range sections {
		fmt.Printf("%s\n\n%s\n\n", s.heading, s.body)
	}

	if reaction != "" {
		fmt.Printf("---\n\n💬 %s\n", reaction)
		if gifURL != "" {
			fmt.Printf("🎬 %s\n", gifURL)
		}
	}
}

func init() {
	generateCmd.Flags().String("query", "", "research question to fabricate a paper for")
	generateCmd.Flags().Int("max-tokens", 0, "completion token budget (default from config)")

	rootCmd.AddCommand(generateCmd)
}
