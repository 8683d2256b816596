package main

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/fakepaperia/fakepaperia/internal/fakegen"
	"github.com/fakepaperia/fakepaperia/internal/history"
	"github.com/fakepaperia/fakepaperia/internal/openai"
	"github.com/fakepaperia/fakepaperia/internal/server"
	"github.com/fakepaperia/fakepaperia/internal/vectorstore"
	"github.com/fakepaperia/fakepaperia/pkg/types"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the paper pipeline over HTTP",
	Long: `Serve exposes the pipeline as a JSON API with a static web UI: search
sessions, paper generation with reactions, history, and status. Stale
session stores are expired on a cron schedule.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		if addr, _ := cmd.Flags().GetString("addr"); addr != "" {
			cfg.Server.Addr = addr
		}

		chat, err := newChatClient(cfg.Generation.AIConfig)
		if err != nil {
			return err
		}
		apiKey, err := resolveDBpiaKey(cfg.Search)
		if err != nil {
			return err
		}
		react, err := newReactor(cfg.Reaction, chat)
		if err != nil {
			return err
		}

		hist, err := history.NewStore(cfg.History)
		if err != nil {
			return err
		}
		defer hist.Close()

		counter, err := vectorstore.NewTokenCounter(cfg.Generation.Model)
		if err != nil {
			return fmt.Errorf("initialising token counter: %w", err)
		}
		embedder := openai.Embedder{Client: chat, Model: cfg.Generation.EmbeddingModel}
		storeOpts := []vectorstore.Option{
			vectorstore.WithDimension(cfg.VectorStore.Dimension),
			vectorstore.WithDistanceThreshold(cfg.VectorStore.DistanceThreshold),
		}

		searcher := newSearcher(cfg, chat, apiKey, os.Stderr)
		deps := server.Deps{
			Search: func(ctx context.Context, query string, w io.Writer) (types.SearchResult, error) {
				return searcher.Search(ctx, query, w)
			},
			NewStore: func() *vectorstore.Store {
				return vectorstore.New(embedder, counter, storeOpts...)
			},
			LoadStore: func(path string) (*vectorstore.Store, error) {
				return vectorstore.Load(path, embedder, counter, storeOpts...)
			},
			Generate: func(ctx context.Context, store *vectorstore.Store, query string) (types.GeneratedPaper, error) {
				return fakegen.Generate(ctx, store, chat, cfg.Generation.Model, query, cfg.Generation.MaxTokens)
			},
			React:   react,
			History: hist,
		}

		srv, err := server.New(cfg.Server, cfg.VectorStore, deps, os.Stderr)
		if err != nil {
			return err
		}

		errCh := make(chan error, 1)
		go func() {
			if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				errCh <- err
			}
		}()

		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)

		select {
		case err := <-errCh:
			return err
		case sig := <-sigCh:
			fmt.Fprintf(os.Stderr, "received %v, shutting down\n", sig)
			ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			return srv.Shutdown(ctx)
		}
	},
}

func init() {
	serveCmd.Flags().String("addr", "", "listen address (default from config)")

	rootCmd.AddCommand(serveCmd)
}
