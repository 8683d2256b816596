// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"
	"io"
	"net/http"

	"golang.org/x/time/rate"

	"github.com/fakepaperia/fakepaperia/internal/dbpia"
	"github.com/fakepaperia/fakepaperia/internal/keyword"
	"github.com/fakepaperia/fakepaperia/internal/openai"
	"github.com/fakepaperia/fakepaperia/internal/papersearch"
	"github.com/fakepaperia/fakepaperia/internal/reaction"
	"github.com/fakepaperia/fakepaperia/internal/vectorstore"
	"github.com/fakepaperia/fakepaperia/pkg/types"
)

// newChatClient builds the OpenAI client, preferring a key from the
// config file over the environment.
func newChatClient(cfg types.AIConfig) (*openai.Client, error) {
	key := cfg.APIKey
	if key == "" {
		var err error
		key, err = loadedSecrets.RequireOpenAI()
		if err != nil {
			return nil, err
		}
	}
	return openai.NewClient(key), nil
}

// resolveDBpiaKey resolves the DBpia search API key.
func resolveDBpiaKey(cfg types.SearchConfig) (string, error) {
	if cfg.APIKey != "" {
		return cfg.APIKey, nil
	}
	return loadedSecrets.RequireDBpia()
}

// newSearcher wires the keyword extractor and DBpia fetcher into the
// aggregation pipeline.
func newSearcher(cfg types.PipelineConfig, chat *openai.Client, apiKey string, logw io.Writer) *papersearch.Searcher {
	fetcher := dbpia.NewClient(
		dbpia.WithHTTPClient(&http.Client{Timeout: cfg.Search.Timeout}),
		dbpia.WithLimiter(rate.NewLimiter(rate.Limit(cfg.Search.RequestsPerSecond), 1)),
		dbpia.WithPageCount(cfg.Search.PageCount),
		dbpia.WithMaxPapers(cfg.Search.MaxPapers),
		dbpia.WithLogWriter(logw),
	)
	return &papersearch.Searcher{
		Keywords: &keyword.Extractor{Chat: chat, Model: cfg.Generation.Model},
		Fetcher:  fetcher,
		APIKey:   apiKey,
	}
}

// newSessionStore creates an empty session vector store from cfg.
func newSessionStore(cfg types.PipelineConfig, chat *openai.Client) (*vectorstore.Store, error) {
	counter, err := vectorstore.NewTokenCounter(cfg.Generation.Model)
	if err != nil {
		return nil, fmt.Errorf("initialising token counter: %w", err)
	}
	embedder := openai.Embedder{Client: chat, Model: cfg.Generation.EmbeddingModel}
	return vectorstore.New(embedder, counter,
		vectorstore.WithDimension(cfg.VectorStore.Dimension),
		vectorstore.WithDistanceThreshold(cfg.VectorStore.DistanceThreshold),
	), nil
}

// newReactor returns a function producing the reaction line and GIF URL
// for a generated paper. GIF lookup failures surface as an empty URL.
func newReactor(cfg types.ReactionConfig, chat *openai.Client) (func(ctx context.Context, title, abstract string) (string, string, error), error) {
	table := reaction.DefaultEmotionTable()
	if cfg.EmotionTablePath != "" {
		var err error
		table, err = reaction.LoadEmotionTable(cfg.EmotionTablePath)
		if err != nil {
			return nil, err
		}
	}

	giphyKey := cfg.GiphyAPIKey
	if giphyKey == "" {
		giphyKey = loadedSecrets.GiphyAPIKey
	}
	gifs := reaction.NewGifClient(giphyKey,
		reaction.WithGifLimit(cfg.GifLimit),
		reaction.WithGifRating(cfg.GifRating),
	)

	return func(ctx context.Context, title, abstract string) (string, string, error) {
		line, err := reaction.React(ctx, chat, cfg.Model, title, abstract)
		if err != nil {
			return "", "", err
		}
		gifURL, _ := gifs.Search(ctx, table.EmotionFor(line))
		return line, gifURL, nil
	}, nil
}
