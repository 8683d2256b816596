// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package papersearch aggregates per-keyword DBpia fetches into one
// deduplicated result set for a user query.
package papersearch

import (
	"context"
	"fmt"
	"io"

	"github.com/fakepaperia/fakepaperia/pkg/types"
)

// KeywordExtractor turns a free-text query into search keywords.
type KeywordExtractor interface {
	Extract(ctx context.Context, query string) ([]string, error)
}

// PaperFetcher fetches papers for one keyword.
type PaperFetcher interface {
	FetchPapers(ctx context.Context, keyword, apiKey string) ([]types.Paper, error)
}

// Searcher runs the keyword-extraction and per-keyword fetch pipeline.
type Searcher struct {
	Keywords KeywordExtractor
	Fetcher  PaperFetcher
	APIKey   string
}

// Search extracts keywords from query, fetches papers for each keyword in
// turn, and returns the title-deduplicated union together with the keyword
// list and the original query. Keywords are processed sequentially; the
// fetcher already absorbs per-candidate failures, so any error surfacing
// here aborts the whole search.
func (s *Searcher) Search(ctx context.Context, query string, w io.Writer) (types.SearchResult, error) {
	keywords, err := s.Keywords.Extract(ctx, query)
	if err != nil {
		return types.SearchResult{}, err
	}

	var all []types.Paper
	for _, kw := range keywords {
		fmt.Fprintf(w, "searching %q\n", kw)
		papers, err := s.Fetcher.FetchPapers(ctx, kw, s.APIKey)
		if err != nil {
			return types.SearchResult{}, fmt.Errorf("fetching papers for %q: %w", kw, err)
		}
		all = append(all, papers...)
	}

	return types.SearchResult{
		Papers:        dedupeByTitle(all),
		Keywords:      keywords,
		OriginalQuery: query,
	}, nil
}

// dedupeByTitle drops papers whose exact title was already seen,
// preserving first-seen order.
func dedupeByTitle(papers []types.Paper) []types.Paper {
	seen := make(map[string]bool, len(papers))
	unique := make([]types.Paper, 0, len(papers))
	for _, p := range papers {
		if seen[p.Title] {
			continue
		}
		seen[p.Title] = true
		unique = append(unique, p)
	}
	return unique
}
