// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package vectorstore holds paper abstracts as embeddings in a flat
// similarity index scoped to one search session. It supports adding
// papers, nearest-neighbour retrieval with a distance cutoff,
// token-budgeted context assembly, snapshot persistence, and age-based
// expiry of on-disk snapshots.
package vectorstore

import (
	"context"
	"fmt"
	"strings"

	"github.com/fakepaperia/fakepaperia/pkg/types"
)

// DefaultDimension matches text-embedding-3-small.
const DefaultDimension = 1536

// DefaultDistanceThreshold is the maximum squared L2 distance for a
// neighbour to count as similar.
const DefaultDistanceThreshold = 0.5

// Embedder turns text into an embedding vector.
type Embedder interface {
	Embed(ctx context.Context, text string) ([]float32, error)
}

// Store owns a sequence of papers and a parallel embedding index.
// Ordinal i of the index always corresponds to papers[i]; the invariant
// holds across Add, Save, and Load. Only papers with a non-empty abstract
// are ever embedded or stored.
//
// A Store belongs to a single search session and is not safe for
// concurrent use.
type Store struct {
	index     *flatIndex
	papers    []types.Paper
	embedder  Embedder
	counter   TokenCounter
	threshold float32
}

// Option configures a Store.
type Option func(*Store)

// WithDimension overrides the embedding dimension.
func WithDimension(d int) Option {
	return func(s *Store) {
		if d > 0 {
			s.index = newFlatIndex(d)
		}
	}
}

// WithDistanceThreshold overrides the similarity cutoff.
func WithDistanceThreshold(t float32) Option {
	return func(s *Store) {
		if t > 0 {
			s.threshold = t
		}
	}
}

// New creates an empty Store backed by embedder, with token counting for
// context assembly done by counter.
func New(embedder Embedder, counter TokenCounter, opts ...Option) *Store {
	s := &Store{
		index:     newFlatIndex(DefaultDimension),
		embedder:  embedder,
		counter:   counter,
		threshold: DefaultDistanceThreshold,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Len returns the number of stored papers.
func (s *Store) Len() int {
	return len(s.papers)
}

// Papers returns the stored papers in index order.
func (s *Store) Papers() []types.Paper {
	return s.papers
}

// Add embeds the key content of each paper's abstract and appends vector
// and paper in lockstep. Papers without an abstract are silently skipped.
// On an embedding failure nothing from the failed paper onward is stored,
// and the index/papers alignment still holds.
func (s *Store) Add(ctx context.Context, papers []types.Paper) error {
	for _, p := range papers {
		if p.Abstract == "" {
			continue
		}

		vec, err := s.embedder.Embed(ctx, embedKeyContent(p.Abstract))
		if err != nil {
			return fmt.Errorf("embedding %q: %w", p.Title, err)
		}
		if err := s.index.Add([][]float32{vec}); err != nil {
			return err
		}
		s.papers = append(s.papers, p)
	}
	return nil
}

// SearchSimilar embeds query and returns up to k papers within the
// distance threshold, nearest first. The index is probed for 2k
// candidates so the threshold filter has room to discard distant ones.
// Fewer than k papers are returned when not enough qualify; the result
// is never padded.
func (s *Store) SearchSimilar(ctx context.Context, query string, k int) ([]types.Paper, error) {
	if k <= 0 || s.Len() == 0 {
		return nil, nil
	}

	queryVec, err := s.embedder.Embed(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("embedding query: %w", err)
	}

	var results []types.Paper
	for _, h := range s.index.Search(queryVec, k*2) {
		if h.distance >= s.threshold {
			continue
		}
		// A torn snapshot can restore more vectors than papers; drop
		// hits with no matching paper instead of indexing past the end.
		if h.ordinal >= len(s.papers) {
			continue
		}
		results = append(results, s.papers[h.ordinal])
		if len(results) >= k {
			break
		}
	}
	return results, nil
}

// ContextWithinBudget assembles "title + key content" blocks from papers
// in input order while the running token total stays at or under
// maxTokens. A block that would overflow the budget is dropped whole
// along with every later paper; blocks are never truncated to fit.
func (s *Store) ContextWithinBudget(papers []types.Paper, maxTokens int) string {
	var blocks []string
	currentTokens := 0

	for _, p := range papers {
		if p.Abstract == "" {
			continue
		}

		key := contextKeyContent(p.Abstract)
		keyTokens := s.counter.Count(key)
		if currentTokens+keyTokens > maxTokens {
			break
		}

		blocks = append(blocks, fmt.Sprintf("제목: %s\n핵심 내용: %s\n", p.Title, key))
		currentTokens += keyTokens
	}

	return strings.Join(blocks, "\n")
}
