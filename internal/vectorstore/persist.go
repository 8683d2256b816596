// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package vectorstore

import (
	"encoding/gob"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/fakepaperia/fakepaperia/pkg/types"
)

// A snapshot is stored as sibling artifacts sharing a base path:
// {path}.index holds the vectors, {path}.json holds the paper records in
// the same order, and {path}.id holds the session identifier (the base
// name's suffix after the last underscore).

// indexArtifact is the gob-encoded form of the flat index.
type indexArtifact struct {
	Dimension int
	Vectors   [][]float32
}

// Save writes the snapshot artifacts for this store under path, creating
// the parent directory if needed.
func (s *Store) Save(path string) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("creating snapshot directory: %w", err)
		}
	}

	f, err := os.Create(path + ".index")
	if err != nil {
		return fmt.Errorf("creating index artifact: %w", err)
	}
	defer f.Close()

	artifact := indexArtifact{
		Dimension: s.index.dimension,
		Vectors:   s.index.vectors,
	}
	if err := gob.NewEncoder(f).Encode(artifact); err != nil {
		return fmt.Errorf("encoding index artifact: %w", err)
	}

	meta, err := json.MarshalIndent(s.papers, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling paper metadata: %w", err)
	}
	if err := os.WriteFile(path+".json", meta, 0o644); err != nil {
		return fmt.Errorf("writing paper metadata: %w", err)
	}

	id := sessionIDFromPath(path)
	if err := os.WriteFile(path+".id", []byte(id), 0o644); err != nil {
		return fmt.Errorf("writing session id: %w", err)
	}
	return nil
}

// Load reads the snapshot artifacts at path into a new Store using
// embedder and counter for subsequent operations. Missing artifacts are
// tolerated: the corresponding part of the store is simply empty.
func Load(path string, embedder Embedder, counter TokenCounter, opts ...Option) (*Store, error) {
	s := New(embedder, counter, opts...)

	f, err := os.Open(path + ".index")
	switch {
	case os.IsNotExist(err):
		// No index artifact: an empty store.
	case err != nil:
		return nil, fmt.Errorf("opening index artifact: %w", err)
	default:
		defer f.Close()
		var artifact indexArtifact
		if err := gob.NewDecoder(f).Decode(&artifact); err != nil {
			return nil, fmt.Errorf("decoding index artifact: %w", err)
		}
		s.index = &flatIndex{dimension: artifact.Dimension, vectors: artifact.Vectors}
	}

	meta, err := os.ReadFile(path + ".json")
	switch {
	case os.IsNotExist(err):
		// No metadata artifact.
	case err != nil:
		return nil, fmt.Errorf("reading paper metadata: %w", err)
	default:
		var papers []types.Paper
		if err := json.Unmarshal(meta, &papers); err != nil {
			return nil, fmt.Errorf("parsing paper metadata: %w", err)
		}
		s.papers = papers
	}

	return s, nil
}

// sessionIDFromPath extracts the session identifier from a snapshot base
// path like "vectorstore/store_ab12cd34" -> "ab12cd34".
func sessionIDFromPath(path string) string {
	base := filepath.Base(path)
	if i := strings.LastIndex(base, "_"); i >= 0 {
		return base[i+1:]
	}
	return base
}
