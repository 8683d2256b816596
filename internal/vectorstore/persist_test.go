// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package vectorstore

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/fakepaperia/fakepaperia/pkg/types"
)

func TestSaveLoadRoundTrip(t *testing.T) {
	dir := t.TempDir()
	base := filepath.Join(dir, "store_ab12cd34")

	embedder := &mockEmbedder{vectors: map[string][]float32{}}
	s := newTestStore(embedder)
	s.index.Add([][]float32{{1, 0, 0}, {0, 1, 0}})
	s.papers = []types.Paper{
		abstractPaper("첫째", "초록 하나."),
		abstractPaper("둘째", "초록 둘."),
	}

	if err := s.Save(base); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	for _, suffix := range []string{".index", ".json", ".id"} {
		if _, err := os.Stat(base + suffix); err != nil {
			t.Errorf("missing artifact %s: %v", suffix, err)
		}
	}
	id, err := os.ReadFile(base + ".id")
	if err != nil {
		t.Fatalf("reading id artifact: %v", err)
	}
	if string(id) != "ab12cd34" {
		t.Errorf("session id = %q, want suffix after last underscore", id)
	}

	loaded, err := Load(base, embedder, wordCounter{}, WithDimension(3))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if loaded.index.Len() != len(loaded.papers) {
		t.Fatalf("alignment broken after load: %d vs %d", loaded.index.Len(), len(loaded.papers))
	}
	if loaded.Len() != 2 || loaded.papers[0].Title != "첫째" || loaded.papers[1].Title != "둘째" {
		t.Errorf("papers after load = %+v", loaded.papers)
	}

	// Ordinal i must still map to papers[i]: the vector stored for paper 0
	// must be its nearest neighbour.
	embedder.vectors["q"] = []float32{1, 0, 0}
	got, err := loaded.SearchSimilar(context.Background(), "q", 1)
	if err != nil {
		t.Fatalf("SearchSimilar() after load: %v", err)
	}
	if len(got) != 1 || got[0].Title != "첫째" {
		t.Errorf("nearest after load = %+v, want paper 0", got)
	}
}

func TestSearchSimilarTornSnapshot(t *testing.T) {
	dir := t.TempDir()
	base := filepath.Join(dir, "store_torn1234")

	embedder := &mockEmbedder{vectors: map[string][]float32{}}
	s := newTestStore(embedder)
	s.index.Add([][]float32{{1, 0, 0}, {0, 1, 0}})
	s.papers = []types.Paper{
		abstractPaper("첫째", "초록 하나."),
		abstractPaper("둘째", "초록 둘."),
	}
	if err := s.Save(base); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	// A torn write leaves the metadata artifact with fewer papers than
	// the index holds vectors.
	truncated, err := json.Marshal(s.papers[:1])
	if err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(base+".json", truncated, 0o644); err != nil {
		t.Fatal(err)
	}

	loaded, err := Load(base, embedder, wordCounter{}, WithDimension(3))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	// The nearest hit maps to the missing paper; it must be dropped,
	// not indexed past the end of the restored metadata.
	embedder.vectors["q"] = []float32{0, 1, 0}
	got, err := loaded.SearchSimilar(context.Background(), "q", 5)
	if err != nil {
		t.Fatalf("SearchSimilar() error = %v", err)
	}
	if len(got) != 0 {
		t.Errorf("results = %+v, want none: the surviving paper is past the threshold", got)
	}
}

func TestLoadMissingArtifacts(t *testing.T) {
	loaded, err := Load(filepath.Join(t.TempDir(), "store_none"), &mockEmbedder{}, wordCounter{})
	if err != nil {
		t.Fatalf("Load() error = %v, missing artifacts should yield an empty store", err)
	}
	if loaded.Len() != 0 {
		t.Errorf("Len() = %d, want 0", loaded.Len())
	}
}

func TestExpire(t *testing.T) {
	dir := t.TempDir()

	oldFile := filepath.Join(dir, "store_old.index")
	newFile := filepath.Join(dir, "store_new.index")
	for _, f := range []string{oldFile, newFile} {
		if err := os.WriteFile(f, []byte("x"), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	stale := time.Now().Add(-48 * time.Hour)
	if err := os.Chtimes(oldFile, stale, stale); err != nil {
		t.Fatal(err)
	}

	var buf bytes.Buffer
	removed, err := Expire(dir, 24*time.Hour, &buf)
	if err != nil {
		t.Fatalf("Expire() error = %v", err)
	}
	if removed != 1 {
		t.Errorf("removed = %d, want 1", removed)
	}
	if _, err := os.Stat(oldFile); !os.IsNotExist(err) {
		t.Error("stale artifact should be deleted")
	}
	if _, err := os.Stat(newFile); err != nil {
		t.Error("fresh artifact should survive")
	}
}

func TestExpireMissingDir(t *testing.T) {
	removed, err := Expire(filepath.Join(t.TempDir(), "nope"), time.Hour, &bytes.Buffer{})
	if err != nil {
		t.Fatalf("Expire() error = %v, missing dir is not an error", err)
	}
	if removed != 0 {
		t.Errorf("removed = %d, want 0", removed)
	}
}
