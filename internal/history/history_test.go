// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package history

import (
	"context"
	"testing"

	"github.com/fakepaperia/fakepaperia/pkg/types"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := NewStore(types.HistoryConfig{Dir: t.TempDir()})
	if err != nil {
		t.Fatalf("NewStore: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestRecordAndListSearches(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	if err := s.RecordSearch(ctx, "고양이 수면", []string{"고양이", "수면 패턴"}, 4); err != nil {
		t.Fatalf("RecordSearch: %v", err)
	}
	if err := s.RecordSearch(ctx, "라면 물리학", []string{"라면"}, 2); err != nil {
		t.Fatalf("RecordSearch: %v", err)
	}

	records, err := s.RecentSearches(ctx, 10)
	if err != nil {
		t.Fatalf("RecentSearches: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("got %d records, want 2", len(records))
	}
	// Newest first.
	if records[0].Query != "라면 물리학" {
		t.Errorf("first record query = %q, want %q", records[0].Query, "라면 물리학")
	}
	if len(records[1].Keywords) != 2 || records[1].Keywords[1] != "수면 패턴" {
		t.Errorf("keywords = %v", records[1].Keywords)
	}
	if records[1].PaperCount != 4 {
		t.Errorf("paper count = %d, want 4", records[1].PaperCount)
	}
}

func TestRecentSearchesLimit(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	for i := 0; i < 5; i++ {
		if err := s.RecordSearch(ctx, "query", nil, i); err != nil {
			t.Fatal(err)
		}
	}
	records, err := s.RecentSearches(ctx, 3)
	if err != nil {
		t.Fatal(err)
	}
	if len(records) != 3 {
		t.Errorf("got %d records, want 3", len(records))
	}
}

func TestRecordAndListPapers(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	paper := types.GeneratedPaper{
		Title:        "양자 김치 발효론",
		Abstract:     "김치는 양자적으로 발효된다.",
		Introduction: "서론",
		Background:   "배경",
		Method:       "방법",
		Results:      "결과",
		Conclusion:   "결론",
		References:   "[1] 김치학회지",
	}
	if err := s.RecordPaper(ctx, "김치", paper, "헐...", "https://giphy.test/omg.gif"); err != nil {
		t.Fatalf("RecordPaper: %v", err)
	}

	records, err := s.RecentPapers(ctx, 5)
	if err != nil {
		t.Fatalf("RecentPapers: %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("got %d records, want 1", len(records))
	}
	got := records[0]
	if got.Paper != paper {
		t.Errorf("paper = %+v, want %+v", got.Paper, paper)
	}
	if got.Reaction != "헐..." || got.GifURL != "https://giphy.test/omg.gif" {
		t.Errorf("reaction/gif = %q/%q", got.Reaction, got.GifURL)
	}
	if got.Query != "김치" {
		t.Errorf("query = %q, want %q", got.Query, "김치")
	}
}

func TestEmptyStore(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	searches, err := s.RecentSearches(ctx, 10)
	if err != nil {
		t.Fatal(err)
	}
	if len(searches) != 0 {
		t.Errorf("got %d searches, want 0", len(searches))
	}
	papers, err := s.RecentPapers(ctx, 10)
	if err != nil {
		t.Fatal(err)
	}
	if len(papers) != 0 {
		t.Errorf("got %d papers, want 0", len(papers))
	}
}

func TestReopenPersists(t *testing.T) {
	dir := t.TempDir()
	s, err := NewStore(types.HistoryConfig{Dir: dir})
	if err != nil {
		t.Fatal(err)
	}
	if err := s.RecordSearch(context.Background(), "지속성", []string{"지속"}, 1); err != nil {
		t.Fatal(err)
	}
	s.Close()

	s2, err := NewStore(types.HistoryConfig{Dir: dir})
	if err != nil {
		t.Fatal(err)
	}
	defer s2.Close()
	records, err := s2.RecentSearches(context.Background(), 1)
	if err != nil {
		t.Fatal(err)
	}
	if len(records) != 1 || records[0].Query != "지속성" {
		t.Errorf("records = %+v", records)
	}
}
