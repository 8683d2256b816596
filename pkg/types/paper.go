// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines shared data structures for the FakePaperia pipeline:
// papers collected from the DBpia search API, per-search aggregation results,
// and the section-structured papers produced by the generator.
package types

// Paper holds one bibliographic record from the DBpia search API, enriched
// with the abstract scraped from its detail page. A Paper is immutable once
// returned by the fetcher. Title is the dedup identity across keywords.
type Paper struct {
	// Title is the paper title with highlight markup stripped.
	Title string `json:"title" yaml:"title"`

	// Link is the detail-page URL for the paper.
	Link string `json:"link" yaml:"link"`

	// IsFree reports whether the full text is freely available.
	IsFree bool `json:"is_free" yaml:"is_free"`

	// HasPreview reports whether a preview is available.
	HasPreview bool `json:"has_preview" yaml:"has_preview"`

	// PreviewURL is the preview location, empty when HasPreview is false.
	PreviewURL string `json:"preview_url,omitempty" yaml:"preview_url,omitempty"`

	// Abstract is the scraped abstract text. The fetcher only returns
	// papers with a non-empty abstract; a Paper loaded from disk keeps
	// whatever was stored.
	Abstract string `json:"abstract" yaml:"abstract"`
}

// SearchResult is the outcome of one aggregated search: the deduplicated
// papers across all extracted keywords, the keywords themselves, and the
// query the user typed.
type SearchResult struct {
	// Papers is the deduplicated union of per-keyword fetches, in
	// first-seen order.
	Papers []Paper `json:"papers" yaml:"papers"`

	// Keywords are the 2-3 terms extracted from the original query.
	Keywords []string `json:"keywords" yaml:"keywords"`

	// OriginalQuery is the free-text query as entered by the user.
	OriginalQuery string `json:"original_query" yaml:"original_query"`
}

// GeneratedPaper is a fabricated paper split into its eight sections.
// Every field is non-empty: sections the model failed to produce are
// filled with a placeholder naming the missing section.
type GeneratedPaper struct {
	Title        string `json:"title" yaml:"title"`
	Abstract     string `json:"abstract" yaml:"abstract"`
	Introduction string `json:"introduction" yaml:"introduction"`
	Background   string `json:"background" yaml:"background"`
	Method       string `json:"method" yaml:"method"`
	Results      string `json:"results" yaml:"results"`
	Conclusion   string `json:"conclusion" yaml:"conclusion"`
	References   string `json:"references" yaml:"references"`
}
