// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package vectorstore

import "strings"

// The two truncation policies below encode which parts of an abstract
// carry its point: the opening states the problem, the closing states the
// findings. They are deliberately separate functions — the embedding side
// keeps more context than the prompt side, and the two are tuned
// independently.
//
// Sentence boundaries are a literal "." split. Abbreviations and decimal
// numbers mis-segment under this rule; the behaviour is intentional and
// kept as-is.

// embedKeyContent selects the first three and last two sentences of an
// abstract with more than five sentences, otherwise the whole abstract.
// Used when a paper enters the index.
func embedKeyContent(abstract string) string {
	return keySentences(abstract, 3, 2, 5)
}

// contextKeyContent selects the first two and last one sentences of an
// abstract with more than three sentences, otherwise the whole abstract.
// The tighter cut keeps prompt context within budget.
func contextKeyContent(abstract string) string {
	return keySentences(abstract, 2, 1, 3)
}

// keySentences splits text on literal periods and rejoins the leading and
// trailing slices when the sentence count exceeds threshold.
func keySentences(text string, lead, trail, threshold int) string {
	sentences := strings.Split(text, ".")
	if len(sentences) > threshold {
		selected := make([]string, 0, lead+trail)
		selected = append(selected, sentences[:lead]...)
		selected = append(selected, sentences[len(sentences)-trail:]...)
		sentences = selected
	}
	return strings.TrimSpace(strings.Join(sentences, ". "))
}
