// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package papersearch

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/fakepaperia/fakepaperia/pkg/types"
)

// FormatTable writes the search result as a human-readable table to w.
func FormatTable(result types.SearchResult, w io.Writer) {
	if len(result.Papers) == 0 {
		fmt.Fprintln(w, "No papers found.")
		return
	}

	fmt.Fprintf(w, "%-4s  %-50s  %-5s  %-8s  %s\n",
		"Rank", "Title", "Free", "Preview", "Link")
	fmt.Fprintln(w, strings.Repeat("-", 100))

	for i, p := range result.Papers {
		fmt.Fprintf(w, "%-4d  %-50s  %-5s  %-8s  %s\n",
			i+1, truncate(p.Title, 50), yesNo(p.IsFree), yesNo(p.HasPreview), p.Link)
	}

	fmt.Fprintf(w, "\n%d papers (keywords: %s)\n",
		len(result.Papers), strings.Join(result.Keywords, ", "))
}

// FormatJSON writes the search result as indented JSON to w.
func FormatJSON(result types.SearchResult, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(result)
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}

// truncate shortens s to max runes. Titles are mostly Korean, so the
// cut has to land on a rune boundary.
func truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max-3]) + "..."
}
