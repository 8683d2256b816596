// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package dbpia

import (
	"bytes"
	"io"
	"net/url"
	"strings"
	"unicode/utf8"

	readability "github.com/go-shiori/go-readability"
	"golang.org/x/net/html"
)

// abstractClass is the class of the detail-page container holding the abstract.
const abstractClass = "abstractTxt"

// noAbstract is DBpia's literal placeholder for papers without a
// registered abstract.
const noAbstract = "등록된 정보가 없습니다."

// extractAbstract pulls the abstract text out of a detail page. It looks
// for the known abstract container first and falls back to readability
// extraction when the page layout has no such container. The literal
// "nothing registered" placeholder counts as no abstract.
func extractAbstract(r io.Reader, pageURL string) (string, error) {
	body, err := io.ReadAll(r)
	if err != nil {
		return "", err
	}

	if text, ok := abstractFromContainer(bytes.NewReader(body)); ok {
		if text == "" || text == noAbstract {
			return "", nil
		}
		return text, nil
	}

	return abstractFromReadability(bytes.NewReader(body), pageURL)
}

// abstractFromContainer walks the parsed HTML for the first element
// carrying the abstract class and returns its trimmed text. The second
// return is false when no such container exists.
func abstractFromContainer(r io.Reader) (string, bool) {
	doc, err := html.Parse(r)
	if err != nil {
		return "", false
	}

	node := findByClass(doc, abstractClass)
	if node == nil {
		return "", false
	}
	return strings.TrimSpace(nodeText(node)), true
}

// findByClass returns the first node whose class attribute contains name.
func findByClass(n *html.Node, name string) *html.Node {
	if n.Type == html.ElementNode {
		for _, attr := range n.Attr {
			if attr.Key != "class" {
				continue
			}
			for _, c := range strings.Fields(attr.Val) {
				if c == name {
					return n
				}
			}
		}
	}
	for child := n.FirstChild; child != nil; child = child.NextSibling {
		if found := findByClass(child, name); found != nil {
			return found
		}
	}
	return nil
}

// nodeText concatenates the text content beneath n.
func nodeText(n *html.Node) string {
	var b strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			b.WriteString(n.Data)
		}
		for child := n.FirstChild; child != nil; child = child.NextSibling {
			walk(child)
		}
	}
	walk(n)
	return b.String()
}

// abstractFromReadability extracts the main article text of pages that
// lack the abstract container. Long pages are cut at the first paragraph
// boundary past 2000 bytes to keep embeddings focused on the opening.
func abstractFromReadability(r io.Reader, pageURL string) (string, error) {
	u, err := url.Parse(pageURL)
	if err != nil {
		u = nil
	}

	article, err := readability.FromReader(r, u)
	if err != nil {
		return "", nil
	}

	text := strings.TrimSpace(article.TextContent)
	if text == "" || text == noAbstract {
		return "", nil
	}

	if len(text) > 2000 {
		// Back off to a rune boundary first; a byte cut can split a
		// multibyte Korean character.
		limit := 2000
		for limit > 0 && !utf8.RuneStart(text[limit]) {
			limit--
		}
		cut := text[:limit]
		if i := strings.LastIndex(cut, "\n"); i > 0 {
			cut = cut[:i]
		}
		text = strings.TrimSpace(cut)
	}
	return text, nil
}
