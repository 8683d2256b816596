// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package dbpia queries the DBpia bibliographic search API and enriches
// free or preview records with abstracts scraped from their detail pages.
package dbpia

import (
	"context"
	"encoding/xml"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/fakepaperia/fakepaperia/pkg/types"
)

// searchAPIBase is the DBpia search endpoint. Declared as a var so tests
// can substitute an httptest server.
var searchAPIBase = "https://api.dbpia.co.kr/v2/search/search.xml"

// homeURL is the fallback link for records without a detail URL.
const homeURL = "https://www.dbpia.co.kr"

// noTitle is the placeholder title for records without one.
const noTitle = "(제목 없음)"

const (
	defaultPageCount = 20
	defaultMaxPapers = 5
)

// Client is a rate-limited client for the DBpia search API and its
// detail pages.
type Client struct {
	httpClient *http.Client
	limiter    *rate.Limiter
	baseURL    string
	pageCount  int
	maxPapers  int
	logw       io.Writer
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// WithBaseURL sets a custom search endpoint (for testing).
func WithBaseURL(url string) Option {
	return func(c *Client) {
		c.baseURL = url
	}
}

// WithLimiter sets the rate limiter used before each detail-page fetch.
func WithLimiter(l *rate.Limiter) Option {
	return func(c *Client) {
		c.limiter = l
	}
}

// WithPageCount sets how many candidate records to request per keyword.
func WithPageCount(n int) Option {
	return func(c *Client) {
		if n > 0 {
			c.pageCount = n
		}
	}
}

// WithMaxPapers caps accepted papers per keyword.
func WithMaxPapers(n int) Option {
	return func(c *Client) {
		if n > 0 {
			c.maxPapers = n
		}
	}
}

// WithLogWriter directs skip/progress messages to w instead of discarding them.
func WithLogWriter(w io.Writer) Option {
	return func(c *Client) {
		c.logw = w
	}
}

// NewClient creates a DBpia client.
func NewClient(opts ...Option) *Client {
	c := &Client{
		httpClient: &http.Client{Timeout: 30 * time.Second},
		limiter:    rate.NewLimiter(rate.Limit(2), 1),
		baseURL:    searchAPIBase,
		pageCount:  defaultPageCount,
		maxPapers:  defaultMaxPapers,
		logw:       io.Discard,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// DBpia search XML structures.
type searchResponse struct {
	Items []searchItem `xml:"item"`
}

type searchItem struct {
	Title     string `xml:"title"`
	LinkURL   string `xml:"link_url"`
	FreeYN    string `xml:"free_yn"`
	PreviewYN string `xml:"preview_yn"`
	Preview   string `xml:"preview"`
}

// FetchPapers queries the search API for keyword and returns up to the
// per-keyword cap of papers, each with a scraped, non-placeholder
// abstract. Only free or preview records are scraped; the rest cost a
// detail round trip for an abstract that is not visible anyway.
//
// Per-candidate scrape failures are skipped, never abort the batch. A
// malformed top-level response yields an empty result, not an error.
// Transport errors on the search call itself propagate.
func (c *Client) FetchPapers(ctx context.Context, keyword, apiKey string) ([]types.Paper, error) {
	params := url.Values{}
	params.Set("key", apiKey)
	params.Set("searchall", keyword)
	params.Set("target", "se")
	params.Set("pagecount", fmt.Sprintf("%d", c.pageCount))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("creating search request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("DBpia search request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("DBpia search returned HTTP %d", resp.StatusCode)
	}

	var sr searchResponse
	if err := xml.NewDecoder(resp.Body).Decode(&sr); err != nil {
		// A malformed feed means no usable candidates, not a pipeline failure.
		fmt.Fprintf(c.logw, "warning: unparseable DBpia response for %q: %v\n", keyword, err)
		return []types.Paper{}, nil
	}

	var papers []types.Paper
	for _, item := range sr.Items {
		paper := itemToPaper(item)

		if !paper.IsFree && !paper.HasPreview {
			continue
		}

		abstract, err := c.fetchAbstract(ctx, paper.Link)
		if err != nil {
			fmt.Fprintf(c.logw, "warning: detail page failed for %s: %v\n", paper.Link, err)
			continue
		}
		if abstract == "" {
			continue
		}

		paper.Abstract = abstract
		papers = append(papers, paper)
		if len(papers) >= c.maxPapers {
			break
		}
	}
	return papers, nil
}

// itemToPaper maps one search record onto a Paper, applying defaults and
// stripping the <!HS>/<!HE> highlight markers DBpia wraps matched terms in.
func itemToPaper(item searchItem) types.Paper {
	title := strings.TrimSpace(item.Title)
	if title == "" {
		title = noTitle
	}
	title = strings.ReplaceAll(title, "<!HS>", "")
	title = strings.ReplaceAll(title, "<!HE>", "")

	link := strings.TrimSpace(item.LinkURL)
	if link == "" {
		link = homeURL
	}

	hasPreview := item.PreviewYN == "Y"
	previewURL := ""
	if hasPreview {
		previewURL = strings.TrimSpace(item.Preview)
	}

	return types.Paper{
		Title:      title,
		Link:       link,
		IsFree:     item.FreeYN == "Y",
		HasPreview: hasPreview,
		PreviewURL: previewURL,
	}
}

// fetchAbstract retrieves the detail page and extracts the abstract text.
// An empty return with nil error means the page carries no usable abstract.
func (c *Client) fetchAbstract(ctx context.Context, link string) (string, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, link, nil)
	if err != nil {
		return "", fmt.Errorf("creating detail request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("fetching detail page: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", nil
	}

	return extractAbstract(resp.Body, link)
}
