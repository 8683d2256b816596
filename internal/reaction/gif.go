// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package reaction

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"math/rand"
	"net/http"
	"net/url"
)

// giphyAPIBase is the Giphy search endpoint, a variable so tests can
// point the client at a local server.
var giphyAPIBase = "https://api.giphy.com/v1/gifs/search"

const (
	defaultGifLimit  = 10
	defaultGifRating = "g"
)

// randIntn picks a random index; replaced in tests for determinism.
var randIntn = rand.Intn

// GifClient looks up reaction GIFs on Giphy. The GIF is decorative, so
// every failure mode resolves to an empty URL rather than an error.
type GifClient struct {
	apiKey     string
	httpClient *http.Client
	baseURL    string
	limit      int
	rating     string
}

// GifOption configures a GifClient.
type GifOption func(*GifClient)

// WithGifHTTPClient replaces the HTTP client used for Giphy calls.
func WithGifHTTPClient(c *http.Client) GifOption {
	return func(g *GifClient) { g.httpClient = c }
}

// WithGifBaseURL overrides the Giphy search endpoint.
func WithGifBaseURL(base string) GifOption {
	return func(g *GifClient) { g.baseURL = base }
}

// WithGifLimit sets how many candidates to request per search.
func WithGifLimit(n int) GifOption {
	return func(g *GifClient) { g.limit = n }
}

// WithGifRating sets the content rating filter.
func WithGifRating(rating string) GifOption {
	return func(g *GifClient) { g.rating = rating }
}

// NewGifClient returns a client for the Giphy search API.
func NewGifClient(apiKey string, opts ...GifOption) *GifClient {
	g := &GifClient{
		apiKey:     apiKey,
		httpClient: http.DefaultClient,
		baseURL:    giphyAPIBase,
		limit:      defaultGifLimit,
		rating:     defaultGifRating,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

type giphyResponse struct {
	Data []struct {
		Images struct {
			Original struct {
				URL string `json:"url"`
			} `json:"original"`
		} `json:"images"`
	} `json:"data"`
}

// Search returns the original-size URL of a random GIF matching the
// emotion keyword. A missing API key, transport error, non-200 status,
// bad JSON, or empty result set all return ("", nil).
func (g *GifClient) Search(ctx context.Context, emotion string) (string, error) {
	if g.apiKey == "" {
		return "", nil
	}
	params := url.Values{}
	params.Set("api_key", g.apiKey)
	params.Set("q", emotion)
	params.Set("limit", fmt.Sprintf("%d", g.limit))
	params.Set("rating", g.rating)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, g.baseURL+"?"+params.Encode(), nil)
	if err != nil {
		return "", nil
	}
	resp, err := g.httpClient.Do(req)
	if err != nil {
		return "", nil
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return "", nil
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", nil
	}
	var parsed giphyResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return "", nil
	}
	if len(parsed.Data) == 0 {
		return "", nil
	}
	pick := parsed.Data[randIntn(len(parsed.Data))]
	return pick.Images.Original.URL, nil
}
