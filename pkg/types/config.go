// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "time"

// HTTPConfig holds shared HTTP settings used by stages that make network requests.
type HTTPConfig struct {
	// Timeout is the HTTP request timeout.
	Timeout time.Duration `json:"timeout" yaml:"timeout"`

	// UserAgent is the User-Agent header sent with HTTP requests
	// (e.g. "fakepaperia/0.1").
	UserAgent string `json:"user_agent" yaml:"user_agent"`
}

// SearchConfig holds settings for the DBpia search and scrape stage.
type SearchConfig struct {
	HTTPConfig `yaml:",inline"`

	// APIKey authenticates against the DBpia search API. Usually supplied
	// through the DBPIA_API_KEY environment variable rather than the
	// config file.
	APIKey string `json:"api_key,omitempty" yaml:"api_key,omitempty"`

	// PageCount is how many candidate records to request per keyword
	// (default 20). A large page gives the free/preview filter enough
	// candidates to find five with visible abstracts.
	PageCount int `json:"page_count" yaml:"page_count"`

	// MaxPapers caps accepted papers per keyword (default 5). Abstract
	// scraping costs one extra round trip per candidate, so the cap
	// bounds both fetch cost and downstream context size.
	MaxPapers int `json:"max_papers" yaml:"max_papers"`

	// RequestsPerSecond throttles detail-page scrapes (default 2).
	RequestsPerSecond float64 `json:"requests_per_second" yaml:"requests_per_second"`
}

// VectorStoreConfig holds settings for the embedding index.
type VectorStoreConfig struct {
	// Dir is the directory holding snapshot artifacts (default "vectorstore").
	Dir string `json:"dir" yaml:"dir"`

	// Dimension is the embedding vector size (1536 for text-embedding-3-small).
	Dimension int `json:"dimension" yaml:"dimension"`

	// DistanceThreshold is the maximum squared L2 distance for a
	// neighbour to count as similar (default 0.5).
	DistanceThreshold float32 `json:"distance_threshold" yaml:"distance_threshold"`

	// MaxAge is how long snapshot artifacts live before the expiry
	// sweep deletes them (default 24h).
	MaxAge time.Duration `json:"max_age" yaml:"max_age"`
}

// AIConfig holds shared settings for stages that call the OpenAI API.
type AIConfig struct {
	// Model is the chat model identifier (e.g. "gpt-4.1-nano").
	Model string `json:"model" yaml:"model"`

	// EmbeddingModel is the embedding model identifier
	// (e.g. "text-embedding-3-small").
	EmbeddingModel string `json:"embedding_model" yaml:"embedding_model"`

	// APIKey is the authentication key for the API. Usually supplied
	// through the OPENAI_API_KEY environment variable.
	APIKey string `json:"api_key,omitempty" yaml:"api_key,omitempty"`
}

// GenerationConfig holds settings for the fake-paper generation stage.
type GenerationConfig struct {
	AIConfig `yaml:",inline"`

	// MaxTokens bounds the completion length; half of it is spent on the
	// retrieval context (default 4096).
	MaxTokens int `json:"max_tokens" yaml:"max_tokens"`
}

// ReactionConfig holds settings for the reaction and GIF stage.
type ReactionConfig struct {
	AIConfig `yaml:",inline"`

	// GiphyAPIKey authenticates against the Giphy search API. Usually
	// supplied through the GIPHY_API_KEY environment variable.
	GiphyAPIKey string `json:"giphy_api_key,omitempty" yaml:"giphy_api_key,omitempty"`

	// GifLimit is how many GIF candidates to request (default 10).
	GifLimit int `json:"gif_limit" yaml:"gif_limit"`

	// GifRating is the content rating filter (default "g").
	GifRating string `json:"gif_rating" yaml:"gif_rating"`

	// EmotionTablePath optionally overrides the built-in reaction
	// keyword table with a YAML file.
	EmotionTablePath string `json:"emotion_table_path,omitempty" yaml:"emotion_table_path,omitempty"`
}

// HistoryConfig holds settings for the search/paper history database.
type HistoryConfig struct {
	// Dir is the directory holding fakepaperia.db (default "history").
	Dir string `json:"dir" yaml:"dir"`
}

// ServerConfig holds settings for the web serving surface.
type ServerConfig struct {
	// Addr is the listen address (default ":8501").
	Addr string `json:"addr" yaml:"addr"`

	// StaticDir is the directory of themed UI assets served at /.
	StaticDir string `json:"static_dir" yaml:"static_dir"`

	// ExpirySchedule is the cron spec for the snapshot expiry sweep
	// (default "@hourly").
	ExpirySchedule string `json:"expiry_schedule" yaml:"expiry_schedule"`
}

// PipelineConfig groups all stage configurations.
type PipelineConfig struct {
	Search      SearchConfig      `json:"search" yaml:"search"`
	VectorStore VectorStoreConfig `json:"vector_store" yaml:"vector_store"`
	Generation  GenerationConfig  `json:"generation" yaml:"generation"`
	Reaction    ReactionConfig    `json:"reaction" yaml:"reaction"`
	History     HistoryConfig     `json:"history" yaml:"history"`
	Server      ServerConfig      `json:"server" yaml:"server"`
}

// DefaultPipelineConfig returns the configuration used when no config
// file or flags override it. The constants mirror the production
// deployment: 20-record search pages, 5-paper caps, 1536-dimension
// embeddings with a 0.5 similarity cutoff, and daily snapshot expiry.
func DefaultPipelineConfig() PipelineConfig {
	return PipelineConfig{
		Search: SearchConfig{
			HTTPConfig: HTTPConfig{
				Timeout:   30 * time.Second,
				UserAgent: "fakepaperia/0.1",
			},
			PageCount:         20,
			MaxPapers:         5,
			RequestsPerSecond: 2,
		},
		VectorStore: VectorStoreConfig{
			Dir:               "vectorstore",
			Dimension:         1536,
			DistanceThreshold: 0.5,
			MaxAge:            24 * time.Hour,
		},
		Generation: GenerationConfig{
			AIConfig: AIConfig{
				Model:          "gpt-4.1-nano",
				EmbeddingModel: "text-embedding-3-small",
			},
			MaxTokens: 4096,
		},
		Reaction: ReactionConfig{
			AIConfig: AIConfig{
				Model: "gpt-4.1-nano",
			},
			GifLimit:  10,
			GifRating: "g",
		},
		History: HistoryConfig{
			Dir: "history",
		},
		Server: ServerConfig{
			Addr:           ":8501",
			StaticDir:      "web",
			ExpirySchedule: "@hourly",
		},
	}
}
