package types

import "time"

// HTTPConfig holds shared HTTP settings used by every outbound call.
type HTTPConfig struct {
	// Timeout bounds each request, including reading the body.
	Timeout time.Duration `json:"timeout" yaml:"timeout"`

	// UserAgent is the User-Agent header sent with HTTP requests
	// (e.g. "paper-engine/0.1").
	UserAgent string `json:"user_agent" yaml:"user_agent"`
}

// FeedConfig holds settings for the arXiv feed fetcher.
type FeedConfig struct {
	HTTPConfig `yaml:",inline"`

	// BaseURL is the arXiv API query endpoint.
	BaseURL string `json:"base_url" yaml:"base_url"`

	// MaxResults is the default page size for searches (default 25).
	MaxResults int `json:"max_results" yaml:"max_results"`
}

// EnrichmentConfig holds settings for the citation and full-text fetches.
// It is passed by value at construction and never mutated afterwards.
type EnrichmentConfig struct {
	HTTPConfig `yaml:",inline"`

	// SemanticScholarBaseURL is the API root; requests go to
	// {base}/paper/arXiv:{id}.
	SemanticScholarBaseURL string `json:"semantic_scholar_base_url" yaml:"semantic_scholar_base_url"`

	// SemanticScholarAPIKey is sent as x-api-key when non-empty.
	SemanticScholarAPIKey string `json:"semantic_scholar_api_key,omitempty" yaml:"semantic_scholar_api_key,omitempty"`

	// PDFBaseURL is the root for direct PDF links: {base}/{id}.pdf.
	PDFBaseURL string `json:"pdf_base_url" yaml:"pdf_base_url"`

	// FullText controls whether the PDF is downloaded and decoded.
	FullText bool `json:"full_text" yaml:"full_text"`
}

// ServerConfig holds settings for the HTTP API.
type ServerConfig struct {
	// Addr is the listen address (e.g. ":8080").
	Addr string `json:"addr" yaml:"addr"`

	// AllowedOrigins lists CORS origins.
	AllowedOrigins []string `json:"allowed_origins" yaml:"allowed_origins"`
}

// LogConfig selects the slog handler and level.
type LogConfig struct {
	Level  string `json:"level" yaml:"level"`
	Format string `json:"format" yaml:"format"`
}

// Config groups every component configuration.
type Config struct {
	Feed       FeedConfig       `json:"feed" yaml:"feed"`
	Enrichment EnrichmentConfig `json:"enrichment" yaml:"enrichment"`
	Server     ServerConfig     `json:"server" yaml:"server"`
	Log        LogConfig        `json:"log" yaml:"log"`
}
