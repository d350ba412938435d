// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package config resolves paper-engine settings from defaults, an optional
// YAML file, and PAPER_ENGINE_* environment variables.
package config

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"strings"
	"time"

	"github.com/adrg/xdg"
	"github.com/spf13/viper"

	"github.com/pdiddy/paper-engine/pkg/types"
)

// Name is used for the config file, the XDG directory and the env prefix.
const Name = "paper-engine"

// Config keys.
const (
	KeyArxivBaseURL           = "arxiv.base_url"
	KeyArxivPDFBaseURL        = "arxiv.pdf_base_url"
	KeyArxivMaxResults        = "arxiv.max_results"
	KeySemanticScholarBaseURL = "semantic_scholar.base_url"
	KeySemanticScholarAPIKey  = "semantic_scholar.api_key"
	KeyHTTPTimeout            = "http.timeout"
	KeyHTTPUserAgent          = "http.user_agent"
	KeyEnrichmentFullText     = "enrichment.full_text"
	KeyServerAddr             = "server.addr"
	KeyServerAllowedOrigins   = "server.allowed_origins"
	KeyLogLevel               = "log.level"
	KeyLogFormat              = "log.format"
)

// SetDefaults registers the default value of every key on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault(KeyArxivBaseURL, "http://export.arxiv.org/api/query")
	v.SetDefault(KeyArxivPDFBaseURL, "https://arxiv.org/pdf")
	v.SetDefault(KeyArxivMaxResults, 25)
	v.SetDefault(KeySemanticScholarBaseURL, "https://api.semanticscholar.org/v1")
	v.SetDefault(KeySemanticScholarAPIKey, "")
	v.SetDefault(KeyHTTPTimeout, 30*time.Second)
	v.SetDefault(KeyHTTPUserAgent, "paper-engine/0.1 (+https://github.com/pdiddy/paper-engine)")
	v.SetDefault(KeyEnrichmentFullText, true)
	v.SetDefault(KeyServerAddr, ":8080")
	v.SetDefault(KeyServerAllowedOrigins, []string{"http://localhost:3000"})
	v.SetDefault(KeyLogLevel, "info")
	v.SetDefault(KeyLogFormat, "text")
}

// Dir returns the per-user config directory, $XDG_CONFIG_HOME/paper-engine.
func Dir() string {
	return filepath.Join(xdg.ConfigHome, Name)
}

// Init prepares v: defaults, environment binding, and the config file.
// With an empty cfgFile it searches for paper-engine.yaml in the working
// directory and then Dir(); finding none is not an error. It returns the
// path of the file read, or "".
func Init(v *viper.Viper, cfgFile string) (string, error) {
	SetDefaults(v)

	v.SetEnvPrefix(strings.ReplaceAll(strings.ToUpper(Name), "-", "_"))
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		v.SetConfigName(Name)
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath(Dir())
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if cfgFile == "" && errors.As(err, &notFound) {
			return "", nil
		}
		return "", fmt.Errorf("reading config: %w", err)
	}
	return v.ConfigFileUsed(), nil
}

// Load builds a validated types.Config from v.
func Load(v *viper.Viper) (types.Config, error) {
	httpCfg := types.HTTPConfig{
		Timeout:   v.GetDuration(KeyHTTPTimeout),
		UserAgent: v.GetString(KeyHTTPUserAgent),
	}

	cfg := types.Config{
		Feed: types.FeedConfig{
			HTTPConfig: httpCfg,
			BaseURL:    v.GetString(KeyArxivBaseURL),
			MaxResults: v.GetInt(KeyArxivMaxResults),
		},
		Enrichment: types.EnrichmentConfig{
			HTTPConfig:             httpCfg,
			SemanticScholarBaseURL: v.GetString(KeySemanticScholarBaseURL),
			SemanticScholarAPIKey:  v.GetString(KeySemanticScholarAPIKey),
			PDFBaseURL:             v.GetString(KeyArxivPDFBaseURL),
			FullText:               v.GetBool(KeyEnrichmentFullText),
		},
		Server: types.ServerConfig{
			Addr:           v.GetString(KeyServerAddr),
			AllowedOrigins: splitList(v.GetStringSlice(KeyServerAllowedOrigins)),
		},
		Log: types.LogConfig{
			Level:  v.GetString(KeyLogLevel),
			Format: v.GetString(KeyLogFormat),
		},
	}

	if err := validate(cfg); err != nil {
		return types.Config{}, err
	}
	return cfg, nil
}

// splitList flattens comma-separated elements, so a list can be given as
// one environment variable ("a,b") as well as a YAML sequence.
func splitList(values []string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		for _, part := range strings.Split(v, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}

func validate(cfg types.Config) error {
	if cfg.Feed.Timeout <= 0 {
		return fmt.Errorf("%s must be positive, got %s", KeyHTTPTimeout, cfg.Feed.Timeout)
	}
	if cfg.Feed.BaseURL == "" {
		return fmt.Errorf("%s must be set", KeyArxivBaseURL)
	}
	if cfg.Enrichment.SemanticScholarBaseURL == "" {
		return fmt.Errorf("%s must be set", KeySemanticScholarBaseURL)
	}
	if cfg.Feed.MaxResults < 0 {
		return fmt.Errorf("%s must not be negative, got %d", KeyArxivMaxResults, cfg.Feed.MaxResults)
	}
	if _, err := parseLevel(cfg.Log.Level); err != nil {
		return err
	}
	switch cfg.Log.Format {
	case "text", "json":
	default:
		return fmt.Errorf("%s must be text or json, got %q", KeyLogFormat, cfg.Log.Format)
	}
	return nil
}

// NewLogger returns a slog.Logger writing to w in the configured format
// and level.
func NewLogger(cfg types.LogConfig, w io.Writer) (*slog.Logger, error) {
	level, err := parseLevel(cfg.Level)
	if err != nil {
		return nil, err
	}
	opts := &slog.HandlerOptions{Level: level}
	if cfg.Format == "json" {
		return slog.New(slog.NewJSONHandler(w, opts)), nil
	}
	return slog.New(slog.NewTextHandler(w, opts)), nil
}

func parseLevel(s string) (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(s)); err != nil {
		return 0, fmt.Errorf("%s: %w", KeyLogLevel, err)
	}
	return level, nil
}
