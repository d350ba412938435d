// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the paper-engine CLI.
package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/paper-engine/internal/config"
	"github.com/pdiddy/paper-engine/internal/enrich"
	"github.com/pdiddy/paper-engine/internal/feed"
	"github.com/pdiddy/paper-engine/internal/paper"
	"github.com/pdiddy/paper-engine/internal/secrets"
	"github.com/pdiddy/paper-engine/pkg/types"
)

// version is set at build time via ldflags.
var version = "dev"

// Resolved once per invocation by the root PersistentPreRunE.
var (
	appConfig types.Config
	logger    *slog.Logger
)

// rootCmd is the base command for the paper-engine CLI.
var rootCmd = &cobra.Command{
	Use:   "paper-engine",
	Short: "Search arXiv and enrich results with citations and full text",
	Long: `paper-engine searches the arXiv catalog and turns each result into a
paper record enriched with Semantic Scholar citation statistics and, when
enabled, the text of the paper's PDF.

Use search and paper from the command line, or serve to expose the same
data over HTTP.`,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: setup,
}

func init() {
	rootCmd.PersistentFlags().String("config", "", "config file (default: ./paper-engine.yaml or $XDG_CONFIG_HOME/paper-engine/paper-engine.yaml)")
}

// setup loads .env, configuration, the logger, and secrets, in that order.
func setup(cmd *cobra.Command, _ []string) error {
	// A missing .env file is normal.
	_ = godotenv.Load()

	cfgFile, _ := cmd.Flags().GetString("config")
	used, err := config.Init(viper.GetViper(), cfgFile)
	if err != nil {
		return err
	}

	cfg, err := config.Load(viper.GetViper())
	if err != nil {
		return err
	}

	logger, err = config.NewLogger(cfg.Log, os.Stderr)
	if err != nil {
		return err
	}
	slog.SetDefault(logger)
	if used != "" {
		logger.Debug("using config file", "path", used)
	}

	s, err := secrets.Load(secrets.DefaultDir, logger)
	if err != nil {
		return err
	}
	if len(s) > 0 {
		logger.Debug("loaded secrets", "keys", s.Keys())
	}
	cfg.Enrichment.SemanticScholarAPIKey = s.Fallback(secrets.SemanticScholarAPIKey, cfg.Enrichment.SemanticScholarAPIKey)

	appConfig = cfg
	return nil
}

// newService wires the feed client, enrichment client, and parser from
// cfg.
func newService(cfg types.Config) *paper.Service {
	source := feed.NewClient(cfg.Feed)
	enricher := enrich.NewClient(cfg.Enrichment, nil, logger)
	return paper.NewService(source, paper.NewParser(enricher, logger), logger)
}

// applyFullTextFlag disables full-text retrieval when --no-full-text is set.
func applyFullTextFlag(cmd *cobra.Command, cfg types.Config) types.Config {
	if noFullText, _ := cmd.Flags().GetBool("no-full-text"); noFullText {
		cfg.Enrichment.FullText = false
	}
	return cfg
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}
