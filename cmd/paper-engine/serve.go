package main

import (
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"

	"github.com/pdiddy/paper-engine/internal/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the search API over HTTP",
	Long: `Serve exposes GET /api/arxiv/search, GET /api/arxiv/paper/:id and
GET /health. Requests are served concurrently; within a request, entries are
enriched one at a time. The server shuts down gracefully on SIGINT or
SIGTERM.`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().String("addr", "", "listen address (default from server.addr)")
	serveCmd.Flags().Bool("no-full-text", false, "skip PDF download and text extraction")

	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg := applyFullTextFlag(cmd, appConfig)
	if addr, _ := cmd.Flags().GetString("addr"); addr != "" {
		cfg.Server.Addr = addr
	}

	gin.SetMode(gin.ReleaseMode)
	handler := server.NewPaperHandler(newService(cfg), logger)
	router := server.NewRouter(handler, cfg.Server)

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	return server.Run(ctx, router, cfg.Server, logger)
}
