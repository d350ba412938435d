// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/pdiddy/paper-engine/pkg/types"
)

const shutdownTimeout = 10 * time.Second

// NewRouter registers the API routes on a new gin engine.
func NewRouter(h *PaperHandler, cfg types.ServerConfig) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())

	if len(cfg.AllowedOrigins) > 0 {
		r.Use(cors.New(cors.Config{
			AllowOrigins: cfg.AllowedOrigins,
			AllowMethods: []string{"GET", "OPTIONS"},
			AllowHeaders: []string{"Origin", "Content-Type"},
		}))
	}

	r.GET("/api/arxiv/search", h.Search)
	r.GET("/api/arxiv/paper/*id", h.GetPaper)
	r.GET("/health", h.GetHealth)
	return r
}

// Run serves handler on cfg.Addr until ctx is cancelled, then shuts down
// gracefully.
func Run(ctx context.Context, handler http.Handler, cfg types.ServerConfig, logger *slog.Logger) error {
	if logger == nil {
		logger = slog.Default()
	}
	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errc := make(chan error, 1)
	go func() {
		logger.Info("listening", "addr", cfg.Addr, "allowed_origins", cfg.AllowedOrigins)
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("starting server: %w", err)
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutting down server: %w", err)
	}
	return nil
}
