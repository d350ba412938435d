// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package server exposes paper search over HTTP.
package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/pdiddy/paper-engine/internal/feed"
	"github.com/pdiddy/paper-engine/internal/paper"
	"github.com/pdiddy/paper-engine/pkg/types"
)

// PaperService is the part of *paper.Service the handlers use.
type PaperService interface {
	Search(ctx context.Context, q feed.Query) (paper.Result, error)
	Paper(ctx context.Context, id string) (types.PaperRecord, error)
}

type PaperHandler struct {
	service PaperService
	logger  *slog.Logger
}

func NewPaperHandler(service PaperService, logger *slog.Logger) *PaperHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &PaperHandler{service: service, logger: logger}
}

// Search handles GET /api/arxiv/search and responds with a JSON array of
// paper records.
func (h *PaperHandler) Search(c *gin.Context) {
	q, err := parseQuery(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := q.Validate(); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	res, err := h.service.Search(c.Request.Context(), q)
	if err != nil {
		h.logger.Error("error searching arXiv", "query", q.Text, "error", err)
		c.JSON(http.StatusBadGateway, gin.H{"error": "arXiv request failed"})
		return
	}

	c.Header("X-Total-Results", strconv.Itoa(res.TotalResults))
	c.JSON(http.StatusOK, res.Papers)
}

// GetPaper handles GET /api/arxiv/paper/*id. The wildcard lets old-style
// identifiers such as hep-th/9901001 through.
func (h *PaperHandler) GetPaper(c *gin.Context) {
	id := strings.TrimPrefix(c.Param("id"), "/")
	if id == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing arXiv identifier"})
		return
	}

	rec, err := h.service.Paper(c.Request.Context(), id)
	if errors.Is(err, paper.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Paper not found"})
		return
	}
	if err != nil {
		h.logger.Error("error fetching paper", "arxiv_id", id, "error", err)
		c.JSON(http.StatusBadGateway, gin.H{"error": "arXiv request failed"})
		return
	}

	c.JSON(http.StatusOK, rec)
}

func (h *PaperHandler) GetHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "healthy"})
}

func parseQuery(c *gin.Context) (feed.Query, error) {
	q := feed.Query{
		Text:      c.Query("query"),
		SortBy:    c.Query("sort_by"),
		SortOrder: c.Query("sort_order"),
	}
	var err error
	if q.Start, err = getQueryInt(c, "start"); err != nil {
		return q, err
	}
	if q.MaxResults, err = getQueryInt(c, "max_results"); err != nil {
		return q, err
	}
	return q, nil
}

func getQueryInt(c *gin.Context, name string) (int, error) {
	raw := c.Query(name)
	if raw == "" {
		return 0, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q", name, raw)
	}
	return v, nil
}
