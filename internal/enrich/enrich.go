// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package enrich fetches citation statistics from Semantic Scholar and the
// full text of a paper's PDF. Each fetch is a single attempt bounded by the
// configured timeout; callers decide how to degrade on error.
package enrich

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/pdiddy/paper-engine/internal/convert"
	"github.com/pdiddy/paper-engine/internal/httputil"
	"github.com/pdiddy/paper-engine/pkg/types"
)

// Client performs the enrichment fetches. It is safe for concurrent use;
// its configuration is fixed at construction.
type Client struct {
	client    *http.Client
	cfg       types.EnrichmentConfig
	converter convert.Converter
	logger    *slog.Logger
}

// NewClient returns a Client for cfg. A nil converter selects the
// in-process PDF decoder and a nil logger selects slog.Default().
func NewClient(cfg types.EnrichmentConfig, converter convert.Converter, logger *slog.Logger) *Client {
	if converter == nil {
		converter = convert.PDFConverter{}
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Client{
		client:    httputil.NewClient(cfg.Timeout),
		cfg:       cfg,
		converter: converter,
		logger:    logger,
	}
}

// Citations fetches {base}/paper/arXiv:{id} and maps the body into a
// CitationRecord. Any non-200 status, transport failure, timeout, or
// malformed body is returned as an error and no record is produced.
func (c *Client) Citations(ctx context.Context, arxivID string) (*types.CitationRecord, error) {
	reqURL := fmt.Sprintf("%s/paper/arXiv:%s", strings.TrimRight(c.cfg.SemanticScholarBaseURL, "/"), arxivID)
	c.logger.Debug("fetching citation data", "arxiv_id", arxivID, "url", reqURL)

	body, err := httputil.Get(ctx, c.client, reqURL, map[string]string{
		"User-Agent": c.cfg.UserAgent,
		"x-api-key":  c.cfg.SemanticScholarAPIKey,
	})
	if err != nil {
		return nil, fmt.Errorf("Semantic Scholar API request: %w", err)
	}

	var p semanticPaper
	if err := json.Unmarshal(body, &p); err != nil {
		return nil, fmt.Errorf("parsing Semantic Scholar response: %w", err)
	}
	rec := p.toRecord()
	return &rec, nil
}

// FullText downloads {pdf_base}/{id}.pdf, following redirects, and decodes
// it. It returns "" without a request when full text is disabled.
func (c *Client) FullText(ctx context.Context, arxivID string) (string, error) {
	if !c.cfg.FullText {
		return "", nil
	}

	pdfURL := fmt.Sprintf("%s/%s.pdf", strings.TrimRight(c.cfg.PDFBaseURL, "/"), arxivID)
	c.logger.Debug("fetching full text", "arxiv_id", arxivID, "url", pdfURL)

	body, err := httputil.Get(ctx, c.client, pdfURL, map[string]string{
		"User-Agent": c.cfg.UserAgent,
		"Accept":     "application/pdf",
	})
	if err != nil {
		return "", fmt.Errorf("downloading PDF: %w", err)
	}

	text, err := c.converter.Convert(body)
	if err != nil {
		return "", err
	}
	return text, nil
}

// Semantic Scholar paper JSON. Only the fields the record needs are decoded.
type semanticPaper struct {
	CitationCount            int               `json:"citationCount"`
	InfluentialCitationCount int               `json:"influentialCitationCount"`
	References               []json.RawMessage `json:"references"`
	Venue                    *string           `json:"venue"`
	Year                     *int              `json:"year"`
	Topics                   []semanticTopic   `json:"topics"`
}

type semanticTopic struct {
	Topic string `json:"topic"`
}

// toRecord maps a decoded response into a CitationRecord in one step.
// Topics are kept exactly as listed; only a null or empty venue is
// replaced by the default.
func (p semanticPaper) toRecord() types.CitationRecord {
	rec := types.CitationRecord{
		Citations:            max(p.CitationCount, 0),
		InfluentialCitations: max(p.InfluentialCitationCount, 0),
		References:           len(p.References),
		Venue:                types.DefaultVenue,
		Year:                 p.Year,
		Topics:               []string{},
	}
	if p.Venue != nil && *p.Venue != "" {
		rec.Venue = *p.Venue
	}
	for _, t := range p.Topics {
		rec.Topics = append(rec.Topics, t.Topic)
	}
	return rec
}
