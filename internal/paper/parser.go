// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package paper turns arXiv feed entries into enriched PaperRecords and
// serves searches over them.
package paper

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"github.com/pdiddy/paper-engine/internal/feed"
	"github.com/pdiddy/paper-engine/pkg/types"
)

// Enricher supplies citation data and full text for an arXiv identifier.
// *enrich.Client implements it.
type Enricher interface {
	Citations(ctx context.Context, arxivID string) (*types.CitationRecord, error)
	FullText(ctx context.Context, arxivID string) (string, error)
}

// Parser converts feed entries into PaperRecords. Enrichment failures are
// logged and never returned.
type Parser struct {
	enricher Enricher
	logger   *slog.Logger
	newID    func() string
}

// NewParser returns a Parser. A nil enricher skips enrichment entirely and
// a nil logger selects slog.Default().
func NewParser(enricher Enricher, logger *slog.Logger) *Parser {
	if logger == nil {
		logger = slog.Default()
	}
	return &Parser{
		enricher: enricher,
		logger:   logger,
		newID:    uuid.NewString,
	}
}

// ParseEntry extracts the local fields of e, fetches citation data and then
// full text (one attempt each, in that order), and merges the results.
// Entries without an identifier are not enriched.
func (p *Parser) ParseEntry(ctx context.Context, e feed.Entry) types.PaperRecord {
	f := e.Extract()

	var cites *types.CitationRecord
	var fullText string
	if f.ID != "" && p.enricher != nil {
		var err error
		cites, err = p.enricher.Citations(ctx, f.ID)
		if err != nil {
			p.logger.Warn("citation lookup failed", "arxiv_id", f.ID, "error", err)
			cites = nil
		}

		fullText, err = p.enricher.FullText(ctx, f.ID)
		if err != nil {
			p.logger.Warn("full text extraction failed", "arxiv_id", f.ID, "error", err)
			fullText = ""
		}
	}

	return p.merge(f, cites, fullText)
}

// merge builds the record. Citation data wins over feed data for year and
// topics; the feed is the fallback, then the fixed defaults.
func (p *Parser) merge(f feed.Fields, cites *types.CitationRecord, fullText string) types.PaperRecord {
	rec := types.PaperRecord{
		ID:       f.ID,
		Title:    f.Title,
		Authors:  f.Authors,
		Abstract: f.Abstract,
		Year:     types.DefaultYear,
		URL:      feed.PDFURL(f.ID),
		Topics:   f.Topics,
		Venue:    types.DefaultVenue,
		FullText: fullText,
	}
	if rec.ID == "" {
		rec.ID = p.newID()
	}
	if f.Year != nil {
		rec.Year = *f.Year
	}

	if cites != nil {
		rec.Citations = cites.Citations
		rec.InfluentialCitations = cites.InfluentialCitations
		rec.References = cites.References
		if cites.Venue != "" {
			rec.Venue = cites.Venue
		}
		if cites.Year != nil {
			rec.Year = *cites.Year
		}
		if len(cites.Topics) > 0 {
			rec.Topics = cites.Topics
		}
	}

	rec.Impact = types.ClassifyImpact(rec.Citations)
	return rec
}
