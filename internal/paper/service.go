// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package paper

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/pdiddy/paper-engine/internal/feed"
	"github.com/pdiddy/paper-engine/pkg/types"
)

// ErrNotFound is returned by Service.Paper when the feed has no entry for
// the requested identifier.
var ErrNotFound = errors.New("paper not found")

// FeedSource fetches arXiv feeds. *feed.Client implements it.
type FeedSource interface {
	Search(ctx context.Context, q feed.Query) (*feed.Feed, error)
	Lookup(ctx context.Context, id string) (*feed.Feed, error)
}

// Result holds one page of parsed search results.
type Result struct {
	Papers []types.PaperRecord

	// TotalResults is the feed's total match count across all pages.
	TotalResults int
}

// Service combines a feed source with a Parser.
type Service struct {
	source FeedSource
	parser *Parser
	logger *slog.Logger
}

// NewService returns a Service. A nil logger selects slog.Default().
func NewService(source FeedSource, parser *Parser, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{source: source, parser: parser, logger: logger}
}

// Search fetches one page of results and parses its entries in feed order,
// one at a time. Feed failures are returned; enrichment failures are not.
func (s *Service) Search(ctx context.Context, q feed.Query) (Result, error) {
	f, err := s.source.Search(ctx, q)
	if err != nil {
		return Result{}, fmt.Errorf("searching arXiv: %w", err)
	}
	s.logger.Info("feed fetched", "query", q.Text, "entries", len(f.Entries), "total_results", f.TotalResults)

	return Result{
		Papers:       s.parseAll(ctx, f.Entries),
		TotalResults: f.TotalResults,
	}, nil
}

// Paper looks up and parses a single entry by arXiv identifier.
func (s *Service) Paper(ctx context.Context, id string) (types.PaperRecord, error) {
	f, err := s.source.Lookup(ctx, id)
	if err != nil {
		return types.PaperRecord{}, fmt.Errorf("looking up %s: %w", id, err)
	}
	if len(f.Entries) == 0 {
		return types.PaperRecord{}, fmt.Errorf("%s: %w", id, ErrNotFound)
	}
	return s.parser.ParseEntry(ctx, f.Entries[0]), nil
}

func (s *Service) parseAll(ctx context.Context, entries []feed.Entry) []types.PaperRecord {
	papers := make([]types.PaperRecord, 0, len(entries))
	for _, e := range entries {
		papers = append(papers, s.parser.ParseEntry(ctx, e))
	}
	return papers
}
