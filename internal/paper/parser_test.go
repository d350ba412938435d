// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package paper

import (
	"bytes"
	"context"
	"encoding/xml"
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/paper-engine/internal/feed"
	"github.com/pdiddy/paper-engine/pkg/types"
)

// fakeEnricher records calls in order and returns canned results.
type fakeEnricher struct {
	cites    *types.CitationRecord
	citesErr error
	text     string
	textErr  error
	calls    []string
}

func (f *fakeEnricher) Citations(_ context.Context, id string) (*types.CitationRecord, error) {
	f.calls = append(f.calls, "citations:"+id)
	if f.citesErr != nil {
		return nil, f.citesErr
	}
	return f.cites, nil
}

func (f *fakeEnricher) FullText(_ context.Context, id string) (string, error) {
	f.calls = append(f.calls, "fulltext:"+id)
	if f.textErr != nil {
		return "", f.textErr
	}
	return f.text, nil
}

func intPtr(v int) *int { return &v }

// entry decodes a single <entry> fragment the same way a full feed would.
func entry(t *testing.T, body string) feed.Entry {
	t.Helper()
	doc := `<feed xmlns="http://www.w3.org/2005/Atom" xmlns:arxiv="http://arxiv.org/schemas/atom"><entry>` + body + `</entry></feed>`
	var f feed.Feed
	require.NoError(t, xml.Unmarshal([]byte(doc), &f))
	require.Len(t, f.Entries, 1)
	return f.Entries[0]
}

func logCapture() (*slog.Logger, *bytes.Buffer) {
	var buf bytes.Buffer
	return slog.New(slog.NewTextHandler(&buf, nil)), &buf
}

// --- Merge rules ---

func TestParseEntryEndToEnd(t *testing.T) {
	e := entry(t, `<id>http://arxiv.org/abs/2301.00001</id><title>  A Paper
Title  </title>`)
	enr := &fakeEnricher{cites: &types.CitationRecord{Citations: 150, Venue: "NeurIPS", Topics: []string{}}}
	logger, _ := logCapture()

	rec := NewParser(enr, logger).ParseEntry(context.Background(), e)

	assert.Equal(t, "2301.00001", rec.ID)
	assert.Equal(t, "A Paper Title", rec.Title)
	assert.Nil(t, rec.Abstract)
	assert.Equal(t, 150, rec.Citations)
	assert.Equal(t, types.ImpactHigh, rec.Impact)
	assert.Equal(t, "NeurIPS", rec.Venue)
	assert.Equal(t, "https://arxiv.org/pdf/2301.00001.pdf", rec.URL)
	assert.Nil(t, rec.Institution)
}

func TestParseEntryMissingTitle(t *testing.T) {
	rec := NewParser(nil, nil).ParseEntry(context.Background(), entry(t, `<id>http://arxiv.org/abs/1</id>`))
	assert.Equal(t, "No title", rec.Title)
}

func TestParseEntryImpactBoundary(t *testing.T) {
	tests := []struct {
		citations int
		want      types.Impact
	}{
		{0, types.ImpactLow},
		{100, types.ImpactLow},
		{101, types.ImpactHigh},
	}
	for _, tt := range tests {
		enr := &fakeEnricher{cites: &types.CitationRecord{Citations: tt.citations, Venue: "arXiv"}}
		rec := NewParser(enr, nil).ParseEntry(context.Background(), entry(t, `<id>http://arxiv.org/abs/x</id>`))
		assert.Equal(t, tt.want, rec.Impact, "citations=%d", tt.citations)
	}
}

func TestParseEntryCitationTopicsOverrideCategories(t *testing.T) {
	e := entry(t, `<id>http://arxiv.org/abs/x</id><category term="cs.CL"/><category term="cs.LG"/>`)

	enr := &fakeEnricher{cites: &types.CitationRecord{Venue: "arXiv", Topics: []string{"Transformer"}}}
	rec := NewParser(enr, nil).ParseEntry(context.Background(), e)
	assert.Equal(t, []string{"Transformer"}, rec.Topics)

	enr = &fakeEnricher{cites: &types.CitationRecord{Venue: "arXiv", Topics: []string{}}}
	rec = NewParser(enr, nil).ParseEntry(context.Background(), e)
	assert.Equal(t, []string{"cs.CL", "cs.LG"}, rec.Topics, "empty citation topics fall back to categories")
}

func TestParseEntryYearPrecedence(t *testing.T) {
	tests := []struct {
		name      string
		published string
		cites     *types.CitationRecord
		want      int
	}{
		{"citation year wins", "<published>2019-01-01T00:00:00Z</published>", &types.CitationRecord{Year: intPtr(2020)}, 2020},
		{"feed year when citation has none", "<published>2019-01-01T00:00:00Z</published>", &types.CitationRecord{}, 2019},
		{"default when neither", "", &types.CitationRecord{}, 2024},
		{"unparsable feed year", "<published>20xx-01-01</published>", nil, 2024},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			enr := &fakeEnricher{cites: tt.cites}
			if tt.cites == nil {
				enr.citesErr = errors.New("unavailable")
			}
			rec := NewParser(enr, nil).ParseEntry(context.Background(), entry(t, `<id>http://arxiv.org/abs/x</id>`+tt.published))
			assert.Equal(t, tt.want, rec.Year)
		})
	}
}

func TestParseEntryCitationFailureDegrades(t *testing.T) {
	e := entry(t, `<id>http://arxiv.org/abs/2201.1</id><published>2022-03-01T00:00:00Z</published><category term="cs.AI"/>`)
	enr := &fakeEnricher{citesErr: errors.New("HTTP 503 from semantic scholar"), text: "body"}
	logger, logs := logCapture()

	rec := NewParser(enr, logger).ParseEntry(context.Background(), e)

	assert.Equal(t, 0, rec.Citations)
	assert.Equal(t, 0, rec.References)
	assert.Equal(t, types.ImpactLow, rec.Impact)
	assert.Equal(t, "arXiv", rec.Venue)
	assert.Equal(t, []string{"cs.AI"}, rec.Topics)
	assert.Equal(t, 2022, rec.Year)
	assert.Equal(t, "body", rec.FullText, "full text is fetched even when citations fail")
	assert.Contains(t, logs.String(), "level=WARN")
	assert.Contains(t, logs.String(), "citation lookup failed")
}

func TestParseEntryFullTextFailure(t *testing.T) {
	enr := &fakeEnricher{cites: &types.CitationRecord{Citations: 7, Venue: "ICML"}, text: "partial", textErr: errors.New("decoding PDF: bad")}
	logger, logs := logCapture()

	rec := NewParser(enr, logger).ParseEntry(context.Background(), entry(t, `<id>http://arxiv.org/abs/x</id>`))

	assert.Equal(t, "", rec.FullText)
	assert.Equal(t, 7, rec.Citations, "citation data survives a PDF failure")
	assert.Equal(t, "ICML", rec.Venue)
	assert.Contains(t, logs.String(), "full text extraction failed")
}

func TestParseEntryFetchOrder(t *testing.T) {
	enr := &fakeEnricher{cites: &types.CitationRecord{}}
	NewParser(enr, nil).ParseEntry(context.Background(), entry(t, `<id>http://arxiv.org/abs/2301.1v2</id>`))
	assert.Equal(t, []string{"citations:2301.1v2", "fulltext:2301.1v2"}, enr.calls)
}

// --- Missing identifier ---

func TestParseEntryWithoutIDGetsUniqueUUID(t *testing.T) {
	enr := &fakeEnricher{cites: &types.CitationRecord{Citations: 500}}
	p := NewParser(enr, nil)

	seen := map[string]bool{}
	for i := 0; i < 20; i++ {
		rec := p.ParseEntry(context.Background(), entry(t, `<title>Untracked</title>`))
		assert.Len(t, rec.ID, 36)
		assert.False(t, seen[rec.ID], "duplicate id %s", rec.ID)
		seen[rec.ID] = true
		assert.Equal(t, "", rec.URL)
		assert.Equal(t, types.ImpactLow, rec.Impact)
	}
	assert.Empty(t, enr.calls, "entries without an identifier are not enriched")
}

func TestParseEntryDefaults(t *testing.T) {
	rec := NewParser(nil, nil).ParseEntry(context.Background(), entry(t, ``))

	assert.Equal(t, "No title", rec.Title)
	assert.NotNil(t, rec.Authors)
	assert.Empty(t, rec.Authors)
	assert.Nil(t, rec.Abstract)
	assert.Equal(t, 2024, rec.Year)
	assert.NotNil(t, rec.Topics)
	assert.Equal(t, "arXiv", rec.Venue)
	assert.Equal(t, "", rec.FullText)
}
