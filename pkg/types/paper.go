// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines shared data structures for paper-engine: the
// unified paper record, the citation enrichment record, and configuration.
package types

// Impact is the binary impact classification of a paper.
type Impact string

const (
	ImpactHigh Impact = "high"
	ImpactLow  Impact = "low"
)

// HighImpactThreshold is the citation count a paper must exceed to be
// classified as high impact. It is not configurable.
const HighImpactThreshold = 100

// ClassifyImpact returns ImpactHigh when citations exceed
// HighImpactThreshold and ImpactLow otherwise.
func ClassifyImpact(citations int) Impact {
	if citations > HighImpactThreshold {
		return ImpactHigh
	}
	return ImpactLow
}

const (
	// DefaultVenue is used when the citation service reports no venue.
	DefaultVenue = "arXiv"

	// DefaultYear is used when neither the feed nor the citation service
	// supplies a publication year.
	DefaultYear = 2024

	// NoTitle replaces a missing or empty feed title.
	NoTitle = "No title"
)

// CitationRecord holds enrichment data from the bibliographic-graph service.
// It is built in a single mapping step from one response payload.
type CitationRecord struct {
	// Citations is the total citation count (never negative).
	Citations int `json:"citations" yaml:"citations"`

	// InfluentialCitations is the influential-citation count.
	InfluentialCitations int `json:"influential_citations" yaml:"influential_citations"`

	// References is the length of the paper's reference list.
	References int `json:"references" yaml:"references"`

	// Venue is the publication venue, DefaultVenue when not reported.
	Venue string `json:"venue" yaml:"venue"`

	// Year is the publication year, nil when not reported.
	Year *int `json:"year" yaml:"year"`

	// Topics lists topic names in service order.
	Topics []string `json:"topics" yaml:"topics"`
}

// PaperRecord is the unified output for one feed entry. ID, Title and
// Impact are always set; every other field falls back to a default.
type PaperRecord struct {
	// ID is the arXiv identifier, or a generated UUID when the entry has none.
	ID string `json:"id" yaml:"id"`

	Title   string   `json:"title" yaml:"title"`
	Authors []string `json:"authors" yaml:"authors"`

	// Abstract is nil when the entry has no summary.
	Abstract *string `json:"abstract" yaml:"abstract"`

	Year                 int    `json:"year" yaml:"year"`
	Citations            int    `json:"citations" yaml:"citations"`
	InfluentialCitations int    `json:"influential_citations" yaml:"influential_citations"`
	References           int    `json:"references" yaml:"references"`
	Impact               Impact `json:"impact" yaml:"impact"`

	// URL is the direct PDF link, empty when the entry has no identifier.
	URL string `json:"url" yaml:"url"`

	Topics []string `json:"topics" yaml:"topics"`

	// Institution is never populated by any current source.
	Institution *string `json:"institution" yaml:"institution"`

	Venue    string `json:"venue" yaml:"venue"`
	FullText string `json:"full_text" yaml:"full_text"`
}
