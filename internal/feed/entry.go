// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package feed decodes arXiv Atom search results and extracts the
// structured fields of each entry.
package feed

import (
	"encoding/xml"
	"strconv"
	"strings"

	"github.com/pdiddy/paper-engine/pkg/types"
)

// PDFBase is the public root of direct PDF links.
const PDFBase = "https://arxiv.org/pdf/"

// Feed is a decoded arXiv Atom document. Tags qualify each element with
// its Atom or OpenSearch namespace URI.
type Feed struct {
	XMLName      xml.Name `xml:"http://www.w3.org/2005/Atom feed"`
	TotalResults int      `xml:"http://a9.com/-/spec/opensearch/1.1/ totalResults"`
	Entries      []Entry  `xml:"http://www.w3.org/2005/Atom entry"`
}

// Entry is one <entry> element. Pointer fields are nil when the element is
// absent, so absence can be told apart from empty text.
type Entry struct {
	ID         *string    `xml:"http://www.w3.org/2005/Atom id"`
	Title      *string    `xml:"http://www.w3.org/2005/Atom title"`
	Summary    *string    `xml:"http://www.w3.org/2005/Atom summary"`
	Published  *string    `xml:"http://www.w3.org/2005/Atom published"`
	Authors    []Author   `xml:"http://www.w3.org/2005/Atom author"`
	Categories []Category `xml:"http://www.w3.org/2005/Atom category"`
}

// Author is an <author> element.
type Author struct {
	Name *string `xml:"http://www.w3.org/2005/Atom name"`
}

// Category is a <category> element; only its term attribute is used.
type Category struct {
	Term string `xml:"term,attr"`
}

// Fields holds the values extracted locally from one entry, before any
// enrichment. Each field is defaulted independently.
type Fields struct {
	// ID is the arXiv identifier, "" when the entry has none.
	ID       string
	Title    string
	Authors  []string
	Abstract *string
	Year     *int
	Topics   []string
}

// Extract applies the field extraction rules to e.
func (e Entry) Extract() Fields {
	f := Fields{
		Title:   types.NoTitle,
		Authors: []string{},
		Topics:  []string{},
	}

	for _, a := range e.Authors {
		if a.Name == nil {
			continue
		}
		if name := strings.TrimSpace(*a.Name); name != "" {
			f.Authors = append(f.Authors, name)
		}
	}

	if e.Title != nil {
		if t := cleanText(*e.Title); t != "" {
			f.Title = t
		}
	}

	if e.Summary != nil {
		if s := cleanText(*e.Summary); s != "" {
			f.Abstract = &s
		}
	}

	if e.ID != nil {
		f.ID = ArxivID(*e.ID)
	}

	if e.Published != nil {
		f.Year = leadingYear(*e.Published)
	}

	for _, c := range e.Categories {
		if c.Term != "" {
			f.Topics = append(f.Topics, c.Term)
		}
	}
	return f
}

// ArxivID returns the text after the last "/abs/" in an entry id URI
// (e.g. "http://arxiv.org/abs/2301.07041v1" → "2301.07041v1"). A URI
// without "/abs/" is returned whole.
func ArxivID(idURI string) string {
	idURI = strings.TrimSpace(idURI)
	const marker = "/abs/"
	if idx := strings.LastIndex(idURI, marker); idx >= 0 {
		return idURI[idx+len(marker):]
	}
	return idURI
}

// PDFURL returns the public PDF link for id, or "" when id is empty.
func PDFURL(id string) string {
	if id == "" {
		return ""
	}
	return PDFBase + id + ".pdf"
}

// cleanText trims surrounding whitespace and turns each newline into a
// single space.
func cleanText(s string) string {
	return strings.ReplaceAll(strings.TrimSpace(s), "\n", " ")
}

// leadingYear parses the first four characters of a timestamp.
func leadingYear(published string) *int {
	published = strings.TrimSpace(published)
	if len(published) < 4 {
		return nil
	}
	y, err := strconv.Atoi(published[:4])
	if err != nil {
		return nil
	}
	return &y
}
