// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package paper

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/paper-engine/pkg/types"
)

// Output formats accepted by Format.
const (
	FormatNameTable = "table"
	FormatNameJSON  = "json"
	FormatNameYAML  = "yaml"
)

// Format writes papers to w in the named format.
func Format(format string, papers []types.PaperRecord, total int, w io.Writer) error {
	switch format {
	case "", FormatNameTable:
		FormatTable(papers, total, w)
		return nil
	case FormatNameJSON:
		return FormatJSON(papers, w)
	case FormatNameYAML:
		return FormatYAML(papers, w)
	default:
		return fmt.Errorf("unknown format %q (want table, json or yaml)", format)
	}
}

// FormatTable writes papers as a human-readable table to w.
func FormatTable(papers []types.PaperRecord, total int, w io.Writer) {
	if len(papers) == 0 {
		fmt.Fprintln(w, "No results found.")
		return
	}

	fmt.Fprintf(w, "%-18s  %-50s  %-20s  %-4s  %-6s  %-4s  %s\n",
		"ID", "Title", "Authors", "Year", "Cites", "Imp.", "Venue")
	fmt.Fprintln(w, strings.Repeat("-", 120))

	for _, p := range papers {
		fmt.Fprintf(w, "%-18s  %-50s  %-20s  %-4d  %-6d  %-4s  %s\n",
			truncate(p.ID, 18), truncate(p.Title, 50), formatAuthors(p.Authors),
			p.Year, p.Citations, p.Impact, truncate(p.Venue, 20))
	}

	fmt.Fprintf(w, "\n%d results", len(papers))
	if total > len(papers) {
		fmt.Fprintf(w, " (of %d)", total)
	}
	fmt.Fprintln(w)
}

// FormatJSON writes papers as an indented JSON array to w.
func FormatJSON(papers []types.PaperRecord, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(papers)
}

// FormatYAML writes papers as a YAML sequence to w.
func FormatYAML(papers []types.PaperRecord, w io.Writer) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(papers); err != nil {
		return fmt.Errorf("encoding YAML: %w", err)
	}
	return enc.Close()
}

func formatAuthors(authors []string) string {
	switch len(authors) {
	case 0:
		return ""
	case 1:
		return truncate(authors[0], 20)
	default:
		return truncate(authors[0], 14) + " et al."
	}
}

func truncate(s string, max int) string {
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return string(r[:max-3]) + "..."
}
