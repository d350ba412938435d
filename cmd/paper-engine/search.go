package main

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/pdiddy/paper-engine/internal/feed"
	"github.com/pdiddy/paper-engine/internal/paper"
)

var searchCmd = &cobra.Command{
	Use:   "search [query]",
	Short: "Search arXiv and print enriched paper records",
	Long: `Search sends the query to the arXiv API and enriches each result, one
at a time, with Semantic Scholar citation data and the text of its PDF.
Free text is searched across all fields; field-prefixed queries such as
"au:Vaswani" or "cat:cs.CL" are sent as given.

Enrichment failures never fail the command: the affected record falls back
to defaults and a warning is logged.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runSearch,
}

func init() {
	searchCmd.Flags().Int("start", 0, "index of the first result")
	searchCmd.Flags().Int("max-results", 0, "number of results (default from arxiv.max_results)")
	searchCmd.Flags().String("sort-by", "relevance", "relevance, lastUpdatedDate, or submittedDate")
	searchCmd.Flags().String("sort-order", "descending", "ascending or descending")
	searchCmd.Flags().String("format", paper.FormatNameTable, "output format: table, json, or yaml")
	searchCmd.Flags().Bool("no-full-text", false, "skip PDF download and text extraction")

	rootCmd.AddCommand(searchCmd)
}

func runSearch(cmd *cobra.Command, args []string) error {
	start, _ := cmd.Flags().GetInt("start")
	maxResults, _ := cmd.Flags().GetInt("max-results")
	sortBy, _ := cmd.Flags().GetString("sort-by")
	sortOrder, _ := cmd.Flags().GetString("sort-order")
	format, _ := cmd.Flags().GetString("format")

	q := feed.Query{
		Text:       strings.Join(args, " "),
		Start:      start,
		MaxResults: maxResults,
		SortBy:     sortBy,
		SortOrder:  sortOrder,
	}
	if err := q.Validate(); err != nil {
		return err
	}

	svc := newService(applyFullTextFlag(cmd, appConfig))
	res, err := svc.Search(cmd.Context(), q)
	if err != nil {
		return err
	}
	return paper.Format(format, res.Papers, res.TotalResults, cmd.OutOrStdout())
}
