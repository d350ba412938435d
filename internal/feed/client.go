// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package feed

import (
	"bytes"
	"context"
	"encoding/xml"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/mmcdole/gofeed"

	"github.com/pdiddy/paper-engine/internal/httputil"
	"github.com/pdiddy/paper-engine/pkg/types"
)

const (
	defaultMaxResults = 25
	maxPageSize       = 2000
)

// Sort keys and orders accepted by the arXiv API.
var (
	sortKeys   = []string{"relevance", "lastUpdatedDate", "submittedDate"}
	sortOrders = []string{"ascending", "descending"}
)

// fieldPrefixes are the arXiv search field prefixes. A query that starts
// with one of them is sent unchanged.
var fieldPrefixes = []string{"ti:", "au:", "abs:", "co:", "jr:", "cat:", "rn:", "id:", "all:"}

// Query holds arXiv search parameters.
type Query struct {
	Text       string
	Start      int
	MaxResults int
	SortBy     string
	SortOrder  string
}

// Validate reports parameter errors before any request is made.
func (q Query) Validate() error {
	if strings.TrimSpace(q.Text) == "" {
		return fmt.Errorf("query is empty")
	}
	if q.Start < 0 {
		return fmt.Errorf("start must not be negative, got %d", q.Start)
	}
	if q.MaxResults < 0 || q.MaxResults > maxPageSize {
		return fmt.Errorf("max_results must be between 0 and %d, got %d", maxPageSize, q.MaxResults)
	}
	if q.SortBy != "" && !contains(sortKeys, q.SortBy) {
		return fmt.Errorf("unsupported sort_by %q (want one of %s)", q.SortBy, strings.Join(sortKeys, ", "))
	}
	if q.SortOrder != "" && !contains(sortOrders, q.SortOrder) {
		return fmt.Errorf("unsupported sort_order %q (want one of %s)", q.SortOrder, strings.Join(sortOrders, ", "))
	}
	return nil
}

// Client fetches Atom feeds from the arXiv API.
type Client struct {
	client *http.Client
	cfg    types.FeedConfig
}

// NewClient returns a Client bound to cfg. The HTTP client uses cfg.Timeout.
func NewClient(cfg types.FeedConfig) *Client {
	return &Client{client: httputil.NewClient(cfg.Timeout), cfg: cfg}
}

// Search runs a search_query request.
func (c *Client) Search(ctx context.Context, q Query) (*Feed, error) {
	if err := q.Validate(); err != nil {
		return nil, err
	}

	maxResults := q.MaxResults
	if maxResults == 0 {
		maxResults = c.cfg.MaxResults
	}
	if maxResults <= 0 {
		maxResults = defaultMaxResults
	}
	sortBy := q.SortBy
	if sortBy == "" {
		sortBy = "relevance"
	}
	sortOrder := q.SortOrder
	if sortOrder == "" {
		sortOrder = "descending"
	}

	params := url.Values{
		"search_query": {buildSearchQuery(q.Text)},
		"start":        {strconv.Itoa(q.Start)},
		"max_results":  {strconv.Itoa(maxResults)},
		"sortBy":       {sortBy},
		"sortOrder":    {sortOrder},
	}
	return c.fetch(ctx, params)
}

// Lookup fetches the entry for a single arXiv identifier via id_list.
func (c *Client) Lookup(ctx context.Context, id string) (*Feed, error) {
	id = strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(id), "arXiv:"))
	if id == "" {
		return nil, fmt.Errorf("empty arXiv identifier")
	}
	return c.fetch(ctx, url.Values{"id_list": {id}})
}

func (c *Client) fetch(ctx context.Context, params url.Values) (*Feed, error) {
	reqURL := c.cfg.BaseURL + "?" + params.Encode()
	body, err := httputil.Get(ctx, c.client, reqURL, map[string]string{
		"User-Agent": c.cfg.UserAgent,
	})
	if err != nil {
		return nil, fmt.Errorf("arXiv API request: %w", err)
	}
	return Decode(body)
}

// Decode parses an arXiv Atom document. It rejects anything that does not
// sniff as Atom and turns the API's in-band error entries into errors.
func Decode(data []byte) (*Feed, error) {
	if ft := gofeed.DetectFeedType(bytes.NewReader(data)); ft != gofeed.FeedTypeAtom {
		return nil, fmt.Errorf("parsing arXiv response: not an Atom feed")
	}

	var f Feed
	if err := xml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parsing arXiv response: %w", err)
	}

	for _, e := range f.Entries {
		if e.ID != nil && strings.Contains(*e.ID, "/api/errors") {
			msg := "unknown error"
			if e.Summary != nil {
				msg = strings.TrimSpace(*e.Summary)
			}
			return nil, fmt.Errorf("arXiv API error: %s", msg)
		}
	}
	return &f, nil
}

// buildSearchQuery prefixes plain free text with "all:".
func buildSearchQuery(text string) string {
	text = strings.TrimSpace(text)
	for _, p := range fieldPrefixes {
		if strings.HasPrefix(text, p) {
			return text
		}
	}
	return "all:" + text
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
