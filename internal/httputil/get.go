// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package httputil provides the HTTP helpers shared by the feed fetcher and
// the enrichment client. Every request is a single attempt: there is no
// retry or backoff.
package httputil

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"
)

// defaultTimeout applies when a caller passes a zero timeout.
const defaultTimeout = 30 * time.Second

// maxBodyBytes caps how much of a response body Get will read (64 MiB).
const maxBodyBytes = 64 << 20

// StatusError reports a response whose status was not 200 OK.
type StatusError struct {
	URL        string
	StatusCode int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("HTTP %d from %s", e.StatusCode, e.URL)
}

// NewClient returns an http.Client whose Timeout covers the whole exchange,
// body included. The default redirect policy is kept, so redirects are
// followed.
func NewClient(timeout time.Duration) *http.Client {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &http.Client{Timeout: timeout}
}

// Get issues one GET request to url with the given headers and returns the
// response body. Empty header values are not sent. Any status other than
// 200 yields a *StatusError; the body is drained and discarded.
func Get(ctx context.Context, client *http.Client, url string, headers map[string]string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	for k, v := range headers {
		if v != "" {
			req.Header.Set(k, v)
		}
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("GET %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		io.Copy(io.Discard, io.LimitReader(resp.Body, maxBodyBytes))
		return nil, &StatusError{URL: url, StatusCode: resp.StatusCode}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, fmt.Errorf("reading response from %s: %w", url, err)
	}
	return body, nil
}
