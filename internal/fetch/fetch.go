// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package fetch performs the HTTP round trips behind Scholar queries.
// One Client serves one query session: it carries a cookie jar so the
// session cookies Scholar sets on the first page survive into the
// follow-up profile and detail fetches.
package fetch

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"

	"github.com/pdiddy/scholar-engine/internal/httputil"
	"github.com/pdiddy/scholar-engine/pkg/types"
)

// defaultUserAgent is sent when no agent is configured. Scholar serves
// a degraded page to unknown clients, so a browser string is required.
const defaultUserAgent = "Mozilla/5.0 (X11; U; FreeBSD i386; en-US; rv:1.9.2.9) Gecko/20100913 Firefox/3.6.9"

// Client fetches Scholar pages over HTTP. Each Fetch is one blocking
// request/response round trip returning the full body.
type Client struct {
	http      *http.Client
	userAgent string
}

// NewClient returns a Client with a fresh cookie jar and the configured
// timeout and user agent.
func NewClient(cfg types.HTTPConfig) (*Client, error) {
	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, fmt.Errorf("creating cookie jar: %w", err)
	}

	ua := cfg.UserAgent
	if ua == "" {
		ua = defaultUserAgent
	}

	return &Client{
		http:      &http.Client{Timeout: cfg.Timeout, Jar: jar},
		userAgent: ua,
	}, nil
}

// Fetch retrieves pageURL and returns the response body. Any transport
// failure or non-200 status is returned as an error; the caller does
// not retry beyond the throttling backoff DoWithRetry applies.
func (c *Client) Fetch(ctx context.Context, pageURL string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return "", fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := httputil.DoWithRetry(ctx, c.http, req, 0)
	if err != nil {
		return "", fmt.Errorf("HTTP request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("HTTP %d from %s", resp.StatusCode, pageURL)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("reading response body: %w", err)
	}
	return string(body), nil
}
