// Package fetch provides the HTTP fetch collaborator used by feed
// normalizers and the content extractor. It performs single attempts with a
// bounded timeout; retry policy belongs to callers, not here.
package fetch

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"golang.org/x/time/rate"
)

// Client wraps an http.Client with default headers and a rate limiter so
// repeated per-item fetches (e.g. Hacker News detail lookups) stay polite.
type Client struct {
	httpClient *http.Client
	userAgent  string
	limiter    *rate.Limiter
}

// Options configures a fetch client.
type Options struct {
	UserAgent string
	Timeout   time.Duration
	RateLimit float64 // requests per second; <= 0 disables limiting
}

// DefaultOptions returns the fetch defaults used across the app.
func DefaultOptions() Options {
	return Options{
		UserAgent: "Mozilla/5.0 (compatible; blogsmith/1.0)",
		Timeout:   30 * time.Second,
		RateLimit: 2.0,
	}
}

// NewClient creates a fetch client with the given options.
func NewClient(opts Options) *Client {
	if opts.Timeout <= 0 {
		opts.Timeout = 30 * time.Second
	}
	var limiter *rate.Limiter
	if opts.RateLimit > 0 {
		limiter = rate.NewLimiter(rate.Limit(opts.RateLimit), 1)
	}
	return &Client{
		httpClient: &http.Client{Timeout: opts.Timeout},
		userAgent:  opts.UserAgent,
		limiter:    limiter,
	}
}

// Get fetches a URL and returns the response body. Any non-2xx status is an
// error. Extra headers override the defaults on key collision.
func (c *Client) Get(ctx context.Context, url string, headers map[string]string) ([]byte, error) {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, fmt.Errorf("rate limit wait for %s: %w", url, err)
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build request for %s: %w", url, err)
	}
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "application/json,text/html,application/xhtml+xml,application/xml")
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("failed to fetch %s: status code %d", url, resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body from %s: %w", url, err)
	}
	return body, nil
}
