package fetch

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/cenkalti/backoff/v4"

	"github.com/afranz/boulder-events/internal/logger"
)

const (
	// DefaultTimeout is the per-request timeout.
	DefaultTimeout = 10 * time.Second
	// DefaultDelay is the minimum gap between requests to one host.
	DefaultDelay = 1 * time.Second
	// DefaultRetries is how many times a failed request is retried.
	DefaultRetries = 2

	// UserAgent matches a desktop Chrome build. Several venue sites 406
	// anything that doesn't look like a real browser.
	UserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"
)

// browserHeaders are sent on every request. Accept-Encoding is left to the
// transport so response bodies stay transparently decompressed.
var browserHeaders = map[string]string{
	"User-Agent":                UserAgent,
	"Accept":                    "text/html,application/xhtml+xml,application/xml;q=0.9,image/avif,image/webp,image/apng,*/*;q=0.8",
	"Accept-Language":           "en-US,en;q=0.9",
	"Upgrade-Insecure-Requests": "1",
	"Sec-Fetch-Dest":            "document",
	"Sec-Fetch-Mode":            "navigate",
	"Sec-Fetch-Site":            "none",
	"Sec-Fetch-User":            "?1",
	"Cache-Control":             "max-age=0",
}

// Options configure a Client. Zero values mean defaults; Cache nil disables
// page caching.
type Options struct {
	Timeout time.Duration
	Delay   time.Duration
	Retries uint64
	Cache   *PageCache
}

// Client fetches pages over plain HTTP with browser-like headers, per-host
// rate limiting, and retry with exponential backoff.
type Client struct {
	http    *http.Client
	limiter *RateLimiter
	cache   *PageCache
	retries uint64
}

// NewClient creates a Client.
func NewClient(opts Options) *Client {
	if opts.Timeout == 0 {
		opts.Timeout = DefaultTimeout
	}
	if opts.Delay == 0 {
		opts.Delay = DefaultDelay
	}
	if opts.Retries == 0 {
		opts.Retries = DefaultRetries
	}

	return &Client{
		http:    &http.Client{Timeout: opts.Timeout},
		limiter: NewRateLimiter(opts.Delay),
		cache:   opts.Cache,
		retries: opts.Retries,
	}
}

// Get fetches a URL and returns the response body. Network errors and 5xx
// responses are retried; 4xx responses fail immediately.
func (c *Client) Get(ctx context.Context, rawURL string) ([]byte, error) {
	if c.cache != nil {
		if body, ok := c.cache.Get(rawURL); ok {
			logger.Debug("Page cache hit", logger.Fields{"url": rawURL})
			logger.IncrCounter("fetch.cache_hits")
			return []byte(body), nil
		}
	}

	u, err := url.Parse(rawURL)
	if err != nil {
		return nil, fmt.Errorf("parsing url: %w", err)
	}

	var body []byte
	operation := func() error {
		c.limiter.Wait(u.Host)

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
		if err != nil {
			return backoff.Permanent(fmt.Errorf("creating request: %w", err))
		}
		for k, v := range browserHeaders {
			req.Header.Set(k, v)
		}

		resp, err := c.http.Do(req)
		if err != nil {
			return fmt.Errorf("fetching page: %w", err)
		}
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusOK {
			err := fmt.Errorf("unexpected status code: %d", resp.StatusCode)
			if resp.StatusCode >= 400 && resp.StatusCode < 500 {
				// Client errors won't heal on retry
				return backoff.Permanent(err)
			}
			return err
		}

		data, err := io.ReadAll(resp.Body)
		if err != nil {
			return fmt.Errorf("reading body: %w", err)
		}
		body = data
		return nil
	}

	notify := func(err error, wait time.Duration) {
		logger.Warn("Retrying fetch", logger.Fields{
			"url":   rawURL,
			"error": err.Error(),
			"wait":  wait.String(),
		})
		logger.IncrCounter("fetch.retries")
	}

	b := backoff.WithContext(backoff.WithMaxRetries(backoff.NewExponentialBackOff(), c.retries), ctx)
	if err := backoff.RetryNotify(operation, b, notify); err != nil {
		return nil, err
	}

	logger.IncrCounter("fetch.requests")
	if c.cache != nil {
		c.cache.Set(rawURL, string(body))
	}
	return body, nil
}
