// Package fetch retrieves raw page content for job posting URLs.
// It centralizes the HTTP fetching and retry logic used by the scrape pipeline.
package fetch

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

// DefaultTimeout is the default per-request HTTP timeout.
const DefaultTimeout = 30 * time.Second

// DefaultMaxAttempts is the default number of fetch attempts before giving up.
const DefaultMaxAttempts = 3

// DefaultBackoffStep is the base wait between attempts; the wait after
// attempt n is n * DefaultBackoffStep.
const DefaultBackoffStep = 1 * time.Second

// DefaultUserAgent mimics a desktop Chrome browser. Job boards commonly
// reject requests with obvious bot user agents.
const DefaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"

// Page holds the content of a fetched URL.
type Page struct {
	URL        string
	HTML       string
	StatusCode int
}

// Error represents a terminal fetch failure after all attempts were exhausted.
type Error struct {
	URL      string
	Attempts int
	Message  string
	Cause    error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("fetch error for %s after %d attempts: %s: %v", e.URL, e.Attempts, e.Message, e.Cause)
	}
	return fmt.Sprintf("fetch error for %s after %d attempts: %s", e.URL, e.Attempts, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// Options configures fetch behavior. Zero values fall back to defaults so a
// nil Options is always usable.
type Options struct {
	Timeout     time.Duration
	MaxAttempts int
	BackoffStep time.Duration
	UserAgent   string
}

// DefaultOptions returns the production fetch configuration.
func DefaultOptions() *Options {
	return &Options{
		Timeout:     DefaultTimeout,
		MaxAttempts: DefaultMaxAttempts,
		BackoffStep: DefaultBackoffStep,
		UserAgent:   DefaultUserAgent,
	}
}

func (o *Options) normalize() {
	if o.Timeout <= 0 {
		o.Timeout = DefaultTimeout
	}
	if o.MaxAttempts <= 0 {
		o.MaxAttempts = DefaultMaxAttempts
	}
	if o.BackoffStep < 0 {
		o.BackoffStep = DefaultBackoffStep
	}
	if o.UserAgent == "" {
		o.UserAgent = DefaultUserAgent
	}
}

// ValidateURL reports whether the string parses as a well-formed absolute
// http(s) URL.
func ValidateURL(urlStr string) error {
	parsed, err := url.Parse(urlStr)
	if err != nil {
		return fmt.Errorf("invalid URL: %w", err)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return fmt.Errorf("invalid URL: scheme must be http or https")
	}
	if parsed.Host == "" {
		return fmt.Errorf("invalid URL: missing host")
	}
	return nil
}

// URL retrieves the page at urlStr, retrying failed attempts with linearly
// increasing backoff. Any non-2xx status counts as a failed attempt, not just
// transport errors. Redirects are followed by the default client policy.
func URL(ctx context.Context, urlStr string, opts *Options) (*Page, error) {
	// Normalize a copy so a shared Options is never written to.
	var o Options
	if opts != nil {
		o = *opts
	}
	o.normalize()

	if err := ValidateURL(urlStr); err != nil {
		return nil, &Error{URL: urlStr, Attempts: 0, Message: "invalid URL", Cause: err}
	}

	client := &http.Client{Timeout: o.Timeout}

	var lastErr error
	for attempt := 1; attempt <= o.MaxAttempts; attempt++ {
		page, err := fetchOnce(ctx, client, urlStr, o.UserAgent)
		if err == nil {
			return page, nil
		}
		lastErr = err

		// No wait after the final attempt.
		if attempt == o.MaxAttempts {
			break
		}

		select {
		case <-ctx.Done():
			return nil, &Error{URL: urlStr, Attempts: attempt, Message: "fetch cancelled", Cause: ctx.Err()}
		case <-time.After(time.Duration(attempt) * o.BackoffStep):
		}
	}

	return nil, &Error{
		URL:      urlStr,
		Attempts: o.MaxAttempts,
		Message:  "all attempts failed",
		Cause:    lastErr,
	}
}

// fetchOnce performs a single GET with browser-like headers.
func fetchOnce(ctx context.Context, client *http.Client, urlStr, userAgent string) (*Page, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, urlStr, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	// Realistic browser header set. Accept-Encoding is intentionally left to
	// the transport so gzip responses are decompressed automatically.
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,image/webp,*/*;q=0.8")
	req.Header.Set("Accept-Language", "en-US,en;q=0.5")
	req.Header.Set("DNT", "1")
	req.Header.Set("Connection", "keep-alive")
	req.Header.Set("Upgrade-Insecure-Requests", "1")

	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("HTTP request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("HTTP %d: %s", resp.StatusCode, http.StatusText(resp.StatusCode))
	}

	return &Page{URL: urlStr, HTML: string(body), StatusCode: resp.StatusCode}, nil
}
