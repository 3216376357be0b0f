// Package config provides environment-driven configuration for the server.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// ScrapeConfig holds the tuning knobs for the job posting extraction
// pipeline. The retry and truncation constants are configuration rather than
// literals so tests can run with small numbers.
type ScrapeConfig struct {
	MaxAttempts   int
	BackoffStep   time.Duration
	FetchTimeout  time.Duration
	MaxTextLength int
	UseBrowser    bool
}

// NewScrapeConfig reads scrape tuning from the environment. All values are
// optional; defaults match production behavior (3 attempts, 1s linear step,
// 10,000-char content cap).
func NewScrapeConfig() (*ScrapeConfig, error) {
	cfg := &ScrapeConfig{
		MaxAttempts:   3,
		BackoffStep:   1 * time.Second,
		FetchTimeout:  30 * time.Second,
		MaxTextLength: 10000,
		UseBrowser:    os.Getenv("SCRAPE_USE_BROWSER") == "true",
	}

	if v := os.Getenv("SCRAPE_MAX_ATTEMPTS"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return nil, fmt.Errorf("invalid SCRAPE_MAX_ATTEMPTS: %v", err)
		}
		cfg.MaxAttempts = n
	}
	if v := os.Getenv("SCRAPE_BACKOFF_MS"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return nil, fmt.Errorf("invalid SCRAPE_BACKOFF_MS: %v", err)
		}
		cfg.BackoffStep = time.Duration(n) * time.Millisecond
	}
	if v := os.Getenv("SCRAPE_MAX_TEXT_CHARS"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return nil, fmt.Errorf("invalid SCRAPE_MAX_TEXT_CHARS: %v", err)
		}
		cfg.MaxTextLength = n
	}

	if err := cfg.normalize(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// normalize validates the configuration.
func (c *ScrapeConfig) normalize() error {
	if c.MaxAttempts < 1 {
		return fmt.Errorf("SCRAPE_MAX_ATTEMPTS must be at least 1, got: %d", c.MaxAttempts)
	}
	if c.BackoffStep < 0 {
		return fmt.Errorf("SCRAPE_BACKOFF_MS must be non-negative")
	}
	if c.MaxTextLength < 1 {
		return fmt.Errorf("SCRAPE_MAX_TEXT_CHARS must be at least 1, got: %d", c.MaxTextLength)
	}
	return nil
}
