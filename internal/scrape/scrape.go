package scrape

import (
	"context"
	"log"

	"github.com/jordan/apptrack/internal/extract"
	"github.com/jordan/apptrack/internal/fetch"
	"github.com/jordan/apptrack/internal/llm"
	"github.com/jordan/apptrack/internal/prompt"
)

// Options tunes the pipeline stages. Nil sub-options use their package
// defaults.
type Options struct {
	Fetch   *fetch.Options
	Extract *extract.Options
	// UseBrowser enables the headless-browser fallback when plain HTTP yields
	// too little text to be a real posting.
	UseBrowser bool
}

// Scraper runs the extraction pipeline: fetch, extract, build prompt, infer,
// validate. It holds no per-request state; concurrent calls are independent.
type Scraper struct {
	llm  llm.Client
	opts Options
}

// New creates a Scraper backed by the given completion client.
func New(client llm.Client, opts Options) *Scraper {
	return &Scraper{llm: client, opts: opts}
}

// ScrapeJob runs the full pipeline for one URL. Either a complete Result is
// returned or the whole operation fails; there is no partial success.
func (s *Scraper) ScrapeJob(ctx context.Context, url string) (*Result, error) {
	if url == "" {
		return nil, &InvalidInputError{Message: "url is required"}
	}
	if err := fetch.ValidateURL(url); err != nil {
		return nil, &InvalidInputError{Message: err.Error()}
	}

	page, err := fetch.URL(ctx, url, s.opts.Fetch)
	if err != nil {
		return nil, err
	}

	signals := extract.HTML(page.HTML, s.opts.Extract)

	if s.opts.UseBrowser && fetch.ShouldUseBrowser(signals.CleanText) {
		if rendered, rerr := fetch.Rendered(ctx, url); rerr == nil {
			signals = extract.HTML(rendered, s.opts.Extract)
		} else {
			// Keep the HTTP content if rendering is unavailable.
			log.Printf("browser fallback failed for %s: %v", url, rerr)
		}
	}

	payload := prompt.Build(url, signals)

	rawText, err := s.llm.Complete(ctx, payload.System, payload.Content)
	if err != nil {
		return nil, err
	}

	return Validate(rawText)
}
