package server

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/jordan/apptrack/internal/fetch"
	"github.com/jordan/apptrack/internal/scrape"
	"github.com/jordan/apptrack/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScrapeJobHandler(t *testing.T) {
	location := "Remote"
	scraper := &fakeScraper{result: &scrape.Result{
		Company:     "Acme",
		Position:    "Senior Go Engineer",
		Location:    &location,
		Status:      scrape.StatusApplied,
		AppliedDate: "2026-03-15",
	}}
	s := newTestServer(newFakeAppStore(), scraper)

	req := authedRequest(t, uuid.New(), http.MethodPost, "/api/scrape-job", types.ScrapeRequest{
		URL: "https://boards.example.com/jobs/123",
	})
	rec := httptest.NewRecorder()
	s.handleScrapeJob(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "https://boards.example.com/jobs/123", scraper.gotURL)

	var result scrape.Result
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result))
	assert.Equal(t, "Acme", result.Company)
	assert.Equal(t, scrape.StatusApplied, result.Status)
}

func TestScrapeJobHandler_MissingURL(t *testing.T) {
	s := newTestServer(newFakeAppStore(), &fakeScraper{})

	req := authedRequest(t, uuid.New(), http.MethodPost, "/api/scrape-job", types.ScrapeRequest{})
	rec := httptest.NewRecorder()
	s.handleScrapeJob(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "url")
}

func TestScrapeJobHandler_InvalidBody(t *testing.T) {
	s := newTestServer(newFakeAppStore(), &fakeScraper{})

	req := httptest.NewRequest(http.MethodPost, "/api/scrape-job", bytes.NewReader([]byte("not json")))
	rec := httptest.NewRecorder()
	s.handleScrapeJob(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestScrapeJobHandler_PipelineFailure(t *testing.T) {
	scraper := &fakeScraper{err: &fetch.Error{URL: "https://x", Attempts: 3, Message: "all attempts failed"}}
	s := newTestServer(newFakeAppStore(), scraper)

	req := authedRequest(t, uuid.New(), http.MethodPost, "/api/scrape-job", types.ScrapeRequest{
		URL: "https://boards.example.com/jobs/123",
	})
	rec := httptest.NewRecorder()
	s.handleScrapeJob(rec, req)

	assert.Equal(t, http.StatusBadGateway, rec.Code)
	assert.Contains(t, rec.Body.String(), "error")
}

func TestScrapeJobHandler_ValidationFailure(t *testing.T) {
	scraper := &fakeScraper{err: &scrape.ValidationError{Message: "output is not a JSON object"}}
	s := newTestServer(newFakeAppStore(), scraper)

	req := authedRequest(t, uuid.New(), http.MethodPost, "/api/scrape-job", types.ScrapeRequest{
		URL: "https://boards.example.com/jobs/123",
	})
	rec := httptest.NewRecorder()
	s.handleScrapeJob(rec, req)

	assert.Equal(t, http.StatusBadGateway, rec.Code)
}
