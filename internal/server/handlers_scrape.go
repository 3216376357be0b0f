package server

import (
	"context"
	"encoding/json"
	"log"
	"net/http"

	"github.com/jordan/apptrack/internal/scrape"
	"github.com/jordan/apptrack/internal/types"
)

// JobScraper runs the posting-extraction pipeline for one URL.
// *scrape.Scraper implements it, tests supply fakes.
type JobScraper interface {
	ScrapeJob(ctx context.Context, url string) (*scrape.Result, error)
}

// handleScrapeJob handles POST /api/scrape-job. The response carries the
// extracted fields for the client to review and submit as a normal create;
// nothing is persisted here.
func (s *Server) handleScrapeJob(w http.ResponseWriter, r *http.Request) {
	var req types.ScrapeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		errorResponse(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := s.validator.Struct(req); err != nil {
		errorResponse(w, http.StatusBadRequest, "A valid url is required")
		return
	}

	result, err := s.scraper.ScrapeJob(r.Context(), req.URL)
	if err != nil {
		log.Printf("Scrape failed for %s: %v", req.URL, err)
		errorResponse(w, HTTPStatus(err), err.Error())
		return
	}

	jsonResponse(w, http.StatusOK, result)
}
