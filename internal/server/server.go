// Package server provides the REST API over the application store and the
// posting-extraction pipeline.
package server

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/jordan/apptrack/internal/server/middleware"
)

// Server wires handlers, middleware, and routes into one HTTP server.
type Server struct {
	store      ApplicationStore
	scraper    JobScraper
	auth       *AuthHandler
	jwtService *JWTService
	validator  *validator.Validate
	httpServer *http.Server
}

// New creates a Server. The store is shared between the application handlers
// and the user service inside auth.
func New(store ApplicationStore, scraper JobScraper, auth *AuthHandler, jwtService *JWTService, port int) *Server {
	s := &Server{
		store:      store,
		scraper:    scraper,
		auth:       auth,
		jwtService: jwtService,
		validator:  validator.New(),
	}
	s.httpServer = &http.Server{
		Addr:         fmt.Sprintf(":%d", port),
		Handler:      withLogging(withCORS(s.routes())),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  120 * time.Second,
	}
	return s
}

// routes registers every endpoint. All application and scrape routes require
// a valid bearer token.
func (s *Server) routes() *http.ServeMux {
	mux := http.NewServeMux()
	authed := middleware.Auth(s.jwtService.AsTokenValidator())

	mux.HandleFunc("GET /health", s.handleHealth)

	mux.HandleFunc("POST /api/auth/register", s.auth.Register)
	mux.HandleFunc("POST /api/auth/login", s.auth.Login)
	mux.Handle("PUT /api/auth/password", authed(http.HandlerFunc(s.auth.UpdatePassword)))

	mux.Handle("GET /api/job-applications", authed(http.HandlerFunc(s.handleListApplications)))
	mux.Handle("POST /api/job-applications", authed(http.HandlerFunc(s.handleCreateApplication)))
	mux.Handle("GET /api/job-applications/{id}", authed(http.HandlerFunc(s.handleGetApplication)))
	mux.Handle("PUT /api/job-applications/{id}", authed(http.HandlerFunc(s.handleUpdateApplication)))
	mux.Handle("DELETE /api/job-applications/{id}", authed(http.HandlerFunc(s.handleDeleteApplication)))

	mux.Handle("POST /api/scrape-job", authed(http.HandlerFunc(s.handleScrapeJob)))

	return mux
}

// Handler exposes the fully wired handler chain, for tests.
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler
}

// Start serves until ctx is canceled, then shuts down gracefully.
func (s *Server) Start(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		log.Printf("Server listening on %s", s.httpServer.Addr)
		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	log.Println("Shutting down server...")
	return s.httpServer.Shutdown(shutdownCtx)
}

// handleHealth handles GET /health.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	jsonResponse(w, http.StatusOK, map[string]string{"status": "ok"})
}

// withCORS handles cross-origin requests, including preflight.
func withCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// withLogging logs one line per request.
func withLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		log.Printf("%s %s %v", r.Method, r.URL.Path, time.Since(start))
	})
}

// jsonResponse writes data as a JSON response with the given status.
func jsonResponse(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.Printf("Error encoding response: %v", err)
	}
}

// errorResponse writes an error message as a JSON response.
func errorResponse(w http.ResponseWriter, status int, message string) {
	jsonResponse(w, status, map[string]string{"error": message})
}
