package server

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/jordan/apptrack/internal/db"
	"github.com/jordan/apptrack/internal/server/middleware"
	"github.com/jordan/apptrack/internal/types"
)

// ApplicationStore is the subset of storage the application handlers need;
// *db.DB implements it, tests supply fakes. Every operation is scoped to the
// owning user.
type ApplicationStore interface {
	CreateApplication(ctx context.Context, userID uuid.UUID, params db.ApplicationParams) (*db.Application, error)
	GetApplication(ctx context.Context, userID, appID uuid.UUID) (*db.Application, error)
	ListApplications(ctx context.Context, userID uuid.UUID, filters db.ApplicationFilters) ([]db.Application, error)
	UpdateApplication(ctx context.Context, userID, appID uuid.UUID, params db.ApplicationParams) (*db.Application, error)
	DeleteApplication(ctx context.Context, userID, appID uuid.UUID) (bool, error)
}

// handleListApplications handles GET /api/job-applications.
func (s *Server) handleListApplications(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.GetUserID(r)
	if err != nil {
		errorResponse(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	filters := db.ApplicationFilters{
		Status:  r.URL.Query().Get("status"),
		Company: r.URL.Query().Get("company"),
	}

	apps, err := s.store.ListApplications(r.Context(), userID, filters)
	if err != nil {
		log.Printf("Error listing applications: %v", err)
		errorResponse(w, http.StatusInternalServerError, "Failed to fetch job applications")
		return
	}
	if apps == nil {
		apps = []db.Application{}
	}

	jsonResponse(w, http.StatusOK, apps)
}

// handleCreateApplication handles POST /api/job-applications.
func (s *Server) handleCreateApplication(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.GetUserID(r)
	if err != nil {
		errorResponse(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	params, ok := s.decodeApplicationRequest(w, r)
	if !ok {
		return
	}

	app, err := s.store.CreateApplication(r.Context(), userID, *params)
	if err != nil {
		log.Printf("Error creating application: %v", err)
		errorResponse(w, http.StatusInternalServerError, "Failed to create job application")
		return
	}

	jsonResponse(w, http.StatusCreated, app)
}

// handleGetApplication handles GET /api/job-applications/{id}.
func (s *Server) handleGetApplication(w http.ResponseWriter, r *http.Request) {
	userID, appID, ok := s.authorizedApplicationID(w, r)
	if !ok {
		return
	}

	app, err := s.store.GetApplication(r.Context(), userID, appID)
	if err != nil {
		log.Printf("Error fetching application: %v", err)
		errorResponse(w, http.StatusInternalServerError, "Failed to fetch job application")
		return
	}
	if app == nil {
		errorResponse(w, http.StatusNotFound, "Job application not found")
		return
	}

	jsonResponse(w, http.StatusOK, app)
}

// handleUpdateApplication handles PUT /api/job-applications/{id}.
func (s *Server) handleUpdateApplication(w http.ResponseWriter, r *http.Request) {
	userID, appID, ok := s.authorizedApplicationID(w, r)
	if !ok {
		return
	}

	params, ok := s.decodeApplicationRequest(w, r)
	if !ok {
		return
	}

	app, err := s.store.UpdateApplication(r.Context(), userID, appID, *params)
	if err != nil {
		log.Printf("Error updating application: %v", err)
		errorResponse(w, http.StatusInternalServerError, "Failed to update job application")
		return
	}
	if app == nil {
		errorResponse(w, http.StatusNotFound, "Job application not found")
		return
	}

	jsonResponse(w, http.StatusOK, app)
}

// handleDeleteApplication handles DELETE /api/job-applications/{id}.
func (s *Server) handleDeleteApplication(w http.ResponseWriter, r *http.Request) {
	userID, appID, ok := s.authorizedApplicationID(w, r)
	if !ok {
		return
	}

	deleted, err := s.store.DeleteApplication(r.Context(), userID, appID)
	if err != nil {
		log.Printf("Error deleting application: %v", err)
		errorResponse(w, http.StatusInternalServerError, "Failed to delete job application")
		return
	}
	if !deleted {
		errorResponse(w, http.StatusNotFound, "Job application not found")
		return
	}

	jsonResponse(w, http.StatusOK, map[string]string{"message": "Job application deleted successfully"})
}

// authorizedApplicationID extracts the authenticated user and the path ID.
func (s *Server) authorizedApplicationID(w http.ResponseWriter, r *http.Request) (uuid.UUID, uuid.UUID, bool) {
	userID, err := middleware.GetUserID(r)
	if err != nil {
		errorResponse(w, http.StatusUnauthorized, "Unauthorized")
		return uuid.Nil, uuid.Nil, false
	}

	appID, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		errorResponse(w, http.StatusBadRequest, "Invalid application ID")
		return uuid.Nil, uuid.Nil, false
	}

	return userID, appID, true
}

// decodeApplicationRequest decodes, validates, and converts the request body.
func (s *Server) decodeApplicationRequest(w http.ResponseWriter, r *http.Request) (*db.ApplicationParams, bool) {
	var req types.ApplicationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		errorResponse(w, http.StatusBadRequest, "Invalid request body")
		return nil, false
	}
	if err := s.validator.Struct(req); err != nil {
		errorResponse(w, http.StatusBadRequest, validationMessage(err))
		return nil, false
	}

	appliedDate, err := time.Parse("2006-01-02", req.AppliedDate)
	if err != nil {
		errorResponse(w, http.StatusBadRequest, "Invalid appliedDate: expected YYYY-MM-DD")
		return nil, false
	}

	status := req.Status
	if status == "" {
		status = db.StatusApplied
	}

	return &db.ApplicationParams{
		Company:     req.Company,
		Position:    req.Position,
		Location:    req.Location,
		Salary:      req.Salary,
		Status:      status,
		AppliedDate: appliedDate,
		Notes:       req.Notes,
	}, true
}
