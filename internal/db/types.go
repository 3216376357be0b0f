package db

import (
	"time"

	"github.com/google/uuid"
)

// User represents an account that owns application records.
type User struct {
	ID           uuid.UUID `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"` // never serialized
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// Application statuses. APPLIED is the initial state and the only one the
// scrape pipeline ever produces.
const (
	StatusApplied      = "APPLIED"
	StatusInterviewing = "INTERVIEWING"
	StatusOffered      = "OFFERED"
	StatusRejected     = "REJECTED"
	StatusWithdrawn    = "WITHDRAWN"
	StatusAccepted     = "ACCEPTED"
)

// Statuses lists every valid application status.
func Statuses() []string {
	return []string{
		StatusApplied, StatusInterviewing, StatusOffered,
		StatusRejected, StatusWithdrawn, StatusAccepted,
	}
}

// Application represents one tracked job application, always owned by a user.
type Application struct {
	ID          uuid.UUID `json:"id"`
	UserID      uuid.UUID `json:"user_id"`
	Company     string    `json:"company"`
	Position    string    `json:"position"`
	Location    *string   `json:"location,omitempty"`
	Salary      *string   `json:"salary,omitempty"`
	Status      string    `json:"status"`
	AppliedDate time.Time `json:"applied_date"`
	Notes       *string   `json:"notes,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
