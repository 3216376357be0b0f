// Package types defines the request and response shapes of the REST API.
package types

import (
	"time"

	"github.com/google/uuid"
)

// CreateUserRequest represents a registration request.
type CreateUserRequest struct {
	Name     string `json:"name" validate:"required,min=1"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
}

// LoginRequest represents a login request.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// UpdatePasswordRequest represents a password change request.
type UpdatePasswordRequest struct {
	CurrentPassword string `json:"current_password" validate:"required"`
	NewPassword     string `json:"new_password" validate:"required,min=8"`
}

// User is the API view of an account; it never carries the password hash.
type User struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// LoginResponse carries the authenticated user and a bearer token.
type LoginResponse struct {
	User  *User  `json:"user"`
	Token string `json:"token"`
}

// ApplicationRequest represents the writable fields of a job application,
// used for both create and update. AppliedDate is an ISO calendar date.
type ApplicationRequest struct {
	Company     string  `json:"company" validate:"required,min=1"`
	Position    string  `json:"position" validate:"required,min=1"`
	Location    *string `json:"location,omitempty"`
	Salary      *string `json:"salary,omitempty"`
	Status      string  `json:"status,omitempty" validate:"omitempty,oneof=APPLIED INTERVIEWING OFFERED REJECTED WITHDRAWN ACCEPTED"`
	AppliedDate string  `json:"appliedDate" validate:"required,datetime=2006-01-02"`
	Notes       *string `json:"notes,omitempty"`
}

// ScrapeRequest represents a request to auto-fill from a job posting URL.
type ScrapeRequest struct {
	URL string `json:"url" validate:"required,url"`
}
