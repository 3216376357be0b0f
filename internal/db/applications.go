package db

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

const applicationColumns = `id, user_id, company, position, location, salary, status, applied_date, notes, created_at, updated_at`

// ApplicationParams holds the writable fields of an application record.
type ApplicationParams struct {
	Company     string
	Position    string
	Location    *string
	Salary      *string
	Status      string
	AppliedDate time.Time
	Notes       *string
}

// ApplicationFilters holds optional filters for listing applications.
type ApplicationFilters struct {
	Status  string
	Company string
	Limit   int
}

// CreateApplication inserts an application owned by userID.
func (db *DB) CreateApplication(ctx context.Context, userID uuid.UUID, params ApplicationParams) (*Application, error) {
	var app Application
	err := db.pool.QueryRow(ctx,
		`INSERT INTO job_applications (user_id, company, position, location, salary, status, applied_date, notes)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		 RETURNING `+applicationColumns,
		userID, params.Company, params.Position, params.Location, params.Salary,
		params.Status, params.AppliedDate, params.Notes,
	).Scan(app.scanTargets()...)
	if err != nil {
		return nil, fmt.Errorf("failed to create application: %w", err)
	}
	return &app, nil
}

// GetApplication retrieves one application, scoped to its owner. Returns
// nil, nil when the id does not exist or belongs to another user.
func (db *DB) GetApplication(ctx context.Context, userID, appID uuid.UUID) (*Application, error) {
	var app Application
	err := db.pool.QueryRow(ctx,
		`SELECT `+applicationColumns+`
		 FROM job_applications WHERE id = $1 AND user_id = $2`,
		appID, userID,
	).Scan(app.scanTargets()...)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get application: %w", err)
	}
	return &app, nil
}

// ListApplications retrieves the owner's applications, newest first, with
// optional status and company filters.
func (db *DB) ListApplications(ctx context.Context, userID uuid.UUID, filters ApplicationFilters) ([]Application, error) {
	query, args := buildListQuery(userID, filters)

	rows, err := db.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list applications: %w", err)
	}
	defer rows.Close()

	var apps []Application
	for rows.Next() {
		var app Application
		if err := rows.Scan(app.scanTargets()...); err != nil {
			return nil, fmt.Errorf("failed to scan application: %w", err)
		}
		apps = append(apps, app)
	}
	return apps, nil
}

// buildListQuery assembles the filtered list query with positional args.
func buildListQuery(userID uuid.UUID, filters ApplicationFilters) (string, []any) {
	if filters.Limit <= 0 {
		filters.Limit = 100
	}

	query := `SELECT ` + applicationColumns + ` FROM job_applications WHERE user_id = $1`
	args := []any{userID}
	argNum := 2

	if filters.Status != "" {
		query += fmt.Sprintf(" AND status = $%d", argNum)
		args = append(args, filters.Status)
		argNum++
	}
	if filters.Company != "" {
		query += fmt.Sprintf(" AND company ILIKE $%d", argNum)
		args = append(args, "%"+filters.Company+"%")
		argNum++
	}

	query += fmt.Sprintf(" ORDER BY created_at DESC LIMIT $%d", argNum)
	args = append(args, filters.Limit)

	return query, args
}

// UpdateApplication replaces the writable fields of an owned application.
// Returns nil, nil when the id does not exist or belongs to another user.
func (db *DB) UpdateApplication(ctx context.Context, userID, appID uuid.UUID, params ApplicationParams) (*Application, error) {
	var app Application
	err := db.pool.QueryRow(ctx,
		`UPDATE job_applications
		 SET company = $1, position = $2, location = $3, salary = $4,
		     status = $5, applied_date = $6, notes = $7, updated_at = NOW()
		 WHERE id = $8 AND user_id = $9
		 RETURNING `+applicationColumns,
		params.Company, params.Position, params.Location, params.Salary,
		params.Status, params.AppliedDate, params.Notes, appID, userID,
	).Scan(app.scanTargets()...)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to update application: %w", err)
	}
	return &app, nil
}

// DeleteApplication removes an owned application. Returns false when the id
// does not exist or belongs to another user.
func (db *DB) DeleteApplication(ctx context.Context, userID, appID uuid.UUID) (bool, error) {
	result, err := db.pool.Exec(ctx,
		`DELETE FROM job_applications WHERE id = $1 AND user_id = $2`,
		appID, userID,
	)
	if err != nil {
		return false, fmt.Errorf("failed to delete application: %w", err)
	}
	return result.RowsAffected() > 0, nil
}

// scanTargets returns scan destinations matching applicationColumns order.
func (a *Application) scanTargets() []any {
	return []any{
		&a.ID, &a.UserID, &a.Company, &a.Position, &a.Location, &a.Salary,
		&a.Status, &a.AppliedDate, &a.Notes, &a.CreatedAt, &a.UpdatedAt,
	}
}
