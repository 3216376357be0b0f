package server

import (
	"context"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/jordan/apptrack/internal/db"
	"github.com/jordan/apptrack/internal/scrape"
)

// fakeUserStore is an in-memory UserStore.
type fakeUserStore struct {
	users map[uuid.UUID]*db.User
	err   error
}

func newFakeUserStore() *fakeUserStore {
	return &fakeUserStore{users: make(map[uuid.UUID]*db.User)}
}

func (f *fakeUserStore) CreateUser(_ context.Context, name, email, passwordHash string) (uuid.UUID, error) {
	if f.err != nil {
		return uuid.Nil, f.err
	}
	id := uuid.New()
	f.users[id] = &db.User{ID: id, Name: name, Email: email, PasswordHash: passwordHash}
	return id, nil
}

func (f *fakeUserStore) GetUser(_ context.Context, userID uuid.UUID) (*db.User, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.users[userID], nil
}

func (f *fakeUserStore) GetUserByEmail(_ context.Context, email string) (*db.User, error) {
	if f.err != nil {
		return nil, f.err
	}
	for _, u := range f.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, nil
}

func (f *fakeUserStore) CheckEmailExists(_ context.Context, email string) (bool, error) {
	if f.err != nil {
		return false, f.err
	}
	u, _ := f.GetUserByEmail(context.Background(), email)
	return u != nil, nil
}

func (f *fakeUserStore) UpdatePassword(_ context.Context, userID uuid.UUID, passwordHash string) error {
	if f.err != nil {
		return f.err
	}
	u, ok := f.users[userID]
	if !ok {
		return fmt.Errorf("no such user")
	}
	u.PasswordHash = passwordHash
	return nil
}

// fakeAppStore is an in-memory ApplicationStore.
type fakeAppStore struct {
	apps map[uuid.UUID]*db.Application
	err  error
}

func newFakeAppStore() *fakeAppStore {
	return &fakeAppStore{apps: make(map[uuid.UUID]*db.Application)}
}

func (f *fakeAppStore) CreateApplication(_ context.Context, userID uuid.UUID, params db.ApplicationParams) (*db.Application, error) {
	if f.err != nil {
		return nil, f.err
	}
	app := &db.Application{
		ID:          uuid.New(),
		UserID:      userID,
		Company:     params.Company,
		Position:    params.Position,
		Location:    params.Location,
		Salary:      params.Salary,
		Status:      params.Status,
		AppliedDate: params.AppliedDate,
		Notes:       params.Notes,
	}
	f.apps[app.ID] = app
	return app, nil
}

func (f *fakeAppStore) GetApplication(_ context.Context, userID, appID uuid.UUID) (*db.Application, error) {
	if f.err != nil {
		return nil, f.err
	}
	app, ok := f.apps[appID]
	if !ok || app.UserID != userID {
		return nil, nil
	}
	return app, nil
}

func (f *fakeAppStore) ListApplications(_ context.Context, userID uuid.UUID, filters db.ApplicationFilters) ([]db.Application, error) {
	if f.err != nil {
		return nil, f.err
	}
	var out []db.Application
	for _, app := range f.apps {
		if app.UserID != userID {
			continue
		}
		if filters.Status != "" && app.Status != filters.Status {
			continue
		}
		if filters.Company != "" && !strings.Contains(strings.ToLower(app.Company), strings.ToLower(filters.Company)) {
			continue
		}
		out = append(out, *app)
	}
	return out, nil
}

func (f *fakeAppStore) UpdateApplication(_ context.Context, userID, appID uuid.UUID, params db.ApplicationParams) (*db.Application, error) {
	if f.err != nil {
		return nil, f.err
	}
	app, ok := f.apps[appID]
	if !ok || app.UserID != userID {
		return nil, nil
	}
	app.Company = params.Company
	app.Position = params.Position
	app.Location = params.Location
	app.Salary = params.Salary
	app.Status = params.Status
	app.AppliedDate = params.AppliedDate
	app.Notes = params.Notes
	return app, nil
}

func (f *fakeAppStore) DeleteApplication(_ context.Context, userID, appID uuid.UUID) (bool, error) {
	if f.err != nil {
		return false, f.err
	}
	app, ok := f.apps[appID]
	if !ok || app.UserID != userID {
		return false, nil
	}
	delete(f.apps, appID)
	return true, nil
}

// fakeScraper returns a canned result or error.
type fakeScraper struct {
	result *scrape.Result
	err    error
	gotURL string
}

func (f *fakeScraper) ScrapeJob(_ context.Context, url string) (*scrape.Result, error) {
	f.gotURL = url
	if f.err != nil {
		return nil, f.err
	}
	return f.result, nil
}

// newTestServer builds a Server around fakes, bypassing New so no listener
// configuration is needed.
func newTestServer(store ApplicationStore, scraper JobScraper) *Server {
	return &Server{
		store:     store,
		scraper:   scraper,
		validator: validator.New(),
	}
}
