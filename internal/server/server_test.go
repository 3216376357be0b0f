package server

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRoutedServer(t *testing.T) (http.Handler, *JWTService) {
	t.Helper()
	jwtService := testJWTService()
	s := New(newFakeAppStore(), &fakeScraper{}, newTestAuthHandler(newFakeUserStore()), jwtService, 0)
	return s.Handler(), jwtService
}

func TestRoutes_Health(t *testing.T) {
	handler, _ := newRoutedServer(t)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "ok")
}

func TestRoutes_ProtectedWithoutToken(t *testing.T) {
	handler, _ := newRoutedServer(t)

	for _, target := range []string{"/api/job-applications", "/api/scrape-job"} {
		req := httptest.NewRequest(http.MethodPost, target, nil)
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusUnauthorized, rec.Code, target)
	}
}

func TestRoutes_ProtectedWithToken(t *testing.T) {
	handler, jwtService := newRoutedServer(t)

	token, err := jwtService.GenerateToken(uuid.New())
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/api/job-applications", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRoutes_CORSPreflight(t *testing.T) {
	handler, _ := newRoutedServer(t)

	req := httptest.NewRequest(http.MethodOptions, "/api/job-applications", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
	assert.Contains(t, rec.Header().Get("Access-Control-Allow-Headers"), "Authorization")
}

func TestRoutes_UnknownPath(t *testing.T) {
	handler, _ := newRoutedServer(t)

	req := httptest.NewRequest(http.MethodGet, "/api/nope", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}
