package health

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeChecker struct {
	name string
	err  error
}

func (f fakeChecker) Name() string                          { return f.name }
func (f fakeChecker) CheckHealth(ctx context.Context) error { return f.err }

func performHealthRequest(t *testing.T, checkers ...HealthChecker) *httptest.ResponseRecorder {
	e := echo.New()
	RegisterHealthEndpoints(e, "locator", "test", checkers...)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestHealthAllDependenciesOK(t *testing.T) {
	rec := performHealthRequest(t, fakeChecker{name: "redis"})

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"status":"ok"`)
	assert.Contains(t, rec.Body.String(), `"redis":"ok"`)
}

func TestHealthDegradedDependency(t *testing.T) {
	rec := performHealthRequest(t, fakeChecker{name: "redis", err: errors.New("connection refused")})

	require.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Contains(t, rec.Body.String(), `"status":"degraded"`)
	assert.Contains(t, rec.Body.String(), "connection refused")
}

func TestHealthNoCheckers(t *testing.T) {
	rec := performHealthRequest(t)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestReadinessProbe(t *testing.T) {
	e := echo.New()
	RegisterHealthEndpoints(e, "locator", "test")

	req := httptest.NewRequest(http.MethodGet, "/ready", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "OK", rec.Body.String())
}
