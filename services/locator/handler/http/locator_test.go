package http

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/retailops/locator/internal/pkg/models"
	"github.com/retailops/locator/services/locator"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubUC struct {
	url       string
	err       error
	reloadN   int
	reloadErr error
}

func (s *stubUC) ResolveByCoordinate(ctx context.Context, origin models.Coordinate) (string, error) {
	return s.url, s.err
}

func (s *stubUC) ResolveByZip(ctx context.Context, code string) (string, error) {
	return s.url, s.err
}

func (s *stubUC) Reload(ctx context.Context) (int, error) {
	return s.reloadN, s.reloadErr
}

func (s *stubUC) SnapshotSize() int { return s.reloadN }

func performRequest(uc locator.LocatorUseCase, method, target string) *httptest.ResponseRecorder {
	e := echo.New()
	h := NewLocatorHandler(uc)
	e.GET("/locator/coordinates", h.GetByCoordinates)
	e.GET("/locator/zip", h.GetByZip)
	e.POST("/locator/reload", h.Reload)
	e.GET("/locator/test", h.Test)

	req := httptest.NewRequest(method, target, nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestGetByCoordinatesSuccess(t *testing.T) {
	uc := &stubUC{url: "https://maps.example/dir/?api=1&origin=1,2&destination=3,4"}

	rec := performRequest(uc, http.MethodGet, "/locator/coordinates?coordinates=39.7392,-104.9903")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, uc.url, rec.Body.String())
}

func TestGetByCoordinatesMissingParam(t *testing.T) {
	rec := performRequest(&stubUC{}, http.MethodGet, "/locator/coordinates")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGetByCoordinatesMalformedParam(t *testing.T) {
	rec := performRequest(&stubUC{}, http.MethodGet, "/locator/coordinates?coordinates=north,west")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGetByCoordinatesRefinementFailure(t *testing.T) {
	uc := &stubUC{err: locator.ErrRefinementUnavailable}

	rec := performRequest(uc, http.MethodGet, "/locator/coordinates?coordinates=39.7,-104.9")

	require.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, locator.ErrRefinementUnavailable.Error(), rec.Body.String())
}

func TestGetByZipSuccess(t *testing.T) {
	uc := &stubUC{url: "https://maps.example/dir/?api=1&origin=1,2&destination=3,4"}

	rec := performRequest(uc, http.MethodGet, "/locator/zip?zip=80202")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, uc.url, rec.Body.String())
}

func TestGetByZipMissingParam(t *testing.T) {
	rec := performRequest(&stubUC{}, http.MethodGet, "/locator/zip")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGetByZipNotFound(t *testing.T) {
	uc := &stubUC{err: locator.ErrZipNotFound}

	rec := performRequest(uc, http.MethodGet, "/locator/zip?zip=99999")

	require.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "zip not found")
}

func TestReload(t *testing.T) {
	uc := &stubUC{reloadN: 42}

	rec := performRequest(uc, http.MethodPost, "/locator/reload")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"stores":42`)
}

func TestReloadFailure(t *testing.T) {
	uc := &stubUC{reloadErr: locator.ErrEmptyCatalog}

	rec := performRequest(uc, http.MethodPost, "/locator/reload")
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestTestEndpoint(t *testing.T) {
	rec := performRequest(&stubUC{}, http.MethodGet, "/locator/test")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "successful test", rec.Body.String())
}
