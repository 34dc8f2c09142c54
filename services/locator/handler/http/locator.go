package http

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/retailops/locator/internal/pkg/logger"
	"github.com/retailops/locator/internal/utils"
	"github.com/retailops/locator/services/locator"
)

// LocatorHandler handles HTTP requests for nearest-store lookups
type LocatorHandler struct {
	locatorUC locator.LocatorUseCase
}

// NewLocatorHandler creates a new locator HTTP handler
func NewLocatorHandler(locatorUC locator.LocatorUseCase) *LocatorHandler {
	return &LocatorHandler{
		locatorUC: locatorUC,
	}
}

// GetByCoordinates resolves the nearest store to a lat,long origin and
// responds with a plain-text directions URL. Any resolution failure maps
// to 404 with the error message as body.
func (h *LocatorHandler) GetByCoordinates(c echo.Context) error {
	raw := c.QueryParam("coordinates")
	if raw == "" {
		return utils.BadRequestResponse(c, "coordinates is required")
	}

	origin, err := utils.ParseCoordinates(raw)
	if err != nil {
		return utils.BadRequestResponse(c, err.Error())
	}

	url, err := h.locatorUC.ResolveByCoordinate(c.Request().Context(), origin)
	if err != nil {
		logger.Warn("Coordinate lookup failed",
			logger.String("coordinates", raw),
			logger.ErrorField(err))
		return c.String(http.StatusNotFound, err.Error())
	}

	return c.String(http.StatusOK, url)
}

// GetByZip resolves the nearest store to a postal code origin and responds
// with a plain-text directions URL
func (h *LocatorHandler) GetByZip(c echo.Context) error {
	zip := c.QueryParam("zip")
	if zip == "" {
		return utils.BadRequestResponse(c, "zip is required")
	}

	url, err := h.locatorUC.ResolveByZip(c.Request().Context(), zip)
	if err != nil {
		logger.Warn("Zip lookup failed",
			logger.String("zip", zip),
			logger.ErrorField(err))
		return c.String(http.StatusNotFound, err.Error())
	}

	return c.String(http.StatusOK, url)
}

// Reload rebuilds the catalog snapshot from the cache on demand
func (h *LocatorHandler) Reload(c echo.Context) error {
	n, err := h.locatorUC.Reload(c.Request().Context())
	if err != nil {
		logger.Error("Catalog reload failed", logger.ErrorField(err))
		return utils.InternalServerErrorResponse(c, "failed to reload catalog")
	}

	return utils.SuccessResponse(c, http.StatusOK, "Catalog reloaded", map[string]int{"stores": n})
}

// Test is a trivial liveness endpoint kept for client compatibility
func (h *LocatorHandler) Test(c echo.Context) error {
	return c.String(http.StatusOK, "successful test")
}
