package handler

import (
	"github.com/labstack/echo/v4"
	"github.com/retailops/locator/services/locator"
	httpHandler "github.com/retailops/locator/services/locator/handler/http"
)

// HTTPHandler combines all handlers for the locator service
type HTTPHandler struct {
	locatorHTTP *httpHandler.LocatorHandler
}

// NewHTTPHandler creates a new combined handler
func NewHTTPHandler(locatorUC locator.LocatorUseCase) *HTTPHandler {
	return &HTTPHandler{
		locatorHTTP: httpHandler.NewLocatorHandler(locatorUC),
	}
}

// RegisterRoutes registers all HTTP routes
func (h *HTTPHandler) RegisterRoutes(e *echo.Echo) {
	g := e.Group("/locator")

	g.GET("/coordinates", h.locatorHTTP.GetByCoordinates)
	g.GET("/zip", h.locatorHTTP.GetByZip)
	g.GET("/test", h.locatorHTTP.Test)

	// Operational endpoint for explicit snapshot refresh
	g.POST("/reload", h.locatorHTTP.Reload)
}
