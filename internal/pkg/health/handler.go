package health

import (
	"context"
	"net/http"
	"os"
	"runtime"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/retailops/locator/internal/pkg/database"
)

// HealthChecker defines the interface for health checking dependencies
type HealthChecker interface {
	Name() string
	CheckHealth(ctx context.Context) error
}

// RedisHealthChecker checks Redis connection health
type RedisHealthChecker struct {
	client *database.RedisClient
}

// NewRedisHealthChecker creates a new Redis health checker
func NewRedisHealthChecker(client *database.RedisClient) *RedisHealthChecker {
	return &RedisHealthChecker{client: client}
}

// Name returns the dependency name
func (r *RedisHealthChecker) Name() string { return "redis" }

// CheckHealth checks if Redis is healthy
func (r *RedisHealthChecker) CheckHealth(ctx context.Context) error {
	if r.client == nil {
		return nil // Skip if no Redis client
	}
	return r.client.Ping(ctx)
}

// Status is the health endpoint response
type Status struct {
	Status       string            `json:"status"`
	ServiceName  string            `json:"service_name"`
	Version      string            `json:"version"`
	GoVersion    string            `json:"go_version"`
	Hostname     string            `json:"hostname"`
	ServerTime   time.Time         `json:"server_time"`
	Dependencies map[string]string `json:"dependencies,omitempty"`
}

// NewHealthHandler creates the health endpoint handler
func NewHealthHandler(serviceName, version string, checkers ...HealthChecker) echo.HandlerFunc {
	hostname, err := os.Hostname()
	if err != nil {
		hostname = "unknown"
	}

	return func(c echo.Context) error {
		status := Status{
			Status:      "ok",
			ServiceName: serviceName,
			Version:     version,
			GoVersion:   runtime.Version(),
			Hostname:    hostname,
			ServerTime:  time.Now(),
		}

		code := http.StatusOK
		if len(checkers) > 0 {
			status.Dependencies = make(map[string]string, len(checkers))
			ctx, cancel := context.WithTimeout(c.Request().Context(), 2*time.Second)
			defer cancel()

			for _, checker := range checkers {
				if err := checker.CheckHealth(ctx); err != nil {
					status.Dependencies[checker.Name()] = err.Error()
					status.Status = "degraded"
					code = http.StatusServiceUnavailable
				} else {
					status.Dependencies[checker.Name()] = "ok"
				}
			}
		}

		return c.JSON(code, status)
	}
}

// RegisterHealthEndpoints registers the health check endpoints
func RegisterHealthEndpoints(e *echo.Echo, serviceName, version string, checkers ...HealthChecker) {
	e.GET("/health", NewHealthHandler(serviceName, version, checkers...))

	// Kubernetes standard probes
	e.GET("/healthz", func(c echo.Context) error {
		return c.String(http.StatusOK, "OK")
	})
	e.GET("/ready", func(c echo.Context) error {
		return c.String(http.StatusOK, "OK")
	})
}
