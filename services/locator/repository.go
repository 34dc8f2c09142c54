package locator

import (
	"context"
	"time"

	"github.com/retailops/locator/internal/pkg/models"
)

// CatalogRepo defines the interface for catalog cache access
type CatalogRepo interface {
	// ListStores reads every store record from the cache. Records failing
	// the coordinate invariant are skipped, not returned.
	ListStores(ctx context.Context) ([]models.StoreRecord, error)

	// GetStore reads a single store record by store number
	GetStore(ctx context.Context, storeNum string) (*models.StoreRecord, error)

	// GetZipCoordinate resolves a postal code to its coordinate.
	// Returns ErrZipNotFound when the code is absent or incomplete.
	GetZipCoordinate(ctx context.Context, code string) (*models.Coordinate, error)

	// GetRefineMemo returns a previously memoized refinement choice, or ""
	GetRefineMemo(ctx context.Context, cell, setKey string) (string, error)

	// SetRefineMemo memoizes a refinement choice with a TTL
	SetRefineMemo(ctx context.Context, cell, setKey, storeNum string, ttl time.Duration) error
}
