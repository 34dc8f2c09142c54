package locator

import (
	"context"

	"github.com/retailops/locator/internal/pkg/models"
)

// LocatorUseCase defines the interface for nearest-store resolution
type LocatorUseCase interface {
	// ResolveByCoordinate resolves the nearest store to a coordinate origin
	// and returns a directions URL
	ResolveByCoordinate(ctx context.Context, origin models.Coordinate) (string, error)

	// ResolveByZip resolves the nearest store to a postal code origin and
	// returns a directions URL
	ResolveByZip(ctx context.Context, code string) (string, error)

	// Reload rebuilds the catalog snapshot from the cache and atomically
	// swaps it in, returning the new snapshot size
	Reload(ctx context.Context) (int, error)

	// SnapshotSize reports the number of stores in the current snapshot
	SnapshotSize() int
}
