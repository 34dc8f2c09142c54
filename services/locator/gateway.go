package locator

import (
	"context"

	"github.com/retailops/locator/internal/pkg/models"
)

// RouteMatrixGW defines the interface to the external road-distance service
type RouteMatrixGW interface {
	// NearestByRoad issues one distance matrix request with the origin as
	// sole source and each candidate as a destination, and returns the
	// candidate with the minimum reported road distance.
	NearestByRoad(ctx context.Context, origin models.Coordinate, candidates []models.StoreRecord) (*models.StoreRecord, error)
}
