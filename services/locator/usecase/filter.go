package usecase

import (
	"math"
	"sort"

	"github.com/retailops/locator/internal/pkg/models"
	"github.com/retailops/locator/internal/utils"
)

// NearestByCoordinate ranks the catalog by great-circle distance from the
// origin and returns the n closest stores. The sort is stable, so ties keep
// their catalog order. Pure function over the provided snapshot.
func NearestByCoordinate(origin models.Coordinate, catalog []models.StoreRecord, n int) []models.StoreRecord {
	candidates := make([]models.Candidate, len(catalog))
	for i, store := range catalog {
		candidates[i] = models.Candidate{
			Store:    store,
			Distance: utils.Haversine(origin, store.Coordinate()),
		}
	}

	return selectNearest(candidates, n)
}

// NearestByZip ranks the catalog by postal-code numeric distance from the
// origin code and returns the n closest stores. An origin code that is not
// numeric is an error; a store with a non-numeric zip ranks last.
func NearestByZip(code string, catalog []models.StoreRecord, n int) ([]models.StoreRecord, error) {
	if _, err := utils.PostalDistance(code, code); err != nil {
		return nil, err
	}

	candidates := make([]models.Candidate, len(catalog))
	for i, store := range catalog {
		dist, err := utils.PostalDistance(code, store.Zip)
		if err != nil {
			dist = math.MaxFloat64
		}
		candidates[i] = models.Candidate{Store: store, Distance: dist}
	}

	return selectNearest(candidates, n), nil
}

// selectNearest stable-sorts candidates by ascending distance and returns
// the first n stores, or all of them if n exceeds the candidate count.
func selectNearest(candidates []models.Candidate, n int) []models.StoreRecord {
	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].Distance < candidates[j].Distance
	})

	if n > len(candidates) {
		n = len(candidates)
	}
	if n < 0 {
		n = 0
	}

	stores := make([]models.StoreRecord, n)
	for i := 0; i < n; i++ {
		stores[i] = candidates[i].Store
	}
	return stores
}
