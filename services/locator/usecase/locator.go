package usecase

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"sync/atomic"
	"time"

	"github.com/retailops/locator/internal/pkg/logger"
	"github.com/retailops/locator/internal/pkg/models"
	"github.com/retailops/locator/internal/pkg/retry"
	"github.com/retailops/locator/internal/utils"
	"github.com/retailops/locator/services/locator"
)

// LocatorUC implements the locator.LocatorUseCase interface. The catalog
// snapshot is immutable once published; Reload builds a fresh slice and
// swaps the pointer, so concurrent lookups never see a partial catalog.
type LocatorUC struct {
	cfg      *models.Config
	repo     locator.CatalogRepo
	matrixGW locator.RouteMatrixGW
	retrier  *retry.Retrier
	snapshot atomic.Pointer[[]models.StoreRecord]
}

// NewLocatorUC creates the locator use case and performs the initial
// catalog load. An empty catalog at startup is an error; the process must
// not serve lookups without stores.
func NewLocatorUC(ctx context.Context, cfg *models.Config, repo locator.CatalogRepo, matrixGW locator.RouteMatrixGW) (*LocatorUC, error) {
	uc := &LocatorUC{
		cfg:      cfg,
		repo:     repo,
		matrixGW: matrixGW,
		retrier: retry.New(retry.Config{
			MaxRetries: cfg.Maps.MaxRetries,
			BaseDelay:  time.Duration(cfg.Maps.RetryDelayMs) * time.Millisecond,
			MaxDelay:   30 * time.Second,
			Multiplier: 2.0,
			Jitter:     true,
			RetryableFunc: func(err error) bool {
				// A well-formed response with no usable route won't change
				// on retry; only transport and status failures are retried.
				return !errors.Is(err, locator.ErrNoRoute)
			},
		}),
	}

	if _, err := uc.Reload(ctx); err != nil {
		return nil, err
	}

	return uc, nil
}

// StartPeriodicReload refreshes the snapshot on the configured interval
// until the context is cancelled. A zero interval disables refresh.
func (uc *LocatorUC) StartPeriodicReload(ctx context.Context) {
	interval := time.Duration(uc.cfg.Locator.ReloadInterval) * time.Second
	if interval <= 0 {
		return
	}

	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				if _, err := uc.Reload(ctx); err != nil {
					logger.Error("Periodic catalog reload failed", logger.Err(err))
				}
			}
		}
	}()
}

// Reload rebuilds the catalog snapshot from the cache. On failure or an
// empty result the previous snapshot stays in place.
func (uc *LocatorUC) Reload(ctx context.Context) (int, error) {
	stores, err := uc.repo.ListStores(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to load store catalog: %w", err)
	}
	if len(stores) == 0 {
		return 0, locator.ErrEmptyCatalog
	}

	uc.snapshot.Store(&stores)
	logger.Info("Catalog snapshot loaded", logger.Int("stores", len(stores)))

	return len(stores), nil
}

// SnapshotSize reports the number of stores in the current snapshot
func (uc *LocatorUC) SnapshotSize() int {
	if catalog := uc.snapshot.Load(); catalog != nil {
		return len(*catalog)
	}
	return 0
}

// ResolveByCoordinate resolves the nearest store to a coordinate origin
func (uc *LocatorUC) ResolveByCoordinate(ctx context.Context, origin models.Coordinate) (string, error) {
	catalog := uc.catalog()
	if len(catalog) == 0 {
		return "", locator.ErrEmptyCatalog
	}

	candidates := NearestByCoordinate(origin, catalog, uc.cfg.Locator.CandidateCount)

	chosen, err := uc.refine(ctx, origin, candidates)
	if err != nil {
		return "", err
	}

	return uc.directionsURL(origin, chosen), nil
}

// ResolveByZip resolves the nearest store to a postal code origin
func (uc *LocatorUC) ResolveByZip(ctx context.Context, code string) (string, error) {
	origin, err := uc.repo.GetZipCoordinate(ctx, code)
	if err != nil {
		return "", err
	}

	catalog := uc.catalog()
	if len(catalog) == 0 {
		return "", locator.ErrEmptyCatalog
	}

	candidates, err := NearestByZip(code, catalog, uc.cfg.Locator.CandidateCount)
	if err != nil {
		return "", err
	}

	chosen, err := uc.refine(ctx, *origin, candidates)
	if err != nil {
		return "", err
	}

	return uc.directionsURL(*origin, chosen), nil
}

// refine picks the candidate with the minimum road distance, consulting the
// memo cache first and retrying the external call per the configured policy.
func (uc *LocatorUC) refine(ctx context.Context, origin models.Coordinate, candidates []models.StoreRecord) (*models.StoreRecord, error) {
	if len(candidates) == 0 {
		return nil, locator.ErrNoRoute
	}

	memoTTL := time.Duration(uc.cfg.Locator.MemoTTL) * time.Second
	var cell, setKey string

	if memoTTL > 0 {
		cell = utils.CellKey(origin, uc.cfg.Locator.MemoPrecision)
		setKey = candidateSetKey(candidates)

		storeNum, err := uc.repo.GetRefineMemo(ctx, cell, setKey)
		if err != nil {
			logger.Warn("Refinement memo lookup failed", logger.Err(err))
		} else if storeNum != "" {
			for i := range candidates {
				if candidates[i].StoreNum == storeNum {
					return &candidates[i], nil
				}
			}
		}
	}

	var chosen *models.StoreRecord
	err := uc.retrier.Execute(ctx, func(ctx context.Context) error {
		var callErr error
		chosen, callErr = uc.matrixGW.NearestByRoad(ctx, origin, candidates)
		return callErr
	})
	if err != nil {
		return nil, err
	}

	if memoTTL > 0 {
		if err := uc.repo.SetRefineMemo(ctx, cell, setKey, chosen.StoreNum, memoTTL); err != nil {
			logger.Warn("Refinement memo write failed", logger.Err(err))
		}
	}

	return chosen, nil
}

// directionsURL formats the navigable directions link for an origin and store
func (uc *LocatorUC) directionsURL(origin models.Coordinate, store *models.StoreRecord) string {
	return fmt.Sprintf("%s&origin=%s,%s&destination=%s,%s",
		uc.cfg.Maps.DirectionsURL,
		formatCoord(origin.Latitude), formatCoord(origin.Longitude),
		formatCoord(store.Latitude), formatCoord(store.Longitude))
}

func (uc *LocatorUC) catalog() []models.StoreRecord {
	if catalog := uc.snapshot.Load(); catalog != nil {
		return *catalog
	}
	return nil
}

// candidateSetKey identifies a candidate set by its store numbers in rank order
func candidateSetKey(candidates []models.StoreRecord) string {
	nums := make([]string, len(candidates))
	for i, c := range candidates {
		nums[i] = c.StoreNum
	}
	return strings.Join(nums, "-")
}

func formatCoord(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
