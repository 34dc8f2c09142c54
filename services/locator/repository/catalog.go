package repository

import (
	"context"
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/retailops/locator/internal/pkg/constants"
	"github.com/retailops/locator/internal/pkg/database"
	"github.com/retailops/locator/internal/pkg/logger"
	"github.com/retailops/locator/internal/pkg/models"
	"github.com/retailops/locator/services/locator"
)

type catalogRepo struct {
	redisClient *database.RedisClient
}

// NewCatalogRepository creates a new catalog repository
func NewCatalogRepository(redisClient *database.RedisClient) locator.CatalogRepo {
	return &catalogRepo{
		redisClient: redisClient,
	}
}

// ListStores reads every store record from the cache. Transport errors are
// propagated; records failing the coordinate invariant are skipped with a
// warning so one bad row cannot poison the snapshot.
func (r *catalogRepo) ListStores(ctx context.Context) ([]models.StoreRecord, error) {
	keys, err := r.redisClient.ScanKeys(ctx, constants.PatternStores)
	if err != nil {
		return nil, fmt.Errorf("failed to list store keys: %w", err)
	}

	// SCAN order is unspecified; sort so snapshots are deterministic and
	// coarse-filter ties break the same way on every load.
	sort.Strings(keys)

	stores := make([]models.StoreRecord, 0, len(keys))
	for _, key := range keys {
		fields, err := r.redisClient.HGetAll(ctx, key)
		if err != nil {
			return nil, fmt.Errorf("failed to read store record %s: %w", key, err)
		}

		storeNum := strings.TrimPrefix(key, "store:")
		record, err := parseStoreRecord(storeNum, fields)
		if err != nil {
			logger.Warn("Skipping invalid store record",
				logger.String("key", key),
				logger.Err(err))
			continue
		}

		stores = append(stores, *record)
	}

	return stores, nil
}

// GetStore reads a single store record by store number
func (r *catalogRepo) GetStore(ctx context.Context, storeNum string) (*models.StoreRecord, error) {
	key := fmt.Sprintf(constants.KeyStore, storeNum)
	fields, err := r.redisClient.HGetAll(ctx, key)
	if err != nil {
		return nil, fmt.Errorf("failed to read store record %s: %w", key, err)
	}
	if len(fields) == 0 {
		return nil, fmt.Errorf("store %s not found", storeNum)
	}

	return parseStoreRecord(storeNum, fields)
}

// GetZipCoordinate resolves a postal code to its coordinate
func (r *catalogRepo) GetZipCoordinate(ctx context.Context, code string) (*models.Coordinate, error) {
	key := fmt.Sprintf(constants.KeyZip, code)
	fields, err := r.redisClient.HGetAll(ctx, key)
	if err != nil {
		return nil, fmt.Errorf("failed to read zip record %s: %w", key, err)
	}

	latStr, okLat := fields[constants.FieldLatitude]
	lngStr, okLng := fields[constants.FieldLongitude]
	if len(fields) == 0 || !okLat || !okLng {
		return nil, fmt.Errorf("%w: %s", locator.ErrZipNotFound, code)
	}

	lat, err := strconv.ParseFloat(latStr, 64)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", locator.ErrZipNotFound, code)
	}
	lng, err := strconv.ParseFloat(lngStr, 64)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", locator.ErrZipNotFound, code)
	}

	return &models.Coordinate{Latitude: lat, Longitude: lng}, nil
}

// GetRefineMemo returns a previously memoized refinement choice, or "" on a miss
func (r *catalogRepo) GetRefineMemo(ctx context.Context, cell, setKey string) (string, error) {
	key := fmt.Sprintf(constants.KeyRefineMemo, cell, setKey)
	val, err := r.redisClient.Get(ctx, key)
	if err == redis.Nil {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to read refinement memo: %w", err)
	}
	return val, nil
}

// SetRefineMemo memoizes a refinement choice with a TTL
func (r *catalogRepo) SetRefineMemo(ctx context.Context, cell, setKey, storeNum string, ttl time.Duration) error {
	key := fmt.Sprintf(constants.KeyRefineMemo, cell, setKey)
	return r.redisClient.Set(ctx, key, storeNum, ttl)
}

// parseStoreRecord converts a cache field map into a StoreRecord, enforcing
// the snapshot invariant that every record has numeric coordinates and a
// postal code.
func parseStoreRecord(storeNum string, fields map[string]string) (*models.StoreRecord, error) {
	lat, err := strconv.ParseFloat(fields[constants.FieldLatitude], 64)
	if err != nil {
		return nil, fmt.Errorf("invalid latitude %q: %w", fields[constants.FieldLatitude], err)
	}
	lng, err := strconv.ParseFloat(fields[constants.FieldLongitude], 64)
	if err != nil {
		return nil, fmt.Errorf("invalid longitude %q: %w", fields[constants.FieldLongitude], err)
	}
	if math.IsNaN(lat) || math.IsNaN(lng) {
		return nil, fmt.Errorf("non-numeric coordinate for store %s", storeNum)
	}

	zip := fields[constants.FieldZip]
	if zip == "" {
		return nil, fmt.Errorf("missing zip for store %s", storeNum)
	}

	address := make(map[string]string)
	for k, v := range fields {
		switch k {
		case constants.FieldLatitude, constants.FieldLongitude, constants.FieldZip:
		default:
			address[k] = v
		}
	}

	return &models.StoreRecord{
		StoreNum:  storeNum,
		Latitude:  lat,
		Longitude: lng,
		Zip:       zip,
		Address:   address,
	}, nil
}
