package repository

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"github.com/retailops/locator/internal/pkg/database"
	"github.com/retailops/locator/services/locator"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setupMiniredis creates a new miniredis server and a repository backed by it
func setupMiniredis(t *testing.T) (*miniredis.Miniredis, locator.CatalogRepo) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)

	client := redis.NewClient(&redis.Options{
		Addr: mr.Addr(),
	})

	repo := NewCatalogRepository(&database.RedisClient{Client: client})
	return mr, repo
}

func seedStore(t *testing.T, mr *miniredis.Miniredis, storeNum string, fields map[string]string) {
	t.Helper()
	for k, v := range fields {
		mr.HSet("store:"+storeNum, k, v)
	}
}

func TestListStores(t *testing.T) {
	mr, repo := setupMiniredis(t)

	seedStore(t, mr, "101", map[string]string{
		"lat": "39.7392", "long": "-104.9903", "zip": "80202",
		"street": "1701 Wynkoop St", "city": "Denver",
	})
	seedStore(t, mr, "102", map[string]string{
		"lat": "40.0150", "long": "-105.2705", "zip": "80302",
	})

	stores, err := repo.ListStores(context.Background())
	require.NoError(t, err)
	require.Len(t, stores, 2)

	// Keys are sorted, so store 101 comes first
	assert.Equal(t, "101", stores[0].StoreNum)
	assert.Equal(t, 39.7392, stores[0].Latitude)
	assert.Equal(t, -104.9903, stores[0].Longitude)
	assert.Equal(t, "80202", stores[0].Zip)
	assert.Equal(t, "Denver", stores[0].Address["city"])
	assert.NotContains(t, stores[0].Address, "lat")

	assert.Equal(t, "102", stores[1].StoreNum)
}

func TestListStoresSkipsInvalidRecords(t *testing.T) {
	mr, repo := setupMiniredis(t)

	seedStore(t, mr, "101", map[string]string{
		"lat": "39.7392", "long": "-104.9903", "zip": "80202",
	})
	// Missing coordinates entirely
	seedStore(t, mr, "bad1", map[string]string{"zip": "80202"})
	// Non-numeric latitude
	seedStore(t, mr, "bad2", map[string]string{"lat": "north", "long": "-104.9", "zip": "80202"})
	// Missing zip
	seedStore(t, mr, "bad3", map[string]string{"lat": "39.7", "long": "-104.9"})

	stores, err := repo.ListStores(context.Background())
	require.NoError(t, err)
	require.Len(t, stores, 1)
	assert.Equal(t, "101", stores[0].StoreNum)
}

func TestListStoresEmptyCache(t *testing.T) {
	_, repo := setupMiniredis(t)

	stores, err := repo.ListStores(context.Background())
	require.NoError(t, err)
	assert.Empty(t, stores)
}

func TestListStoresConnectionFailure(t *testing.T) {
	mr, repo := setupMiniredis(t)
	mr.Close()

	// Transport failure must surface as an error, never as an empty catalog
	_, err := repo.ListStores(context.Background())
	assert.Error(t, err)
}

func TestGetStore(t *testing.T) {
	mr, repo := setupMiniredis(t)
	seedStore(t, mr, "101", map[string]string{
		"lat": "39.7392", "long": "-104.9903", "zip": "80202",
	})

	store, err := repo.GetStore(context.Background(), "101")
	require.NoError(t, err)
	assert.Equal(t, "101", store.StoreNum)

	_, err = repo.GetStore(context.Background(), "999")
	assert.Error(t, err)
}

func TestGetZipCoordinate(t *testing.T) {
	mr, repo := setupMiniredis(t)
	mr.HSet("zip:80202", "lat", "39.7491")
	mr.HSet("zip:80202", "long", "-104.9942")

	coord, err := repo.GetZipCoordinate(context.Background(), "80202")
	require.NoError(t, err)
	assert.Equal(t, 39.7491, coord.Latitude)
	assert.Equal(t, -104.9942, coord.Longitude)
}

func TestGetZipCoordinateNotFound(t *testing.T) {
	_, repo := setupMiniredis(t)

	_, err := repo.GetZipCoordinate(context.Background(), "99999")
	assert.ErrorIs(t, err, locator.ErrZipNotFound)
}

func TestGetZipCoordinateIncompleteRecord(t *testing.T) {
	mr, repo := setupMiniredis(t)
	mr.HSet("zip:80202", "lat", "39.7491") // no longitude

	_, err := repo.GetZipCoordinate(context.Background(), "80202")
	assert.ErrorIs(t, err, locator.ErrZipNotFound)
}

func TestRefineMemoRoundTrip(t *testing.T) {
	mr, repo := setupMiniredis(t)
	ctx := context.Background()

	// Miss before set
	val, err := repo.GetRefineMemo(ctx, "9xj6", "abc")
	require.NoError(t, err)
	assert.Empty(t, val)

	require.NoError(t, repo.SetRefineMemo(ctx, "9xj6", "abc", "101", time.Minute))

	val, err = repo.GetRefineMemo(ctx, "9xj6", "abc")
	require.NoError(t, err)
	assert.Equal(t, "101", val)

	// Expires with its TTL
	mr.FastForward(2 * time.Minute)
	val, err = repo.GetRefineMemo(ctx, "9xj6", "abc")
	require.NoError(t, err)
	assert.Empty(t, val)
}
