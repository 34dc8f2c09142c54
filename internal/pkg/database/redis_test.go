package database

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setupMiniredis creates a new miniredis server and returns a wrapped client
func setupMiniredis(t *testing.T) (*miniredis.Miniredis, *RedisClient) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)

	client := redis.NewClient(&redis.Options{
		Addr: mr.Addr(),
	})

	return mr, &RedisClient{Client: client}
}

func TestHSetAndHGetAll(t *testing.T) {
	_, rc := setupMiniredis(t)
	ctx := context.Background()

	err := rc.HSet(ctx, "store:42", "lat", "39.7392")
	require.NoError(t, err)
	err = rc.HSet(ctx, "store:42", "long", "-104.9903")
	require.NoError(t, err)

	fields, err := rc.HGetAll(ctx, "store:42")
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"lat": "39.7392", "long": "-104.9903"}, fields)
}

func TestHGetAllMissingKey(t *testing.T) {
	_, rc := setupMiniredis(t)

	fields, err := rc.HGetAll(context.Background(), "store:missing")
	require.NoError(t, err)
	assert.Empty(t, fields)
}

func TestHMSet(t *testing.T) {
	_, rc := setupMiniredis(t)
	ctx := context.Background()

	err := rc.HMSet(ctx, "zip:80202", map[string]interface{}{
		"lat":  "39.7491",
		"long": "-104.9942",
	})
	require.NoError(t, err)

	fields, err := rc.HGetAll(ctx, "zip:80202")
	require.NoError(t, err)
	assert.Len(t, fields, 2)
	assert.Equal(t, "39.7491", fields["lat"])
}

func TestScanKeys(t *testing.T) {
	_, rc := setupMiniredis(t)
	ctx := context.Background()

	for _, key := range []string{"store:1", "store:2", "store:3", "zip:80202"} {
		require.NoError(t, rc.HSet(ctx, key, "lat", "0"))
	}

	keys, err := rc.ScanKeys(ctx, "store:*")
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"store:1", "store:2", "store:3"}, keys)
}

func TestScanKeysNoMatches(t *testing.T) {
	_, rc := setupMiniredis(t)

	keys, err := rc.ScanKeys(context.Background(), "store:*")
	require.NoError(t, err)
	assert.Empty(t, keys)
}

func TestScanKeysConnectionFailure(t *testing.T) {
	mr, rc := setupMiniredis(t)
	mr.Close()

	_, err := rc.ScanKeys(context.Background(), "store:*")
	assert.Error(t, err)
}

func TestSetGetExpire(t *testing.T) {
	mr, rc := setupMiniredis(t)
	ctx := context.Background()

	require.NoError(t, rc.Set(ctx, "memo:abc", "42", time.Minute))

	val, err := rc.Get(ctx, "memo:abc")
	require.NoError(t, err)
	assert.Equal(t, "42", val)

	// Advance past the TTL and make sure the key expires
	mr.FastForward(2 * time.Minute)
	_, err = rc.Get(ctx, "memo:abc")
	assert.ErrorIs(t, err, redis.Nil)
}
