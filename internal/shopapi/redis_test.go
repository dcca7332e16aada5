package shopapi

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oqdoku94/web-larek-frontend/internal/domain"
)

func setupTestRedis(t *testing.T) (*RedisCache, *miniredis.Miniredis) {
	mr := miniredis.RunT(t)

	client := redis.NewClient(&redis.Options{
		Addr: mr.Addr(),
	})
	t.Cleanup(func() { client.Close() })

	return NewRedisCache(client), mr
}

func TestRedisGet_Success(t *testing.T) {
	cache, mr := setupTestRedis(t)
	ctx := context.Background()

	product := domain.Product{ID: "abc", Title: "Thing", Price: testPrice(100)}
	data, _ := json.Marshal(product)
	mr.Set(cacheKey("abc"), string(data))

	result, err := cache.Get(ctx, "abc")
	require.NoError(t, err)
	assert.Equal(t, "Thing", result.Title)
	assert.Equal(t, 100.0, *result.Price)
}

func TestRedisGet_CacheMiss(t *testing.T) {
	cache, _ := setupTestRedis(t)

	_, err := cache.Get(context.Background(), "nonexistent")
	assert.ErrorIs(t, err, ErrCacheMiss)
}

func TestRedisGet_InvalidJSON(t *testing.T) {
	cache, mr := setupTestRedis(t)

	require.NoError(t, mr.Set(cacheKey("abc"), "{not json"))

	_, err := cache.Get(context.Background(), "abc")
	require.ErrorContains(t, err, "unmarshal product failed")
}

func TestRedisSet_StoresWithTTL(t *testing.T) {
	cache, mr := setupTestRedis(t)
	ctx := context.Background()

	product := domain.Product{ID: "abc", Title: "Thing", Price: testPrice(100)}
	require.NoError(t, cache.Set(ctx, product))

	stored, err := mr.Get(cacheKey("abc"))
	require.NoError(t, err)

	var roundTripped domain.Product
	require.NoError(t, json.Unmarshal([]byte(stored), &roundTripped))
	assert.Equal(t, "abc", roundTripped.ID)

	ttl := mr.TTL(cacheKey("abc"))
	assert.GreaterOrEqual(t, ttl, 15*time.Minute)
	assert.LessOrEqual(t, ttl, 20*time.Minute)
}

func TestRedisDelete(t *testing.T) {
	cache, mr := setupTestRedis(t)
	ctx := context.Background()

	require.NoError(t, cache.Set(ctx, domain.Product{ID: "abc"}))
	require.True(t, mr.Exists(cacheKey("abc")))

	require.NoError(t, cache.Delete(ctx, "abc"))
	assert.False(t, mr.Exists(cacheKey("abc")))
}

func TestCacheKey_Format(t *testing.T) {
	assert.Equal(t, "product:abc", cacheKey("abc"))
}
