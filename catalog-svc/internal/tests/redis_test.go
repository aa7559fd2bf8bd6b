package tests

import (
	"context"
	"testing"
	"time"

	"delish/catalog-svc/internal/domain"
	"delish/catalog-svc/internal/storage"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
)

func newMiniredisCache(t *testing.T) (*storage.RedisCache, *miniredis.Miniredis) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	return storage.NewRedisCache(client, time.Hour), mr
}

func TestReviewMarker(t *testing.T) {
	cache, _ := newMiniredisCache(t)
	ctx := context.Background()

	key := cache.ReviewMarkerKey(42, 55)
	assert.Equal(t, "review:42:55", key)

	exists, err := cache.Exists(ctx, key)
	assert.NoError(t, err)
	assert.False(t, exists)

	assert.NoError(t, cache.SetMarker(ctx, key))

	exists, err = cache.Exists(ctx, key)
	assert.NoError(t, err)
	assert.True(t, exists)
}

func TestReviewMarker_Expiry(t *testing.T) {
	cache, mr := newMiniredisCache(t)
	ctx := context.Background()

	key := cache.ReviewMarkerKey(42, 55)
	assert.NoError(t, cache.SetMarker(ctx, key))

	mr.FastForward(2 * time.Hour)

	exists, err := cache.Exists(ctx, key)
	assert.NoError(t, err)
	assert.False(t, exists)
}

func TestRatingCacheRoundTrip(t *testing.T) {
	cache, _ := newMiniredisCache(t)
	ctx := context.Background()

	summary := domain.RatingSummary{RestaurantID: 7, Average: 4.2, Count: 13}
	assert.NoError(t, cache.CacheRating(ctx, summary))

	cached, err := cache.Rating(ctx, 7)
	assert.NoError(t, err)
	assert.Equal(t, summary, *cached)
}

func TestRatingCacheMiss(t *testing.T) {
	cache, _ := newMiniredisCache(t)

	_, err := cache.Rating(context.Background(), 404)
	assert.ErrorIs(t, err, redis.Nil)
}
