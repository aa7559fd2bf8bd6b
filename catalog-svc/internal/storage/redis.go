package storage

import (
	"context"
	"encoding/json"
	"strconv"
	"time"

	"delish/catalog-svc/internal/domain"

	"github.com/redis/go-redis/v9"
)

type RedisCache struct {
	Client *redis.Client
	TTL    time.Duration
}

func NewRedisCache(client *redis.Client, ttl time.Duration) *RedisCache {
	return &RedisCache{Client: client, TTL: ttl}
}

func (c *RedisCache) ReviewMarkerKey(userID, orderID int) string {
	return "review:" + strconv.Itoa(userID) + ":" + strconv.Itoa(orderID)
}

func (c *RedisCache) Exists(ctx context.Context, key string) (bool, error) {
	res, err := c.Client.Exists(ctx, key).Result()
	if err != nil {
		return false, err
	}
	return res > 0, nil
}

func (c *RedisCache) SetMarker(ctx context.Context, key string) error {
	return c.Client.Set(ctx, key, "1", c.TTL).Err()
}

// CacheRating stores the latest aggregate so list pages can serve it without
// touching Postgres.
func (c *RedisCache) CacheRating(ctx context.Context, summary domain.RatingSummary) error {
	payload, err := json.Marshal(summary)
	if err != nil {
		return err
	}
	key := "rating:" + strconv.Itoa(summary.RestaurantID)
	return c.Client.Set(ctx, key, payload, c.TTL).Err()
}

func (c *RedisCache) Rating(ctx context.Context, restaurantID int) (*domain.RatingSummary, error) {
	key := "rating:" + strconv.Itoa(restaurantID)
	payload, err := c.Client.Get(ctx, key).Bytes()
	if err != nil {
		return nil, err
	}
	var summary domain.RatingSummary
	if err := json.Unmarshal(payload, &summary); err != nil {
		return nil, err
	}
	return &summary, nil
}
