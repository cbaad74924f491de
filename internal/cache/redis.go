package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/nhasan91/railbooking/config"
	"github.com/nhasan91/railbooking/internal/domain"
)

// RedisCache remembers resolved trips across restarts. Around opening time the
// bot is restarted often; a cache hit skips the search-index polling entirely.
type RedisCache struct {
	client  *redis.Client
	tripTTL time.Duration
}

func NewRedisCache(cfg config.RedisConfig, tripTTL time.Duration) *RedisCache {
	return &RedisCache{
		client:  redis.NewClient(&redis.Options{Addr: cfg.Addr, Password: cfg.Password, DB: cfg.DB}),
		tripTTL: tripTTL,
	}
}

// GetTrip returns the cached trip for the journey key, or nil on a miss.
func (c *RedisCache) GetTrip(ctx context.Context, key string) (*domain.TripContext, error) {
	data, err := c.client.Get(ctx, tripKey(key)).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, nil
		}
		return nil, err
	}

	var trip domain.TripContext
	if err := json.Unmarshal(data, &trip); err != nil {
		return nil, err
	}
	return &trip, nil
}

func (c *RedisCache) SetTrip(ctx context.Context, key string, trip *domain.TripContext) error {
	payload, err := json.Marshal(trip)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, tripKey(key), payload, c.tripTTL).Err()
}

func tripKey(key string) string {
	return "trip:" + key
}
