package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/Domenick1991/rocketbooking/config"
	"github.com/Domenick1991/rocketbooking/internal/domain"
	"github.com/redis/go-redis/v9"
)

type RedisCache struct {
	client      *redis.Client
	launchesTTL time.Duration
}

func NewRedisCache(cfg config.RedisConfig, launchesTTL time.Duration) *RedisCache {
	return &RedisCache{
		client:      redis.NewClient(&redis.Options{Addr: cfg.Addr, Password: cfg.Password, DB: cfg.DB}),
		launchesTTL: launchesTTL,
	}
}

func (c *RedisCache) GetLaunches(ctx context.Context) ([]domain.Launch, error) {
	data, err := c.client.Get(ctx, launchesKey()).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, nil
		}
		return nil, err
	}

	var launches []domain.Launch
	if err := json.Unmarshal(data, &launches); err != nil {
		return nil, err
	}
	return launches, nil
}

func (c *RedisCache) SetLaunches(ctx context.Context, launches []domain.Launch) error {
	payload, err := json.Marshal(launches)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, launchesKey(), payload, c.launchesTTL).Err()
}

// InvalidateLaunches drops the cached list; called after any launch or
// booking mutation so reads never serve stale status or pricing.
func (c *RedisCache) InvalidateLaunches(ctx context.Context) error {
	return c.client.Del(ctx, launchesKey()).Err()
}

func launchesKey() string {
	return "cache:launches"
}
