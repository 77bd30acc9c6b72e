package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/Domenick1991/flightdb/config"
	"github.com/Domenick1991/flightdb/internal/domain"
	"github.com/redis/go-redis/v9"
)

type RedisCache struct {
	client  *redis.Client
	listTTL time.Duration
}

func NewRedisClient(cfg config.RedisConfig) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
		PoolSize: cfg.PoolSize,
	})
}

func NewRedisCache(client *redis.Client, listTTL time.Duration) *RedisCache {
	return &RedisCache{client: client, listTTL: listTTL}
}

// GetList decodes the cached rows of table into dest. It reports false on a
// cache miss.
func (c *RedisCache) GetList(ctx context.Context, table domain.Table, dest any) (bool, error) {
	data, err := c.client.Get(ctx, listKey(table)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return false, nil
		}
		return false, err
	}
	if err := json.Unmarshal(data, dest); err != nil {
		return false, fmt.Errorf("decode cached %s list: %w", table, err)
	}
	return true, nil
}

func (c *RedisCache) SetList(ctx context.Context, table domain.Table, rows any) error {
	payload, err := json.Marshal(rows)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, listKey(table), payload, c.listTTL).Err()
}

func (c *RedisCache) Invalidate(ctx context.Context, table domain.Table) error {
	return c.client.Del(ctx, listKey(table)).Err()
}

func listKey(table domain.Table) string {
	return fmt.Sprintf("cache:list:%s", table)
}
