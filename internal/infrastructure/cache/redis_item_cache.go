package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	appcatalog "github.com/cosechaencope/backend/internal/application/catalog"
	"github.com/cosechaencope/backend/internal/domain/catalog"
	"github.com/cosechaencope/backend/internal/infrastructure/config"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const itemKeyPrefix = "catalog:item:"

// RedisItemCache caches catalog items in Redis so hot reads skip the
// database. Suitable for deployments with more than one instance, where
// an in-process cache would go stale on invalidation.
type RedisItemCache struct {
	client *redis.Client
	ttl    time.Duration
	logger *zap.Logger
}

// NewRedisClient creates a Redis client from configuration and verifies
// the connection.
func NewRedisClient(cfg *config.RedisConfig) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr(),
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}
	return client, nil
}

// NewRedisItemCache creates a Redis-backed item cache with the given TTL.
func NewRedisItemCache(client *redis.Client, ttl time.Duration, logger *zap.Logger) *RedisItemCache {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &RedisItemCache{
		client: client,
		ttl:    ttl,
		logger: logger.Named("item_cache"),
	}
}

func itemKey(id uuid.UUID) string {
	return itemKeyPrefix + id.String()
}

// Get retrieves an item from cache. Redis failures degrade to a miss so
// the caller falls through to the repository.
func (c *RedisItemCache) Get(ctx context.Context, id uuid.UUID) (*catalog.Item, bool) {
	payload, err := c.client.Get(ctx, itemKey(id)).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			c.logger.Warn("cache read failed", zap.String("item_id", id.String()), zap.Error(err))
		}
		return nil, false
	}

	var item catalog.Item
	if err := json.Unmarshal(payload, &item); err != nil {
		c.logger.Warn("cache entry corrupt, dropping", zap.String("item_id", id.String()), zap.Error(err))
		c.client.Del(ctx, itemKey(id))
		return nil, false
	}
	return &item, true
}

// Set stores an item in cache with the configured TTL.
func (c *RedisItemCache) Set(ctx context.Context, item *catalog.Item) {
	if item == nil {
		return
	}

	payload, err := json.Marshal(item)
	if err != nil {
		c.logger.Warn("cache encode failed", zap.String("item_id", item.ID.String()), zap.Error(err))
		return
	}
	if err := c.client.Set(ctx, itemKey(item.ID), payload, c.ttl).Err(); err != nil {
		c.logger.Warn("cache write failed", zap.String("item_id", item.ID.String()), zap.Error(err))
	}
}

// Invalidate removes an item from cache.
func (c *RedisItemCache) Invalidate(ctx context.Context, id uuid.UUID) {
	if err := c.client.Del(ctx, itemKey(id)).Err(); err != nil {
		c.logger.Warn("cache invalidation failed", zap.String("item_id", id.String()), zap.Error(err))
	}
}

// Ensure RedisItemCache implements ItemCache
var _ appcatalog.ItemCache = (*RedisItemCache)(nil)
