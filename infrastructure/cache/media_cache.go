package cache

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"content-ops/infrastructure/logger"
)

// MediaCache caches resolved media URLs in Redis so repeated publishes of the
// same video do not re-run resolution and reachability checks.
type MediaCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewMediaCache(client *redis.Client, ttl time.Duration) *MediaCache {
	if ttl <= 0 {
		ttl = 15 * time.Minute
	}
	return &MediaCache{client: client, ttl: ttl}
}

func NewRedisClient(addr, password string, db int) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
}

func (c *MediaCache) key(mediaRef string) string {
	return "media:url:" + mediaRef
}

// Get returns the cached URL for a media ref, or "" on miss. A nil client or a
// Redis outage is treated as a miss.
func (c *MediaCache) Get(ctx context.Context, mediaRef string) string {
	if c == nil || c.client == nil {
		return ""
	}
	val, err := c.client.Get(ctx, c.key(mediaRef)).Result()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			logger.GetLogger().WithField("error", err).Warn("media cache get failed")
		}
		return ""
	}
	return val
}

// Set stores a resolved URL; failures are logged and ignored.
func (c *MediaCache) Set(ctx context.Context, mediaRef, url string) {
	if c == nil || c.client == nil {
		return
	}
	if err := c.client.Set(ctx, c.key(mediaRef), url, c.ttl).Err(); err != nil {
		logger.GetLogger().WithField("error", err).Warn("media cache set failed")
	}
}

// Invalidate drops the cached URL for a media ref.
func (c *MediaCache) Invalidate(ctx context.Context, mediaRef string) {
	if c == nil || c.client == nil {
		return
	}
	if err := c.client.Del(ctx, c.key(mediaRef)).Err(); err != nil {
		logger.GetLogger().WithField("error", err).Warn("media cache invalidate failed")
	}
}
