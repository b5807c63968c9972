package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/bloghub/blog-api/internal/api/metrics"
	"github.com/bloghub/blog-api/internal/core/ports"
)

const (
	pageTTL    = 30 * time.Second
	versionKey = "posts:ver"
)

// PostCache caches rendered listing pages in Redis. Invalidation bumps a
// version counter baked into every page key, so stale pages are never read
// and simply expire via their TTL.
type PostCache struct {
	client *redis.Client
}

func NewPostCache(client *redis.Client) *PostCache {
	return &PostCache{client: client}
}

func (c *PostCache) GetPage(ctx context.Context, page int32) (*ports.PostPage, bool, error) {
	key, err := c.pageKey(ctx, page)
	if err != nil {
		return nil, false, err
	}

	raw, err := c.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		metrics.PostCacheTotal.WithLabelValues("miss").Inc()
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("cache get: %w", err)
	}

	var data ports.PostPage
	if err := json.Unmarshal(raw, &data); err != nil {
		return nil, false, fmt.Errorf("cache decode: %w", err)
	}
	metrics.PostCacheTotal.WithLabelValues("hit").Inc()
	return &data, true, nil
}

func (c *PostCache) SetPage(ctx context.Context, page int32, data *ports.PostPage) error {
	key, err := c.pageKey(ctx, page)
	if err != nil {
		return err
	}

	raw, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("cache encode: %w", err)
	}
	if err := c.client.Set(ctx, key, raw, pageTTL).Err(); err != nil {
		return fmt.Errorf("cache set: %w", err)
	}
	return nil
}

// Invalidate bumps the version so every cached page key goes dark at once.
func (c *PostCache) Invalidate(ctx context.Context) error {
	if err := c.client.Incr(ctx, versionKey).Err(); err != nil {
		return fmt.Errorf("cache invalidate: %w", err)
	}
	return nil
}

func (c *PostCache) pageKey(ctx context.Context, page int32) (string, error) {
	ver, err := c.client.Get(ctx, versionKey).Int64()
	if err != nil && !errors.Is(err, redis.Nil) {
		return "", fmt.Errorf("cache version: %w", err)
	}
	return fmt.Sprintf("posts:v%d:page:%d", ver, page), nil
}
