package cache

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"Photostream/internal/core/posts"

	"github.com/redis/go-redis/v9"
)

const recentPostsKey = "feed:recent_posts"

// FeedCache holds the unhydrated global post page in Redis with a short TTL.
// Cache failures degrade to database reads, never to request failures.
// Satisfies posts.RecentPostCache and the engagement services' FeedInvalidator.
type FeedCache struct {
	client *redis.Client
	ttl    time.Duration
	logger *slog.Logger
}

// NewFeedCache creates a feed cache and verifies connectivity
func NewFeedCache(addr, password string, ttl time.Duration, logger *slog.Logger) (*FeedCache, error) {
	if logger == nil {
		logger = slog.Default()
	}

	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       0,
	})

	if err := client.Ping(context.Background()).Err(); err != nil {
		return nil, err
	}

	return &FeedCache{
		client: client,
		ttl:    ttl,
		logger: logger,
	}, nil
}

// GetRecent returns the cached post page and whether it was present
func (c *FeedCache) GetRecent(ctx context.Context) ([]*posts.Post, bool) {
	data, err := c.client.Get(ctx, recentPostsKey).Bytes()
	if err == redis.Nil {
		return nil, false
	}
	if err != nil {
		c.logger.Warn("feed cache read failed", slog.String("error", err.Error()))
		return nil, false
	}

	var postPage []*posts.Post
	if err := json.Unmarshal(data, &postPage); err != nil {
		c.logger.Warn("feed cache entry corrupt, dropping", slog.String("error", err.Error()))
		c.Invalidate(ctx)
		return nil, false
	}

	return postPage, true
}

// SetRecent stores the post page with the configured TTL
func (c *FeedCache) SetRecent(ctx context.Context, postPage []*posts.Post) {
	data, err := json.Marshal(postPage)
	if err != nil {
		c.logger.Warn("feed cache marshal failed", slog.String("error", err.Error()))
		return
	}

	if err := c.client.Set(ctx, recentPostsKey, data, c.ttl).Err(); err != nil {
		c.logger.Warn("feed cache write failed", slog.String("error", err.Error()))
	}
}

// Invalidate drops the cached page. Called after any mutation that changes
// the feed or its counters.
func (c *FeedCache) Invalidate(ctx context.Context) {
	if err := c.client.Del(ctx, recentPostsKey).Err(); err != nil {
		c.logger.Warn("feed cache invalidation failed", slog.String("error", err.Error()))
	}
}
