package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	// GithubCachePrefix is the key prefix for cached GitHub repo lookups
	GithubCachePrefix = "github:repos:"

	// GithubCacheTTL bounds how stale a cached repo list may get
	GithubCacheTTL = 5 * time.Minute
)

// GithubCache caches serialized GitHub repo-list responses per username.
// Using an interface enables testing with mocks and potential future backends.
type GithubCache interface {
	// Get returns the cached payload for a username.
	// found=false when the key is absent or expired.
	Get(ctx context.Context, username string) (payload []byte, found bool, err error)

	// Set stores a payload for a username with the cache TTL.
	Set(ctx context.Context, username string, payload []byte) error
}

// RedisGithubCache implements GithubCache on Redis.
type RedisGithubCache struct {
	client *redis.Client
}

// NewRedisGithubCache creates a Redis-backed GitHub lookup cache.
func NewRedisGithubCache(client *redis.Client) *RedisGithubCache {
	return &RedisGithubCache{client: client}
}

func (c *RedisGithubCache) key(username string) string {
	return GithubCachePrefix + username
}

func (c *RedisGithubCache) Get(ctx context.Context, username string) ([]byte, bool, error) {
	payload, err := c.client.Get(ctx, c.key(username)).Bytes()
	if err == redis.Nil {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("github cache get: %w", err)
	}
	return payload, true, nil
}

func (c *RedisGithubCache) Set(ctx context.Context, username string, payload []byte) error {
	if err := c.client.Set(ctx, c.key(username), payload, GithubCacheTTL).Err(); err != nil {
		return fmt.Errorf("github cache set: %w", err)
	}
	return nil
}
