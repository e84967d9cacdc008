package cache

import (
	"context"
	"encoding/json"
	"fmt"
)

// sessionCachePrefix is the Redis key prefix for resolved sessions.
const sessionCachePrefix = "session:"

// CachedSession is the auth guard's resolved identity stored in Redis,
// keyed by a digest of the raw token. The raw token itself is never
// stored.
type CachedSession struct {
	UserID string `json:"user_id"`
	Email  string `json:"email"`
}

// GetSession retrieves a cached session by token digest. A miss, a Redis
// error and a corrupted entry all return nil: the caller falls back to
// the store in every case, so none of them is worth distinguishing.
func (c *Cache) GetSession(ctx context.Context, digest string) *CachedSession {
	data, err := c.client.Get(ctx, sessionCachePrefix+digest).Bytes()
	if err != nil {
		return nil
	}

	var cached CachedSession
	if err := json.Unmarshal(data, &cached); err != nil {
		return nil
	}

	return &cached
}

// SetSession caches a resolved session for the configured TTL.
func (c *Cache) SetSession(ctx context.Context, digest string, sess CachedSession) error {
	data, err := json.Marshal(sess)
	if err != nil {
		return fmt.Errorf("marshal session: %w", err)
	}

	return c.client.Set(ctx, sessionCachePrefix+digest, data, c.sessionTTL).Err()
}

// DeleteSession removes a cached session. Called on logout so a revoked
// token cannot be served from cache.
func (c *Cache) DeleteSession(ctx context.Context, digest string) error {
	return c.client.Del(ctx, sessionCachePrefix+digest).Err()
}
