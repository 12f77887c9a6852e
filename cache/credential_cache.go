package cache

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"time"

	"SndHop/logger"
	"SndHop/model"

	"github.com/redis/go-redis/v9"
)

const credentialKey = "soundcloud:credential"

// CredentialTTL bounds how long a discovered credential is reused.
// SoundCloud rotates client IDs on its own schedule; the TTL keeps a stale
// pair from being retried forever when no resolve call flags it first.
const CredentialTTL = 50 * time.Minute

// DiscoverFunc produces a fresh credential, typically by scraping.
type DiscoverFunc func(ctx context.Context) (*model.Credential, error)

// CredentialCache caches the discovered credential in Redis when available,
// otherwise in process memory, with the same TTL in both cases. It is an
// explicitly invalidated cache: a resolve call that fails like an auth
// failure calls Invalidate, and the next Discover rediscovers.
type CredentialCache struct {
	discover DiscoverFunc
	ttl      time.Duration

	mu        sync.Mutex
	cached    *model.Credential
	fetchedAt time.Time
}

// NewCredentialCache creates a cache around a discovery function.
func NewCredentialCache(discover DiscoverFunc, ttl time.Duration) *CredentialCache {
	if ttl <= 0 {
		ttl = CredentialTTL
	}
	return &CredentialCache{discover: discover, ttl: ttl}
}

// Discover returns the cached credential or discovers a fresh one.
func (c *CredentialCache) Discover(ctx context.Context) (*model.Credential, error) {
	if cred := c.load(ctx); cred != nil {
		return cred, nil
	}

	cred, err := c.discover(ctx)
	if err != nil {
		return nil, err
	}
	c.store(ctx, cred)
	return cred, nil
}

// Invalidate drops the cached credential.
func (c *CredentialCache) Invalidate(ctx context.Context) {
	c.mu.Lock()
	c.cached = nil
	c.mu.Unlock()

	if RedisClient != nil {
		if err := RedisClient.Del(ctx, credentialKey).Err(); err != nil {
			logger.Warn("failed to drop cached credential", logger.ErrorField(err))
		}
	}
	logger.Info("soundcloud credential invalidated")
}

func (c *CredentialCache) load(ctx context.Context) *model.Credential {
	if RedisClient != nil {
		raw, err := RedisClient.Get(ctx, credentialKey).Result()
		if err == nil {
			var cred model.Credential
			if err := json.Unmarshal([]byte(raw), &cred); err == nil {
				return &cred
			}
		} else if !errors.Is(err, redis.Nil) {
			logger.Warn("credential cache read failed", logger.ErrorField(err))
		}
		return nil
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.cached != nil && time.Since(c.fetchedAt) < c.ttl {
		return c.cached
	}
	return nil
}

func (c *CredentialCache) store(ctx context.Context, cred *model.Credential) {
	if RedisClient != nil {
		raw, err := json.Marshal(cred)
		if err == nil {
			if err := RedisClient.Set(ctx, credentialKey, raw, c.ttl).Err(); err != nil {
				logger.Warn("credential cache write failed", logger.ErrorField(err))
			}
		}
		return
	}

	c.mu.Lock()
	c.cached = cred
	c.fetchedAt = time.Now()
	c.mu.Unlock()
}
