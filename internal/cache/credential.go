package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/credvault/credvault/internal/credential"
)

// Cache key prefixes and TTLs.
const (
	credentialKeyPrefix = "credential:"
	negCacheKeySuffix   = ":neg"

	// DefaultViewTTL is the TTL for cached credential views.
	DefaultViewTTL = time.Hour

	// DefaultNegativeTTL is the TTL for "not registered" markers.
	DefaultNegativeTTL = 30 * time.Second
)

// ViewCache stores redacted credential views in Redis.
// It never stores secret hashes.
type ViewCache struct {
	cache       *Cache
	viewTTL     time.Duration
	negativeTTL time.Duration
}

// NewViewCache creates a ViewCache. Non-positive TTLs fall back to defaults.
func NewViewCache(c *Cache, viewTTL, negativeTTL time.Duration) *ViewCache {
	if viewTTL <= 0 {
		viewTTL = DefaultViewTTL
	}
	if negativeTTL <= 0 {
		negativeTTL = DefaultNegativeTTL
	}
	return &ViewCache{cache: c, viewTTL: viewTTL, negativeTTL: negativeTTL}
}

// Get implements credential.ViewCache.
func (v *ViewCache) Get(ctx context.Context, email string) (*credential.View, bool, error) {
	key := credentialKey(email)

	pipe := v.cache.client.Pipeline()
	viewCmd := pipe.HGetAll(ctx, key)
	negCmd := pipe.Exists(ctx, key+negCacheKeySuffix)

	if _, err := pipe.Exec(ctx); err != nil && !errors.Is(err, redis.Nil) {
		return nil, false, fmt.Errorf("redis get view failed: %w", err)
	}

	if fields := viewCmd.Val(); len(fields) > 0 && fields["email"] != "" {
		return &credential.View{Email: fields["email"], Secret: credential.Redacted}, false, nil
	}

	return nil, negCmd.Val() > 0, nil
}

// Set implements credential.ViewCache.
func (v *ViewCache) Set(ctx context.Context, view *credential.View) error {
	key := credentialKey(view.Email)

	pipe := v.cache.client.Pipeline()
	pipe.HSet(ctx, key, "email", view.Email)
	pipe.Expire(ctx, key, v.viewTTL)
	pipe.Del(ctx, key+negCacheKeySuffix)

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to cache view: %w", err)
	}

	return nil
}

// SetMissing implements credential.ViewCache.
func (v *ViewCache) SetMissing(ctx context.Context, email string) error {
	key := credentialKey(email) + negCacheKeySuffix

	if err := v.cache.client.Set(ctx, key, "1", v.negativeTTL).Err(); err != nil {
		return fmt.Errorf("failed to set negative cache: %w", err)
	}

	return nil
}

// Forget implements credential.ViewCache.
func (v *ViewCache) Forget(ctx context.Context, email string) error {
	key := credentialKey(email)

	pipe := v.cache.client.Pipeline()
	pipe.Del(ctx, key)
	pipe.Del(ctx, key+negCacheKeySuffix)

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to delete view from cache: %w", err)
	}

	return nil
}

// credentialKey derives the cache key for a canonical email.
// The raw address is hashed so it does not appear in Redis key listings.
func credentialKey(email string) string {
	hash := sha256.Sum256([]byte(email))
	return credentialKeyPrefix + hex.EncodeToString(hash[:8])
}
