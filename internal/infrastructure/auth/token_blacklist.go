package auth

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

// TokenBlacklist revokes JWT tokens ahead of their natural expiry, for
// logout and forced credential rotation.
type TokenBlacklist interface {
	// AddToBlacklist marks the token's JTI as revoked. ttl should cover
	// the remaining lifetime of the token; after that the entry is moot.
	AddToBlacklist(ctx context.Context, jti string, ttl time.Duration) error

	// IsBlacklisted reports whether the JTI has been revoked.
	IsBlacklisted(ctx context.Context, jti string) (bool, error)
}

// RedisTokenBlacklist stores revoked JTIs as expiring Redis keys, shared
// across all API instances.
type RedisTokenBlacklist struct {
	rdb    *redis.Client
	prefix string
}

func NewRedisTokenBlacklist(client *redis.Client) *RedisTokenBlacklist {
	return &RedisTokenBlacklist{rdb: client, prefix: "pharmacy:token:blacklist:"}
}

func (b *RedisTokenBlacklist) AddToBlacklist(ctx context.Context, jti string, ttl time.Duration) error {
	if err := b.rdb.Set(ctx, b.prefix+jti, "1", ttl).Err(); err != nil {
		return fmt.Errorf("blacklist token: %w", err)
	}
	return nil
}

func (b *RedisTokenBlacklist) IsBlacklisted(ctx context.Context, jti string) (bool, error) {
	n, err := b.rdb.Exists(ctx, b.prefix+jti).Result()
	if err != nil {
		return false, fmt.Errorf("check token blacklist: %w", err)
	}
	return n > 0, nil
}

var _ TokenBlacklist = (*RedisTokenBlacklist)(nil)

// InMemoryTokenBlacklist keeps revocations in process memory. Suitable for
// tests and single-instance deployments only.
type InMemoryTokenBlacklist struct {
	mu      sync.Mutex
	revoked map[string]time.Time // JTI -> entry expiry
}

func NewInMemoryTokenBlacklist() *InMemoryTokenBlacklist {
	return &InMemoryTokenBlacklist{revoked: make(map[string]time.Time)}
}

func (b *InMemoryTokenBlacklist) AddToBlacklist(_ context.Context, jti string, ttl time.Duration) error {
	b.mu.Lock()
	b.revoked[jti] = time.Now().Add(ttl)
	b.mu.Unlock()
	return nil
}

// IsBlacklisted drops expired entries as it encounters them, so the map
// stays bounded by the number of live revocations.
func (b *InMemoryTokenBlacklist) IsBlacklisted(_ context.Context, jti string) (bool, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	expiry, ok := b.revoked[jti]
	switch {
	case !ok:
		return false, nil
	case time.Now().After(expiry):
		delete(b.revoked, jti)
		return false, nil
	}
	return true, nil
}

var _ TokenBlacklist = (*InMemoryTokenBlacklist)(nil)
