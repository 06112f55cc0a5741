package tokencache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	keyPrefix  = "auth:token:" // auth:token:{sha256(token)} -> uid
	defaultTTL = 5 * time.Minute
)

// Cache remembers uids for already-verified ID tokens so the middleware
// can skip a round trip to the verifier on every request. Entries expire
// well before the tokens themselves do.
type Cache struct {
	client *redis.Client
	ttl    time.Duration
}

func New(client *redis.Client) *Cache {
	return &Cache{client: client, ttl: defaultTTL}
}

// Get returns the cached uid for the token, or "" on a miss. Cache errors
// are treated as misses; the caller falls back to full verification.
func (c *Cache) Get(ctx context.Context, token string) string {
	uid, err := c.client.Get(ctx, key(token)).Result()
	if err != nil {
		return ""
	}
	return uid
}

func (c *Cache) Set(ctx context.Context, token, uid string) {
	// Best effort: a failed write only costs a re-verification later.
	_ = c.client.Set(ctx, key(token), uid, c.ttl).Err()
}

// Tokens are secrets, so only their hash is used as a key.
func key(token string) string {
	sum := sha256.Sum256([]byte(token))
	return keyPrefix + hex.EncodeToString(sum[:])
}
