package authkit

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// ErrRedisUnavailable is returned when the revocation cache cannot be reached.
var ErrRedisUnavailable = errors.New("redis unavailable")

// TokenBlacklist records revoked refresh sessions in Redis. The revocation
// unit is the (user id, tokenId) pair: blacklisting one invalidates every
// refresh token in that rotation chain. Entries carry a TTL equal to the
// token's remaining lifetime, so the cache cleans itself up once the tokens
// could no longer verify anyway.
type TokenBlacklist struct {
	client redis.UniversalClient
	logger Logger
}

// NewTokenBlacklist creates a new TokenBlacklist instance
func NewTokenBlacklist(client redis.UniversalClient, logger Logger) *TokenBlacklist {
	if logger == nil {
		logger = defLogger{}
	}
	return &TokenBlacklist{client: client, logger: logger}
}

func blacklistKey(userID, tokenID string) string {
	return fmt.Sprintf("blacklist:%s:%s", userID, tokenID)
}

// Blacklist marks the session revoked until expiresAt. Revoking an already
// expired session is a no-op. Revoking the same session twice is harmless:
// the later call just refreshes the entry.
func (b *TokenBlacklist) Blacklist(ctx context.Context, userID, tokenID string, expiresAt time.Time) error {
	ttl := time.Until(expiresAt)
	if ttl <= 0 {
		b.logger.Debug("skipping blacklist for already expired session %s", tokenID)
		return nil
	}

	now := time.Now().Unix()
	if err := b.client.Set(ctx, blacklistKey(userID, tokenID), now, ttl).Err(); err != nil {
		return fmt.Errorf("%w: %v", ErrRedisUnavailable, err)
	}

	return nil
}

// IsBlacklisted reports whether the session has been revoked.
func (b *TokenBlacklist) IsBlacklisted(ctx context.Context, userID, tokenID string) (bool, error) {
	err := b.client.Get(ctx, blacklistKey(userID, tokenID)).Err()
	if err == nil {
		return true, nil
	}
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	return false, fmt.Errorf("%w: %v", ErrRedisUnavailable, err)
}
