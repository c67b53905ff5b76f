package blacklist

import (
	"context"
	"fmt"
	"time"

	"github.com/goccy/go-json"
	"github.com/redis/go-redis/v9"
)

const keyPrefix = "blacklist:jti:"

// Entry is the value stored under a blacklisted token's key.
type Entry struct {
	JTI           string    `json:"jti"`
	BlacklistedAt time.Time `json:"blacklisted_at"`
	ExpiresAt     time.Time `json:"expires_at"`
}

// RedisBlacklist keeps a key per blacklisted token until the token expires.
type RedisBlacklist struct {
	client *redis.Client
	now    func() time.Time
}

func NewRedisBlacklist(client *redis.Client) *RedisBlacklist {
	return &RedisBlacklist{client: client, now: time.Now}
}

// NewRedisClient connects and pings so misconfiguration fails at startup.
func NewRedisClient(ctx context.Context, addr, password string, db int) (*redis.Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, err
	}
	return rdb, nil
}

func (b *RedisBlacklist) Blacklist(ctx context.Context, jti string, expiresAt time.Time) error {
	now := b.now()
	ttl := expiresAt.Sub(now)
	if ttl <= 0 {
		// An expired token is rejected on signature checks anyway.
		return nil
	}

	payload, err := json.Marshal(Entry{JTI: jti, BlacklistedAt: now.UTC(), ExpiresAt: expiresAt.UTC()})
	if err != nil {
		return err
	}

	ok, err := b.client.SetNX(ctx, keyPrefix+jti, payload, ttl).Result()
	if err != nil {
		return fmt.Errorf("blacklist token: %w", err)
	}
	if !ok {
		return ErrBlacklisted
	}
	return nil
}

func (b *RedisBlacklist) IsBlacklisted(ctx context.Context, jti string) (bool, error) {
	n, err := b.client.Exists(ctx, keyPrefix+jti).Result()
	if err != nil {
		return false, fmt.Errorf("lookup token: %w", err)
	}
	return n > 0, nil
}
