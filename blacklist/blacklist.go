// Package blacklist records refresh tokens that may no longer be used.
//
// Two backends exist. GormBlacklist marks rows of the refresh_tokens table,
// which requires the token to have been recorded when it was issued.
// RedisBlacklist keeps one key per token id that expires together with the
// token.
package blacklist

import (
	"context"
	"errors"
	"time"
)

var (
	// ErrBlacklisted is returned when the token was already blacklisted.
	ErrBlacklisted = errors.New("token is blacklisted")
	// ErrNotOutstanding is returned when the token was never issued here.
	ErrNotOutstanding = errors.New("token is not outstanding")
)

// Blacklist is keyed by the token's jti claim.
type Blacklist interface {
	Blacklist(ctx context.Context, jti string, expiresAt time.Time) error
	IsBlacklisted(ctx context.Context, jti string) (bool, error)
}
