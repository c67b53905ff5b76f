package utils

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const (
	TokenTypeAccess  = "access"
	TokenTypeRefresh = "refresh"
)

var (
	ErrInvalidToken   = errors.New("token is invalid or expired")
	ErrWrongTokenType = errors.New("token has wrong type")
)

// Claims carries the user id and token type. The JTI (ID) is unique per
// token and is what the blacklist records.
type Claims struct {
	UserID    uint   `json:"user_id"`
	TokenType string `json:"token_type"`
	jwt.RegisteredClaims
}

// TokenManager signs and verifies HS256 access and refresh tokens.
type TokenManager struct {
	secret          []byte
	accessLifetime  time.Duration
	refreshLifetime time.Duration
	now             func() time.Time
}

func NewTokenManager(secret string, accessLifetime, refreshLifetime time.Duration) (*TokenManager, error) {
	if secret == "" {
		return nil, fmt.Errorf("JWT_SECRET is required but was empty")
	}
	return &TokenManager{
		secret:          []byte(secret),
		accessLifetime:  accessLifetime,
		refreshLifetime: refreshLifetime,
		now:             time.Now,
	}, nil
}

func (m *TokenManager) NewAccessToken(userID uint) (string, *Claims, error) {
	return m.issue(userID, TokenTypeAccess, m.accessLifetime)
}

func (m *TokenManager) NewRefreshToken(userID uint) (string, *Claims, error) {
	return m.issue(userID, TokenTypeRefresh, m.refreshLifetime)
}

func (m *TokenManager) issue(userID uint, tokenType string, lifetime time.Duration) (string, *Claims, error) {
	now := m.now()
	claims := &Claims{
		UserID:    userID,
		TokenType: tokenType,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.New().String(),
			ExpiresAt: jwt.NewNumericDate(now.Add(lifetime)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.secret)
	if err != nil {
		return "", nil, fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, claims, nil
}

// Parse verifies signature, expiry and token type. An empty want accepts
// either type.
func (m *TokenManager) Parse(tokenString, want string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return m.secret, nil
	}, jwt.WithTimeFunc(m.now), jwt.WithExpirationRequired())
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid || claims.ID == "" {
		return nil, ErrInvalidToken
	}
	if want != "" && claims.TokenType != want {
		return nil, ErrWrongTokenType
	}
	return claims, nil
}
