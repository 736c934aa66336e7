// Package auth signs actors in and turns bearer tokens back into actors.
package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"stockbook/internal/core/security"
)

// JWTConfig holds JWT configuration.
type JWTConfig struct {
	Secret         string
	Issuer         string
	AccessTokenTTL time.Duration
}

// DefaultJWTConfig returns default JWT configuration.
func DefaultJWTConfig(secret string) JWTConfig {
	return JWTConfig{
		Secret:         secret,
		Issuer:         "stockbook",
		AccessTokenTTL: 12 * time.Hour,
	}
}

// Claims represents JWT claims.
type Claims struct {
	jwt.RegisteredClaims
	UserID string        `json:"uid"`
	Name   string        `json:"name"`
	Role   security.Role `json:"role"`
}

// ErrInvalidToken is returned for tokens that fail signature, expiry or claim checks.
var ErrInvalidToken = errors.New("invalid token")

// JWTService handles JWT operations.
type JWTService struct {
	config JWTConfig
	now    func() time.Time
}

// NewJWTService creates a new JWT service. now defaults to time.Now.
func NewJWTService(config JWTConfig, now func() time.Time) *JWTService {
	if now == nil {
		now = time.Now
	}
	return &JWTService{config: config, now: now}
}

// GenerateToken signs an access token for actor.
func (s *JWTService) GenerateToken(actor security.Actor) (string, time.Time, error) {
	now := s.now()
	expiresAt := now.Add(s.config.AccessTokenTTL)

	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    s.config.Issuer,
			Subject:   actor.ID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
		UserID: actor.ID,
		Name:   actor.Name,
		Role:   actor.Role,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(s.config.Secret))
	if err != nil {
		return "", time.Time{}, fmt.Errorf("sign token: %w", err)
	}
	return signed, expiresAt, nil
}

// ValidateToken verifies tokenString and returns the actor it was issued for.
func (s *JWTService) ValidateToken(tokenString string) (security.Actor, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(s.config.Secret), nil
	},
		jwt.WithTimeFunc(s.now),
		jwt.WithIssuer(s.config.Issuer),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		return security.Actor{}, fmt.Errorf("%w: %w", ErrInvalidToken, err)
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return security.Actor{}, ErrInvalidToken
	}
	if claims.UserID == "" || !claims.Role.Valid() {
		return security.Actor{}, fmt.Errorf("%w: missing user or unknown role", ErrInvalidToken)
	}

	return security.Actor{ID: claims.UserID, Name: claims.Name, Role: claims.Role}, nil
}
