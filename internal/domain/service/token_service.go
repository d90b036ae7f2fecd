package service

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// TokenService defines the interface for generating and validating the JWTs
// that authenticate dashboard owners. The identity inside the token is the
// opaque ownerId every profile write is authorized against.
type TokenService interface {
	// GenerateTokens creates a new access token and refresh token for an owner.
	GenerateTokens(ownerID string) (accessToken string, refreshToken string, err error)

	// ValidateToken checks the validity of a token string against a secret.
	ValidateToken(tokenString string, secret string) (*jwt.Token, error)

	// GetRefreshTokenDuration returns the configured duration for refresh tokens.
	GetRefreshTokenDuration() time.Duration
}
