// File: internal/shared/core.go
// Package shared holds small contracts used across module boundaries so the
// auth, middleware and user packages do not import each other directly.
package shared

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Claims defines the JWT claims carried by session tokens.
type Claims struct {
	UserID uuid.UUID `json:"user_id"`
	Email  string    `json:"email"`
	jwt.RegisteredClaims
}

// UserDataForToken is the minimal user identity needed to mint tokens.
type UserDataForToken struct {
	ID    uuid.UUID
	Email string
}

// TokenResponse is the token pair returned by the session endpoints.
type TokenResponse struct {
	AccessToken           string    `json:"access_token"`
	RefreshToken          string    `json:"refresh_token,omitempty"`
	AccessTokenExpiresAt  time.Time `json:"access_token_expires_at"`
	RefreshTokenExpiresAt time.Time `json:"refresh_token_expires_at,omitempty"`
}

// TokenService mints and validates session tokens.
type TokenService interface {
	GenerateTokenPair(user UserDataForToken) (*TokenResponse, error)
	ValidateToken(tokenString string) (*Claims, error)
	RefreshAccessToken(refreshTokenString string) (*TokenResponse, error)
}
