// File: internal/auth/service.go
package auth

import (
	"errors"
	"fmt"
	"time"

	"foodshare_backend/internal/config"
	"foodshare_backend/internal/shared"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	issuerAccess  = "foodshare_backend"
	issuerRefresh = "foodshare_backend_refresh"
)

// JWTService issues and validates the HS256 session tokens returned by
// POST /jwt.
type JWTService struct {
	cfg    *config.Config
	logger *zap.Logger
}

// NewJWTService creates a new JWT token service.
func NewJWTService(cfg *config.Config, logger *zap.Logger) shared.TokenService {
	return &JWTService{cfg: cfg, logger: logger}
}

// GenerateTokenPair mints an access and refresh token for the given user.
func (s *JWTService) GenerateTokenPair(user shared.UserDataForToken) (*shared.TokenResponse, error) {
	accessToken, accessExpiry, err := s.signToken(user, issuerAccess, s.cfg.JWTAccessTokenExpiry, "")
	if err != nil {
		s.logger.Error("Failed to sign access token", zap.Error(err))
		return nil, fmt.Errorf("could not sign access token: %w", err)
	}

	refreshToken, refreshExpiry, err := s.signToken(user, issuerRefresh, s.cfg.JWTRefreshTokenExpiry, uuid.NewString())
	if err != nil {
		s.logger.Error("Failed to sign refresh token", zap.Error(err))
		return nil, fmt.Errorf("could not sign refresh token: %w", err)
	}

	return &shared.TokenResponse{
		AccessToken:           accessToken,
		RefreshToken:          refreshToken,
		AccessTokenExpiresAt:  accessExpiry,
		RefreshTokenExpiresAt: refreshExpiry,
	}, nil
}

func (s *JWTService) signToken(user shared.UserDataForToken, issuer string, ttl time.Duration, jti string) (string, time.Time, error) {
	expirationTime := time.Now().Add(ttl)
	claims := &shared.Claims{
		UserID: user.ID,
		Email:  user.Email,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(expirationTime),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			Issuer:    issuer,
			Subject:   user.ID.String(),
			ID:        jti,
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString([]byte(s.cfg.JWTSecretKey))
	if err != nil {
		return "", time.Time{}, err
	}
	return tokenString, expirationTime, nil
}

// ValidateToken validates an access token string and returns its claims.
func (s *JWTService) ValidateToken(tokenString string) (*shared.Claims, error) {
	claims, err := s.parseClaims(tokenString)
	if err != nil {
		return nil, err
	}
	if claims.Issuer != issuerAccess {
		return nil, errors.New("token is not an access token")
	}
	return claims, nil
}

// RefreshAccessToken validates a refresh token and mints a fresh token pair.
func (s *JWTService) RefreshAccessToken(refreshTokenString string) (*shared.TokenResponse, error) {
	claims, err := s.parseClaims(refreshTokenString)
	if err != nil {
		return nil, err
	}
	if claims.Issuer != issuerRefresh {
		return nil, errors.New("token is not a refresh token")
	}
	return s.GenerateTokenPair(shared.UserDataForToken{ID: claims.UserID, Email: claims.Email})
}

func (s *JWTService) parseClaims(tokenString string) (*shared.Claims, error) {
	claims := &shared.Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(s.cfg.JWTSecretKey), nil
	})
	if err != nil {
		s.logger.Debug("Failed to validate token", zap.Error(err))
		return nil, fmt.Errorf("invalid token: %w", err)
	}
	if !token.Valid {
		return nil, errors.New("invalid token claims")
	}
	return claims, nil
}
