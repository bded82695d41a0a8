// File: internal/user/service.go
package user

import (
	"context"
	"errors"
	"time"

	fbauth "firebase.google.com/go/v4/auth"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Service manages user accounts sourced from Firebase identities.
type Service interface {
	GetOrCreateFromToken(ctx context.Context, token *fbauth.Token) (*User, error)
}

type service struct {
	repo   Repository
	logger *zap.Logger
}

// NewService creates a new user service.
func NewService(repo Repository, logger *zap.Logger) Service {
	return &service{repo: repo, logger: logger}
}

// GetOrCreateFromToken upserts a user record from verified Firebase token
// claims and stamps the login time.
func (s *service) GetOrCreateFromToken(ctx context.Context, token *fbauth.Token) (*User, error) {
	email, _ := token.Claims["email"].(string)
	if email == "" {
		return nil, errors.New("firebase token has no email claim")
	}
	name, _ := token.Claims["name"].(string)
	picture, _ := token.Claims["picture"].(string)

	now := time.Now()

	existing, err := s.repo.FindByFirebaseUID(ctx, token.UID)
	if err == nil {
		existing.DisplayName = name
		existing.AvatarURL = picture
		existing.LastLoginAt = &now
		if updateErr := s.repo.Update(ctx, existing); updateErr != nil {
			s.logger.Warn("Failed to update user on login", zap.Error(updateErr), zap.String("email", email))
		}
		return existing, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	// Accounts created before Firebase UIDs were recorded are matched by email.
	byEmail, err := s.repo.FindByEmail(ctx, email)
	if err == nil {
		byEmail.FirebaseUID = token.UID
		byEmail.DisplayName = name
		byEmail.AvatarURL = picture
		byEmail.LastLoginAt = &now
		if updateErr := s.repo.Update(ctx, byEmail); updateErr != nil {
			return nil, updateErr
		}
		return byEmail, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	newUser := &User{
		Email:       email,
		DisplayName: name,
		AvatarURL:   picture,
		FirebaseUID: token.UID,
		LastLoginAt: &now,
	}
	if err := s.repo.Create(ctx, newUser); err != nil {
		return nil, err
	}
	s.logger.Info("Created new user from Firebase identity", zap.String("email", email))
	return newUser, nil
}
