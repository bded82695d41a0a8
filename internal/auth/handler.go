// File: internal/auth/handler.go
package auth

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"foodshare_backend/internal/common"
	"foodshare_backend/internal/firebase"
	"foodshare_backend/internal/shared"
	"foodshare_backend/internal/user"
)

// Handler exchanges Firebase identities for session tokens.
type Handler struct {
	firebaseService *firebase.FirebaseService
	userService     user.Service
	tokenService    shared.TokenService
	logger          *zap.Logger
}

// NewHandler creates a new auth handler.
func NewHandler(
	firebaseService *firebase.FirebaseService,
	userService user.Service,
	tokenService shared.TokenService,
	logger *zap.Logger,
) *Handler {
	return &Handler{
		firebaseService: firebaseService,
		userService:     userService,
		tokenService:    tokenService,
		logger:          logger,
	}
}

// RegisterRoutes sets up the session token routes.
func (h *Handler) RegisterRoutes(router *gin.RouterGroup) {
	router.POST("/jwt", h.createSession)
	router.POST("/jwt/refresh", h.refreshSession)
}

// createSession verifies a Firebase ID token, upserts the user account and
// returns a signed access/refresh token pair.
func (h *Handler) createSession(c *gin.Context) {
	var req SessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.RespondWithError(c, common.BindingError(err))
		return
	}

	fbToken, err := h.firebaseService.VerifyIDToken(c.Request.Context(), req.IDToken)
	if err != nil {
		common.RespondWithError(c, common.ErrUnauthorized.WithDetails("Firebase ID token could not be verified."))
		return
	}

	account, err := h.userService.GetOrCreateFromToken(c.Request.Context(), fbToken)
	if err != nil {
		h.logger.Error("Failed to upsert user for session", zap.Error(err))
		common.RespondWithError(c, err)
		return
	}

	tokens, err := h.tokenService.GenerateTokenPair(shared.UserDataForToken{
		ID:    account.GetID(),
		Email: account.GetEmail(),
	})
	if err != nil {
		common.RespondWithError(c, err)
		return
	}

	common.RespondOK(c, "Session created successfully.", gin.H{
		"tokens": tokens,
		"user": SessionUser{
			ID:          account.GetID().String(),
			Email:       account.GetEmail(),
			DisplayName: account.DisplayName,
			AvatarURL:   account.AvatarURL,
		},
	})
}

// refreshSession exchanges a valid refresh token for a new token pair.
func (h *Handler) refreshSession(c *gin.Context) {
	var req RefreshRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.RespondWithError(c, common.BindingError(err))
		return
	}

	tokens, err := h.tokenService.RefreshAccessToken(req.RefreshToken)
	if err != nil {
		common.RespondWithError(c, common.ErrUnauthorized.WithDetails("Refresh token is invalid or expired."))
		return
	}

	common.RespondOK(c, "Session refreshed successfully.", gin.H{"tokens": tokens})
}
