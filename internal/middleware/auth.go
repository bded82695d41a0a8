// File: internal/middleware/auth.go
package middleware

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"foodshare_backend/internal/common"
	"foodshare_backend/internal/shared"
)

// AuthMiddleware validates the Bearer session token and stores the caller's
// identity on the request context.
func AuthMiddleware(tokenService shared.TokenService, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString := common.GetTokenFromContext(c)
		if tokenString == "" {
			common.RespondWithError(c, common.ErrUnauthorized.WithDetails("Authorization header is missing or malformed."))
			return
		}

		claims, err := tokenService.ValidateToken(tokenString)
		if err != nil {
			logger.Debug("Session token validation failed", zap.Error(err))
			common.RespondWithError(c, common.ErrUnauthorized.WithDetails("Session token is invalid or expired."))
			return
		}

		c.Set(common.UserIDKey, claims.UserID)
		c.Set(common.UserEmailKey, claims.Email)
		c.Next()
	}
}

// RequireEmailMatch guards routes keyed by an :email path parameter so a
// caller can only read their own rows.
func RequireEmailMatch(paramName string) gin.HandlerFunc {
	return func(c *gin.Context) {
		authedEmail := common.GetUserEmailFromContext(c)
		requested := c.Param(paramName)
		if authedEmail == "" || requested == "" || authedEmail != requested {
			common.RespondWithError(c, common.ErrForbidden.WithDetails("You may only access your own records."))
			return
		}
		c.Next()
	}
}
