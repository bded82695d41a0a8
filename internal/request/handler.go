// File: internal/request/handler.go
package request

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"foodshare_backend/internal/common"
	"foodshare_backend/internal/middleware"
)

// Handler exposes the food request HTTP routes.
type Handler struct {
	service Service
	logger  *zap.Logger
}

// NewHandler creates a new request handler.
func NewHandler(service Service, logger *zap.Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

// RegisterRoutes sets up the protected request routes.
func (h *Handler) RegisterRoutes(protected *gin.RouterGroup) {
	protected.POST("/request-food", h.submit)
	protected.GET("/my-requests/:email", middleware.RequireEmailMatch("email"), h.listMine)
}

func (h *Handler) submit(c *gin.Context) {
	var req SubmitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.RespondWithError(c, common.BindingError(err))
		return
	}

	requester := RequesterProfile{
		ID:    common.GetUserIDFromContext(c),
		Email: common.GetUserEmailFromContext(c),
	}
	if requester.ID == uuid.Nil || requester.Email == "" {
		common.RespondWithError(c, common.ErrUnauthorized)
		return
	}

	recorded, err := h.service.SubmitRequest(c.Request.Context(), requester, req)
	if err != nil {
		common.RespondWithError(c, err)
		return
	}
	common.RespondCreated(c, "Food request submitted successfully.", recorded)
}

func (h *Handler) listMine(c *gin.Context) {
	requests, err := h.service.GetRequestsByEmail(c.Request.Context(), c.Param("email"))
	if err != nil {
		common.RespondWithError(c, err)
		return
	}
	common.RespondOK(c, "", requests)
}
