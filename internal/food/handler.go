// File: internal/food/handler.go
package food

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"foodshare_backend/internal/common"
	"foodshare_backend/internal/middleware"
)

// Handler exposes the food listing HTTP routes.
type Handler struct {
	service Service
	logger  *zap.Logger
}

// NewHandler creates a new food handler.
func NewHandler(service Service, logger *zap.Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

// RegisterRoutes sets up the public and protected food routes.
func (h *Handler) RegisterRoutes(public *gin.RouterGroup, protected *gin.RouterGroup) {
	public.GET("/available-foods", h.listAvailable)
	public.GET("/featured-foods", h.listFeatured)

	protected.GET("/food/:id", h.getByID)
	protected.POST("/add-food", h.create)
	protected.PUT("/food/:id", h.update)
	protected.DELETE("/food/:id", h.delete)
	protected.GET("/manage-foods/:email", middleware.RequireEmailMatch("email"), h.listByDonor)
}

func (h *Handler) create(c *gin.Context) {
	var req CreateFoodRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.RespondWithError(c, common.BindingError(err))
		return
	}

	donor := DonorProfile{
		ID:    common.GetUserIDFromContext(c),
		Email: common.GetUserEmailFromContext(c),
	}
	if donor.ID == uuid.Nil || donor.Email == "" {
		common.RespondWithError(c, common.ErrUnauthorized)
		return
	}

	listing, err := h.service.CreateFood(c.Request.Context(), donor, req)
	if err != nil {
		common.RespondWithError(c, err)
		return
	}
	common.RespondCreated(c, "Food listing created successfully.", ToResponse(listing))
}

func (h *Handler) listAvailable(c *gin.Context) {
	var query SearchQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		common.RespondWithError(c, common.BindingError(err))
		return
	}

	listings, err := h.service.GetAvailableFoods(c.Request.Context(), query)
	if err != nil {
		common.RespondWithError(c, err)
		return
	}
	common.RespondOK(c, "", ToResponseList(listings))
}

func (h *Handler) listFeatured(c *gin.Context) {
	listings, err := h.service.GetFeaturedFoods(c.Request.Context())
	if err != nil {
		common.RespondWithError(c, err)
		return
	}
	common.RespondOK(c, "", ToResponseList(listings))
}

func (h *Handler) getByID(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		common.RespondWithError(c, common.ErrBadRequest.WithDetails("Invalid food ID format."))
		return
	}

	listing, err := h.service.GetFoodByID(c.Request.Context(), id)
	if err != nil {
		common.RespondWithError(c, err)
		return
	}
	common.RespondOK(c, "", ToResponse(listing))
}

func (h *Handler) update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		common.RespondWithError(c, common.ErrBadRequest.WithDetails("Invalid food ID format."))
		return
	}

	var req UpdateFoodRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.RespondWithError(c, common.BindingError(err))
		return
	}

	listing, err := h.service.UpdateFood(c.Request.Context(), id, common.GetUserIDFromContext(c), req)
	if err != nil {
		common.RespondWithError(c, err)
		return
	}
	common.RespondOK(c, "Food listing updated successfully.", ToResponse(listing))
}

func (h *Handler) delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		common.RespondWithError(c, common.ErrBadRequest.WithDetails("Invalid food ID format."))
		return
	}

	if err := h.service.DeleteFood(c.Request.Context(), id, common.GetUserIDFromContext(c)); err != nil {
		common.RespondWithError(c, err)
		return
	}
	common.RespondNoContent(c)
}

func (h *Handler) listByDonor(c *gin.Context) {
	listings, err := h.service.GetFoodsByDonorEmail(c.Request.Context(), c.Param("email"))
	if err != nil {
		common.RespondWithError(c, err)
		return
	}
	common.RespondOK(c, "", ToResponseList(listings))
}
