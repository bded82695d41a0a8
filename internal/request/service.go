// File: internal/request/service.go
package request

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"foodshare_backend/internal/common"
	"foodshare_backend/internal/food"
)

// RequesterProfile is the authenticated identity submitting a claim.
type RequesterProfile struct {
	ID    uuid.UUID
	Email string
}

// Service coordinates listing claims and the request ledger.
type Service interface {
	SubmitRequest(ctx context.Context, requester RequesterProfile, req SubmitRequest) (*FoodRequest, error)
	GetRequestsByEmail(ctx context.Context, email string) ([]FoodRequest, error)
}

type service struct {
	requests Repository
	foods    food.Repository
	logger   *zap.Logger
}

// NewService creates a new request service.
func NewService(requests Repository, foods food.Repository, logger *zap.Logger) Service {
	return &service{requests: requests, foods: foods, logger: logger}
}

// SubmitRequest claims an available listing for the requester. The status
// flip is a conditional update, so exactly one of any number of concurrent
// claims succeeds; the losers get a conflict. The ledger row is written from
// the pre-claim snapshot, and a failed write restores the listing.
func (s *service) SubmitRequest(ctx context.Context, requester RequesterProfile, req SubmitRequest) (*FoodRequest, error) {
	listing, err := s.foods.FindByID(ctx, req.FoodID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, common.ErrNotFound.WithDetails("Food listing not found.")
		}
		return nil, err
	}

	if !listing.IsAvailable() {
		return nil, common.ErrConflict.WithDetails("This food listing is no longer available.")
	}
	if listing.IsExpired(time.Now()) {
		return nil, common.ErrConflict.WithDetails("This food listing has expired.")
	}
	if listing.DonorID == requester.ID {
		return nil, common.ErrForbidden.WithDetails("You cannot request your own food listing.")
	}

	claimed, err := s.foods.MarkUnavailable(ctx, listing.ID)
	if err != nil {
		s.logger.Error("Failed to claim food listing", zap.Error(err), zap.String("foodId", listing.ID.String()))
		return nil, err
	}
	if !claimed {
		return nil, common.ErrConflict.WithDetails("This food listing was just claimed by someone else.")
	}

	ledgerRow := &FoodRequest{
		FoodID:          listing.ID,
		FoodName:        listing.FoodName,
		FoodImage:       listing.FoodImage,
		PickupLocation:  listing.PickupLocation,
		ExpiredDateTime: listing.ExpiredDateTime,
		DonatorName:     listing.DonorName,
		DonatorEmail:    listing.DonorEmail,
		RequesterID:     requester.ID,
		RequesterEmail:  requester.Email,
		RequestDate:     time.Now(),
		AdditionalNotes: req.AdditionalNotes,
		Status:          StatusRequested,
	}

	if err := s.requests.Create(ctx, ledgerRow); err != nil {
		s.logger.Error("Failed to record food request, restoring listing",
			zap.Error(err), zap.String("foodId", listing.ID.String()))
		if restoreErr := s.foods.RestoreAvailable(ctx, listing.ID); restoreErr != nil {
			s.logger.Error("Failed to restore listing after ledger write failure",
				zap.Error(restoreErr), zap.String("foodId", listing.ID.String()))
		}
		return nil, err
	}

	s.logger.Info("Food request recorded",
		zap.String("foodId", listing.ID.String()),
		zap.String("requesterEmail", requester.Email))
	return ledgerRow, nil
}

func (s *service) GetRequestsByEmail(ctx context.Context, email string) ([]FoodRequest, error) {
	return s.requests.FindByRequesterEmail(ctx, email)
}
