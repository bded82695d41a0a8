// File: internal/food/service.go
package food

import (
	"context"
	"errors"
	"sort"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"foodshare_backend/internal/common"
	"foodshare_backend/internal/config"
	"foodshare_backend/internal/platform/elasticsearch"
)

// DonorProfile is the authenticated donor identity stamped onto new listings.
type DonorProfile struct {
	ID    uuid.UUID
	Email string
}

// Service defines business operations for food listings.
type Service interface {
	CreateFood(ctx context.Context, donor DonorProfile, req CreateFoodRequest) (*FoodListing, error)
	GetFoodByID(ctx context.Context, id uuid.UUID) (*FoodListing, error)
	GetAvailableFoods(ctx context.Context, query SearchQuery) ([]FoodListing, error)
	GetFeaturedFoods(ctx context.Context) ([]FoodListing, error)
	GetFoodsByDonorEmail(ctx context.Context, email string) ([]FoodListing, error)
	UpdateFood(ctx context.Context, id uuid.UUID, callerID uuid.UUID, req UpdateFoodRequest) (*FoodListing, error)
	DeleteFood(ctx context.Context, id uuid.UUID, callerID uuid.UUID) error
	SyncFoodsToSearch(ctx context.Context) (int, error)
}

type service struct {
	repo   Repository
	search *esIndex
	cfg    *config.Config
	logger *zap.Logger
}

// NewService creates a new food listing service.
func NewService(repo Repository, es *elasticsearch.ESClientWrapper, cfg *config.Config, logger *zap.Logger) Service {
	return &service{
		repo:   repo,
		search: newESIndex(es, logger),
		cfg:    cfg,
		logger: logger,
	}
}

// CreateFood validates and persists a new listing owned by the caller.
func (s *service) CreateFood(ctx context.Context, donor DonorProfile, req CreateFoodRequest) (*FoodListing, error) {
	if !req.ExpiredDateTime.After(time.Now()) {
		return nil, common.ErrBadRequest.WithDetails("expiredDateTime must be in the future.")
	}

	donorName := donor.Email
	donorImage := ""
	if req.Donator != nil {
		if req.Donator.Name != "" {
			donorName = req.Donator.Name
		}
		donorImage = req.Donator.Image
	}

	listing := &FoodListing{
		FoodName:        req.FoodName,
		FoodImage:       req.FoodImage,
		FoodQuantity:    req.FoodQuantity,
		PickupLocation:  req.PickupLocation,
		ExpiredDateTime: req.ExpiredDateTime,
		AdditionalNotes: req.AdditionalNotes,
		FoodStatus:      StatusAvailable,
		DonorID:         donor.ID,
		DonorName:       donorName,
		DonorEmail:      donor.Email,
		DonorImage:      donorImage,
	}

	if err := s.repo.Create(ctx, listing); err != nil {
		s.logger.Error("Failed to create food listing", zap.Error(err))
		return nil, err
	}

	s.search.Index(ctx, listing)
	s.logger.Info("Food listing created",
		zap.String("id", listing.ID.String()),
		zap.String("donorEmail", listing.DonorEmail))
	return listing, nil
}

func (s *service) GetFoodByID(ctx context.Context, id uuid.UUID) (*FoodListing, error) {
	listing, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, common.ErrNotFound.WithDetails("Food listing not found.")
		}
		return nil, err
	}
	return listing, nil
}

// GetAvailableFoods lists unexpired available listings, optionally filtered
// by a name search. When the search mirror is up the term goes through
// Elasticsearch; otherwise the SQL LIKE path serves it.
func (s *service) GetAvailableFoods(ctx context.Context, query SearchQuery) ([]FoodListing, error) {
	now := time.Now()

	if query.Search != "" {
		if ids, ok := s.search.SearchIDs(ctx, query.Search); ok {
			listings, err := s.repo.FindByIDs(ctx, ids)
			if err != nil {
				return nil, err
			}
			return filterAndSort(listings, query.Sort, now), nil
		}
	}

	return s.repo.FindAvailable(ctx, query, now)
}

func (s *service) GetFeaturedFoods(ctx context.Context) ([]FoodListing, error) {
	limit := s.cfg.FeaturedFoodsLimit
	if limit <= 0 {
		limit = 6
	}
	return s.repo.FindFeatured(ctx, limit, time.Now())
}

func (s *service) GetFoodsByDonorEmail(ctx context.Context, email string) ([]FoodListing, error) {
	return s.repo.FindByDonorEmail(ctx, email)
}

// UpdateFood applies partial edits to a listing. Only the donor may edit, and
// the status field is never writable through this path.
func (s *service) UpdateFood(ctx context.Context, id uuid.UUID, callerID uuid.UUID, req UpdateFoodRequest) (*FoodListing, error) {
	listing, err := s.GetFoodByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if listing.DonorID != callerID {
		return nil, common.ErrForbidden.WithDetails("Only the donor may edit this listing.")
	}

	if req.FoodName != nil {
		listing.FoodName = *req.FoodName
	}
	if req.FoodImage != nil {
		listing.FoodImage = *req.FoodImage
	}
	if req.FoodQuantity != nil {
		listing.FoodQuantity = *req.FoodQuantity
	}
	if req.PickupLocation != nil {
		listing.PickupLocation = *req.PickupLocation
	}
	if req.ExpiredDateTime != nil {
		if !req.ExpiredDateTime.After(time.Now()) {
			return nil, common.ErrBadRequest.WithDetails("expiredDateTime must be in the future.")
		}
		listing.ExpiredDateTime = *req.ExpiredDateTime
	}
	if req.AdditionalNotes != nil {
		listing.AdditionalNotes = *req.AdditionalNotes
	}

	if err := s.repo.Update(ctx, listing); err != nil {
		s.logger.Error("Failed to update food listing", zap.Error(err), zap.String("id", id.String()))
		return nil, err
	}

	s.search.Index(ctx, listing)
	return listing, nil
}

// DeleteFood removes a listing. Only the donor may delete.
func (s *service) DeleteFood(ctx context.Context, id uuid.UUID, callerID uuid.UUID) error {
	listing, err := s.GetFoodByID(ctx, id)
	if err != nil {
		return err
	}
	if listing.DonorID != callerID {
		return common.ErrForbidden.WithDetails("Only the donor may delete this listing.")
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return common.ErrNotFound.WithDetails("Food listing not found.")
		}
		return err
	}

	s.search.Delete(ctx, id)
	s.logger.Info("Food listing deleted", zap.String("id", id.String()))
	return nil
}

// SyncFoodsToSearch bulk reindexes every listing into the search mirror.
func (s *service) SyncFoodsToSearch(ctx context.Context) (int, error) {
	listings, err := s.repo.FindAllForSync(ctx)
	if err != nil {
		return 0, err
	}
	if len(listings) == 0 {
		return 0, nil
	}
	if err := s.search.BulkIndex(ctx, listings); err != nil {
		return 0, err
	}
	return len(listings), nil
}

// filterAndSort re-applies availability and expiry filters to rows fetched by
// ID from the search mirror, which may lag the database.
func filterAndSort(listings []FoodListing, sortKey string, now time.Time) []FoodListing {
	filtered := make([]FoodListing, 0, len(listings))
	for _, l := range listings {
		if l.IsAvailable() && !l.IsExpired(now) {
			filtered = append(filtered, l)
		}
	}

	switch sortKey {
	case "expiryDate":
		sortByExpiry(filtered, true)
	case "-expiryDate":
		sortByExpiry(filtered, false)
	}
	return filtered
}

func sortByExpiry(listings []FoodListing, ascending bool) {
	sort.Slice(listings, func(i, j int) bool {
		if ascending {
			return listings[i].ExpiredDateTime.Before(listings[j].ExpiredDateTime)
		}
		return listings[i].ExpiredDateTime.After(listings[j].ExpiredDateTime)
	})
}
