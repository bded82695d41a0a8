// File: internal/food/repository.go
package food

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Repository defines persistence operations for food listings.
type Repository interface {
	Create(ctx context.Context, listing *FoodListing) error
	FindByID(ctx context.Context, id uuid.UUID) (*FoodListing, error)
	FindAvailable(ctx context.Context, query SearchQuery, now time.Time) ([]FoodListing, error)
	FindFeatured(ctx context.Context, limit int, now time.Time) ([]FoodListing, error)
	FindByDonorEmail(ctx context.Context, email string) ([]FoodListing, error)
	FindByIDs(ctx context.Context, ids []uuid.UUID) ([]FoodListing, error)
	FindAllForSync(ctx context.Context) ([]FoodListing, error)
	Update(ctx context.Context, listing *FoodListing) error
	Delete(ctx context.Context, id uuid.UUID) error
	MarkUnavailable(ctx context.Context, id uuid.UUID) (bool, error)
	RestoreAvailable(ctx context.Context, id uuid.UUID) error
	CountExpiredAvailable(ctx context.Context, now time.Time) (int64, error)
}

type gormRepository struct {
	db *gorm.DB
}

// NewGORMRepository creates a new GORM-backed food listing repository.
func NewGORMRepository(db *gorm.DB) Repository {
	return &gormRepository{db: db}
}

func (r *gormRepository) Create(ctx context.Context, listing *FoodListing) error {
	return r.db.WithContext(ctx).Create(listing).Error
}

func (r *gormRepository) FindByID(ctx context.Context, id uuid.UUID) (*FoodListing, error) {
	var listing FoodListing
	err := r.db.WithContext(ctx).First(&listing, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, gorm.ErrRecordNotFound
		}
		return nil, err
	}
	return &listing, nil
}

func (r *gormRepository) FindAvailable(ctx context.Context, query SearchQuery, now time.Time) ([]FoodListing, error) {
	db := r.db.WithContext(ctx).
		Where("food_status = ?", StatusAvailable).
		Where("expired_date_time > ?", now)

	if query.Search != "" {
		db = db.Where("LOWER(food_name) LIKE ?", "%"+strings.ToLower(query.Search)+"%")
	}

	switch query.Sort {
	case "expiryDate":
		db = db.Order("expired_date_time ASC")
	case "-expiryDate":
		db = db.Order("expired_date_time DESC")
	default:
		db = db.Order("created_at DESC")
	}

	var listings []FoodListing
	if err := db.Find(&listings).Error; err != nil {
		return nil, err
	}
	return listings, nil
}

func (r *gormRepository) FindFeatured(ctx context.Context, limit int, now time.Time) ([]FoodListing, error) {
	var listings []FoodListing
	err := r.db.WithContext(ctx).
		Where("food_status = ?", StatusAvailable).
		Where("expired_date_time > ?", now).
		Order("food_quantity DESC").
		Limit(limit).
		Find(&listings).Error
	if err != nil {
		return nil, err
	}
	return listings, nil
}

func (r *gormRepository) FindByDonorEmail(ctx context.Context, email string) ([]FoodListing, error) {
	var listings []FoodListing
	err := r.db.WithContext(ctx).
		Where("donor_email = ?", email).
		Order("created_at DESC").
		Find(&listings).Error
	if err != nil {
		return nil, err
	}
	return listings, nil
}

func (r *gormRepository) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]FoodListing, error) {
	if len(ids) == 0 {
		return []FoodListing{}, nil
	}
	var listings []FoodListing
	if err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&listings).Error; err != nil {
		return nil, err
	}
	return listings, nil
}

func (r *gormRepository) FindAllForSync(ctx context.Context) ([]FoodListing, error) {
	var listings []FoodListing
	if err := r.db.WithContext(ctx).Order("created_at ASC").Find(&listings).Error; err != nil {
		return nil, err
	}
	return listings, nil
}

// Update persists the donor-editable columns only. The status column is
// written exclusively through MarkUnavailable and RestoreAvailable, so a
// stale in-memory row can never overwrite a concurrent claim.
func (r *gormRepository) Update(ctx context.Context, listing *FoodListing) error {
	return r.db.WithContext(ctx).
		Model(listing).
		Select("food_name", "food_image", "food_quantity", "pickup_location", "expired_date_time", "additional_notes").
		Updates(listing).Error
}

func (r *gormRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&FoodListing{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// MarkUnavailable flips an available listing to unavailable. The status guard
// in the WHERE clause makes the claim atomic, so exactly one of any number of
// concurrent callers observes claimed=true.
func (r *gormRepository) MarkUnavailable(ctx context.Context, id uuid.UUID) (bool, error) {
	result := r.db.WithContext(ctx).
		Model(&FoodListing{}).
		Where("id = ? AND food_status = ?", id, StatusAvailable).
		Update("food_status", StatusUnavailable)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected == 1, nil
}

// RestoreAvailable reverts a claim. Used as compensation when recording the
// request fails after the status flip.
func (r *gormRepository) RestoreAvailable(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).
		Model(&FoodListing{}).
		Where("id = ? AND food_status = ?", id, StatusUnavailable).
		Update("food_status", StatusAvailable).Error
}

func (r *gormRepository) CountExpiredAvailable(ctx context.Context, now time.Time) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&FoodListing{}).
		Where("food_status = ?", StatusAvailable).
		Where("expired_date_time <= ?", now).
		Count(&count).Error
	return count, err
}
