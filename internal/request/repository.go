// File: internal/request/repository.go
package request

import (
	"context"

	"gorm.io/gorm"
)

// Repository defines persistence operations for the request ledger.
type Repository interface {
	Create(ctx context.Context, req *FoodRequest) error
	FindByRequesterEmail(ctx context.Context, email string) ([]FoodRequest, error)
}

type gormRepository struct {
	db *gorm.DB
}

// NewGORMRepository creates a new GORM-backed request repository.
func NewGORMRepository(db *gorm.DB) Repository {
	return &gormRepository{db: db}
}

func (r *gormRepository) Create(ctx context.Context, req *FoodRequest) error {
	return r.db.WithContext(ctx).Create(req).Error
}

func (r *gormRepository) FindByRequesterEmail(ctx context.Context, email string) ([]FoodRequest, error) {
	requests := make([]FoodRequest, 0)
	err := r.db.WithContext(ctx).
		Where("requester_email = ?", email).
		Order("request_date DESC").
		Find(&requests).Error
	if err != nil {
		return nil, err
	}
	return requests, nil
}
