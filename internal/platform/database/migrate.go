// File: internal/platform/database/migrate.go
package database

import (
	"fmt"

	"gorm.io/gorm"

	"foodshare_backend/internal/config"
	"foodshare_backend/internal/food"
	"foodshare_backend/internal/request"
	"foodshare_backend/internal/user"
)

// NewMigratedGORM connects to the database and runs schema migrations.
func NewMigratedGORM(cfg *config.Config) (*gorm.DB, error) {
	db, err := NewGORM(cfg)
	if err != nil {
		return nil, err
	}
	if err := AutoMigrate(db); err != nil {
		return nil, err
	}
	return db, nil
}

// AutoMigrate runs schema migrations for all application models.
func AutoMigrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&user.User{},
		&food.FoodListing{},
		&request.FoodRequest{},
	); err != nil {
		return fmt.Errorf("auto migration failed: %w", err)
	}
	return nil
}
