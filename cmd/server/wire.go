// File: cmd/server/wire.go
//go:build wireinject
// +build wireinject

package main

import (
	"log"

	"foodshare_backend/internal/app"
	"foodshare_backend/internal/auth"
	"foodshare_backend/internal/config"
	"foodshare_backend/internal/firebase"
	"foodshare_backend/internal/food"
	"foodshare_backend/internal/jobs"
	"foodshare_backend/internal/platform/database"
	"foodshare_backend/internal/platform/elasticsearch"
	"foodshare_backend/internal/platform/logger"
	"foodshare_backend/internal/request"
	"foodshare_backend/internal/user"

	"github.com/google/wire"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// initializeServer is the main Wire injector.
func initializeServer(cfg *config.Config) (*app.Server, func(), error) {
	wire.Build(
		// Platform Layer
		logger.New,
		database.NewMigratedGORM,
		elasticsearch.NewClient,
		provideCleanup,

		// Identity
		firebase.NewFirebaseService,
		auth.NewJWTService,
		user.NewGORMRepository,
		user.NewService,
		auth.NewHandler,

		// Food Listings
		food.NewGORMRepository,
		food.NewService,
		food.NewHandler,

		// Food Requests
		request.NewGORMRepository,
		request.NewService,
		request.NewHandler,

		// Jobs
		jobs.NewExpirySweeper,

		// Application Layer
		app.NewServer,
	)
	return nil, nil, nil
}

func provideCleanup(logger *zap.Logger, db *gorm.DB) func() {
	return func() {
		logger.Info("Executing cleanup tasks...")
		database.CloseGORMDB(db)
		if err := logger.Sync(); err != nil {
			log.Printf("ERROR: Failed to sync logger during cleanup: %v", err)
		}
	}
}
