// File: cmd/server/main.go
package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"foodshare_backend/internal/config"
	"foodshare_backend/internal/food"
	"foodshare_backend/internal/platform/database"
	platformElasticsearch "foodshare_backend/internal/platform/elasticsearch"
	"foodshare_backend/internal/platform/logger"

	"go.uber.org/zap"
)

func main() {
	if len(os.Args) > 1 && os.Args[1] == "sync-foods" {
		runFoodSync()
		return
	}
	startServer()
}

func startServer() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("FATAL: Failed to load configuration: %v", err)
	}

	server, cleanup, err := initializeServer(cfg)
	if err != nil {
		log.Fatalf("FATAL: Failed to initialize server: %v", err)
	}
	defer cleanup()

	if server.ESClient != nil {
		if err := server.ESClient.CreateFoodsIndexIfNotExists(context.Background()); err != nil {
			server.AppLogger.Error("Failed to create Elasticsearch foods index", zap.Error(err))
		}
	} else {
		server.AppLogger.Info("Elasticsearch not configured, skipping index creation.")
	}

	go func() {
		if err := server.Start(); err != nil {
			log.Fatalf("FATAL: Server failed to start or crashed: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit
	log.Printf("INFO: Received signal '%s'. Shutting down server...", sig)

	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), cfg.ServerTimeout)
	defer cancelShutdown()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Printf("ERROR: Server forced to shutdown due to error: %v", err)
	} else {
		log.Println("INFO: Server shutdown complete.")
	}
}

// runFoodSync bulk reindexes every food listing into Elasticsearch.
func runFoodSync() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("FATAL: Failed to load configuration for sync: %v", err)
	}
	appLogger, err := logger.New(cfg)
	if err != nil {
		log.Fatalf("FATAL: Failed to initialize logger for sync: %v", err)
	}
	db, err := database.NewGORM(cfg)
	if err != nil {
		appLogger.Fatal("FATAL: Failed to initialize database for sync", zap.Error(err))
	}
	defer database.CloseGORMDB(db)

	esClient, err := platformElasticsearch.NewClient(cfg, appLogger)
	if err != nil {
		appLogger.Fatal("FATAL: Failed to initialize Elasticsearch client for sync", zap.Error(err))
	}
	if esClient == nil {
		appLogger.Fatal("FATAL: ELASTICSEARCH_URL must be set to run sync-foods.")
	}

	ctx := context.Background()
	if err := esClient.CreateFoodsIndexIfNotExists(ctx); err != nil {
		appLogger.Fatal("FATAL: Failed to create/verify Elasticsearch index before sync", zap.Error(err))
	}

	foodRepo := food.NewGORMRepository(db)
	foodService := food.NewService(foodRepo, esClient, cfg, appLogger)

	count, err := foodService.SyncFoodsToSearch(ctx)
	if err != nil {
		appLogger.Fatal("FATAL: Food synchronization failed", zap.Error(err))
	}
	appLogger.Info("Food synchronization completed successfully.", zap.Int("count", count))
}
