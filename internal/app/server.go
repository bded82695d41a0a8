// File: internal/app/server.go
package app

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"foodshare_backend/internal/auth"
	"foodshare_backend/internal/config"
	"foodshare_backend/internal/food"
	"foodshare_backend/internal/jobs"
	"foodshare_backend/internal/middleware"
	"foodshare_backend/internal/platform/elasticsearch"
	"foodshare_backend/internal/request"
	"foodshare_backend/internal/shared"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Server holds the HTTP server and its dependencies.
type Server struct {
	httpServer *http.Server
	router     *gin.Engine
	cfg        *config.Config
	logger     *zap.Logger

	expirySweeper *jobs.ExpirySweeper

	// Exposed for startup tasks in main.
	ESClient  *elasticsearch.ESClientWrapper
	AppLogger *zap.Logger
}

// NewServer builds the Gin engine, wires the route table and returns a
// configured server.
func NewServer(
	cfg *config.Config,
	logger *zap.Logger,
	authHandler *auth.Handler,
	foodHandler *food.Handler,
	requestHandler *request.Handler,
	expirySweeper *jobs.ExpirySweeper,
	tokenService shared.TokenService,
	esClient *elasticsearch.ESClientWrapper,
) (*Server, error) {
	gin.SetMode(cfg.GinMode)
	router := gin.New()

	router.Use(middleware.RequestID())
	router.Use(middleware.ZapLogger(logger))
	router.Use(middleware.ErrorHandler(logger))
	router.Use(gin.Recovery())

	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = []string{"*"}
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Accept", "Authorization", middleware.RequestIDKey}
	corsConfig.ExposeHeaders = []string{"Content-Length", middleware.RequestIDKey}
	router.Use(cors.New(corsConfig))

	authMW := middleware.AuthMiddleware(tokenService, logger.Named("AuthMiddleware"))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "UP", "message": "FoodShare API is healthy!"})
	})

	public := router.Group("/")
	protected := router.Group("/", authMW)

	authHandler.RegisterRoutes(public)
	foodHandler.RegisterRoutes(public, protected)
	requestHandler.RegisterRoutes(protected)

	addr := fmt.Sprintf("%s:%s", cfg.ServerHost, cfg.ServerPort)
	httpServer := &http.Server{
		Addr:         addr,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	return &Server{
		httpServer:    httpServer,
		router:        router,
		cfg:           cfg,
		logger:        logger,
		expirySweeper: expirySweeper,
		ESClient:      esClient,
		AppLogger:     logger,
	}, nil
}

// Start launches the background jobs and the HTTP listener. Blocks until the
// listener stops.
func (s *Server) Start() error {
	if s.expirySweeper != nil {
		if err := s.expirySweeper.Start(); err != nil {
			s.logger.Error("Failed to start expiry sweeper", zap.Error(err))
		}
	}

	s.logger.Info("HTTP Server starting",
		zap.String("address", s.httpServer.Addr),
		zap.String("gin_mode", s.cfg.GinMode),
	)
	if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		s.logger.Error("Failed to start HTTP server", zap.Error(err))
		return err
	}
	return nil
}

// Shutdown stops the background jobs and drains the HTTP server.
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("Attempting graceful server shutdown...")
	if s.expirySweeper != nil {
		s.expirySweeper.Stop()
	}
	return s.httpServer.Shutdown(ctx)
}
