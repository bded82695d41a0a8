// File: internal/jobs/expiry_sweep.go
package jobs

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"foodshare_backend/internal/config"
	"foodshare_backend/internal/food"
)

// ExpirySweeper periodically reports listings whose pickup window has passed
// while still marked available. It only observes; listing status is written
// exclusively by the request flow.
type ExpirySweeper struct {
	cron     *cron.Cron
	foodRepo food.Repository
	schedule string
	logger   *zap.Logger
}

// NewExpirySweeper creates the sweeper with the configured cron schedule.
func NewExpirySweeper(cfg *config.Config, foodRepo food.Repository, logger *zap.Logger) *ExpirySweeper {
	c := cron.New(cron.WithChain(
		cron.Recover(cronLogger{logger: logger}),
	))
	return &ExpirySweeper{
		cron:     c,
		foodRepo: foodRepo,
		schedule: cfg.ExpirySweepSchedule,
		logger:   logger,
	}
}

// Start registers and starts the sweep schedule.
func (s *ExpirySweeper) Start() error {
	_, err := s.cron.AddFunc(s.schedule, s.sweep)
	if err != nil {
		return fmt.Errorf("failed to schedule expiry sweep (%q): %w", s.schedule, err)
	}
	s.cron.Start()
	s.logger.Info("Expiry sweep scheduled", zap.String("schedule", s.schedule))
	return nil
}

// Stop halts the cron scheduler and waits for a running sweep to finish.
func (s *ExpirySweeper) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	s.logger.Info("Expiry sweep stopped")
}

func (s *ExpirySweeper) sweep() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	count, err := s.foodRepo.CountExpiredAvailable(ctx, time.Now())
	if err != nil {
		s.logger.Error("Expiry sweep failed", zap.Error(err))
		return
	}
	if count == 0 {
		s.logger.Debug("Expiry sweep found no expired available listings")
		return
	}
	s.logger.Warn("Expired listings still marked available",
		zap.Int64("count", count))
}

// cronLogger adapts zap to the cron logger interface.
type cronLogger struct {
	logger *zap.Logger
}

func (l cronLogger) Info(msg string, keysAndValues ...interface{}) {
	l.logger.Sugar().Infow(msg, keysAndValues...)
}

func (l cronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	l.logger.Sugar().Errorw(msg, append(keysAndValues, "error", err)...)
}
