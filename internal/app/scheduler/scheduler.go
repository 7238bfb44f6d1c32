// Package scheduler содержит приложение фоновой обработки подписок.
package scheduler

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/fitpulse/fitpulse/internal/config"
	schedulerservice "github.com/fitpulse/fitpulse/internal/services/scheduler"
	"github.com/fitpulse/fitpulse/internal/storage/repository"
)

// App представляет приложение планировщика подписок.
type App struct {
	schedulerService *schedulerservice.SchedulerService
	cfg              *config.Config
	db               *repository.Storage
	logger           *slog.Logger
}

func waitForDB(db *repository.Storage) error {
	for range 10 {
		err := repository.CheckDatabaseReady(db)
		if err == nil {
			return nil
		}
		time.Sleep(3 * time.Second)
	}
	return fmt.Errorf("database not ready after retries")
}

// New создает новый экземпляр приложения планировщика.
func New(_ context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	db, err := repository.New(cfg.StorageConnectionString)
	if err != nil {
		return nil, fmt.Errorf("failed to connect storage: %w", err)
	}

	if err := waitForDB(db); err != nil {
		db.DB.Close()
		return nil, err
	}

	schedulerService := schedulerservice.NewSchedulerService(db, logger)

	return &App{
		schedulerService: schedulerService,
		cfg:              cfg,
		db:               db,
		logger:           logger,
	}, nil
}

// Run запускает циклы пометки истекших и продления подписок.
func (a *App) Run(ctx context.Context) error {
	go a.schedulerService.MarkExpiredSubscriptions(ctx, a.cfg.MarkExpiredInterval)
	go a.schedulerService.RenewSubscriptions(ctx, a.cfg.RenewInterval)

	<-ctx.Done()

	a.logger.Info("shutting down scheduler service")
	a.db.DB.Close()

	return nil
}
