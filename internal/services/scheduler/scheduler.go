// Package scheduler содержит периодические задачи жизненного цикла подписок:
// пометку истёкших и продление автообновляемых.
package scheduler

import (
	"context"
	"log/slog"
	"time"

	"github.com/fitpulse/fitpulse/internal/lib/sl"
)

// SubscriptionRepository определяет методы хранилища для периодических задач.
type SubscriptionRepository interface {
	MarkExpiredSubscriptions(ctx context.Context) (int, error)
	RenewSubscriptions(ctx context.Context) (int, error)
}

// SchedulerService реализует периодические задачи жизненного цикла подписок.
type SchedulerService struct {
	repo SubscriptionRepository
	log  *slog.Logger
}

// NewSchedulerService создает новый экземпляр SchedulerService.
func NewSchedulerService(repo SubscriptionRepository, log *slog.Logger) *SchedulerService {
	return &SchedulerService{
		repo: repo,
		log:  log,
	}
}

// MarkExpiredSubscriptions помечает истёкшие подписки без автопродления.
// Выполняется сразу и далее по тикеру.
func (s *SchedulerService) MarkExpiredSubscriptions(ctx context.Context, interval time.Duration) {
	s.runMarkExpiredSubscriptions(ctx)

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.runMarkExpiredSubscriptions(ctx)
		}
	}
}

func (s *SchedulerService) runMarkExpiredSubscriptions(ctx context.Context) {
	s.log.Info("starting service to mark expired subscriptions")
	count, err := s.repo.MarkExpiredSubscriptions(ctx)
	if err != nil {
		s.log.Error("failed to mark expired subscriptions", sl.Err(err))
		return
	}
	if count == 0 {
		s.log.Info("no expired subscriptions found")
		return
	}
	s.log.Info("marked expired subscriptions", "count", count)
}

// RenewSubscriptions продлевает подписки с автопродлением, у которых
// закончился оплаченный период. Выполняется сразу и далее по тикеру.
func (s *SchedulerService) RenewSubscriptions(ctx context.Context, interval time.Duration) {
	s.runRenewSubscriptions(ctx)

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.runRenewSubscriptions(ctx)
		}
	}
}

func (s *SchedulerService) runRenewSubscriptions(ctx context.Context) {
	s.log.Info("starting service to renew subscriptions")
	count, err := s.repo.RenewSubscriptions(ctx)
	if err != nil {
		s.log.Error("failed to renew subscriptions", sl.Err(err))
		return
	}
	if count == 0 {
		s.log.Info("no subscriptions to renew")
		return
	}
	s.log.Info("renewed subscriptions", "count", count)
}
