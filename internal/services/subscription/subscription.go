// Package subscription содержит бизнес-логику работы с тарифными планами
// и подписками пользователей, включая кеширование каталога планов.
package subscription

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/fitpulse/fitpulse/internal/lib/sl"
	"github.com/fitpulse/fitpulse/internal/models"
	"github.com/fitpulse/fitpulse/internal/services/entitlement"
	"github.com/fitpulse/fitpulse/internal/storage/repository"
)

// SubscriptionRepository определяет методы для работы с подписками в хранилище.
type SubscriptionRepository interface {
	// ListPlans возвращает список доступных тарифных планов.
	ListPlans(ctx context.Context) ([]*models.Plan, error)
	// GetPlan возвращает тарифный план по его ID.
	GetPlan(ctx context.Context, planID string) (*models.Plan, error)
	// GetActiveSubscription возвращает действующую подписку пользователя.
	GetActiveSubscription(ctx context.Context, userUID string) (*models.UserSubscription, error)
	// CancelSubscription отменяет действующую подписку пользователя.
	CancelSubscription(ctx context.Context, userUID string) (int, error)
	// GetSubscriptionAnalytics собирает сводку по подписке пользователя.
	GetSubscriptionAnalytics(ctx context.Context, userUID string) (*models.SubscriptionAnalytics, error)
}

// ErrNoActiveSubscription возвращается, когда отменять нечего.
var ErrNoActiveSubscription = errors.New("no active subscription")

const plansCacheKey = "subscription_plans"

// SubscriptionService реализует бизнес-логику работы с подписками.
type SubscriptionService struct {
	repo  SubscriptionRepository
	store *entitlement.Store
	kv    entitlement.KV
	log   *slog.Logger
}

// NewSubscriptionService создает новый экземпляр SubscriptionService.
func NewSubscriptionService(repo SubscriptionRepository, store *entitlement.Store, kv entitlement.KV, log *slog.Logger) *SubscriptionService {
	return &SubscriptionService{
		repo:  repo,
		store: store,
		kv:    kv,
		log:   log,
	}
}

// ListPlans возвращает каталог планов, используя кеш или репозиторий.
func (s *SubscriptionService) ListPlans(ctx context.Context) ([]*models.Plan, error) {
	var cached []*models.Plan
	found, err := s.kv.Get(plansCacheKey, &cached)
	if err != nil {
		s.log.Warn("failed to read plans cache", sl.Err(err))
	}
	if found {
		return cached, nil
	}

	plans, err := s.repo.ListPlans(ctx)
	if err != nil {
		return nil, err
	}

	if err := s.kv.Set(plansCacheKey, plans, time.Hour); err != nil {
		s.log.Warn("failed to cache plans", sl.Err(err))
	}
	return plans, nil
}

// GetCurrent возвращает действующую подписку пользователя с загруженным планом.
// Реляционное хранилище авторитетно; при его недоступности используется
// локальная запись из KV-хранилища. Возвращает nil без ошибки, если
// подписки нет нигде.
func (s *SubscriptionService) GetCurrent(ctx context.Context, userUID string) (*models.UserSubscription, error) {
	sub, err := s.repo.GetActiveSubscription(ctx, userUID)
	if err != nil {
		if errors.Is(err, repository.ErrSubscriptionNotFound) {
			return s.fromLocalStore(userUID), nil
		}
		s.log.Warn("remote subscription lookup failed, falling back to local store",
			slog.String("user_uid", userUID), sl.Err(err))
		return s.fromLocalStore(userUID), nil
	}

	plan, err := s.repo.GetPlan(ctx, sub.PlanID)
	if err != nil {
		s.log.Warn("failed to load plan for subscription",
			slog.String("plan_id", sub.PlanID), sl.Err(err))
	} else {
		sub.Plan = plan
	}
	return sub, nil
}

func (s *SubscriptionService) fromLocalStore(userUID string) *models.UserSubscription {
	stored := s.store.GetSubscription(userUID)
	if stored == nil {
		return nil
	}
	return &models.UserSubscription{
		UserUID:            stored.UserUID,
		PlanID:             stored.PlanID,
		Status:             stored.Status,
		BillingCycle:       stored.BillingCycle,
		CurrentPeriodStart: stored.CurrentPeriodStart,
		CurrentPeriodEnd:   stored.CurrentPeriodEnd,
		AutoRenew:          stored.AutoRenew,
		CreatedAt:          stored.CreatedAt,
	}
}

// Cancel отменяет действующую подписку пользователя в реляционном хранилище.
// Локальный признак премиума намеренно не сбрасывается: доступ сохраняется
// до конца оплаченного периода.
func (s *SubscriptionService) Cancel(ctx context.Context, userUID string) error {
	const op = "subscription.Cancel"
	affected, err := s.repo.CancelSubscription(ctx, userUID)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if affected == 0 {
		return ErrNoActiveSubscription
	}
	s.log.Info("subscription cancelled", slog.String("user_uid", userUID))
	return nil
}

// Analytics возвращает сводку по подписке пользователя.
func (s *SubscriptionService) Analytics(ctx context.Context, userUID string) (*models.SubscriptionAnalytics, error) {
	return s.repo.GetSubscriptionAnalytics(ctx, userUID)
}
