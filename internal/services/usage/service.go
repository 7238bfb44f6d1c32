package usage

import (
	"context"
	"log/slog"
	"time"

	"github.com/fitpulse/fitpulse/internal/lib/period"
	"github.com/fitpulse/fitpulse/internal/lib/sl"
	"github.com/fitpulse/fitpulse/internal/models"
	"github.com/fitpulse/fitpulse/internal/services/entitlement"
)

// Counters определяет счётчики использования функций в хранилище.
type Counters interface {
	CountWorkoutsSince(ctx context.Context, userUID string, since time.Time) (int, error)
	CountNutritionLogsSince(ctx context.Context, userUID string, since time.Time) (int, error)
	CountRecommendationsSince(ctx context.Context, userUID string, since time.Time) (int, error)
	CountActiveGoals(ctx context.Context, userUID string) (int, error)
}

// FeatureUsage — сводка использования функции для экрана тарифа:
// решение о доступе, текущее использование и состояние индикатора.
type FeatureUsage struct {
	Feature   string                `json:"feature"`
	HasAccess bool                  `json:"has_access"`
	Limit     int                   `json:"limit"`
	Used      int                   `json:"used"`
	Render    RenderState           `json:"render"`
	Decision  models.AccessDecision `json:"-"`
}

// Service собирает сводку использования функции из решения о доступе,
// счётчиков хранилища и презентера индикатора.
type Service struct {
	evaluator *entitlement.Evaluator
	counters  Counters
	presenter *Presenter
	log       *slog.Logger
}

// NewService создает новый экземпляр Service.
func NewService(evaluator *entitlement.Evaluator, counters Counters, log *slog.Logger) *Service {
	return &Service{
		evaluator: evaluator,
		counters:  counters,
		presenter: NewPresenter(),
		log:       log,
	}
}

// FeatureUsage возвращает сводку использования функции за текущий период.
// Недоступный счётчик трактуется как нулевое использование.
func (s *Service) FeatureUsage(ctx context.Context, userUID string, feature models.Feature) FeatureUsage {
	decision := s.evaluator.Evaluate(ctx, userUID, feature)

	used := 0
	if s.counters != nil {
		var err error
		used, err = s.currentUsage(ctx, userUID, feature)
		if err != nil {
			s.log.Warn("usage count failed, rendering as zero",
				slog.String("user_uid", userUID),
				slog.String("feature", string(feature)),
				sl.Err(err))
			used = 0
		}
	}

	limit := decision.Limit
	if !decision.HasAccess {
		limit = 0
	}

	return FeatureUsage{
		Feature:   string(feature),
		HasAccess: decision.HasAccess,
		Limit:     decision.Limit,
		Used:      used,
		Render:    s.presenter.Present(limit, used),
		Decision:  decision,
	}
}

func (s *Service) currentUsage(ctx context.Context, userUID string, feature models.Feature) (int, error) {
	since := period.StartOfMonth(time.Now())
	switch feature {
	case models.FeatureWorkoutLogging:
		return s.counters.CountWorkoutsSince(ctx, userUID, since)
	case models.FeatureNutritionLogging:
		return s.counters.CountNutritionLogsSince(ctx, userUID, since)
	case models.FeatureAIRecommendations:
		return s.counters.CountRecommendationsSince(ctx, userUID, since)
	case models.FeatureGoalSetting:
		return s.counters.CountActiveGoals(ctx, userUID)
	default:
		return 0, nil
	}
}
