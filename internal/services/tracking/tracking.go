// Package tracking содержит бизнес-логику журналов активности:
// тренировок, сна, настроения и питания. Создание записей в
// лимитированных журналах проверяется через вычислитель доступа.
package tracking

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/fitpulse/fitpulse/internal/lib/period"
	"github.com/fitpulse/fitpulse/internal/models"
	"github.com/fitpulse/fitpulse/internal/services/entitlement"
)

// TrackingRepository определяет методы хранилища журналов активности.
type TrackingRepository interface {
	CreateWorkout(ctx context.Context, w models.Workout) (int, error)
	ListWorkouts(ctx context.Context, userUID string, limit, offset int) ([]*models.Workout, error)
	CountWorkoutsSince(ctx context.Context, userUID string, since time.Time) (int, error)
	CreateSleepLog(ctx context.Context, l models.SleepLog) (int, error)
	ListSleepLogs(ctx context.Context, userUID string, limit, offset int) ([]*models.SleepLog, error)
	CreateMoodLog(ctx context.Context, l models.MoodLog) (int, error)
	ListMoodLogs(ctx context.Context, userUID string, limit, offset int) ([]*models.MoodLog, error)
	CreateNutritionLog(ctx context.Context, l models.NutritionLog) (int, error)
	ListNutritionLogs(ctx context.Context, userUID string, limit, offset int) ([]*models.NutritionLog, error)
	CountNutritionLogsSince(ctx context.Context, userUID string, since time.Time) (int, error)
	GetWeeklyStats(ctx context.Context, userUID string) (*models.WeeklyStats, error)
}

// ErrLimitReached возвращается при исчерпании месячного лимита записей.
var ErrLimitReached = errors.New("monthly usage limit reached")

const dateLayout = "2006-01-02"

// TrackingService реализует бизнес-логику журналов активности.
type TrackingService struct {
	repo      TrackingRepository
	evaluator *entitlement.Evaluator
	log       *slog.Logger
}

// NewTrackingService создает новый экземпляр TrackingService.
func NewTrackingService(repo TrackingRepository, evaluator *entitlement.Evaluator, log *slog.Logger) *TrackingService {
	return &TrackingService{
		repo:      repo,
		evaluator: evaluator,
		log:       log,
	}
}

// checkLimit сверяет использование функции за текущий месяц с лимитом
// из решения о доступе. Счётчик использования считает вызывающая сторона,
// вычислитель доступа возвращает только лимит.
func (s *TrackingService) checkLimit(ctx context.Context, userUID string, feature models.Feature,
	countSince func(context.Context, string, time.Time) (int, error)) error {
	decision := s.evaluator.Evaluate(ctx, userUID, feature)
	if !decision.HasAccess {
		return ErrLimitReached
	}
	if decision.Limit == models.UnlimitedUsage {
		return nil
	}

	used, err := countSince(ctx, userUID, period.StartOfMonth(time.Now()))
	if err != nil {
		// Недоступный счётчик не блокирует пользователя.
		s.log.Warn("usage count failed, allowing action",
			slog.String("user_uid", userUID),
			slog.String("feature", string(feature)),
			slog.Any("err", err))
		return nil
	}
	if used >= decision.Limit {
		return ErrLimitReached
	}
	return nil
}

// CreateWorkout создает запись тренировки с проверкой месячного лимита.
func (s *TrackingService) CreateWorkout(ctx context.Context, userUID string, req models.DummyWorkout) (int, error) {
	if err := s.checkLimit(ctx, userUID, models.FeatureWorkoutLogging, s.repo.CountWorkoutsSince); err != nil {
		return 0, err
	}

	date, err := time.Parse(dateLayout, req.Date)
	if err != nil {
		return 0, fmt.Errorf("invalid date: %w", err)
	}

	workout := models.Workout{
		UserUID:        userUID,
		Name:           req.Name,
		Type:           req.Type,
		Duration:       req.Duration,
		CaloriesBurned: req.CaloriesBurned,
		Exercises:      req.Exercises,
		Notes:          req.Notes,
		Date:           date,
	}
	id, err := s.repo.CreateWorkout(ctx, workout)
	if err != nil {
		return 0, err
	}
	s.log.Info("created workout", slog.Int("id", id), slog.String("user_uid", userUID))
	return id, nil
}

// ListWorkouts возвращает тренировки пользователя с пагинацией.
func (s *TrackingService) ListWorkouts(ctx context.Context, userUID string, limit, offset int) ([]*models.Workout, error) {
	return s.repo.ListWorkouts(ctx, userUID, limit, offset)
}

// CreateSleepLog создает запись сна. Журнал сна всегда бесплатен.
func (s *TrackingService) CreateSleepLog(ctx context.Context, userUID string, req models.DummySleepLog) (int, error) {
	date, err := time.Parse(dateLayout, req.Date)
	if err != nil {
		return 0, fmt.Errorf("invalid date: %w", err)
	}

	logEntry := models.SleepLog{
		UserUID:    userUID,
		Date:       date,
		Bedtime:    req.Bedtime,
		WakeupTime: req.WakeupTime,
		Duration:   req.Duration,
		Quality:    req.Quality,
		Notes:      req.Notes,
	}
	return s.repo.CreateSleepLog(ctx, logEntry)
}

// ListSleepLogs возвращает записи сна пользователя с пагинацией.
func (s *TrackingService) ListSleepLogs(ctx context.Context, userUID string, limit, offset int) ([]*models.SleepLog, error) {
	return s.repo.ListSleepLogs(ctx, userUID, limit, offset)
}

// CreateMoodLog создает запись настроения. Журнал настроения всегда бесплатен.
func (s *TrackingService) CreateMoodLog(ctx context.Context, userUID string, req models.DummyMoodLog) (int, error) {
	date, err := time.Parse(dateLayout, req.Date)
	if err != nil {
		return 0, fmt.Errorf("invalid date: %w", err)
	}

	logEntry := models.MoodLog{
		UserUID:   userUID,
		Date:      date,
		Mood:      req.Mood,
		Energy:    req.Energy,
		Stress:    req.Stress,
		Anxiety:   req.Anxiety,
		Happiness: req.Happiness,
		Weather:   req.Weather,
		Notes:     req.Notes,
	}
	return s.repo.CreateMoodLog(ctx, logEntry)
}

// ListMoodLogs возвращает записи настроения пользователя с пагинацией.
func (s *TrackingService) ListMoodLogs(ctx context.Context, userUID string, limit, offset int) ([]*models.MoodLog, error) {
	return s.repo.ListMoodLogs(ctx, userUID, limit, offset)
}

// CreateNutritionLog создает запись питания с проверкой месячного лимита.
func (s *TrackingService) CreateNutritionLog(ctx context.Context, userUID string, req models.DummyNutritionLog) (int, error) {
	if err := s.checkLimit(ctx, userUID, models.FeatureNutritionLogging, s.repo.CountNutritionLogsSince); err != nil {
		return 0, err
	}

	date, err := time.Parse(dateLayout, req.Date)
	if err != nil {
		return 0, fmt.Errorf("invalid date: %w", err)
	}

	logEntry := models.NutritionLog{
		UserUID:  userUID,
		Date:     date,
		MealType: req.MealType,
		FoodName: req.FoodName,
		Calories: req.Calories,
		Protein:  req.Protein,
		Carbs:    req.Carbs,
		Fat:      req.Fat,
		Fiber:    req.Fiber,
	}
	return s.repo.CreateNutritionLog(ctx, logEntry)
}

// ListNutritionLogs возвращает записи питания пользователя с пагинацией.
func (s *TrackingService) ListNutritionLogs(ctx context.Context, userUID string, limit, offset int) ([]*models.NutritionLog, error) {
	return s.repo.ListNutritionLogs(ctx, userUID, limit, offset)
}

// WorkoutUsage возвращает текущее использование журнала тренировок за месяц.
func (s *TrackingService) WorkoutUsage(ctx context.Context, userUID string) (int, error) {
	return s.repo.CountWorkoutsSince(ctx, userUID, period.StartOfMonth(time.Now()))
}

// NutritionUsage возвращает текущее использование журнала питания за месяц.
func (s *TrackingService) NutritionUsage(ctx context.Context, userUID string) (int, error) {
	return s.repo.CountNutritionLogsSince(ctx, userUID, period.StartOfMonth(time.Now()))
}

// WeeklyStats возвращает журналы пользователя за последнюю неделю.
func (s *TrackingService) WeeklyStats(ctx context.Context, userUID string) (*models.WeeklyStats, error) {
	return s.repo.GetWeeklyStats(ctx, userUID)
}
