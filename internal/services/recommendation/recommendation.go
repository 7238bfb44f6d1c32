// Package recommendation содержит бизнес-логику персональных рекомендаций
// тренировок. Генерация идёт через LLM-провайдера, при его недоступности
// отдаётся статический запасной набор. Количество генераций в месяц
// ограничено тарифом.
package recommendation

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/fitpulse/fitpulse/internal/lib/period"
	"github.com/fitpulse/fitpulse/internal/lib/sl"
	"github.com/fitpulse/fitpulse/internal/llmprovider"
	"github.com/fitpulse/fitpulse/internal/models"
	"github.com/fitpulse/fitpulse/internal/services/entitlement"
)

// RecommendationRepository определяет методы хранилища рекомендаций.
type RecommendationRepository interface {
	SaveRecommendation(ctx context.Context, rec models.WorkoutRecommendation) error
	CountRecommendationsSince(ctx context.Context, userUID string, since time.Time) (int, error)
	GetProfile(ctx context.Context, userUID string) (*models.Profile, error)
}

// Completer — минимальный интерфейс LLM-клиента.
type Completer interface {
	Complete(ctx context.Context, messages []llmprovider.ChatMessage) (string, error)
}

// ErrLimitReached возвращается при исчерпании месячного лимита генераций.
var ErrLimitReached = errors.New("monthly recommendation limit reached")

// RecommendationService реализует бизнес-логику рекомендаций тренировок.
type RecommendationService struct {
	repo      RecommendationRepository
	evaluator *entitlement.Evaluator
	llm       Completer
	log       *slog.Logger
}

// NewRecommendationService создает новый экземпляр RecommendationService.
func NewRecommendationService(repo RecommendationRepository, evaluator *entitlement.Evaluator,
	llm Completer, log *slog.Logger) *RecommendationService {
	return &RecommendationService{
		repo:      repo,
		evaluator: evaluator,
		llm:       llm,
		log:       log,
	}
}

// Generate создает персональную рекомендацию тренировки с проверкой
// месячного лимита генераций.
func (s *RecommendationService) Generate(ctx context.Context, userUID string,
	req models.DummyRecommendationRequest) (*models.WorkoutRecommendation, error) {
	decision := s.evaluator.Evaluate(ctx, userUID, models.FeatureAIRecommendations)
	if !decision.HasAccess {
		return nil, ErrLimitReached
	}
	if decision.Limit != models.UnlimitedUsage {
		used, err := s.repo.CountRecommendationsSince(ctx, userUID, period.StartOfMonth(time.Now()))
		if err != nil {
			s.log.Warn("recommendation count failed, allowing generation",
				slog.String("user_uid", userUID), sl.Err(err))
		} else if used >= decision.Limit {
			return nil, ErrLimitReached
		}
	}

	rec := s.generate(ctx, userUID, req)
	rec.ID = uuid.New().String()
	rec.UserUID = userUID
	rec.CreatedAt = time.Now()

	if err := s.repo.SaveRecommendation(ctx, *rec); err != nil {
		s.log.Warn("failed to save recommendation", slog.String("user_uid", userUID), sl.Err(err))
	}

	s.log.Info("generated workout recommendation",
		slog.String("user_uid", userUID),
		slog.String("source", rec.Source))
	return rec, nil
}

func (s *RecommendationService) generate(ctx context.Context, userUID string,
	req models.DummyRecommendationRequest) *models.WorkoutRecommendation {
	if s.llm == nil {
		return fallbackRecommendation(req)
	}

	prompt := s.buildPrompt(ctx, userUID, req)
	content, err := s.llm.Complete(ctx, []llmprovider.ChatMessage{
		{Role: "system", Content: systemPrompt},
		{Role: "user", Content: prompt},
	})
	if err != nil {
		s.log.Warn("llm provider unavailable, using fallback recommendation",
			slog.String("user_uid", userUID), sl.Err(err))
		return fallbackRecommendation(req)
	}

	rec, err := parseRecommendation(content)
	if err != nil {
		s.log.Warn("failed to parse llm response, using fallback recommendation",
			slog.String("user_uid", userUID), sl.Err(err))
		return fallbackRecommendation(req)
	}
	rec.Source = models.RecommendationSourceLLM
	return rec
}

const systemPrompt = `You are a certified fitness coach. Respond with a single JSON object ` +
	`describing one workout: {"name","description","duration","difficulty",` +
	`"exercises":[{"name","sets","reps","rest_time","instructions","modifications","target_muscles"}],` +
	`"cautions","benefits","estimated_calories","target_muscle_groups","reasoning"}. No prose outside JSON.`

func (s *RecommendationService) buildPrompt(ctx context.Context, userUID string,
	req models.DummyRecommendationRequest) string {
	var b strings.Builder
	b.WriteString("Compose a personalized workout for today.\n")

	prof, err := s.repo.GetProfile(ctx, userUID)
	if err == nil && prof != nil {
		fmt.Fprintf(&b, "Fitness level: %s.\n", prof.FitnessLevel)
		if prof.Age > 0 {
			fmt.Fprintf(&b, "Age: %d.\n", prof.Age)
		}
		if len(prof.Goals) > 0 {
			fmt.Fprintf(&b, "Goals: %s.\n", strings.Join(prof.Goals, ", "))
		}
		if len(prof.HealthConditions) > 0 {
			fmt.Fprintf(&b, "Health conditions: %s.\n", strings.Join(prof.HealthConditions, ", "))
		}
		if len(prof.PreviousInjuries) > 0 {
			fmt.Fprintf(&b, "Previous injuries: %s.\n", strings.Join(prof.PreviousInjuries, ", "))
		}
		if len(prof.PreferredWorkoutTypes) > 0 {
			fmt.Fprintf(&b, "Preferred workout types: %s.\n", strings.Join(prof.PreferredWorkoutTypes, ", "))
		}
		if len(prof.AvailableEquipment) > 0 {
			fmt.Fprintf(&b, "Available equipment: %s.\n", strings.Join(prof.AvailableEquipment, ", "))
		}
	}

	if req.Mood > 0 {
		fmt.Fprintf(&b, "Current mood: %d/10.\n", req.Mood)
	}
	if req.EnergyLevel > 0 {
		fmt.Fprintf(&b, "Energy level: %d/10.\n", req.EnergyLevel)
	}
	if req.StressLevel > 0 {
		fmt.Fprintf(&b, "Stress level: %d/10.\n", req.StressLevel)
	}
	return b.String()
}

// parseRecommendation извлекает JSON-объект из ответа модели, отбрасывая
// возможный текст вокруг него.
func parseRecommendation(content string) (*models.WorkoutRecommendation, error) {
	start := strings.Index(content, "{")
	end := strings.LastIndex(content, "}")
	if start < 0 || end <= start {
		return nil, errors.New("no JSON object in response")
	}

	var rec models.WorkoutRecommendation
	if err := json.Unmarshal([]byte(content[start:end+1]), &rec); err != nil {
		return nil, err
	}
	if rec.Name == "" || len(rec.Exercises) == 0 {
		return nil, errors.New("incomplete recommendation in response")
	}
	return &rec, nil
}

// fallbackRecommendation отдаёт статическую тренировку при недоступности
// LLM-провайдера. Низкая энергия или высокий стресс переключают набор на
// восстановительный.
func fallbackRecommendation(req models.DummyRecommendationRequest) *models.WorkoutRecommendation {
	if (req.EnergyLevel > 0 && req.EnergyLevel <= 3) || req.StressLevel >= 8 {
		return &models.WorkoutRecommendation{
			Name:        "Восстановительная растяжка",
			Description: "Лёгкая сессия растяжки и дыхательных упражнений для дней с низкой энергией.",
			Duration:    20,
			Difficulty:  "beginner",
			Exercises: []models.RecommendedExercise{
				{
					Name:          "Кошка-корова",
					Sets:          2,
					Reps:          "10",
					RestTime:      30,
					Instructions:  []string{"Встаньте на четвереньки", "Плавно чередуйте прогиб и округление спины"},
					TargetMuscles: []string{"спина", "кор"},
				},
				{
					Name:          "Наклон к ногам сидя",
					Sets:          2,
					Reps:          "30 сек",
					RestTime:      30,
					Instructions:  []string{"Сядьте с прямыми ногами", "Тянитесь к стопам без рывков"},
					TargetMuscles: []string{"задняя поверхность бедра"},
				},
				{
					Name:          "Диафрагмальное дыхание",
					Sets:          1,
					Reps:          "5 мин",
					RestTime:      0,
					Instructions:  []string{"Лягте на спину", "Дышите животом, удлиняя выдох"},
					TargetMuscles: []string{"диафрагма"},
				},
			},
			Cautions:           []string{"Прекратите при боли или головокружении"},
			Benefits:           []string{"Снижение стресса", "Улучшение подвижности"},
			EstimatedCalories:  60,
			TargetMuscleGroups: []string{"всё тело"},
			Reasoning:          "Низкая энергия или высокий стресс: подойдёт мягкая восстановительная нагрузка.",
			Source:             models.RecommendationSourceFallback,
		}
	}

	return &models.WorkoutRecommendation{
		Name:        "Круговая тренировка с собственным весом",
		Description: "Базовый круг из четырёх упражнений без оборудования.",
		Duration:    30,
		Difficulty:  "intermediate",
		Exercises: []models.RecommendedExercise{
			{
				Name:          "Приседания",
				Sets:          3,
				Reps:          "15",
				RestTime:      60,
				Instructions:  []string{"Стопы на ширине плеч", "Опускайтесь до параллели бёдер с полом"},
				Modifications: []string{"Приседания на стул для новичков"},
				TargetMuscles: []string{"квадрицепсы", "ягодицы"},
			},
			{
				Name:          "Отжимания",
				Sets:          3,
				Reps:          "10",
				RestTime:      60,
				Instructions:  []string{"Корпус прямой", "Опускайтесь до касания грудью пола"},
				Modifications: []string{"Отжимания с колен"},
				TargetMuscles: []string{"грудь", "трицепс"},
			},
			{
				Name:          "Планка",
				Sets:          3,
				Reps:          "45 сек",
				RestTime:      45,
				Instructions:  []string{"Локти под плечами", "Не прогибайте поясницу"},
				TargetMuscles: []string{"кор"},
			},
			{
				Name:          "Выпады",
				Sets:          3,
				Reps:          "12 на ногу",
				RestTime:      60,
				Instructions:  []string{"Шаг вперёд", "Колено не выходит за носок"},
				TargetMuscles: []string{"квадрицепсы", "ягодицы"},
			},
		},
		Cautions:           []string{"Разомнитесь 5 минут перед началом"},
		Benefits:           []string{"Укрепление всего тела", "Не требует оборудования"},
		EstimatedCalories:  250,
		TargetMuscleGroups: []string{"ноги", "грудь", "кор"},
		Reasoning:          "Универсальный круг с собственным весом подходит большинству уровней подготовки.",
		Source:             models.RecommendationSourceFallback,
	}
}
