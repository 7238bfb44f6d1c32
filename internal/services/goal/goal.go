// Package goal содержит бизнес-логику целей пользователя. Количество
// активных целей ограничено тарифом. При недоступности реляционного
// хранилища список целей живёт в локальном KV-хранилище под ключом
// goals_<uid>.
package goal

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/fitpulse/fitpulse/internal/lib/sl"
	"github.com/fitpulse/fitpulse/internal/models"
	"github.com/fitpulse/fitpulse/internal/services/entitlement"
)

// GoalRepository определяет методы хранилища целей.
type GoalRepository interface {
	CreateGoal(ctx context.Context, g models.Goal) (string, error)
	ListGoals(ctx context.Context, userUID string) ([]*models.Goal, error)
	UpdateGoal(ctx context.Context, g models.Goal) (int, error)
	RemoveGoal(ctx context.Context, goalID, userUID string) (int, error)
	CountActiveGoals(ctx context.Context, userUID string) (int, error)
}

// Ошибки сервиса целей.
var (
	ErrLimitReached = errors.New("active goal limit reached")
	ErrGoalNotFound = errors.New("goal not found")
)

const dateLayout = "2006-01-02"

func goalsKey(userUID string) string {
	return "goals_" + userUID
}

// GoalService реализует бизнес-логику целей.
type GoalService struct {
	repo      GoalRepository
	evaluator *entitlement.Evaluator
	kv        entitlement.KV
	log       *slog.Logger
}

// NewGoalService создает новый экземпляр GoalService.
func NewGoalService(repo GoalRepository, evaluator *entitlement.Evaluator, kv entitlement.KV, log *slog.Logger) *GoalService {
	return &GoalService{
		repo:      repo,
		evaluator: evaluator,
		kv:        kv,
		log:       log,
	}
}

// Create создает новую цель с проверкой лимита активных целей.
func (s *GoalService) Create(ctx context.Context, userUID string, req models.DummyGoal) (*models.Goal, error) {
	decision := s.evaluator.Evaluate(ctx, userUID, models.FeatureGoalSetting)
	if !decision.HasAccess {
		return nil, ErrLimitReached
	}
	if decision.Limit != models.UnlimitedUsage {
		active, err := s.countActive(ctx, userUID)
		if err == nil && active >= decision.Limit {
			return nil, ErrLimitReached
		}
	}

	goal := models.Goal{
		UserUID:      userUID,
		Title:        req.Title,
		Description:  req.Description,
		Category:     req.Category,
		TargetValue:  req.TargetValue,
		CurrentValue: req.CurrentValue,
		Unit:         req.Unit,
		Status:       models.GoalStatusActive,
		CreatedAt:    time.Now(),
		UpdatedAt:    time.Now(),
	}
	if req.Deadline != "" {
		deadline, err := time.Parse(dateLayout, req.Deadline)
		if err != nil {
			return nil, fmt.Errorf("invalid deadline: %w", err)
		}
		goal.Deadline = &deadline
	}

	id, err := s.repo.CreateGoal(ctx, goal)
	if err != nil {
		s.log.Warn("goal repository unavailable, storing goal locally",
			slog.String("user_uid", userUID), sl.Err(err))
		goal.ID = uuid.New().String()
		if kvErr := s.appendLocal(userUID, goal); kvErr != nil {
			return nil, fmt.Errorf("create goal: %w", err)
		}
		return &goal, nil
	}
	goal.ID = id
	return &goal, nil
}

// List возвращает цели пользователя, дополняя их локальными при
// недоступности реляционного хранилища.
func (s *GoalService) List(ctx context.Context, userUID string) ([]*models.Goal, error) {
	goals, err := s.repo.ListGoals(ctx, userUID)
	if err != nil {
		s.log.Warn("goal repository unavailable, reading local goals",
			slog.String("user_uid", userUID), sl.Err(err))
		return s.listLocal(userUID), nil
	}
	return goals, nil
}

// Update обновляет цель пользователя.
func (s *GoalService) Update(ctx context.Context, userUID, goalID string, req models.DummyGoal, status string) (*models.Goal, error) {
	goal := models.Goal{
		ID:           goalID,
		UserUID:      userUID,
		Title:        req.Title,
		Description:  req.Description,
		Category:     req.Category,
		TargetValue:  req.TargetValue,
		CurrentValue: req.CurrentValue,
		Unit:         req.Unit,
		Status:       status,
		UpdatedAt:    time.Now(),
	}
	if req.Deadline != "" {
		deadline, err := time.Parse(dateLayout, req.Deadline)
		if err != nil {
			return nil, fmt.Errorf("invalid deadline: %w", err)
		}
		goal.Deadline = &deadline
	}

	affected, err := s.repo.UpdateGoal(ctx, goal)
	if err != nil {
		s.log.Warn("goal repository unavailable, updating local goal",
			slog.String("user_uid", userUID), sl.Err(err))
		if s.updateLocal(userUID, goal) {
			return &goal, nil
		}
		return nil, ErrGoalNotFound
	}
	if affected == 0 {
		return nil, ErrGoalNotFound
	}
	return &goal, nil
}

// Remove удаляет цель пользователя.
func (s *GoalService) Remove(ctx context.Context, userUID, goalID string) error {
	affected, err := s.repo.RemoveGoal(ctx, goalID, userUID)
	if err != nil {
		s.log.Warn("goal repository unavailable, removing local goal",
			slog.String("user_uid", userUID), sl.Err(err))
		if s.removeLocal(userUID, goalID) {
			return nil
		}
		return ErrGoalNotFound
	}
	if affected == 0 {
		return ErrGoalNotFound
	}
	return nil
}

func (s *GoalService) countActive(ctx context.Context, userUID string) (int, error) {
	count, err := s.repo.CountActiveGoals(ctx, userUID)
	if err != nil {
		local := s.listLocal(userUID)
		active := 0
		for _, g := range local {
			if g.Status == models.GoalStatusActive {
				active++
			}
		}
		return active, nil
	}
	return count, nil
}

func (s *GoalService) listLocal(userUID string) []*models.Goal {
	var goals []*models.Goal
	found, err := s.kv.Get(goalsKey(userUID), &goals)
	if err != nil || !found {
		return nil
	}
	return goals
}

func (s *GoalService) appendLocal(userUID string, goal models.Goal) error {
	goals := s.listLocal(userUID)
	goals = append(goals, &goal)
	return s.kv.Set(goalsKey(userUID), goals, 0)
}

func (s *GoalService) updateLocal(userUID string, goal models.Goal) bool {
	goals := s.listLocal(userUID)
	for i, g := range goals {
		if g.ID == goal.ID {
			goal.CreatedAt = g.CreatedAt
			goals[i] = &goal
			if err := s.kv.Set(goalsKey(userUID), goals, 0); err != nil {
				s.log.Warn("failed to persist local goals", sl.Err(err))
				return false
			}
			return true
		}
	}
	return false
}

func (s *GoalService) removeLocal(userUID, goalID string) bool {
	goals := s.listLocal(userUID)
	for i, g := range goals {
		if g.ID == goalID {
			goals = append(goals[:i], goals[i+1:]...)
			if err := s.kv.Set(goalsKey(userUID), goals, 0); err != nil {
				s.log.Warn("failed to persist local goals", sl.Err(err))
				return false
			}
			return true
		}
	}
	return false
}
