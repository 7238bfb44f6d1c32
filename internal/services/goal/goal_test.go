package goal

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/fitpulse/fitpulse/internal/config"
	"github.com/fitpulse/fitpulse/internal/kvstore"
	"github.com/fitpulse/fitpulse/internal/models"
	"github.com/fitpulse/fitpulse/internal/services/entitlement"
)

type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) CreateGoal(ctx context.Context, g models.Goal) (string, error) {
	args := m.Called(ctx, g)
	return args.String(0), args.Error(1)
}

func (m *MockRepository) ListGoals(ctx context.Context, userUID string) ([]*models.Goal, error) {
	args := m.Called(ctx, userUID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Goal), args.Error(1)
}

func (m *MockRepository) UpdateGoal(ctx context.Context, g models.Goal) (int, error) {
	args := m.Called(ctx, g)
	return args.Int(0), args.Error(1)
}

func (m *MockRepository) RemoveGoal(ctx context.Context, goalID, userUID string) (int, error) {
	args := m.Called(ctx, goalID, userUID)
	return args.Int(0), args.Error(1)
}

func (m *MockRepository) CountActiveGoals(ctx context.Context, userUID string) (int, error) {
	args := m.Called(ctx, userUID)
	return args.Int(0), args.Error(1)
}

func newNoopLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{}))
}

func setupService(t *testing.T, repo *MockRepository) (*GoalService, *entitlement.Store) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(func() { mr.Close() })

	kv, err := kvstore.InitServer(context.Background(), config.RedisConnection{
		AddressRedis: mr.Addr(),
	})
	require.NoError(t, err)

	store := entitlement.NewStore(kv, newNoopLogger())
	evaluator := entitlement.NewEvaluator(store, entitlement.NoopLookup{}, newNoopLogger())
	return NewGoalService(repo, evaluator, kv, newNoopLogger()), store
}

func TestGoalService_CreateUnderLimit(t *testing.T) {
	repo := new(MockRepository)
	service, _ := setupService(t, repo)

	repo.On("CountActiveGoals", mock.Anything, "user-1").Return(1, nil).Once()
	repo.On("CreateGoal", mock.Anything, mock.MatchedBy(func(g models.Goal) bool {
		return g.UserUID == "user-1" && g.Status == models.GoalStatusActive
	})).Return("goal-1", nil).Once()

	goal, err := service.Create(context.Background(), "user-1", models.DummyGoal{
		Title:       "Run 100 km",
		Category:    "cardio",
		TargetValue: 100,
		Unit:        "km",
	})
	require.NoError(t, err)
	assert.Equal(t, "goal-1", goal.ID)

	repo.AssertExpectations(t)
}

func TestGoalService_CreateLimitReached(t *testing.T) {
	repo := new(MockRepository)
	service, _ := setupService(t, repo)

	// Бесплатный тариф: 3 активные цели.
	repo.On("CountActiveGoals", mock.Anything, "user-1").Return(3, nil).Once()

	_, err := service.Create(context.Background(), "user-1", models.DummyGoal{Title: "Run 100 km"})
	assert.ErrorIs(t, err, ErrLimitReached)

	repo.AssertNotCalled(t, "CreateGoal", mock.Anything, mock.Anything)
}

func TestGoalService_CreatePremiumUnlimited(t *testing.T) {
	repo := new(MockRepository)
	service, store := setupService(t, repo)

	store.Activate("user-1", "premium_monthly", models.BillingCycleMonthly)
	repo.On("CreateGoal", mock.Anything, mock.Anything).Return("goal-1", nil).Once()

	_, err := service.Create(context.Background(), "user-1", models.DummyGoal{Title: "Run 100 km"})
	require.NoError(t, err)

	repo.AssertNotCalled(t, "CountActiveGoals", mock.Anything, mock.Anything)
}

func TestGoalService_CreateInvalidDeadline(t *testing.T) {
	repo := new(MockRepository)
	service, _ := setupService(t, repo)

	repo.On("CountActiveGoals", mock.Anything, "user-1").Return(0, nil).Once()

	_, err := service.Create(context.Background(), "user-1", models.DummyGoal{
		Title:    "Run 100 km",
		Deadline: "tomorrow",
	})
	assert.Error(t, err)
}

func TestGoalService_CreateFallsBackToLocalStore(t *testing.T) {
	repo := new(MockRepository)
	service, _ := setupService(t, repo)

	backendDown := errors.New("connection refused")
	repo.On("CountActiveGoals", mock.Anything, "user-1").Return(0, backendDown).Once()
	repo.On("CreateGoal", mock.Anything, mock.Anything).Return("", backendDown).Once()
	repo.On("ListGoals", mock.Anything, "user-1").Return(nil, backendDown)

	goal, err := service.Create(context.Background(), "user-1", models.DummyGoal{Title: "Run 100 km"})
	require.NoError(t, err)
	assert.NotEmpty(t, goal.ID)

	goals, err := service.List(context.Background(), "user-1")
	require.NoError(t, err)
	require.Len(t, goals, 1)
	assert.Equal(t, "Run 100 km", goals[0].Title)
}

func TestGoalService_UpdateNotFound(t *testing.T) {
	repo := new(MockRepository)
	service, _ := setupService(t, repo)

	repo.On("UpdateGoal", mock.Anything, mock.Anything).Return(0, nil).Once()

	_, err := service.Update(context.Background(), "user-1", "goal-404", models.DummyGoal{Title: "X"}, models.GoalStatusActive)
	assert.ErrorIs(t, err, ErrGoalNotFound)
}

func TestGoalService_RemoveLocalGoal(t *testing.T) {
	repo := new(MockRepository)
	service, _ := setupService(t, repo)

	backendDown := errors.New("connection refused")
	repo.On("CountActiveGoals", mock.Anything, "user-1").Return(0, backendDown)
	repo.On("CreateGoal", mock.Anything, mock.Anything).Return("", backendDown)
	repo.On("ListGoals", mock.Anything, "user-1").Return(nil, backendDown)
	repo.On("RemoveGoal", mock.Anything, mock.Anything, "user-1").Return(0, backendDown)

	goal, err := service.Create(context.Background(), "user-1", models.DummyGoal{Title: "Run 100 km"})
	require.NoError(t, err)

	require.NoError(t, service.Remove(context.Background(), "user-1", goal.ID))

	goals, err := service.List(context.Background(), "user-1")
	require.NoError(t, err)
	assert.Empty(t, goals)
}

func TestGoalService_RemoveNotFound(t *testing.T) {
	repo := new(MockRepository)
	service, _ := setupService(t, repo)

	repo.On("RemoveGoal", mock.Anything, "goal-404", "user-1").Return(0, nil).Once()

	err := service.Remove(context.Background(), "user-1", "goal-404")
	assert.ErrorIs(t, err, ErrGoalNotFound)
}
