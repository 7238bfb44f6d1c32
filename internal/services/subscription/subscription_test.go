package subscription

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
	"github.com/fitpulse/fitpulse/internal/storage/repository"
)

type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) ListPlans(ctx context.Context) ([]*models.Plan, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Plan), args.Error(1)
}

func (m *MockRepository) GetPlan(ctx context.Context, planID string) (*models.Plan, error) {
	args := m.Called(ctx, planID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Plan), args.Error(1)
}

func (m *MockRepository) GetActiveSubscription(ctx context.Context, userUID string) (*models.UserSubscription, error) {
	args := m.Called(ctx, userUID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.UserSubscription), args.Error(1)
}

func (m *MockRepository) CancelSubscription(ctx context.Context, userUID string) (int, error) {
	args := m.Called(ctx, userUID)
	return args.Int(0), args.Error(1)
}

func (m *MockRepository) GetSubscriptionAnalytics(ctx context.Context, userUID string) (*models.SubscriptionAnalytics, error) {
	args := m.Called(ctx, userUID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.SubscriptionAnalytics), args.Error(1)
}

func newNoopLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{}))
}

func setupService(t *testing.T, repo *MockRepository) (*SubscriptionService, *entitlement.Store) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(func() { mr.Close() })

	kv, err := kvstore.InitServer(context.Background(), config.RedisConnection{
		AddressRedis: mr.Addr(),
	})
	require.NoError(t, err)

	store := entitlement.NewStore(kv, newNoopLogger())
	return NewSubscriptionService(repo, store, kv, newNoopLogger()), store
}

func TestSubscriptionService_ListPlansCachesResult(t *testing.T) {
	repo := new(MockRepository)
	service, _ := setupService(t, repo)

	plans := []*models.Plan{{ID: "free"}, {ID: "premium_monthly"}}
	repo.On("ListPlans", mock.Anything).Return(plans, nil).Once()

	got, err := service.ListPlans(context.Background())
	require.NoError(t, err)
	assert.Len(t, got, 2)

	// Повторный вызов читает кеш, репозиторий не трогается.
	got, err = service.ListPlans(context.Background())
	require.NoError(t, err)
	assert.Len(t, got, 2)

	repo.AssertExpectations(t)
}

func TestSubscriptionService_GetCurrentFromRepository(t *testing.T) {
	repo := new(MockRepository)
	service, _ := setupService(t, repo)

	sub := &models.UserSubscription{
		UserUID: "user-1",
		PlanID:  "premium_monthly",
		Status:  models.SubscriptionStatusActive,
	}
	plan := &models.Plan{ID: "premium_monthly", DisplayName: "Premium"}
	repo.On("GetActiveSubscription", mock.Anything, "user-1").Return(sub, nil).Once()
	repo.On("GetPlan", mock.Anything, "premium_monthly").Return(plan, nil).Once()

	got, err := service.GetCurrent(context.Background(), "user-1")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "premium_monthly", got.PlanID)
	require.NotNil(t, got.Plan)
	assert.Equal(t, "Premium", got.Plan.DisplayName)
}

func TestSubscriptionService_GetCurrentNotFoundAnywhere(t *testing.T) {
	repo := new(MockRepository)
	service, _ := setupService(t, repo)

	repo.On("GetActiveSubscription", mock.Anything, "user-1").
		Return(nil, repository.ErrSubscriptionNotFound).Once()

	got, err := service.GetCurrent(context.Background(), "user-1")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestSubscriptionService_GetCurrentFallsBackToLocalStore(t *testing.T) {
	repo := new(MockRepository)
	service, store := setupService(t, repo)

	store.Activate("user-1", "premium_monthly", models.BillingCycleMonthly)
	repo.On("GetActiveSubscription", mock.Anything, "user-1").
		Return(nil, errors.New("connection refused")).Once()

	got, err := service.GetCurrent(context.Background(), "user-1")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "premium_monthly", got.PlanID)
	assert.Equal(t, models.SubscriptionStatusActive, got.Status)
}

func TestSubscriptionService_CancelKeepsLocalPremium(t *testing.T) {
	repo := new(MockRepository)
	service, store := setupService(t, repo)

	store.Activate("user-1", "premium_monthly", models.BillingCycleMonthly)
	repo.On("CancelSubscription", mock.Anything, "user-1").Return(1, nil).Once()

	err := service.Cancel(context.Background(), "user-1")
	require.NoError(t, err)

	// Доступ сохраняется до конца оплаченного периода.
	assert.True(t, store.IsPremiumUser("user-1"))
}

func TestSubscriptionService_CancelWithoutSubscription(t *testing.T) {
	repo := new(MockRepository)
	service, _ := setupService(t, repo)

	repo.On("CancelSubscription", mock.Anything, "user-1").Return(0, nil).Once()

	err := service.Cancel(context.Background(), "user-1")
	assert.ErrorIs(t, err, ErrNoActiveSubscription)
}

func TestSubscriptionService_Analytics(t *testing.T) {
	repo := new(MockRepository)
	service, _ := setupService(t, repo)

	expected := &models.SubscriptionAnalytics{CurrentPlan: "premium_monthly", TotalSpent: 1998}
	repo.On("GetSubscriptionAnalytics", mock.Anything, "user-1").Return(expected, nil).Once()

	got, err := service.Analytics(context.Background(), "user-1")
	require.NoError(t, err)
	assert.Equal(t, expected, got)
}
