package payment

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

func (m *MockRepository) GetPlan(ctx context.Context, planID string) (*models.Plan, error) {
	args := m.Called(ctx, planID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Plan), args.Error(1)
}

func (m *MockRepository) CreateSubscriptionRow(ctx context.Context, sub models.UserSubscription) (string, error) {
	args := m.Called(ctx, sub)
	return args.String(0), args.Error(1)
}

func (m *MockRepository) SavePaymentRecord(ctx context.Context, rec models.PaymentRecord) (string, error) {
	args := m.Called(ctx, rec)
	return args.String(0), args.Error(1)
}

func (m *MockRepository) CreatePaymentMethod(ctx context.Context, pm models.PaymentMethod) (string, error) {
	args := m.Called(ctx, pm)
	return args.String(0), args.Error(1)
}

func (m *MockRepository) ListPaymentMethods(ctx context.Context, userUID string) ([]*models.PaymentMethod, error) {
	args := m.Called(ctx, userUID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.PaymentMethod), args.Error(1)
}

func (m *MockRepository) ListPaymentHistory(ctx context.Context, userUID string, limit, offset int) ([]*models.PaymentRecord, error) {
	args := m.Called(ctx, userUID, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.PaymentRecord), args.Error(1)
}

func newNoopLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{}))
}

func newTestStore(t *testing.T) *entitlement.Store {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(func() { mr.Close() })

	kv, err := kvstore.InitServer(context.Background(), config.RedisConnection{
		AddressRedis: mr.Addr(),
	})
	require.NoError(t, err)
	return entitlement.NewStore(kv, newNoopLogger())
}

func TestPaymentService_ValidateCard(t *testing.T) {
	tests := []struct {
		name    string
		card    models.DummyCard
		wantErr error
	}{
		{
			name:    "valid card",
			card:    models.DummyCard{Number: "4242 4242 4242 4242", Expiry: "12/28", CVC: "123", Name: "Test User"},
			wantErr: nil,
		},
		{
			name:    "valid card without spaces",
			card:    models.DummyCard{Number: "4242424242424242", Expiry: "12/28", CVC: "1234", Name: "Test User"},
			wantErr: nil,
		},
		{
			name:    "short card number",
			card:    models.DummyCard{Number: "1234", Expiry: "12/28", CVC: "123", Name: "Test User"},
			wantErr: ErrInvalidCardNumber,
		},
		{
			name:    "letters are not digits",
			card:    models.DummyCard{Number: "4242 abcd 4242 xyz", Expiry: "12/28", CVC: "123", Name: "Test User"},
			wantErr: ErrInvalidCardNumber,
		},
		{
			name:    "short expiry",
			card:    models.DummyCard{Number: "4242424242424242", Expiry: "1/2", CVC: "123", Name: "Test User"},
			wantErr: ErrInvalidCardExpiry,
		},
		{
			name:    "short cvc",
			card:    models.DummyCard{Number: "4242424242424242", Expiry: "12/28", CVC: "12", Name: "Test User"},
			wantErr: ErrInvalidCardCVC,
		},
	}

	service := New(new(MockRepository), newTestStore(t), nil, 0, newNoopLogger())
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := service.ValidateCard(tt.card)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestPaymentService_ActivateSubscription(t *testing.T) {
	repo := new(MockRepository)
	store := newTestStore(t)
	service := New(repo, store, nil, 0, newNoopLogger())

	plan := &models.Plan{ID: "premium_monthly", PriceMonthly: 999, PriceYearly: 9999}
	repo.On("GetPlan", mock.Anything, "premium_monthly").Return(plan, nil).Once()
	repo.On("CreateSubscriptionRow", mock.Anything, mock.AnythingOfType("models.UserSubscription")).Return("sub-1", nil).Once()
	repo.On("SavePaymentRecord", mock.Anything, mock.AnythingOfType("models.PaymentRecord")).Return("pay-1", nil).Once()

	result := service.ActivateSubscription(context.Background(), "user-1", "test@example.com", models.DummyActivation{
		PlanID:       "premium_monthly",
		BillingCycle: models.BillingCycleMonthly,
	})

	require.NotNil(t, result)
	assert.NotEmpty(t, result.TransactionID)
	assert.Equal(t, 999, result.Amount)
	assert.True(t, store.IsPremiumUser("user-1"))

	repo.AssertExpectations(t)
}

func TestPaymentService_ActivateSubscriptionYearlyAmount(t *testing.T) {
	repo := new(MockRepository)
	store := newTestStore(t)
	service := New(repo, store, nil, 0, newNoopLogger())

	plan := &models.Plan{ID: "premium_yearly", PriceMonthly: 999, PriceYearly: 9999}
	repo.On("GetPlan", mock.Anything, "premium_yearly").Return(plan, nil).Once()
	repo.On("CreateSubscriptionRow", mock.Anything, mock.Anything).Return("sub-1", nil).Once()
	repo.On("SavePaymentRecord", mock.Anything, mock.Anything).Return("pay-1", nil).Once()

	result := service.ActivateSubscription(context.Background(), "user-1", "test@example.com", models.DummyActivation{
		PlanID:       "premium_yearly",
		BillingCycle: models.BillingCycleYearly,
	})

	require.NotNil(t, result)
	assert.Equal(t, 9999, result.Amount)
}

func TestPaymentService_ActivateSubscriptionSurvivesBackendFailure(t *testing.T) {
	repo := new(MockRepository)
	store := newTestStore(t)
	service := New(repo, store, nil, 0, newNoopLogger())

	backendDown := errors.New("connection refused")
	repo.On("GetPlan", mock.Anything, "premium_monthly").Return(nil, backendDown).Once()
	repo.On("CreateSubscriptionRow", mock.Anything, mock.Anything).Return("", backendDown).Once()
	repo.On("SavePaymentRecord", mock.Anything, mock.Anything).Return("", backendDown).Once()

	// Активация всегда успешна: отказ реляционного хранилища не
	// блокирует оплатившего пользователя.
	result := service.ActivateSubscription(context.Background(), "user-1", "test@example.com", models.DummyActivation{
		PlanID:       "premium_monthly",
		BillingCycle: models.BillingCycleMonthly,
	})

	require.NotNil(t, result)
	assert.NotEmpty(t, result.TransactionID)
	assert.Equal(t, 0, result.Amount)
	assert.True(t, store.IsPremiumUser("user-1"))
}

func TestPaymentService_ActivateSubscriptionIsIdempotent(t *testing.T) {
	repo := new(MockRepository)
	store := newTestStore(t)
	service := New(repo, store, nil, 0, newNoopLogger())

	plan := &models.Plan{ID: "premium_monthly", PriceMonthly: 999, PriceYearly: 9999}
	repo.On("GetPlan", mock.Anything, "premium_monthly").Return(plan, nil)
	repo.On("CreateSubscriptionRow", mock.Anything, mock.Anything).Return("sub-1", nil)
	repo.On("SavePaymentRecord", mock.Anything, mock.Anything).Return("pay-1", nil)

	req := models.DummyActivation{PlanID: "premium_monthly", BillingCycle: models.BillingCycleMonthly}
	service.ActivateSubscription(context.Background(), "user-1", "test@example.com", req)
	assert.True(t, store.IsPremiumUser("user-1"))

	service.ActivateSubscription(context.Background(), "user-1", "test@example.com", req)
	assert.True(t, store.IsPremiumUser("user-1"))
}

func TestPaymentService_AddAndListPaymentMethods(t *testing.T) {
	repo := new(MockRepository)
	service := New(repo, newTestStore(t), nil, 0, newNoopLogger())

	repo.On("CreatePaymentMethod", mock.Anything, mock.MatchedBy(func(pm models.PaymentMethod) bool {
		return pm.UserUID == "user-1" && pm.CardLast4 == "4242"
	})).Return("pm-1", nil).Once()

	id, err := service.AddPaymentMethod(context.Background(), "user-1", models.DummyPaymentMethod{
		Type:      "card",
		CardLast4: "4242",
		ExpMonth:  12,
		ExpYear:   2028,
	})
	require.NoError(t, err)
	assert.Equal(t, "pm-1", id)

	expected := []*models.PaymentMethod{{ID: "pm-1", UserUID: "user-1"}}
	repo.On("ListPaymentMethods", mock.Anything, "user-1").Return(expected, nil).Once()

	got, err := service.ListPaymentMethods(context.Background(), "user-1")
	require.NoError(t, err)
	assert.Equal(t, expected, got)

	repo.AssertExpectations(t)
}
