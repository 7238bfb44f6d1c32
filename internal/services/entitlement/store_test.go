package entitlement

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fitpulse/fitpulse/internal/config"
	"github.com/fitpulse/fitpulse/internal/kvstore"
	"github.com/fitpulse/fitpulse/internal/models"
)

func newNoopLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{}))
}

func setupStore(t *testing.T) *Store {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(func() { mr.Close() })

	kv, err := kvstore.InitServer(context.Background(), config.RedisConnection{
		AddressRedis: mr.Addr(),
	})
	require.NoError(t, err)

	return NewStore(kv, newNoopLogger())
}

// brokenKV имитирует недоступное локальное хранилище.
type brokenKV struct{}

func (brokenKV) Get(_ string, _ any) (bool, error) {
	return false, errors.New("storage unavailable")
}

func (brokenKV) Set(_ string, _ any, _ time.Duration) error {
	return errors.New("storage unavailable")
}

func (brokenKV) Delete(_ string) error {
	return errors.New("storage unavailable")
}

func TestStore_IsPremiumUser_Empty(t *testing.T) {
	store := setupStore(t)
	assert.False(t, store.IsPremiumUser("user-1"))
}

func TestStore_ActivateSetsBothKeys(t *testing.T) {
	store := setupStore(t)

	store.Activate("user-1", "premium_monthly", models.BillingCycleMonthly)

	assert.True(t, store.IsPremiumUser("user-1"))

	sub := store.GetSubscription("user-1")
	require.NotNil(t, sub)
	assert.Equal(t, "premium_monthly", sub.PlanID)
	assert.Equal(t, models.BillingCycleMonthly, sub.BillingCycle)
	assert.Equal(t, models.SubscriptionStatusActive, sub.Status)
	assert.True(t, sub.AutoRenew)

	wantEnd := time.Now().Add(30 * 24 * time.Hour)
	assert.WithinDuration(t, wantEnd, sub.CurrentPeriodEnd, 5*time.Second)
}

func TestStore_ActivateYearlyPeriod(t *testing.T) {
	store := setupStore(t)

	store.Activate("user-1", "premium_yearly", models.BillingCycleYearly)

	sub := store.GetSubscription("user-1")
	require.NotNil(t, sub)
	wantEnd := time.Now().Add(365 * 24 * time.Hour)
	assert.WithinDuration(t, wantEnd, sub.CurrentPeriodEnd, 5*time.Second)
}

func TestStore_ActivateIsIdempotent(t *testing.T) {
	store := setupStore(t)

	store.Activate("user-1", "premium_monthly", models.BillingCycleMonthly)
	assert.True(t, store.IsPremiumUser("user-1"))

	store.Activate("user-1", "premium_monthly", models.BillingCycleMonthly)
	assert.True(t, store.IsPremiumUser("user-1"))
}

func TestStore_ActivateSurvivesStorageFailure(t *testing.T) {
	store := NewStore(brokenKV{}, newNoopLogger())

	// Не должно паниковать и не должно возвращать ошибку: активация
	// всегда успешна, даже когда хранилище недоступно.
	store.Activate("user-1", "premium_monthly", models.BillingCycleMonthly)
}

func TestStore_IsPremiumUserFailsClosed(t *testing.T) {
	store := NewStore(brokenKV{}, newNoopLogger())
	assert.False(t, store.IsPremiumUser("user-1"))
	assert.Nil(t, store.GetSubscription("user-1"))
}

func TestStore_Clear(t *testing.T) {
	store := setupStore(t)

	store.Activate("user-1", "premium_monthly", models.BillingCycleMonthly)
	require.True(t, store.IsPremiumUser("user-1"))

	err := store.Clear("user-1")
	require.NoError(t, err)
	assert.False(t, store.IsPremiumUser("user-1"))
	assert.Nil(t, store.GetSubscription("user-1"))
}
