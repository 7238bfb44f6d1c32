package entitlement

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"pgregory.net/rapid"

	"github.com/fitpulse/fitpulse/internal/models"
)

type MockLookup struct {
	mock.Mock
}

func (m *MockLookup) HasFeatureAccess(ctx context.Context, userUID, featureName string) (bool, error) {
	args := m.Called(ctx, userUID, featureName)
	return args.Bool(0), args.Error(1)
}

func (m *MockLookup) FeatureLimit(ctx context.Context, userUID, featureName string) (int, error) {
	args := m.Called(ctx, userUID, featureName)
	return args.Int(0), args.Error(1)
}

func newEvaluator(t *testing.T, lookup RemoteLookup) (*Evaluator, *Store) {
	store := setupStore(t)
	return NewEvaluator(store, lookup, newNoopLogger()), store
}

func TestEvaluator_PremiumUnlocksEverything(t *testing.T) {
	lookup := new(MockLookup)
	evaluator, store := newEvaluator(t, lookup)

	store.Activate("user-1", "premium_monthly", models.BillingCycleMonthly)

	for _, feature := range []models.Feature{
		models.FeatureBasicTracking,
		models.FeatureWorkoutLogging,
		models.FeatureAIRecommendations,
		models.Feature("video_coaching"),
	} {
		decision := evaluator.Evaluate(context.Background(), "user-1", feature)
		assert.True(t, decision.HasAccess)
		assert.Equal(t, models.UnlimitedUsage, decision.Limit)
	}
	// Премиум решается локально, удалённая проверка не вызывается.
	lookup.AssertNotCalled(t, "HasFeatureAccess")
}

func TestEvaluator_FreeTier(t *testing.T) {
	tests := []struct {
		name      string
		feature   models.Feature
		wantLimit int
	}{
		{"always free basic tracking", models.FeatureBasicTracking, models.UnlimitedUsage},
		{"always free mood tracking", models.FeatureMoodTracking, models.UnlimitedUsage},
		{"always free sleep tracking", models.FeatureSleepTracking, models.UnlimitedUsage},
		{"workout logging", models.FeatureWorkoutLogging, 10},
		{"nutrition logging", models.FeatureNutritionLogging, 50},
		{"ai recommendations", models.FeatureAIRecommendations, 2},
		{"goal setting", models.FeatureGoalSetting, 3},
	}

	lookup := new(MockLookup)
	evaluator, _ := newEvaluator(t, lookup)

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			decision := evaluator.Evaluate(context.Background(), "user-1", tt.feature)
			assert.True(t, decision.HasAccess)
			assert.Equal(t, tt.wantLimit, decision.Limit)
		})
	}
	lookup.AssertNotCalled(t, "HasFeatureAccess")
}

func TestEvaluator_UnknownFeatureUsesRemote(t *testing.T) {
	lookup := new(MockLookup)
	evaluator, _ := newEvaluator(t, lookup)

	lookup.On("HasFeatureAccess", mock.Anything, "user-1", "video_coaching").Return(true, nil).Once()
	lookup.On("FeatureLimit", mock.Anything, "user-1", "video_coaching").Return(5, nil).Once()

	decision := evaluator.Evaluate(context.Background(), "user-1", models.Feature("video_coaching"))
	assert.True(t, decision.HasAccess)
	assert.Equal(t, 5, decision.Limit)

	lookup.AssertExpectations(t)
}

func TestEvaluator_RemoteDenies(t *testing.T) {
	lookup := new(MockLookup)
	evaluator, _ := newEvaluator(t, lookup)

	lookup.On("HasFeatureAccess", mock.Anything, "user-1", "video_coaching").Return(false, nil).Once()
	lookup.On("FeatureLimit", mock.Anything, "user-1", "video_coaching").Return(0, nil).Once()

	decision := evaluator.Evaluate(context.Background(), "user-1", models.Feature("video_coaching"))
	assert.False(t, decision.HasAccess)
	assert.Equal(t, 0, decision.Limit)
}

func TestEvaluator_FailsOpenWhenNotConfigured(t *testing.T) {
	evaluator, _ := newEvaluator(t, NoopLookup{})

	decision := evaluator.Evaluate(context.Background(), "user-2", models.Feature("video_coaching"))
	assert.True(t, decision.HasAccess)
	assert.Equal(t, 0, decision.Limit)
}

func TestEvaluator_KnownFeaturesWorkWithoutBackend(t *testing.T) {
	// Функции из каталога решаются локально: несконфигурированное
	// реляционное хранилище не мешает бесплатному тарифу.
	evaluator, _ := newEvaluator(t, NoopLookup{})

	decision := evaluator.Evaluate(context.Background(), "user-2", models.FeatureAIRecommendations)
	assert.True(t, decision.HasAccess)
	assert.Equal(t, 2, decision.Limit)
}

func TestEvaluator_PremiumProperty(t *testing.T) {
	evaluator, store := newEvaluator(t, NoopLookup{})

	rapid.Check(t, func(t *rapid.T) {
		userUID := rapid.StringMatching(`[a-z0-9-]{1,36}`).Draw(t, "user_uid")
		feature := rapid.String().Draw(t, "feature")

		store.Activate(userUID, "premium_monthly", models.BillingCycleMonthly)

		decision := evaluator.Evaluate(context.Background(), userUID, models.Feature(feature))
		if !decision.HasAccess || decision.Limit != models.UnlimitedUsage {
			t.Fatalf("premium user got %+v for feature %q", decision, feature)
		}
	})
}

func TestEvaluator_NonPremiumNeverThrows(t *testing.T) {
	evaluator, _ := newEvaluator(t, NoopLookup{})

	rapid.Check(t, func(t *rapid.T) {
		userUID := rapid.StringMatching(`[a-z0-9-]{1,36}`).Draw(t, "user_uid")
		feature := rapid.String().Draw(t, "feature")

		decision := evaluator.Evaluate(context.Background(), userUID, models.Feature(feature))
		if !decision.HasAccess {
			t.Fatalf("non-premium evaluation must fail open, got %+v for %q", decision, feature)
		}
	})
}
