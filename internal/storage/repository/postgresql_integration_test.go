package repository

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fitpulse/fitpulse/internal/models"
)

func TestStorage_RegisterAndGetUser(t *testing.T) {
	storage, cleanup := setupTestDatabase(t)
	defer cleanup()

	ctx := context.Background()
	uid, err := storage.RegisterUser(ctx, models.User{
		Email:        "test@example.com",
		Username:     "testuser",
		PasswordHash: "hashedpassword",
		Role:         "user",
	})
	require.NoError(t, err)
	require.NotEmpty(t, uid)

	byUID, err := storage.GetUser(ctx, uid)
	require.NoError(t, err)
	assert.Equal(t, "testuser", byUID.Username)

	byName, err := storage.GetUserByUsername(ctx, "testuser")
	require.NoError(t, err)
	assert.Equal(t, uid, byName.UID)
	assert.Equal(t, "test@example.com", byName.Email)
}

func TestStorage_ListPlans(t *testing.T) {
	storage, cleanup := setupTestDatabase(t)
	defer cleanup()

	factory := NewTestDataFactory(storage)
	factory.CreatePlan(t, "free", "free", 0, 0, false, 0)
	factory.CreatePlan(t, "premium_monthly", "premium", 999, 9999, true, 1)

	plans, err := storage.ListPlans(context.Background())
	require.NoError(t, err)
	require.Len(t, plans, 2)
	assert.Equal(t, "free", plans[0].ID)
	assert.Equal(t, "premium_monthly", plans[1].ID)
	assert.True(t, plans[1].AIRecommendations)
}

func TestStorage_SubscriptionLifecycle(t *testing.T) {
	storage, cleanup := setupTestDatabase(t)
	defer cleanup()

	ctx := context.Background()
	factory := NewTestDataFactory(storage)
	userUID := uuid.New().String()
	factory.CreateUser(t, userUID, "subuser", "sub@example.com", "hash", "user")
	factory.CreatePlan(t, "premium_monthly", "premium", 999, 9999, true, 1)

	_, err := storage.GetActiveSubscription(ctx, userUID)
	require.ErrorIs(t, err, ErrSubscriptionNotFound)

	now := time.Now()
	subID, err := storage.CreateSubscriptionRow(ctx, models.UserSubscription{
		UserUID:            userUID,
		PlanID:             "premium_monthly",
		Status:             models.SubscriptionStatusActive,
		BillingCycle:       models.BillingCycleMonthly,
		CurrentPeriodStart: now,
		CurrentPeriodEnd:   now.AddDate(0, 0, 30),
		AutoRenew:          true,
	})
	require.NoError(t, err)
	require.NotEmpty(t, subID)

	sub, err := storage.GetActiveSubscription(ctx, userUID)
	require.NoError(t, err)
	assert.Equal(t, subID, sub.ID)
	assert.Equal(t, models.SubscriptionStatusActive, sub.Status)

	// Новая подписка отменяет предыдущую, действующей остаётся одна.
	secondID, err := storage.CreateSubscriptionRow(ctx, models.UserSubscription{
		UserUID:            userUID,
		PlanID:             "premium_monthly",
		Status:             models.SubscriptionStatusActive,
		BillingCycle:       models.BillingCycleYearly,
		CurrentPeriodStart: now,
		CurrentPeriodEnd:   now.AddDate(0, 0, 365),
		AutoRenew:          true,
	})
	require.NoError(t, err)

	sub, err = storage.GetActiveSubscription(ctx, userUID)
	require.NoError(t, err)
	assert.Equal(t, secondID, sub.ID)

	affected, err := storage.CancelSubscription(ctx, userUID)
	require.NoError(t, err)
	assert.Equal(t, 1, affected)

	_, err = storage.GetActiveSubscription(ctx, userUID)
	require.ErrorIs(t, err, ErrSubscriptionNotFound)
}

func TestStorage_MarkExpiredSubscriptions(t *testing.T) {
	storage, cleanup := setupTestDatabase(t)
	defer cleanup()

	ctx := context.Background()
	factory := NewTestDataFactory(storage)
	userUID := uuid.New().String()
	factory.CreateUser(t, userUID, "expuser", "exp@example.com", "hash", "user")
	factory.CreatePlan(t, "premium_monthly", "premium", 999, 9999, true, 1)

	_, err := storage.DB.Exec(`INSERT INTO user_subscriptions
		(user_uid, plan_id, status, billing_cycle, current_period_start, current_period_end, auto_renew)
		VALUES ($1, 'premium_monthly', 'active', 'monthly', NOW() - INTERVAL '60 days', NOW() - INTERVAL '30 days', false)`,
		userUID)
	require.NoError(t, err)

	affected, err := storage.MarkExpiredSubscriptions(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, affected)

	_, err = storage.GetActiveSubscription(ctx, userUID)
	require.ErrorIs(t, err, ErrSubscriptionNotFound)
}

func TestStorage_FeatureFunctions(t *testing.T) {
	storage, cleanup := setupTestDatabase(t)
	defer cleanup()

	ctx := context.Background()
	factory := NewTestDataFactory(storage)
	freeUID := uuid.New().String()
	premiumUID := uuid.New().String()
	factory.CreateUser(t, freeUID, "freeuser", "free@example.com", "hash", "user")
	factory.CreateUser(t, premiumUID, "premiumuser", "premium@example.com", "hash", "user")
	factory.CreatePlan(t, "premium_monthly", "premium", 999, 9999, true, 1)
	factory.CreateActiveSubscription(t, premiumUID, "premium_monthly", "monthly", time.Now().AddDate(0, 0, 30))

	tests := []struct {
		name       string
		userUID    string
		feature    string
		wantAccess bool
		wantLimit  int
	}{
		{"free user basic tracking", freeUID, "basic_tracking", true, -1},
		{"free user workout logging", freeUID, "workout_logging", true, 10},
		{"free user nutrition logging", freeUID, "nutrition_logging", true, 50},
		{"free user ai recommendations", freeUID, "ai_recommendations", true, 2},
		{"free user goal setting", freeUID, "goal_setting", true, 3},
		{"free user unknown feature", freeUID, "video_coaching", false, 0},
		{"premium user workout logging", premiumUID, "workout_logging", true, -1},
		{"premium user unknown feature", premiumUID, "video_coaching", true, -1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hasAccess, err := storage.HasFeatureAccess(ctx, tt.userUID, tt.feature)
			require.NoError(t, err)
			assert.Equal(t, tt.wantAccess, hasAccess)

			limit, err := storage.FeatureLimit(ctx, tt.userUID, tt.feature)
			require.NoError(t, err)
			assert.Equal(t, tt.wantLimit, limit)
		})
	}
}

func TestStorage_WorkoutsAndCounts(t *testing.T) {
	storage, cleanup := setupTestDatabase(t)
	defer cleanup()

	ctx := context.Background()
	factory := NewTestDataFactory(storage)
	userUID := uuid.New().String()
	factory.CreateUser(t, userUID, "workoutuser", "workout@example.com", "hash", "user")

	for i := range 3 {
		_, err := storage.CreateWorkout(ctx, models.Workout{
			UserUID:        userUID,
			Name:           "Morning Run",
			Type:           "cardio",
			Duration:       30 + i,
			CaloriesBurned: 300,
			Exercises:      []string{"running"},
			Date:           time.Now(),
		})
		require.NoError(t, err)
	}

	list, err := storage.ListWorkouts(ctx, userUID, 10, 0)
	require.NoError(t, err)
	assert.Len(t, list, 3)
	assert.Equal(t, []string{"running"}, list[0].Exercises)

	count, err := storage.CountWorkoutsSince(ctx, userUID, time.Now().AddDate(0, 0, -1))
	require.NoError(t, err)
	assert.Equal(t, 3, count)

	count, err = storage.CountWorkoutsSince(ctx, userUID, time.Now().AddDate(0, 0, 1))
	require.NoError(t, err)
	assert.Equal(t, 0, count)
}

func TestStorage_Goals(t *testing.T) {
	storage, cleanup := setupTestDatabase(t)
	defer cleanup()

	ctx := context.Background()
	factory := NewTestDataFactory(storage)
	userUID := uuid.New().String()
	factory.CreateUser(t, userUID, "goaluser", "goal@example.com", "hash", "user")

	goalID, err := storage.CreateGoal(ctx, models.Goal{
		UserUID:     userUID,
		Title:       "Lose weight",
		Category:    "weight",
		TargetValue: 75,
		Unit:        "kg",
		Status:      models.GoalStatusActive,
	})
	require.NoError(t, err)

	count, err := storage.CountActiveGoals(ctx, userUID)
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	affected, err := storage.UpdateGoal(ctx, models.Goal{
		ID:           goalID,
		UserUID:      userUID,
		Title:        "Lose weight",
		Category:     "weight",
		TargetValue:  75,
		CurrentValue: 80,
		Unit:         "kg",
		Status:       models.GoalStatusCompleted,
	})
	require.NoError(t, err)
	assert.Equal(t, 1, affected)

	goals, err := storage.ListGoals(ctx, userUID)
	require.NoError(t, err)
	require.Len(t, goals, 1)
	assert.Equal(t, models.GoalStatusCompleted, goals[0].Status)

	affected, err = storage.RemoveGoal(ctx, goalID, userUID)
	require.NoError(t, err)
	assert.Equal(t, 1, affected)
}

func TestStorage_SubscriptionAnalytics(t *testing.T) {
	storage, cleanup := setupTestDatabase(t)
	defer cleanup()

	ctx := context.Background()
	factory := NewTestDataFactory(storage)
	userUID := uuid.New().String()
	factory.CreateUser(t, userUID, "analyticsuser", "analytics@example.com", "hash", "user")
	factory.CreatePlan(t, "premium_monthly", "premium", 999, 9999, true, 1)
	factory.CreateActiveSubscription(t, userUID, "premium_monthly", "monthly", time.Now().AddDate(0, 0, 30))
	factory.CreatePayment(t, userUID, "txn_1", 999, "succeeded")
	factory.CreatePayment(t, userUID, "txn_2", 999, "succeeded")
	factory.CreatePayment(t, userUID, "txn_3", 999, "failed")

	analytics, err := storage.GetSubscriptionAnalytics(ctx, userUID)
	require.NoError(t, err)
	assert.Equal(t, "active", analytics.Status)
	assert.Equal(t, 1998, analytics.TotalSpent)
	assert.True(t, analytics.AutoRenew)
	require.NotNil(t, analytics.NextBilling)
}

func TestStorage_ProfileUpsert(t *testing.T) {
	storage, cleanup := setupTestDatabase(t)
	defer cleanup()

	ctx := context.Background()
	factory := NewTestDataFactory(storage)
	userUID := uuid.New().String()
	factory.CreateUser(t, userUID, "profileuser", "profile@example.com", "hash", "user")

	err := storage.UpsertProfile(ctx, models.Profile{
		UserUID:      userUID,
		Name:         "Test User",
		Age:          30,
		Height:       180,
		Weight:       80,
		FitnessLevel: "intermediate",
		Goals:        []string{"weight_loss"},
		Allergies:    []string{"nuts"},
	})
	require.NoError(t, err)

	prof, err := storage.GetProfile(ctx, userUID)
	require.NoError(t, err)
	assert.Equal(t, "Test User", prof.Name)
	assert.Equal(t, "profile@example.com", prof.Email)
	assert.Equal(t, []string{"nuts"}, prof.Allergies)

	err = storage.UpsertProfile(ctx, models.Profile{
		UserUID:      userUID,
		Name:         "Renamed User",
		FitnessLevel: "advanced",
	})
	require.NoError(t, err)

	prof, err = storage.GetProfile(ctx, userUID)
	require.NoError(t, err)
	assert.Equal(t, "Renamed User", prof.Name)
	assert.Equal(t, "advanced", prof.FitnessLevel)
}

func TestStorage_CommunityPosts(t *testing.T) {
	storage, cleanup := setupTestDatabase(t)
	defer cleanup()

	ctx := context.Background()
	factory := NewTestDataFactory(storage)
	userUID := uuid.New().String()
	factory.CreateUser(t, userUID, "poster", "poster@example.com", "hash", "user")

	for _, content := range []string{"first post", "second post"} {
		_, err := storage.CreatePost(ctx, models.Post{
			UserUID:  userUID,
			Username: "poster",
			Content:  content,
		})
		require.NoError(t, err)
	}

	posts, err := storage.ListPosts(ctx, 10, 0)
	require.NoError(t, err)
	require.Len(t, posts, 2)
	assert.Equal(t, "second post", posts[0].Content)
}
