package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/fitpulse/fitpulse/internal/models"
)

// ErrSubscriptionNotFound возвращается, когда у пользователя нет активной подписки.
var ErrSubscriptionNotFound = errors.New("subscription not found")

// ListPlans возвращает список доступных тарифных планов.
func (s *Storage) ListPlans(ctx context.Context) ([]*models.Plan, error) {
	const op = "storage.ListPlans"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT id, name, display_name, description, price_monthly, price_yearly,
			      max_goals, max_workouts_per_month, ai_recommendations,
			      advanced_analytics, priority_support, is_active, sort_order
			  FROM subscription_plans
			  WHERE is_active = true
			  ORDER BY sort_order`
	rows, err := s.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var result []*models.Plan
	for rows.Next() {
		var p models.Plan
		if err := rows.Scan(&p.ID, &p.Name, &p.DisplayName, &p.Description,
			&p.PriceMonthly, &p.PriceYearly, &p.MaxGoals, &p.MaxWorkoutsPerMonth,
			&p.AIRecommendations, &p.AdvancedAnalytics, &p.PrioritySupport,
			&p.IsActive, &p.SortOrder); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, &p)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

// GetPlan возвращает тарифный план по его ID.
func (s *Storage) GetPlan(ctx context.Context, planID string) (*models.Plan, error) {
	const op = "storage.GetPlan"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT id, name, display_name, description, price_monthly, price_yearly,
			      max_goals, max_workouts_per_month, ai_recommendations,
			      advanced_analytics, priority_support, is_active, sort_order
			  FROM subscription_plans
			  WHERE id = $1`
	var p models.Plan
	row := s.DB.QueryRowContext(ctx, query, planID)
	if err := row.Scan(&p.ID, &p.Name, &p.DisplayName, &p.Description,
		&p.PriceMonthly, &p.PriceYearly, &p.MaxGoals, &p.MaxWorkoutsPerMonth,
		&p.AIRecommendations, &p.AdvancedAnalytics, &p.PrioritySupport,
		&p.IsActive, &p.SortOrder); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &p, nil
}

// GetActiveSubscription возвращает действующую подписку пользователя.
// Подписка считается действующей в статусах active и trialing.
// Если подписки нет, возвращается ErrSubscriptionNotFound.
func (s *Storage) GetActiveSubscription(ctx context.Context, userUID string) (*models.UserSubscription, error) {
	const op = "storage.GetActiveSubscription"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT id, user_uid, plan_id, status, billing_cycle,
			      current_period_start, current_period_end, cancelled_at,
			      auto_renew, created_at
			  FROM user_subscriptions
			  WHERE user_uid = $1
			    AND status IN ('active', 'trialing')
			  ORDER BY created_at DESC
			  LIMIT 1`
	var sub models.UserSubscription
	var cancelledAt sql.NullTime
	row := s.DB.QueryRowContext(ctx, query, userUID)
	if err := row.Scan(&sub.ID, &sub.UserUID, &sub.PlanID, &sub.Status,
		&sub.BillingCycle, &sub.CurrentPeriodStart, &sub.CurrentPeriodEnd,
		&cancelledAt, &sub.AutoRenew, &sub.CreatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w", op, ErrSubscriptionNotFound)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if cancelledAt.Valid {
		sub.CancelledAt = &cancelledAt.Time
	}
	return &sub, nil
}

// CreateSubscriptionRow вставляет новую запись подписки и возвращает её ID.
// Предыдущие действующие подписки пользователя переводятся в cancelled.
func (s *Storage) CreateSubscriptionRow(ctx context.Context, sub models.UserSubscription) (string, error) {
	const op = "storage.CreateSubscriptionRow"
	select {
	case <-ctx.Done():
		return "", fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	_, err = tx.ExecContext(ctx,
		`UPDATE user_subscriptions
		 SET status = 'cancelled', cancelled_at = NOW()
		 WHERE user_uid = $1 AND status IN ('active', 'trialing')`, sub.UserUID)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}

	var newID string
	err = tx.QueryRowContext(ctx,
		`INSERT INTO user_subscriptions (user_uid, plan_id, status, billing_cycle,
		     current_period_start, current_period_end, auto_renew)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)
		 RETURNING id`,
		sub.UserUID, sub.PlanID, sub.Status, sub.BillingCycle,
		sub.CurrentPeriodStart, sub.CurrentPeriodEnd, sub.AutoRenew).Scan(&newID)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}

	if err = tx.Commit(); err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	return newID, nil
}

// CancelSubscription отменяет действующую подписку пользователя
// и возвращает количество изменённых строк.
func (s *Storage) CancelSubscription(ctx context.Context, userUID string) (int, error) {
	const op = "storage.CancelSubscription"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `UPDATE user_subscriptions
			  SET status = 'cancelled', auto_renew = false, cancelled_at = NOW()
			  WHERE user_uid = $1
			    AND status IN ('active', 'trialing')`
	result, err := s.DB.ExecContext(ctx, query, userUID)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return int(rowsAffected), nil
}

// MarkExpiredSubscriptions переводит подписки с истёкшим периодом в статус expired
// и возвращает количество изменённых строк.
func (s *Storage) MarkExpiredSubscriptions(ctx context.Context) (int, error) {
	const op = "storage.MarkExpiredSubscriptions"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `UPDATE user_subscriptions
			  SET status = 'expired'
			  WHERE status IN ('active', 'trialing')
			    AND current_period_end < NOW()
			    AND auto_renew = false`
	result, err := s.DB.ExecContext(ctx, query)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return int(rowsAffected), nil
}

// RenewSubscriptions продлевает период подписок с автопродлением
// и возвращает количество изменённых строк.
func (s *Storage) RenewSubscriptions(ctx context.Context) (int, error) {
	const op = "storage.RenewSubscriptions"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `UPDATE user_subscriptions
			  SET current_period_start = current_period_end,
			      current_period_end = current_period_end +
			          CASE billing_cycle
			              WHEN 'yearly' THEN INTERVAL '365 days'
			              ELSE INTERVAL '30 days'
			          END
			  WHERE status = 'active'
			    AND current_period_end < NOW()
			    AND auto_renew = true`
	result, err := s.DB.ExecContext(ctx, query)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return int(rowsAffected), nil
}

// HasFeatureAccess вызывает функцию базы данных has_feature_access,
// которая решает, доступна ли пользователю функция с учётом его подписки.
func (s *Storage) HasFeatureAccess(ctx context.Context, userUID, featureName string) (bool, error) {
	const op = "storage.HasFeatureAccess"
	select {
	case <-ctx.Done():
		return false, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	var hasAccess bool
	err := s.DB.QueryRowContext(ctx,
		`SELECT has_feature_access($1, $2)`, userUID, featureName).Scan(&hasAccess)
	if err != nil {
		return false, fmt.Errorf("%s: %w", op, err)
	}
	return hasAccess, nil
}

// FeatureLimit вызывает функцию базы данных get_feature_limit,
// возвращающую лимит использования функции. -1 означает безлимит.
func (s *Storage) FeatureLimit(ctx context.Context, userUID, featureName string) (int, error) {
	const op = "storage.FeatureLimit"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	var limit int
	err := s.DB.QueryRowContext(ctx,
		`SELECT get_feature_limit($1, $2)`, userUID, featureName).Scan(&limit)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return limit, nil
}

// GetSubscriptionAnalytics собирает сводку по подписке пользователя:
// текущий план, статус, длительность и суммарные траты.
func (s *Storage) GetSubscriptionAnalytics(ctx context.Context, userUID string) (*models.SubscriptionAnalytics, error) {
	const op = "storage.GetSubscriptionAnalytics"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT p.display_name, us.status, us.auto_renew,
			      us.current_period_end,
			      (CURRENT_DATE - us.created_at::DATE) AS length_days,
			      COALESCE((SELECT SUM(ph.amount) FROM payment_history ph
			          WHERE ph.user_uid = us.user_uid AND ph.status = 'succeeded'), 0)
			  FROM user_subscriptions us
			  JOIN subscription_plans p ON p.id = us.plan_id
			  WHERE us.user_uid = $1
			    AND us.status IN ('active', 'trialing')
			  ORDER BY us.created_at DESC
			  LIMIT 1`
	var a models.SubscriptionAnalytics
	var nextBilling sql.NullTime
	row := s.DB.QueryRowContext(ctx, query, userUID)
	if err := row.Scan(&a.CurrentPlan, &a.Status, &a.AutoRenew,
		&nextBilling, &a.SubscriptionLength, &a.TotalSpent); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w", op, ErrSubscriptionNotFound)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if nextBilling.Valid && a.AutoRenew {
		a.NextBilling = &nextBilling.Time
	}
	return &a, nil
}
