package models

import "time"

// Статусы подписки в реляционном хранилище.
const (
	SubscriptionStatusActive    = "active"
	SubscriptionStatusTrialing  = "trialing"
	SubscriptionStatusCancelled = "cancelled"
	SubscriptionStatusExpired   = "expired"
	SubscriptionStatusPastDue   = "past_due"
)

// Циклы оплаты.
const (
	BillingCycleMonthly = "monthly"
	BillingCycleYearly  = "yearly"
)

// Plan описывает тарифный план из таблицы subscription_plans.
type Plan struct {
	ID                 string `json:"id"`
	Name               string `json:"name"`
	DisplayName        string `json:"display_name"`
	Description        string `json:"description"`
	PriceMonthly       int    `json:"price_monthly"` // в центах
	PriceYearly        int    `json:"price_yearly"`  // в центах
	MaxGoals           int    `json:"max_goals"`
	MaxWorkoutsPerMonth int   `json:"max_workouts_per_month"`
	AIRecommendations  bool   `json:"ai_recommendations"`
	AdvancedAnalytics  bool   `json:"advanced_analytics"`
	PrioritySupport    bool   `json:"priority_support"`
	IsActive           bool   `json:"is_active"`
	SortOrder          int    `json:"sort_order"`
}

// UserSubscription — строка подписки пользователя в реляционном хранилище.
// Поле Plan заполняется отдельным запросом и может быть nil,
// если план не удалось загрузить.
type UserSubscription struct {
	ID                 string     `json:"id"`
	UserUID            string     `json:"user_id"`
	PlanID             string     `json:"plan_id"`
	Status             string     `json:"status"`
	BillingCycle       string     `json:"billing_cycle"`
	CurrentPeriodStart time.Time  `json:"current_period_start"`
	CurrentPeriodEnd   time.Time  `json:"current_period_end"`
	CancelledAt        *time.Time `json:"cancelled_at,omitempty"`
	AutoRenew          bool       `json:"auto_renew"`
	CreatedAt          time.Time  `json:"created_at"`
	Plan               *Plan      `json:"plan,omitempty"`
}

// StoredSubscription — запись подписки в локальном KV-хранилище
// (ключ subscription_<uid>). Формат полей повторяет реляционную запись,
// но живёт независимо от неё: флаг premium_<uid> и эта запись пишутся
// двумя отдельными ключами без транзакционных гарантий.
type StoredSubscription struct {
	UserUID            string    `json:"user_id"`
	PlanID             string    `json:"plan_id"`
	Status             string    `json:"status"`
	BillingCycle       string    `json:"billing_cycle"`
	CurrentPeriodStart time.Time `json:"current_period_start"`
	CurrentPeriodEnd   time.Time `json:"current_period_end"`
	AutoRenew          bool      `json:"auto_renew"`
	CreatedAt          time.Time `json:"created_at"`
}

// SubscriptionAnalytics — сводка по подписке пользователя для страницы профиля.
type SubscriptionAnalytics struct {
	CurrentPlan        string     `json:"current_plan"`
	Status             string     `json:"status"`
	TotalSpent         int        `json:"total_spent"` // в центах
	SubscriptionLength int        `json:"subscription_length_days"`
	NextBilling        *time.Time `json:"next_billing,omitempty"`
	AutoRenew          bool       `json:"auto_renew"`
}

// ActivationEvent публикуется в очередь после активации подписки
// и потребляется сервисом отправки уведомлений.
type ActivationEvent struct {
	UserUID       string    `json:"user_uid"`
	Email         string    `json:"email"`
	PlanID        string    `json:"plan_id"`
	BillingCycle  string    `json:"billing_cycle"`
	TransactionID string    `json:"transaction_id"`
	Amount        int       `json:"amount"`
	ActivatedAt   time.Time `json:"activated_at"`
}
