package models

import "time"

// Статусы платежа в истории.
const (
	PaymentStatusSucceeded = "succeeded"
	PaymentStatusPending   = "pending"
	PaymentStatusFailed    = "failed"
	PaymentStatusRefunded  = "refunded"
)

// PaymentMethod — сохранённый способ оплаты пользователя.
type PaymentMethod struct {
	ID        string    `json:"id"`
	UserUID   string    `json:"user_uid"`
	Type      string    `json:"type"`
	CardBrand string    `json:"card_brand,omitempty"`
	CardLast4 string    `json:"card_last4,omitempty"`
	ExpMonth  int       `json:"card_exp_month,omitempty"`
	ExpYear   int       `json:"card_exp_year,omitempty"`
	IsDefault bool      `json:"is_default"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
}

// DummyPaymentMethod — входные данные запроса добавления способа оплаты.
type DummyPaymentMethod struct {
	Type      string `json:"type" validate:"required,oneof=card"`
	CardBrand string `json:"card_brand"`
	CardLast4 string `json:"card_last4" validate:"required,len=4,numeric"`
	ExpMonth  int    `json:"card_exp_month" validate:"required,gte=1,lte=12"`
	ExpYear   int    `json:"card_exp_year" validate:"required,gte=2024"`
	IsDefault bool   `json:"is_default"`
}

// PaymentRecord — запись в истории платежей.
type PaymentRecord struct {
	ID             string    `json:"id"`
	UserUID        string    `json:"user_uid"`
	SubscriptionID string    `json:"subscription_id,omitempty"`
	TransactionID  string    `json:"transaction_id"`
	Amount         int       `json:"amount"` // в центах
	Currency       string    `json:"currency"`
	Status         string    `json:"status"`
	Description    string    `json:"description"`
	ProcessedAt    time.Time `json:"processed_at"`
}

// DummyCard — данные карты из формы оплаты. Проверяются только формально:
// платёж симулируется и реальная карта не списывается.
type DummyCard struct {
	Number string `json:"number" validate:"required"`
	Expiry string `json:"expiry" validate:"required"`
	CVC    string `json:"cvc" validate:"required"`
	Name   string `json:"name" validate:"required"`
}

// DummyActivation — входные данные запроса активации подписки.
type DummyActivation struct {
	PlanID       string    `json:"plan_id" validate:"required"`
	BillingCycle string    `json:"billing_cycle" validate:"required,oneof=monthly yearly"`
	Card         DummyCard `json:"card" validate:"required"`
}
