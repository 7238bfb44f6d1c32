// Package payment реализует симулятор платежей и активацию подписки.
// Платёж всегда завершается успехом: это осознанное демонстрационное
// поведение, а не интеграция с реальным провайдером.
package payment

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/streadway/amqp"

	"github.com/fitpulse/fitpulse/internal/lib/period"
	"github.com/fitpulse/fitpulse/internal/lib/rabbitmq"
	"github.com/fitpulse/fitpulse/internal/lib/sl"
	"github.com/fitpulse/fitpulse/internal/models"
	internalrabbitmq "github.com/fitpulse/fitpulse/internal/rabbitmq"
	"github.com/fitpulse/fitpulse/internal/services/entitlement"
)

// PaymentRepository определяет методы реляционного хранилища,
// используемые при активации подписки и работе со способами оплаты.
type PaymentRepository interface {
	GetPlan(ctx context.Context, planID string) (*models.Plan, error)
	CreateSubscriptionRow(ctx context.Context, sub models.UserSubscription) (string, error)
	SavePaymentRecord(ctx context.Context, rec models.PaymentRecord) (string, error)
	CreatePaymentMethod(ctx context.Context, pm models.PaymentMethod) (string, error)
	ListPaymentMethods(ctx context.Context, userUID string) ([]*models.PaymentMethod, error)
	ListPaymentHistory(ctx context.Context, userUID string, limit, offset int) ([]*models.PaymentRecord, error)
}

// Ошибки формальной проверки данных карты.
var (
	ErrInvalidCardNumber = errors.New("card number must contain at least 16 digits")
	ErrInvalidCardExpiry = errors.New("card expiry must be in MM/YY format")
	ErrInvalidCardCVC    = errors.New("card cvc must contain at least 3 digits")
)

// ActivationResult — итог активации подписки.
type ActivationResult struct {
	TransactionID string    `json:"transaction_id"`
	PlanID        string    `json:"plan_id"`
	BillingCycle  string    `json:"billing_cycle"`
	Amount        int       `json:"amount"`
	ActivatedAt   time.Time `json:"activated_at"`
}

// PaymentService симулирует обработку платежей и активирует подписку.
type PaymentService struct {
	repo            PaymentRepository
	store           *entitlement.Store
	ch              *amqp.Channel
	processingDelay time.Duration
	log             *slog.Logger
}

// New создает новый экземпляр PaymentService. Канал RabbitMQ может быть nil,
// тогда события активации не публикуются.
func New(repo PaymentRepository, store *entitlement.Store, ch *amqp.Channel, processingDelay time.Duration, log *slog.Logger) *PaymentService {
	return &PaymentService{
		repo:            repo,
		store:           store,
		ch:              ch,
		processingDelay: processingDelay,
		log:             log,
	}
}

func digitsOnly(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// ValidateCard формально проверяет данные карты. Реальная карта не
// списывается, поэтому проверяются только длины полей.
func (s *PaymentService) ValidateCard(card models.DummyCard) error {
	if len(digitsOnly(card.Number)) < 16 {
		return ErrInvalidCardNumber
	}
	if len(card.Expiry) < 5 {
		return ErrInvalidCardExpiry
	}
	if len(card.CVC) < 3 {
		return ErrInvalidCardCVC
	}
	return nil
}

// ActivateSubscription обрабатывает симулированный платёж и активирует
// подписку. Метод не возвращает ошибку: каждый сбой — недоступное
// хранилище, неизвестный план, отказ брокера — логируется, после чего
// активация всё равно завершается успехом. Единственная точка отказа,
// видимая пользователю, — формальная проверка карты, и она выполняется
// до вызова этого метода.
func (s *PaymentService) ActivateSubscription(ctx context.Context, userUID, email string, req models.DummyActivation) *ActivationResult {
	// Симуляция обращения к платёжному провайдеру.
	select {
	case <-time.After(s.processingDelay):
	case <-ctx.Done():
	}

	transactionID := "txn_" + uuid.New().String()
	now := time.Now()

	amount := s.planAmount(ctx, req.PlanID, req.BillingCycle)

	sub := models.UserSubscription{
		UserUID:            userUID,
		PlanID:             req.PlanID,
		Status:             models.SubscriptionStatusActive,
		BillingCycle:       req.BillingCycle,
		CurrentPeriodStart: now,
		CurrentPeriodEnd:   period.End(req.BillingCycle, now),
		AutoRenew:          true,
	}
	subscriptionID, err := s.repo.CreateSubscriptionRow(ctx, sub)
	if err != nil {
		s.log.Error("failed to create subscription row, activation continues",
			slog.String("user_uid", userUID), sl.Err(err))
	}

	if _, err := s.repo.SavePaymentRecord(ctx, models.PaymentRecord{
		UserUID:        userUID,
		SubscriptionID: subscriptionID,
		TransactionID:  transactionID,
		Amount:         amount,
		Currency:       "USD",
		Status:         models.PaymentStatusSucceeded,
		Description:    "Subscription activation: " + req.PlanID,
	}); err != nil {
		s.log.Error("failed to save payment record, activation continues",
			slog.String("user_uid", userUID), sl.Err(err))
	}

	// Локальное хранилище — источник истины для премиума.
	// Запись всегда успешна по контракту.
	s.store.Activate(userUID, req.PlanID, req.BillingCycle)

	s.publishActivationEvent(models.ActivationEvent{
		UserUID:       userUID,
		Email:         email,
		PlanID:        req.PlanID,
		BillingCycle:  req.BillingCycle,
		TransactionID: transactionID,
		Amount:        amount,
		ActivatedAt:   now,
	})

	s.log.Info("subscription activated",
		slog.String("user_uid", userUID),
		slog.String("plan_id", req.PlanID),
		slog.String("transaction_id", transactionID))

	return &ActivationResult{
		TransactionID: transactionID,
		PlanID:        req.PlanID,
		BillingCycle:  req.BillingCycle,
		Amount:        amount,
		ActivatedAt:   now,
	}
}

func (s *PaymentService) planAmount(ctx context.Context, planID, billingCycle string) int {
	plan, err := s.repo.GetPlan(ctx, planID)
	if err != nil {
		s.log.Warn("failed to load plan for amount, defaulting to zero",
			slog.String("plan_id", planID), sl.Err(err))
		return 0
	}
	if billingCycle == models.BillingCycleYearly {
		return plan.PriceYearly
	}
	return plan.PriceMonthly
}

func (s *PaymentService) publishActivationEvent(event models.ActivationEvent) {
	if s.ch == nil {
		return
	}
	err := rabbitmq.PublishMessage(s.ch,
		internalrabbitmq.ExchangeEntitlements,
		internalrabbitmq.RoutingKeyActivated,
		event)
	if err != nil {
		s.log.Error("failed to publish activation event", sl.Err(err))
	}
}

// AddPaymentMethod сохраняет способ оплаты пользователя.
func (s *PaymentService) AddPaymentMethod(ctx context.Context, userUID string, req models.DummyPaymentMethod) (string, error) {
	pm := models.PaymentMethod{
		UserUID:   userUID,
		Type:      req.Type,
		CardBrand: req.CardBrand,
		CardLast4: req.CardLast4,
		ExpMonth:  req.ExpMonth,
		ExpYear:   req.ExpYear,
		IsDefault: req.IsDefault,
	}
	return s.repo.CreatePaymentMethod(ctx, pm)
}

// ListPaymentMethods возвращает способы оплаты пользователя.
func (s *PaymentService) ListPaymentMethods(ctx context.Context, userUID string) ([]*models.PaymentMethod, error) {
	return s.repo.ListPaymentMethods(ctx, userUID)
}

// ListPaymentHistory возвращает историю платежей пользователя.
func (s *PaymentService) ListPaymentHistory(ctx context.Context, userUID string, limit, offset int) ([]*models.PaymentRecord, error) {
	return s.repo.ListPaymentHistory(ctx, userUID, limit, offset)
}
