// Package entitlement реализует локальное хранилище признаков подписки
// и вычисление доступа к функциям приложения. Локальное KV-хранилище —
// источник истины, когда реляционное хранилище недоступно или не
// сконфигурировано.
package entitlement

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/fitpulse/fitpulse/internal/lib/period"
	"github.com/fitpulse/fitpulse/internal/lib/sl"
	"github.com/fitpulse/fitpulse/internal/models"
)

// KV описывает методы локального key-value хранилища.
type KV interface {
	// Get пытается получить значение по ключу.
	Get(key string, result any) (bool, error)
	// Set сохраняет значение с временем жизни. Нулевое значение — без срока.
	Set(key string, value any, expiration time.Duration) error
	// Delete удаляет значение по ключу.
	Delete(key string) error
}

// Store хранит признак премиума и запись подписки пользователя
// двумя независимыми ключами: premium_<uid> и subscription_<uid>.
// Ключи пишутся вместе при активации, но читаются независимо,
// транзакционных гарантий между ними нет.
type Store struct {
	kv  KV
	log *slog.Logger
}

// NewStore создает новый экземпляр Store.
func NewStore(kv KV, log *slog.Logger) *Store {
	return &Store{kv: kv, log: log}
}

func premiumKey(userUID string) string {
	return "premium_" + userUID
}

func subscriptionKey(userUID string) string {
	return "subscription_" + userUID
}

// IsPremiumUser сообщает, отмечен ли пользователь как премиум в локальном
// хранилище. Любая ошибка чтения трактуется как отсутствие премиума.
func (s *Store) IsPremiumUser(userUID string) bool {
	var flag string
	found, err := s.kv.Get(premiumKey(userUID), &flag)
	if err != nil {
		s.log.Warn("failed to read premium flag, treating as not premium",
			slog.String("user_uid", userUID), sl.Err(err))
		return false
	}
	return found && flag == "true"
}

// GetSubscription возвращает локальную запись подписки пользователя.
// Возвращает nil без ошибки, если записи нет или её не удалось прочитать.
func (s *Store) GetSubscription(userUID string) *models.StoredSubscription {
	var sub models.StoredSubscription
	found, err := s.kv.Get(subscriptionKey(userUID), &sub)
	if err != nil {
		s.log.Warn("failed to read stored subscription",
			slog.String("user_uid", userUID), sl.Err(err))
		return nil
	}
	if !found {
		return nil
	}
	return &sub
}

// Activate записывает запись подписки и признак премиума в локальное
// хранилище. Всегда сообщает об успехе: при ошибке записи выполняется
// одна повторная попытка с сокращённым запасным содержимым, и даже её
// неудача не меняет результат. Отказ локального хранилища не должен
// блокировать оплатившего пользователя.
func (s *Store) Activate(userUID, planID, billingCycle string) {
	now := time.Now()
	sub := models.StoredSubscription{
		UserUID:            userUID,
		PlanID:             planID,
		Status:             models.SubscriptionStatusActive,
		BillingCycle:       billingCycle,
		CurrentPeriodStart: now,
		CurrentPeriodEnd:   period.End(billingCycle, now),
		AutoRenew:          true,
		CreatedAt:          now,
	}

	if err := s.kv.Set(subscriptionKey(userUID), sub, 0); err != nil {
		s.log.Error("failed to store subscription record, retrying with fallback payload",
			slog.String("user_uid", userUID), sl.Err(err))
		fallback := models.StoredSubscription{
			UserUID:          userUID,
			PlanID:           planID,
			Status:           models.SubscriptionStatusActive,
			CurrentPeriodEnd: now.Add(period.YearlyDuration),
			CreatedAt:        now,
		}
		if err := s.kv.Set(subscriptionKey(userUID), fallback, 0); err != nil {
			s.log.Error("fallback subscription write failed, activation still reported as success",
				slog.String("user_uid", userUID), sl.Err(err))
		}
	}

	if err := s.kv.Set(premiumKey(userUID), "true", 0); err != nil {
		s.log.Error("failed to store premium flag, activation still reported as success",
			slog.String("user_uid", userUID), sl.Err(err))
	}

	s.log.Info("entitlement activated",
		slog.String("user_uid", userUID),
		slog.String("plan_id", planID),
		slog.String("billing_cycle", billingCycle))
}

// Clear удаляет оба ключа пользователя из локального хранилища.
// Отмена подписки намеренно НЕ вызывает Clear: локальный премиум
// сохраняется до конца оплаченного периода.
func (s *Store) Clear(userUID string) error {
	const op = "entitlement.Clear"
	if err := s.kv.Delete(subscriptionKey(userUID)); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if err := s.kv.Delete(premiumKey(userUID)); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}
