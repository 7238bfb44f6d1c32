package entitlement

import (
	"context"
	"log/slog"

	"github.com/fitpulse/fitpulse/internal/lib/sl"
	"github.com/fitpulse/fitpulse/internal/models"
)

// Evaluator вычисляет решение о доступе пользователя к функции приложения.
// Порядок проверки: локальный признак премиума, затем каталог функций,
// затем удалённая проверка. Ошибки удалённой проверки не блокируют
// пользователя: доступ открывается с лимитом 0.
type Evaluator struct {
	store  *Store
	lookup RemoteLookup
	log    *slog.Logger
}

// NewEvaluator создает новый экземпляр Evaluator.
func NewEvaluator(store *Store, lookup RemoteLookup, log *slog.Logger) *Evaluator {
	return &Evaluator{
		store:  store,
		lookup: lookup,
		log:    log,
	}
}

// Evaluate возвращает решение о доступе к функции. Метод идемпотентен
// и безопасен для конкурентных вызовов: состояние не изменяется.
func (e *Evaluator) Evaluate(ctx context.Context, userUID string, feature models.Feature) models.AccessDecision {
	if e.store.IsPremiumUser(userUID) {
		return models.AccessDecision{HasAccess: true, Limit: models.UnlimitedUsage}
	}

	if feature.AlwaysFree() {
		return models.AccessDecision{HasAccess: true, Limit: models.UnlimitedUsage}
	}

	if limit := feature.FreeLimit(); limit > 0 {
		return models.AccessDecision{HasAccess: true, Limit: limit}
	}

	// Функция не из каталога: решение за реляционным хранилищем.
	hasAccess, err := e.lookup.HasFeatureAccess(ctx, userUID, string(feature))
	if err != nil {
		e.log.Warn("remote access check failed, failing open",
			slog.String("user_uid", userUID),
			slog.String("feature", string(feature)),
			sl.Err(err))
		return models.AccessDecision{HasAccess: true, Limit: 0}
	}

	limit, err := e.lookup.FeatureLimit(ctx, userUID, string(feature))
	if err != nil {
		e.log.Warn("remote limit check failed, failing open",
			slog.String("user_uid", userUID),
			slog.String("feature", string(feature)),
			sl.Err(err))
		return models.AccessDecision{HasAccess: true, Limit: 0}
	}

	return models.AccessDecision{HasAccess: hasAccess, Limit: limit}
}
