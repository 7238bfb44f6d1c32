package entitlement

import (
	"context"
	"errors"
)

// ErrNotConfigured возвращается заглушкой NoopLookup вместо обращения
// к реляционному хранилищу, когда оно не сконфигурировано.
var ErrNotConfigured = errors.New("remote subscription lookup is not configured")

// RemoteLookup описывает удалённую проверку доступа к функциям
// на стороне реляционного хранилища.
type RemoteLookup interface {
	// HasFeatureAccess сообщает, доступна ли пользователю функция.
	HasFeatureAccess(ctx context.Context, userUID, featureName string) (bool, error)
	// FeatureLimit возвращает лимит использования функции. -1 означает безлимит.
	FeatureLimit(ctx context.Context, userUID, featureName string) (int, error)
}

// NoopLookup — null-объект для работы без реляционного хранилища.
// Все методы возвращают ErrNotConfigured, который вычислитель доступа
// обрабатывает как любую другую ошибку удалённой проверки.
type NoopLookup struct{}

// HasFeatureAccess всегда возвращает ErrNotConfigured.
func (NoopLookup) HasFeatureAccess(_ context.Context, _, _ string) (bool, error) {
	return false, ErrNotConfigured
}

// FeatureLimit всегда возвращает ErrNotConfigured.
func (NoopLookup) FeatureLimit(_ context.Context, _, _ string) (int, error) {
	return 0, ErrNotConfigured
}
