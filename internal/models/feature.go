// Package models содержит доменные структуры приложения: пользователей,
// подписки, каталог функций, журналы тренировок и прочие типы,
// используемые в бизнес-логике и хранилище.
package models

// UnlimitedUsage обозначает отсутствие лимита использования функции.
const UnlimitedUsage = -1

// Feature перечисляет известные функции приложения, доступ к которым
// регулируется подпиской. Неизвестные ключи разрешены на уровне типа,
// но получают лимит 0 (запрет по умолчанию).
type Feature string

// Известные функции приложения.
const (
	FeatureBasicTracking     Feature = "basic_tracking"
	FeatureMoodTracking      Feature = "mood_tracking"
	FeatureSleepTracking     Feature = "sleep_tracking"
	FeatureWorkoutLogging    Feature = "workout_logging"
	FeatureNutritionLogging  Feature = "nutrition_logging"
	FeatureAIRecommendations Feature = "ai_recommendations"
	FeatureGoalSetting       Feature = "goal_setting"
)

// AlwaysFree сообщает, доступна ли функция безусловно на бесплатном тарифе.
func (f Feature) AlwaysFree() bool {
	switch f {
	case FeatureBasicTracking, FeatureMoodTracking, FeatureSleepTracking:
		return true
	default:
		return false
	}
}

// FreeLimit возвращает месячный лимит использования функции на бесплатном
// тарифе. Для неизвестных функций возвращает 0.
func (f Feature) FreeLimit() int {
	switch f {
	case FeatureWorkoutLogging:
		return 10
	case FeatureNutritionLogging:
		return 50
	case FeatureAIRecommendations:
		return 2
	case FeatureGoalSetting:
		return 3
	default:
		return 0
	}
}

// Known сообщает, входит ли функция в каталог известных функций.
func (f Feature) Known() bool {
	return f.AlwaysFree() || f.FreeLimit() > 0
}

// AccessDecision — результат вычисления доступа к функции.
// Limit равен UnlimitedUsage (-1) для безлимитного доступа.
type AccessDecision struct {
	HasAccess bool `json:"has_access"`
	Limit     int  `json:"limit"`
}
