// Package period содержит вспомогательные функции расчёта расчётных периодов
// подписки для разных циклов оплаты.
package period

import (
	"time"

	"github.com/fitpulse/fitpulse/internal/models"
)

// Длительности расчётных периодов. Месячный период считается
// фиксированными 30 днями, годовой — 365, как в активационном потоке.
const (
	MonthlyDuration = 30 * 24 * time.Hour
	YearlyDuration  = 365 * 24 * time.Hour
)

// End возвращает дату окончания расчётного периода, начатого в from,
// для указанного цикла оплаты. Неизвестный цикл трактуется как годовой:
// это запасная ветка активационного потока, ошибаться здесь нельзя.
func End(billingCycle string, from time.Time) time.Time {
	if billingCycle == models.BillingCycleMonthly {
		return from.Add(MonthlyDuration)
	}
	return from.Add(YearlyDuration)
}

// StartOfMonth возвращает начало календарного месяца для момента t.
// Используется при подсчёте месячного использования лимитированных функций.
func StartOfMonth(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
}
