// Package usage вычисляет состояние отображения лимитированной функции
// по текущему использованию и лимиту из решения о доступе.
package usage

import "github.com/fitpulse/fitpulse/internal/models"

// DefaultWarningThreshold — доля лимита, после которой показывается предупреждение.
const DefaultWarningThreshold = 0.8

// Состояния отображения лимитированной функции.
const (
	StateUnlimited = "unlimited"
	StateNormal    = "normal"
	StateWarning   = "warning"
	StateBlocked   = "blocked"
)

// RenderState описывает, как отображать лимитированную функцию:
// пропустить без изменений, показать предупреждение или заблокировать
// с предложением перейти на премиум.
type RenderState struct {
	State       string  `json:"state"`
	PercentUsed float64 `json:"percent_used"`
	Remaining   int     `json:"remaining"`
}

// Presenter вычисляет состояние отображения.
type Presenter struct {
	warningThreshold float64
}

// NewPresenter создает Presenter с порогом предупреждения по умолчанию.
func NewPresenter() *Presenter {
	return &Presenter{warningThreshold: DefaultWarningThreshold}
}

// NewPresenterWithThreshold создает Presenter с заданным порогом предупреждения.
func NewPresenterWithThreshold(threshold float64) *Presenter {
	return &Presenter{warningThreshold: threshold}
}

// Present возвращает состояние отображения для лимита и текущего использования.
// Лимит models.UnlimitedUsage (-1) означает безлимит. Нулевой лимит при
// нулевом использовании трактуется как Normal, при ненулевом — как Blocked.
func (p *Presenter) Present(limit, currentUsage int) RenderState {
	if limit == models.UnlimitedUsage {
		return RenderState{State: StateUnlimited, Remaining: models.UnlimitedUsage}
	}

	if limit <= 0 {
		if currentUsage > 0 {
			return RenderState{State: StateBlocked, PercentUsed: 1}
		}
		return RenderState{State: StateNormal}
	}

	percent := float64(currentUsage) / float64(limit)
	if percent > 1 {
		percent = 1
	}

	if currentUsage >= limit {
		return RenderState{State: StateBlocked, PercentUsed: percent}
	}

	remaining := limit - currentUsage
	if percent >= p.warningThreshold {
		return RenderState{State: StateWarning, PercentUsed: percent, Remaining: remaining}
	}
	return RenderState{State: StateNormal, PercentUsed: percent, Remaining: remaining}
}
