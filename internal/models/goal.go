package models

import "time"

// Статусы цели.
const (
	GoalStatusActive    = "active"
	GoalStatusCompleted = "completed"
	GoalStatusAbandoned = "abandoned"
)

// Goal — цель пользователя (похудение, дистанция, количество тренировок и т.п.).
type Goal struct {
	ID           string     `json:"id"`
	UserUID      string     `json:"user_uid"`
	Title        string     `json:"title"`
	Description  string     `json:"description"`
	Category     string     `json:"category"`
	TargetValue  float64    `json:"target_value"`
	CurrentValue float64    `json:"current_value"`
	Unit         string     `json:"unit"`
	Deadline     *time.Time `json:"deadline,omitempty"`
	Status       string     `json:"status"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

// DummyGoal — входные данные запроса создания или обновления цели.
type DummyGoal struct {
	Title        string  `json:"title" validate:"required"`
	Description  string  `json:"description"`
	Category     string  `json:"category" validate:"required"`
	TargetValue  float64 `json:"target_value" validate:"required,gt=0"`
	CurrentValue float64 `json:"current_value" validate:"gte=0"`
	Unit         string  `json:"unit" validate:"required"`
	Deadline     string  `json:"deadline"` // 2006-01-02, опционально
}
