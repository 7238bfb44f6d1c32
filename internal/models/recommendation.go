package models

import "time"

// Источники рекомендаций тренировок.
const (
	RecommendationSourceLLM      = "llm"
	RecommendationSourceFallback = "fallback"
)

// RecommendedExercise — упражнение в составе рекомендации тренировки.
type RecommendedExercise struct {
	Name          string   `json:"name"`
	Sets          int      `json:"sets"`
	Reps          string   `json:"reps"`
	RestTime      int      `json:"rest_time"` // секунды
	Instructions  []string `json:"instructions"`
	Modifications []string `json:"modifications"`
	TargetMuscles []string `json:"target_muscles"`
}

// WorkoutRecommendation — персональная рекомендация тренировки,
// сгенерированная LLM-провайдером либо взятая из статического запасного набора.
type WorkoutRecommendation struct {
	ID                 string                `json:"id"`
	UserUID            string                `json:"user_uid"`
	Name               string                `json:"name"`
	Description        string                `json:"description"`
	Duration           int                   `json:"duration"` // минуты
	Difficulty         string                `json:"difficulty"`
	Exercises          []RecommendedExercise `json:"exercises"`
	Cautions           []string              `json:"cautions"`
	Benefits           []string              `json:"benefits"`
	EstimatedCalories  int                   `json:"estimated_calories"`
	TargetMuscleGroups []string              `json:"target_muscle_groups"`
	Reasoning          string                `json:"reasoning"`
	Source             string                `json:"source"`
	CreatedAt          time.Time             `json:"created_at"`
}

// DummyRecommendationRequest — входные данные запроса генерации рекомендации.
// Текущее состояние опционально, шкалы от 1 до 10.
type DummyRecommendationRequest struct {
	Mood        int `json:"mood" validate:"omitempty,gte=1,lte=10"`
	EnergyLevel int `json:"energy_level" validate:"omitempty,gte=1,lte=10"`
	StressLevel int `json:"stress_level" validate:"omitempty,gte=1,lte=10"`
}
