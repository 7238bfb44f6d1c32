package models

import "time"

// Profile — анкета пользователя с данными о здоровье и предпочтениях.
// Списки хранятся в реляционном хранилище как jsonb.
type Profile struct {
	UserUID               string    `json:"user_uid"`
	Name                  string    `json:"name"`
	Email                 string    `json:"email"`
	Age                   int       `json:"age,omitempty"`
	Height                int       `json:"height,omitempty"` // сантиметры
	Weight                int       `json:"weight,omitempty"` // килограммы
	FitnessLevel          string    `json:"fitness_level"`
	Goals                 []string  `json:"goals"`
	Allergies             []string  `json:"allergies"`
	HealthConditions      []string  `json:"health_conditions"`
	Medications           []string  `json:"medications"`
	PreviousInjuries      []string  `json:"previous_injuries"`
	PreferredWorkoutTypes []string  `json:"preferred_workout_types"`
	AvailableEquipment    []string  `json:"available_equipment"`
	Bio                   string    `json:"bio"`
	UpdatedAt             time.Time `json:"updated_at"`
}

// DummyProfile — входные данные запроса обновления анкеты.
type DummyProfile struct {
	Name                  string   `json:"name" validate:"required"`
	Age                   int      `json:"age" validate:"gte=0,lte=130"`
	Height                int      `json:"height" validate:"gte=0"`
	Weight                int      `json:"weight" validate:"gte=0"`
	FitnessLevel          string   `json:"fitness_level" validate:"required,oneof=beginner intermediate advanced"`
	Goals                 []string `json:"goals"`
	Allergies             []string `json:"allergies"`
	HealthConditions      []string `json:"health_conditions"`
	Medications           []string `json:"medications"`
	PreviousInjuries      []string `json:"previous_injuries"`
	PreferredWorkoutTypes []string `json:"preferred_workout_types"`
	AvailableEquipment    []string `json:"available_equipment"`
	Bio                   string   `json:"bio"`
}
