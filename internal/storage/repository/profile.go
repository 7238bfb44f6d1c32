package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/fitpulse/fitpulse/internal/models"
)

// GetProfile возвращает анкету пользователя вместе с email из таблицы users.
func (s *Storage) GetProfile(ctx context.Context, userUID string) (*models.Profile, error) {
	const op = "storage.GetProfile"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT p.user_uid, p.name, u.email, p.age, p.height, p.weight,
			      p.fitness_level, p.goals, p.allergies, p.health_conditions,
			      p.medications, p.previous_injuries, p.preferred_workout_types,
			      p.available_equipment, p.bio, p.updated_at
			  FROM profiles p
			  JOIN users u ON u.uid = p.user_uid
			  WHERE p.user_uid = $1`
	var prof models.Profile
	var goals, allergies, conditions, medications, injuries, workoutTypes, equipment []byte
	row := s.DB.QueryRowContext(ctx, query, userUID)
	if err := row.Scan(&prof.UserUID, &prof.Name, &prof.Email, &prof.Age,
		&prof.Height, &prof.Weight, &prof.FitnessLevel, &goals, &allergies,
		&conditions, &medications, &injuries, &workoutTypes, &equipment,
		&prof.Bio, &prof.UpdatedAt); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	for _, pair := range []struct {
		raw []byte
		dst *[]string
	}{
		{goals, &prof.Goals},
		{allergies, &prof.Allergies},
		{conditions, &prof.HealthConditions},
		{medications, &prof.Medications},
		{injuries, &prof.PreviousInjuries},
		{workoutTypes, &prof.PreferredWorkoutTypes},
		{equipment, &prof.AvailableEquipment},
	} {
		if len(pair.raw) > 0 {
			if err := json.Unmarshal(pair.raw, pair.dst); err != nil {
				return nil, fmt.Errorf("%s: %w", op, err)
			}
		}
	}
	return &prof, nil
}

// UpsertProfile создаёт или обновляет анкету пользователя.
func (s *Storage) UpsertProfile(ctx context.Context, prof models.Profile) error {
	const op = "storage.UpsertProfile"
	select {
	case <-ctx.Done():
		return fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	lists := make([][]byte, 7)
	for i, src := range [][]string{
		prof.Goals, prof.Allergies, prof.HealthConditions, prof.Medications,
		prof.PreviousInjuries, prof.PreferredWorkoutTypes, prof.AvailableEquipment,
	} {
		raw, err := json.Marshal(src)
		if err != nil {
			return fmt.Errorf("%s: %w", op, err)
		}
		lists[i] = raw
	}

	query := `INSERT INTO profiles (user_uid, name, age, height, weight, fitness_level,
			      goals, allergies, health_conditions, medications, previous_injuries,
			      preferred_workout_types, available_equipment, bio, updated_at)
			  VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, NOW())
			  ON CONFLICT (user_uid) DO UPDATE SET
			      name = EXCLUDED.name,
			      age = EXCLUDED.age,
			      height = EXCLUDED.height,
			      weight = EXCLUDED.weight,
			      fitness_level = EXCLUDED.fitness_level,
			      goals = EXCLUDED.goals,
			      allergies = EXCLUDED.allergies,
			      health_conditions = EXCLUDED.health_conditions,
			      medications = EXCLUDED.medications,
			      previous_injuries = EXCLUDED.previous_injuries,
			      preferred_workout_types = EXCLUDED.preferred_workout_types,
			      available_equipment = EXCLUDED.available_equipment,
			      bio = EXCLUDED.bio,
			      updated_at = NOW()`
	_, err := s.DB.ExecContext(ctx, query,
		prof.UserUID, prof.Name, prof.Age, prof.Height, prof.Weight,
		prof.FitnessLevel, lists[0], lists[1], lists[2], lists[3], lists[4],
		lists[5], lists[6], prof.Bio)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}
