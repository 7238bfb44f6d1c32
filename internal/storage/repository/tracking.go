package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/fitpulse/fitpulse/internal/models"
)

// CreateWorkout вставляет новую запись тренировки и возвращает её ID.
func (s *Storage) CreateWorkout(ctx context.Context, w models.Workout) (int, error) {
	const op = "storage.CreateWorkout"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	exercises, err := json.Marshal(w.Exercises)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}

	query := `INSERT INTO workouts (user_uid, name, type, duration, calories_burned,
			      exercises, notes, date)
			  VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
			  RETURNING id`
	var newID int
	err = s.DB.QueryRowContext(ctx, query,
		w.UserUID, w.Name, w.Type, w.Duration, w.CaloriesBurned,
		exercises, w.Notes, w.Date).Scan(&newID)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return newID, nil
}

// ListWorkouts возвращает список тренировок пользователя с пагинацией.
func (s *Storage) ListWorkouts(ctx context.Context, userUID string, limit, offset int) ([]*models.Workout, error) {
	const op = "storage.ListWorkouts"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT id, user_uid, name, type, duration, calories_burned,
			      exercises, notes, date, created_at
			  FROM workouts
			  WHERE user_uid = $1
			  ORDER BY date DESC, id DESC
			  LIMIT $2 OFFSET $3`
	rows, err := s.DB.QueryContext(ctx, query, userUID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var result []*models.Workout
	for rows.Next() {
		var item models.Workout
		var exercises []byte
		if err := rows.Scan(&item.ID, &item.UserUID, &item.Name, &item.Type,
			&item.Duration, &item.CaloriesBurned, &exercises, &item.Notes,
			&item.Date, &item.CreatedAt); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		if len(exercises) > 0 {
			if err := json.Unmarshal(exercises, &item.Exercises); err != nil {
				return nil, fmt.Errorf("%s: %w", op, err)
			}
		}
		result = append(result, &item)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

// CountWorkoutsSince подсчитывает тренировки пользователя начиная с указанной даты.
func (s *Storage) CountWorkoutsSince(ctx context.Context, userUID string, since time.Time) (int, error) {
	const op = "storage.CountWorkoutsSince"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	var count int
	err := s.DB.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM workouts WHERE user_uid = $1 AND created_at >= $2`,
		userUID, since).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return count, nil
}

// CreateSleepLog вставляет новую запись сна и возвращает её ID.
func (s *Storage) CreateSleepLog(ctx context.Context, l models.SleepLog) (int, error) {
	const op = "storage.CreateSleepLog"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `INSERT INTO sleep_logs (user_uid, date, bedtime, wakeup_time, duration,
			      quality, notes)
			  VALUES ($1, $2, $3, $4, $5, $6, $7)
			  RETURNING id`
	var newID int
	err := s.DB.QueryRowContext(ctx, query,
		l.UserUID, l.Date, l.Bedtime, l.WakeupTime, l.Duration,
		l.Quality, l.Notes).Scan(&newID)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return newID, nil
}

// ListSleepLogs возвращает список записей сна пользователя с пагинацией.
func (s *Storage) ListSleepLogs(ctx context.Context, userUID string, limit, offset int) ([]*models.SleepLog, error) {
	const op = "storage.ListSleepLogs"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT id, user_uid, date, bedtime, wakeup_time, duration, quality,
			      notes, created_at
			  FROM sleep_logs
			  WHERE user_uid = $1
			  ORDER BY date DESC, id DESC
			  LIMIT $2 OFFSET $3`
	rows, err := s.DB.QueryContext(ctx, query, userUID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var result []*models.SleepLog
	for rows.Next() {
		var item models.SleepLog
		if err := rows.Scan(&item.ID, &item.UserUID, &item.Date, &item.Bedtime,
			&item.WakeupTime, &item.Duration, &item.Quality, &item.Notes,
			&item.CreatedAt); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, &item)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

// CreateMoodLog вставляет новую запись настроения и возвращает её ID.
func (s *Storage) CreateMoodLog(ctx context.Context, l models.MoodLog) (int, error) {
	const op = "storage.CreateMoodLog"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `INSERT INTO mood_logs (user_uid, date, mood, energy, stress, anxiety,
			      happiness, weather, notes)
			  VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
			  RETURNING id`
	var newID int
	err := s.DB.QueryRowContext(ctx, query,
		l.UserUID, l.Date, l.Mood, l.Energy, l.Stress, l.Anxiety,
		l.Happiness, l.Weather, l.Notes).Scan(&newID)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return newID, nil
}

// ListMoodLogs возвращает список записей настроения пользователя с пагинацией.
func (s *Storage) ListMoodLogs(ctx context.Context, userUID string, limit, offset int) ([]*models.MoodLog, error) {
	const op = "storage.ListMoodLogs"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT id, user_uid, date, mood, energy, stress, anxiety, happiness,
			      weather, notes, created_at
			  FROM mood_logs
			  WHERE user_uid = $1
			  ORDER BY date DESC, id DESC
			  LIMIT $2 OFFSET $3`
	rows, err := s.DB.QueryContext(ctx, query, userUID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var result []*models.MoodLog
	for rows.Next() {
		var item models.MoodLog
		if err := rows.Scan(&item.ID, &item.UserUID, &item.Date, &item.Mood,
			&item.Energy, &item.Stress, &item.Anxiety, &item.Happiness,
			&item.Weather, &item.Notes, &item.CreatedAt); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, &item)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

// CreateNutritionLog вставляет новую запись питания и возвращает её ID.
func (s *Storage) CreateNutritionLog(ctx context.Context, l models.NutritionLog) (int, error) {
	const op = "storage.CreateNutritionLog"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `INSERT INTO nutrition_logs (user_uid, date, meal_type, food_name,
			      calories, protein, carbs, fat, fiber)
			  VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
			  RETURNING id`
	var newID int
	err := s.DB.QueryRowContext(ctx, query,
		l.UserUID, l.Date, l.MealType, l.FoodName, l.Calories,
		l.Protein, l.Carbs, l.Fat, l.Fiber).Scan(&newID)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return newID, nil
}

// ListNutritionLogs возвращает список записей питания пользователя с пагинацией.
func (s *Storage) ListNutritionLogs(ctx context.Context, userUID string, limit, offset int) ([]*models.NutritionLog, error) {
	const op = "storage.ListNutritionLogs"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT id, user_uid, date, meal_type, food_name, calories, protein,
			      carbs, fat, fiber, created_at
			  FROM nutrition_logs
			  WHERE user_uid = $1
			  ORDER BY date DESC, id DESC
			  LIMIT $2 OFFSET $3`
	rows, err := s.DB.QueryContext(ctx, query, userUID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var result []*models.NutritionLog
	for rows.Next() {
		var item models.NutritionLog
		if err := rows.Scan(&item.ID, &item.UserUID, &item.Date, &item.MealType,
			&item.FoodName, &item.Calories, &item.Protein, &item.Carbs,
			&item.Fat, &item.Fiber, &item.CreatedAt); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, &item)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

// CountNutritionLogsSince подсчитывает записи питания пользователя начиная с указанной даты.
func (s *Storage) CountNutritionLogsSince(ctx context.Context, userUID string, since time.Time) (int, error) {
	const op = "storage.CountNutritionLogsSince"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	var count int
	err := s.DB.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM nutrition_logs WHERE user_uid = $1 AND created_at >= $2`,
		userUID, since).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return count, nil
}

// GetWeeklyStats собирает журналы пользователя за последние семь дней.
func (s *Storage) GetWeeklyStats(ctx context.Context, userUID string) (*models.WeeklyStats, error) {
	const op = "storage.GetWeeklyStats"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	weekAgo := time.Now().AddDate(0, 0, -7)
	stats := &models.WeeklyStats{}

	workouts, err := s.listWorkoutsSince(ctx, userUID, weekAgo)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	stats.Workouts = workouts

	sleepLogs, err := s.listSleepLogsSince(ctx, userUID, weekAgo)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	stats.SleepLogs = sleepLogs

	moodLogs, err := s.listMoodLogsSince(ctx, userUID, weekAgo)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	stats.MoodLogs = moodLogs

	nutritionLogs, err := s.listNutritionLogsSince(ctx, userUID, weekAgo)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	stats.NutritionLogs = nutritionLogs

	return stats, nil
}

func (s *Storage) listWorkoutsSince(ctx context.Context, userUID string, since time.Time) ([]*models.Workout, error) {
	query := `SELECT id, user_uid, name, type, duration, calories_burned,
			      exercises, notes, date, created_at
			  FROM workouts
			  WHERE user_uid = $1 AND date >= $2
			  ORDER BY date DESC`
	rows, err := s.DB.QueryContext(ctx, query, userUID, since)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = rows.Close()
	}()

	var result []*models.Workout
	for rows.Next() {
		var item models.Workout
		var exercises []byte
		if err := rows.Scan(&item.ID, &item.UserUID, &item.Name, &item.Type,
			&item.Duration, &item.CaloriesBurned, &exercises, &item.Notes,
			&item.Date, &item.CreatedAt); err != nil {
			return nil, err
		}
		if len(exercises) > 0 {
			if err := json.Unmarshal(exercises, &item.Exercises); err != nil {
				return nil, err
			}
		}
		result = append(result, &item)
	}
	return result, rows.Err()
}

func (s *Storage) listSleepLogsSince(ctx context.Context, userUID string, since time.Time) ([]*models.SleepLog, error) {
	query := `SELECT id, user_uid, date, bedtime, wakeup_time, duration, quality,
			      notes, created_at
			  FROM sleep_logs
			  WHERE user_uid = $1 AND date >= $2
			  ORDER BY date DESC`
	rows, err := s.DB.QueryContext(ctx, query, userUID, since)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = rows.Close()
	}()

	var result []*models.SleepLog
	for rows.Next() {
		var item models.SleepLog
		if err := rows.Scan(&item.ID, &item.UserUID, &item.Date, &item.Bedtime,
			&item.WakeupTime, &item.Duration, &item.Quality, &item.Notes,
			&item.CreatedAt); err != nil {
			return nil, err
		}
		result = append(result, &item)
	}
	return result, rows.Err()
}

func (s *Storage) listMoodLogsSince(ctx context.Context, userUID string, since time.Time) ([]*models.MoodLog, error) {
	query := `SELECT id, user_uid, date, mood, energy, stress, anxiety, happiness,
			      weather, notes, created_at
			  FROM mood_logs
			  WHERE user_uid = $1 AND date >= $2
			  ORDER BY date DESC`
	rows, err := s.DB.QueryContext(ctx, query, userUID, since)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = rows.Close()
	}()

	var result []*models.MoodLog
	for rows.Next() {
		var item models.MoodLog
		if err := rows.Scan(&item.ID, &item.UserUID, &item.Date, &item.Mood,
			&item.Energy, &item.Stress, &item.Anxiety, &item.Happiness,
			&item.Weather, &item.Notes, &item.CreatedAt); err != nil {
			return nil, err
		}
		result = append(result, &item)
	}
	return result, rows.Err()
}

func (s *Storage) listNutritionLogsSince(ctx context.Context, userUID string, since time.Time) ([]*models.NutritionLog, error) {
	query := `SELECT id, user_uid, date, meal_type, food_name, calories, protein,
			      carbs, fat, fiber, created_at
			  FROM nutrition_logs
			  WHERE user_uid = $1 AND date >= $2
			  ORDER BY date DESC`
	rows, err := s.DB.QueryContext(ctx, query, userUID, since)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = rows.Close()
	}()

	var result []*models.NutritionLog
	for rows.Next() {
		var item models.NutritionLog
		if err := rows.Scan(&item.ID, &item.UserUID, &item.Date, &item.MealType,
			&item.FoodName, &item.Calories, &item.Protein, &item.Carbs,
			&item.Fat, &item.Fiber, &item.CreatedAt); err != nil {
			return nil, err
		}
		result = append(result, &item)
	}
	return result, rows.Err()
}
