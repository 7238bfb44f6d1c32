package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/fitpulse/fitpulse/internal/models"
)

// SaveRecommendation сохраняет сгенерированную рекомендацию.
func (s *Storage) SaveRecommendation(ctx context.Context, rec models.WorkoutRecommendation) error {
	const op = "storage.SaveRecommendation"
	select {
	case <-ctx.Done():
		return fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	payload, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	query := `INSERT INTO workout_recommendations (id, user_uid, name, source, payload)
			  VALUES ($1, $2, $3, $4, $5)`
	_, err = s.DB.ExecContext(ctx, query,
		rec.ID, rec.UserUID, rec.Name, rec.Source, payload)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// CountRecommendationsSince подсчитывает рекомендации пользователя начиная с указанной даты.
func (s *Storage) CountRecommendationsSince(ctx context.Context, userUID string, since time.Time) (int, error) {
	const op = "storage.CountRecommendationsSince"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	var count int
	err := s.DB.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM workout_recommendations WHERE user_uid = $1 AND created_at >= $2`,
		userUID, since).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return count, nil
}
