package repository

import (
	"context"
	"fmt"

	"github.com/fitpulse/fitpulse/internal/models"
)

// CreateGoal вставляет новую цель и возвращает её ID.
func (s *Storage) CreateGoal(ctx context.Context, g models.Goal) (string, error) {
	const op = "storage.CreateGoal"
	select {
	case <-ctx.Done():
		return "", fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `INSERT INTO goals (user_uid, title, description, category, target_value,
			      current_value, unit, deadline, status)
			  VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
			  RETURNING id`
	var newID string
	err := s.DB.QueryRowContext(ctx, query,
		g.UserUID, g.Title, g.Description, g.Category, g.TargetValue,
		g.CurrentValue, g.Unit, g.Deadline, g.Status).Scan(&newID)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	return newID, nil
}

// ListGoals возвращает список целей пользователя.
func (s *Storage) ListGoals(ctx context.Context, userUID string) ([]*models.Goal, error) {
	const op = "storage.ListGoals"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT id, user_uid, title, description, category, target_value,
			      current_value, unit, deadline, status, created_at, updated_at
			  FROM goals
			  WHERE user_uid = $1
			  ORDER BY created_at DESC`
	rows, err := s.DB.QueryContext(ctx, query, userUID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var result []*models.Goal
	for rows.Next() {
		var item models.Goal
		if err := rows.Scan(&item.ID, &item.UserUID, &item.Title, &item.Description,
			&item.Category, &item.TargetValue, &item.CurrentValue, &item.Unit,
			&item.Deadline, &item.Status, &item.CreatedAt, &item.UpdatedAt); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, &item)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

// UpdateGoal обновляет цель пользователя и возвращает количество изменённых строк.
func (s *Storage) UpdateGoal(ctx context.Context, g models.Goal) (int, error) {
	const op = "storage.UpdateGoal"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `UPDATE goals
			  SET title = $1, description = $2, category = $3, target_value = $4,
			      current_value = $5, unit = $6, deadline = $7, status = $8,
			      updated_at = NOW()
			  WHERE id = $9 AND user_uid = $10`
	result, err := s.DB.ExecContext(ctx, query,
		g.Title, g.Description, g.Category, g.TargetValue,
		g.CurrentValue, g.Unit, g.Deadline, g.Status, g.ID, g.UserUID)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return int(rowsAffected), nil
}

// RemoveGoal удаляет цель пользователя и возвращает количество удалённых строк.
func (s *Storage) RemoveGoal(ctx context.Context, goalID, userUID string) (int, error) {
	const op = "storage.RemoveGoal"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `DELETE FROM goals WHERE id = $1 AND user_uid = $2`
	result, err := s.DB.ExecContext(ctx, query, goalID, userUID)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return int(rowsAffected), nil
}

// CountActiveGoals подсчитывает активные цели пользователя.
func (s *Storage) CountActiveGoals(ctx context.Context, userUID string) (int, error) {
	const op = "storage.CountActiveGoals"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	var count int
	err := s.DB.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM goals WHERE user_uid = $1 AND status = 'active'`,
		userUID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return count, nil
}
