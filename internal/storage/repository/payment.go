package repository

import (
	"context"
	"fmt"

	"github.com/fitpulse/fitpulse/internal/models"
)

// CreatePaymentMethod сохраняет новый способ оплаты и возвращает его ID.
// Если способ отмечен как основной, признак снимается с остальных.
func (s *Storage) CreatePaymentMethod(ctx context.Context, pm models.PaymentMethod) (string, error) {
	const op = "storage.CreatePaymentMethod"
	select {
	case <-ctx.Done():
		return "", fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	if pm.IsDefault {
		_, err = tx.ExecContext(ctx,
			`UPDATE payment_methods SET is_default = false WHERE user_uid = $1`,
			pm.UserUID)
		if err != nil {
			return "", fmt.Errorf("%s: %w", op, err)
		}
	}

	var newID string
	err = tx.QueryRowContext(ctx,
		`INSERT INTO payment_methods (user_uid, type, card_brand, card_last4,
		     card_exp_month, card_exp_year, is_default, is_active)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, true)
		 RETURNING id`,
		pm.UserUID, pm.Type, pm.CardBrand, pm.CardLast4,
		pm.ExpMonth, pm.ExpYear, pm.IsDefault).Scan(&newID)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}

	if err = tx.Commit(); err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	return newID, nil
}

// ListPaymentMethods возвращает список активных способов оплаты пользователя.
func (s *Storage) ListPaymentMethods(ctx context.Context, userUID string) ([]*models.PaymentMethod, error) {
	const op = "storage.ListPaymentMethods"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT id, user_uid, type, card_brand, card_last4, card_exp_month,
			      card_exp_year, is_default, is_active, created_at
			  FROM payment_methods
			  WHERE user_uid = $1 AND is_active = true
			  ORDER BY is_default DESC, created_at DESC`
	rows, err := s.DB.QueryContext(ctx, query, userUID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var result []*models.PaymentMethod
	for rows.Next() {
		var pm models.PaymentMethod
		if err := rows.Scan(&pm.ID, &pm.UserUID, &pm.Type, &pm.CardBrand,
			&pm.CardLast4, &pm.ExpMonth, &pm.ExpYear, &pm.IsDefault,
			&pm.IsActive, &pm.CreatedAt); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, &pm)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

// SavePaymentRecord сохраняет запись в истории платежей и возвращает её ID.
func (s *Storage) SavePaymentRecord(ctx context.Context, rec models.PaymentRecord) (string, error) {
	const op = "storage.SavePaymentRecord"
	select {
	case <-ctx.Done():
		return "", fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `INSERT INTO payment_history (user_uid, subscription_id, transaction_id,
			      amount, currency, status, description, processed_at)
			  VALUES ($1, NULLIF($2, ''), $3, $4, $5, $6, $7, NOW())
			  RETURNING id`
	var newID string
	err := s.DB.QueryRowContext(ctx, query,
		rec.UserUID, rec.SubscriptionID, rec.TransactionID, rec.Amount,
		rec.Currency, rec.Status, rec.Description).Scan(&newID)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	return newID, nil
}

// ListPaymentHistory возвращает историю платежей пользователя с пагинацией.
func (s *Storage) ListPaymentHistory(ctx context.Context, userUID string, limit, offset int) ([]*models.PaymentRecord, error) {
	const op = "storage.ListPaymentHistory"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT id, user_uid, COALESCE(subscription_id::text, ''), transaction_id,
			      amount, currency, status, description, processed_at
			  FROM payment_history
			  WHERE user_uid = $1
			  ORDER BY processed_at DESC
			  LIMIT $2 OFFSET $3`
	rows, err := s.DB.QueryContext(ctx, query, userUID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var result []*models.PaymentRecord
	for rows.Next() {
		var rec models.PaymentRecord
		if err := rows.Scan(&rec.ID, &rec.UserUID, &rec.SubscriptionID,
			&rec.TransactionID, &rec.Amount, &rec.Currency, &rec.Status,
			&rec.Description, &rec.ProcessedAt); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, &rec)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}
