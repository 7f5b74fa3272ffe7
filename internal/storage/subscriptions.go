package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/altynpony/mediaschoolsandbox/internal/models"
)

// GetSubscriptionByUser возвращает подписку пользователя или nil, если
// подписки нет. Отсутствие строки не является ошибкой.
func (s *Storage) GetSubscriptionByUser(ctx context.Context, userID string) (*models.Subscription, error) {
	const op = "storage.GetSubscriptionByUser"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT id, user_id, plan_type, status, start_date, end_date,
			      stripe_subscription_id, created_at, updated_at
			  FROM subscription
			  WHERE user_id = $1`
	var sub models.Subscription
	row := s.DB.QueryRowContext(ctx, query, userID)
	if err := row.Scan(&sub.ID, &sub.UserID, &sub.PlanType, &sub.Status, &sub.StartDate,
		&sub.EndDate, &sub.StripeSubscriptionID, &sub.CreatedAt, &sub.UpdatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &sub, nil
}

// InsertSubscription вставляет новую подписку пользователя и возвращает
// созданную строку.
func (s *Storage) InsertSubscription(ctx context.Context, sub models.Subscription) (*models.Subscription, error) {
	const op = "storage.InsertSubscription"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `INSERT INTO subscription (id, user_id, plan_type, status, start_date, end_date,
			      stripe_subscription_id)
			  VALUES ($1, $2, $3, $4, $5, $6, $7)
			  RETURNING id, user_id, plan_type, status, start_date, end_date,
			      stripe_subscription_id, created_at, updated_at`
	var created models.Subscription
	row := s.DB.QueryRowContext(ctx, query,
		sub.ID, sub.UserID, sub.PlanType, sub.Status, sub.StartDate, sub.EndDate,
		sub.StripeSubscriptionID)
	if err := row.Scan(&created.ID, &created.UserID, &created.PlanType, &created.Status,
		&created.StartDate, &created.EndDate, &created.StripeSubscriptionID,
		&created.CreatedAt, &created.UpdatedAt); err != nil {
		if isUniqueViolation(err) {
			return nil, fmt.Errorf("%s: %w", op, ErrDuplicate)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &created, nil
}

// UpdateSubscription обновляет подписку пользователя: план, статус и дату
// окончания. Внешний идентификатор биллинга сохраняется, если новый не передан.
func (s *Storage) UpdateSubscription(ctx context.Context, sub models.Subscription) (*models.Subscription, error) {
	const op = "storage.UpdateSubscription"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `UPDATE subscription
			  SET plan_type = $1,
			      status = $2,
			      end_date = $3,
			      stripe_subscription_id = COALESCE($4, stripe_subscription_id),
			      updated_at = now()
			  WHERE user_id = $5
			  RETURNING id, user_id, plan_type, status, start_date, end_date,
			      stripe_subscription_id, created_at, updated_at`
	var updated models.Subscription
	row := s.DB.QueryRowContext(ctx, query,
		sub.PlanType, sub.Status, sub.EndDate, sub.StripeSubscriptionID, sub.UserID)
	if err := row.Scan(&updated.ID, &updated.UserID, &updated.PlanType, &updated.Status,
		&updated.StartDate, &updated.EndDate, &updated.StripeSubscriptionID,
		&updated.CreatedAt, &updated.UpdatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w", op, ErrNotFound)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &updated, nil
}
