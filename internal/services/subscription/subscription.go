// Package services содержит бизнес-логику для управления подписками пользователей.
package services

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/altynpony/mediaschoolsandbox/internal/models"
)

// ErrInvalidPlan — переданный план не входит в список доступных.
var ErrInvalidPlan = errors.New("invalid plan type")

// SubscriptionRepository определяет методы для работы с подписками в хранилище.
type SubscriptionRepository interface {
	// GetSubscriptionByUser возвращает подписку пользователя или nil.
	GetSubscriptionByUser(ctx context.Context, userID string) (*models.Subscription, error)
	// InsertSubscription вставляет новую подписку.
	InsertSubscription(ctx context.Context, sub models.Subscription) (*models.Subscription, error)
	// UpdateSubscription обновляет подписку пользователя.
	UpdateSubscription(ctx context.Context, sub models.Subscription) (*models.Subscription, error)
}

// SubscriptionService реализует бизнес-логику подписок: чтение статуса
// и upsert при оформлении плана.
type SubscriptionService struct {
	repo SubscriptionRepository
	log  *slog.Logger
}

// NewSubscriptionService создает новый экземпляр SubscriptionService.
func NewSubscriptionService(repo SubscriptionRepository, log *slog.Logger) *SubscriptionService {
	return &SubscriptionService{
		repo: repo,
		log:  log,
	}
}

// IsActive — чистый предикат активности подписки: статус active и дата
// окончания в будущем. Подписка без даты окончания активной не считается.
func IsActive(sub *models.Subscription) bool {
	if sub == nil || sub.EndDate == nil {
		return false
	}
	return sub.Status == models.SubscriptionStatusActive && sub.EndDate.After(time.Now())
}

// Get возвращает подписку пользователя. Отсутствие подписки — не ошибка,
// возвращается nil.
func (s *SubscriptionService) Get(ctx context.Context, userID string) (*models.Subscription, error) {
	return s.repo.GetSubscriptionByUser(ctx, userID)
}

// Upsert оформляет или продлевает подписку пользователя.
//
// Если строка уже существует, обновляются план и статус, дата окончания
// продлевается на месяц от текущего момента, а внешний идентификатор
// биллинга сохраняется, если новый не передан. Иначе вставляется новая
// строка сроком на месяц. Возвращает подписку и признак создания.
func (s *SubscriptionService) Upsert(ctx context.Context, userID, planType string, stripeSubscriptionID *string) (*models.Subscription, bool, error) {
	switch planType {
	case models.PlanBasic, models.PlanPro, models.PlanEnterprise:
	default:
		return nil, false, ErrInvalidPlan
	}

	existing, err := s.repo.GetSubscriptionByUser(ctx, userID)
	if err != nil {
		return nil, false, err
	}

	now := time.Now().UTC()
	endDate := now.AddDate(0, 1, 0)

	if existing != nil {
		updated, err := s.repo.UpdateSubscription(ctx, models.Subscription{
			UserID:               userID,
			PlanType:             planType,
			Status:               models.SubscriptionStatusActive,
			EndDate:              &endDate,
			StripeSubscriptionID: stripeSubscriptionID,
		})
		if err != nil {
			return nil, false, err
		}
		s.log.Info("subscription updated",
			slog.String("user_id", userID), slog.String("plan", planType))
		return updated, false, nil
	}

	created, err := s.repo.InsertSubscription(ctx, models.Subscription{
		ID:                   uuid.New().String(),
		UserID:               userID,
		PlanType:             planType,
		Status:               models.SubscriptionStatusActive,
		StartDate:            now,
		EndDate:              &endDate,
		StripeSubscriptionID: stripeSubscriptionID,
	})
	if err != nil {
		return nil, false, err
	}
	s.log.Info("subscription created",
		slog.String("user_id", userID), slog.String("plan", planType))
	return created, true, nil
}
