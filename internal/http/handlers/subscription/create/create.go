// Package create реализует HTTP-обработчик оформления подписки.
//
// Повторное оформление продлевает существующую подписку и может сменить
// план, новая строка при этом не создается.
package create

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/altynpony/mediaschoolsandbox/internal/http/middlewarectx"
	"github.com/altynpony/mediaschoolsandbox/internal/http/response"
	"github.com/altynpony/mediaschoolsandbox/internal/lib/sl"
	"github.com/altynpony/mediaschoolsandbox/internal/models"
	subscriptionservice "github.com/altynpony/mediaschoolsandbox/internal/services/subscription"
)

// Request — входные данные для оформления подписки.
type Request struct {
	PlanType             string  `json:"planType"`
	StripeSubscriptionID *string `json:"stripeSubscriptionId"`
}

// Service описывает интерфейс бизнес-логики оформления подписки.
type Service interface {
	Upsert(ctx context.Context, userID, planType string, stripeSubscriptionID *string) (*models.Subscription, bool, error)
}

// Handler управляет HTTP-запросами оформления подписки.
type Handler struct {
	log     *slog.Logger
	service Service
}

// New создает новый Handler с переданными логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Оформить подписку
// @Description Создает подписку текущего пользователя или продлевает существующую на месяц.
// @Tags Subscriptions
// @Accept json
// @Produce json
// @Param request body Request true "План подписки"
// @Success 200 {object} map[string]any "Подписка оформлена"
// @Failure 400 {object} response.ErrorResponse "Неизвестный план"
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Security BearerAuth
// @Router /api/subscribe [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.subscription.create"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	userID := middlewarectx.UserID(r.Context())
	if userID == "" {
		w.WriteHeader(http.StatusUnauthorized)
		render.JSON(w, r, response.Error("Unauthorized"))
		return
	}

	var req Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Error("failed to decode request body", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("Invalid request body"))
		return
	}

	sub, created, err := h.service.Upsert(r.Context(), userID, req.PlanType, req.StripeSubscriptionID)
	if err != nil {
		if errors.Is(err, subscriptionservice.ErrInvalidPlan) {
			w.WriteHeader(http.StatusBadRequest)
			render.JSON(w, r, response.Error("Invalid plan type"))
			return
		}
		log.Error("failed to upsert subscription", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("Failed to process subscription"))
		return
	}

	message := "Subscription updated"
	if created {
		message = "Subscription created"
	}

	log.Info("subscription processed",
		slog.String("user_id", userID),
		slog.String("plan", req.PlanType),
		slog.Bool("created", created))
	render.JSON(w, r, map[string]any{
		"success":      true,
		"subscription": sub,
		"message":      message,
	})
}
