// Package status реализует HTTP-обработчик статуса подписки пользователя.
package status

import (
	"context"
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

// Service описывает интерфейс бизнес-логики подписок.
type Service interface {
	Get(ctx context.Context, userID string) (*models.Subscription, error)
}

// Handler управляет HTTP-запросами статуса подписки.
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
// @Summary Статус подписки
// @Description Возвращает подписку текущего пользователя и признак её активности.
// @Tags Subscriptions
// @Produce json
// @Success 200 {object} map[string]any "Статус подписки"
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Security BearerAuth
// @Router /api/subscribe [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.subscription.status"
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

	sub, err := h.service.Get(r.Context(), userID)
	if err != nil {
		log.Error("failed to fetch subscription", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("Failed to fetch subscription"))
		return
	}

	render.JSON(w, r, map[string]any{
		"hasSubscription": sub != nil,
		"isActive":        subscriptionservice.IsActive(sub),
		"subscription":    sub,
	})
}
