// Package cancel реализует HTTP-обработчик отмены регистрации на событие.
package cancel

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/altynpony/mediaschoolsandbox/internal/http/middlewarectx"
	"github.com/altynpony/mediaschoolsandbox/internal/http/response"
	"github.com/altynpony/mediaschoolsandbox/internal/lib/sl"
	"github.com/altynpony/mediaschoolsandbox/internal/models"
	eventservice "github.com/altynpony/mediaschoolsandbox/internal/services/event"
)

// Service описывает интерфейс бизнес-логики отмены регистрации.
type Service interface {
	Cancel(ctx context.Context, userID, eventID string) (*models.EventRegistration, error)
}

// Handler управляет HTTP-запросами отмены регистрации.
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
// @Summary Отменить регистрацию на событие
// @Description Мягко отменяет активную регистрацию текущего пользователя.
// @Tags Events
// @Produce json
// @Param eventId query string true "Идентификатор события"
// @Success 200 {object} map[string]any "Регистрация отменена"
// @Failure 400 {object} response.ErrorResponse "Нет eventId"
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Failure 404 {object} response.ErrorResponse "Активной регистрации нет"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Security BearerAuth
// @Router /api/events [delete]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.event.cancel"
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

	eventID := r.URL.Query().Get("eventId")
	if eventID == "" {
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("Event ID is required"))
		return
	}

	registration, err := h.service.Cancel(r.Context(), userID, eventID)
	if err != nil {
		if errors.Is(err, eventservice.ErrRegistrationNotFound) {
			w.WriteHeader(http.StatusNotFound)
			render.JSON(w, r, response.Error("Registration not found"))
			return
		}
		log.Error("failed to cancel registration", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("Failed to cancel registration"))
		return
	}

	log.Info("registration cancelled",
		slog.String("user_id", userID), slog.String("event_id", eventID))
	render.JSON(w, r, map[string]any{
		"message":      "Registration cancelled",
		"registration": registration,
	})
}
