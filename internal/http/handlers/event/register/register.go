// Package register реализует HTTP-обработчик регистрации на событие.
//
// Вместимость события проверяется атомарно на уровне хранилища, поэтому
// параллельные регистрации не могут превысить лимит участников. Ранее
// отменённая регистрация реактивируется вместо создания новой.
package register

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
	eventservice "github.com/altynpony/mediaschoolsandbox/internal/services/event"
)

// Request — входные данные для регистрации на событие.
type Request struct {
	EventID string `json:"eventId"`
}

// Service описывает интерфейс бизнес-логики регистрации на события.
type Service interface {
	Register(ctx context.Context, userID, eventID string) (*models.EventRegistration, bool, error)
}

// Handler управляет HTTP-запросами регистрации на событие.
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
// @Summary Зарегистрироваться на событие
// @Description Регистрирует текущего пользователя на событие с учётом лимита мест.
// @Tags Events
// @Accept json
// @Produce json
// @Param request body Request true "Идентификатор события"
// @Success 200 {object} map[string]any "Регистрация создана или реактивирована"
// @Failure 400 {object} response.ErrorResponse "Нет eventId, нет мест или повторная регистрация"
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Failure 404 {object} response.ErrorResponse "Событие не найдено"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Security BearerAuth
// @Router /api/events [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.event.register"
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
		render.JSON(w, r, response.Error("Event ID is required"))
		return
	}
	if req.EventID == "" {
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("Event ID is required"))
		return
	}

	registration, reactivated, err := h.service.Register(r.Context(), userID, req.EventID)
	if err != nil {
		switch {
		case errors.Is(err, eventservice.ErrEventNotFound):
			w.WriteHeader(http.StatusNotFound)
			render.JSON(w, r, response.Error("Event not found"))
		case errors.Is(err, eventservice.ErrEventFull):
			w.WriteHeader(http.StatusBadRequest)
			render.JSON(w, r, response.Error("Event is full"))
		case errors.Is(err, eventservice.ErrAlreadyRegistered):
			w.WriteHeader(http.StatusBadRequest)
			render.JSON(w, r, response.Error("Already registered for this event"))
		default:
			log.Error("failed to register for event", sl.Err(err))
			w.WriteHeader(http.StatusInternalServerError)
			render.JSON(w, r, response.Error("Failed to register"))
		}
		return
	}

	message := "Successfully registered"
	if reactivated {
		message = "Registration reactivated"
	}

	log.Info("event registration processed",
		slog.String("user_id", userID),
		slog.String("event_id", req.EventID),
		slog.Bool("reactivated", reactivated))
	render.JSON(w, r, map[string]any{
		"message":      message,
		"registration": registration,
	})
}
