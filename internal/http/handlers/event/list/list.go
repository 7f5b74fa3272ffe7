// Package list реализует HTTP-обработчик списка событий.
//
// Маршрут публичный, но при наличии валидной сессии и совпадении параметра
// userId с текущим пользователем события дополняются признаком isRegistered.
package list

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
)

// Service описывает интерфейс бизнес-логики событий.
type Service interface {
	List(ctx context.Context, filter models.EventFilter) ([]*models.EventListItem, error)
}

// Handler управляет HTTP-запросами списка событий.
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
// @Summary Список событий
// @Description Возвращает опубликованные события с количеством участников и свободными местами.
// @Tags Events
// @Produce json
// @Param type query string false "Фильтр по типу события"
// @Param upcoming query string false "Только предстоящие (true)"
// @Param userId query string false "ID пользователя для признака isRegistered"
// @Success 200 {array} models.EventListItem "Список событий"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /api/events [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.event.list"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	filter := models.EventFilter{
		Type:         r.URL.Query().Get("type"),
		UpcomingOnly: r.URL.Query().Get("upcoming") == "true",
	}

	// Признак isRegistered заполняется только для пользователя текущей
	// сессии, чужой userId игнорируется.
	if requested := r.URL.Query().Get("userId"); requested != "" {
		if sessionUserID := middlewarectx.UserID(r.Context()); sessionUserID == requested {
			filter.UserID = requested
		}
	}

	events, err := h.service.List(r.Context(), filter)
	if err != nil {
		log.Error("failed to list events", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("Failed to fetch events"))
		return
	}
	if events == nil {
		events = []*models.EventListItem{}
	}

	render.JSON(w, r, events)
}
