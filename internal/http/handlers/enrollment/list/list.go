// Package list реализует HTTP-обработчик списка записей пользователя на курсы.
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

// Service описывает интерфейс бизнес-логики записей на курсы.
type Service interface {
	List(ctx context.Context, userID string) ([]*models.EnrollmentWithCourse, error)
}

// Handler управляет HTTP-запросами списка записей.
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
// @Summary Мои записи на курсы
// @Description Возвращает все записи текущего пользователя вместе с данными курсов.
// @Tags Enrollments
// @Produce json
// @Success 200 {object} map[string]any "Список записей"
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Security BearerAuth
// @Router /api/enroll [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.enrollment.list"
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

	enrollments, err := h.service.List(r.Context(), userID)
	if err != nil {
		log.Error("failed to list enrollments", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("Failed to fetch enrollments"))
		return
	}
	if enrollments == nil {
		enrollments = []*models.EnrollmentWithCourse{}
	}

	render.JSON(w, r, map[string]any{
		"enrollments": enrollments,
	})
}
