// Package create реализует HTTP-обработчик записи пользователя на курс.
//
// Запись доступна только пользователям с активной подпиской. Повторная
// запись на тот же курс отклоняется.
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
	enrollmentservice "github.com/altynpony/mediaschoolsandbox/internal/services/enrollment"
)

// Request — входные данные для записи на курс.
type Request struct {
	CourseID int `json:"courseId"`
}

// Service описывает интерфейс бизнес-логики записи на курс.
type Service interface {
	Enroll(ctx context.Context, userID string, courseID int) (*models.Enrollment, error)
}

// Handler управляет HTTP-запросами на запись на курс.
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
// @Summary Записаться на курс
// @Description Записывает текущего пользователя на курс. Требуется активная подписка.
// @Tags Enrollments
// @Accept json
// @Produce json
// @Param request body Request true "Идентификатор курса"
// @Success 200 {object} map[string]any "Запись создана"
// @Failure 400 {object} response.ErrorResponse "Нет courseId или повторная запись"
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Failure 403 {object} response.ErrorResponse "Нет активной подписки"
// @Failure 404 {object} response.ErrorResponse "Курс не найден"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Security BearerAuth
// @Router /api/enroll [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.enrollment.create"
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
		render.JSON(w, r, response.Error("Course ID is required"))
		return
	}
	if req.CourseID == 0 {
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("Course ID is required"))
		return
	}

	enrollment, err := h.service.Enroll(r.Context(), userID, req.CourseID)
	if err != nil {
		switch {
		case errors.Is(err, enrollmentservice.ErrSubscriptionRequired):
			w.WriteHeader(http.StatusForbidden)
			render.JSON(w, r, response.Error("Active subscription required to enroll"))
		case errors.Is(err, enrollmentservice.ErrCourseNotFound):
			w.WriteHeader(http.StatusNotFound)
			render.JSON(w, r, response.Error("Course not found"))
		case errors.Is(err, enrollmentservice.ErrAlreadyEnrolled):
			w.WriteHeader(http.StatusBadRequest)
			render.JSON(w, r, response.Error("Already enrolled in this course"))
		default:
			log.Error("failed to enroll", sl.Err(err))
			w.WriteHeader(http.StatusInternalServerError)
			render.JSON(w, r, response.Error("Failed to enroll"))
		}
		return
	}

	log.Info("enrollment created",
		slog.String("user_id", userID), slog.Int("course_id", req.CourseID))
	render.JSON(w, r, map[string]any{
		"success":    true,
		"enrollment": enrollment,
		"message":    "Successfully enrolled",
	})
}
