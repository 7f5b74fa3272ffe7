// Package read реализует HTTP-обработчик карточки курса с уроками.
package read

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/altynpony/mediaschoolsandbox/internal/http/response"
	"github.com/altynpony/mediaschoolsandbox/internal/lib/sl"
	"github.com/altynpony/mediaschoolsandbox/internal/models"
	courseservice "github.com/altynpony/mediaschoolsandbox/internal/services/course"
)

// Service описывает интерфейс каталога курсов.
type Service interface {
	GetBySlug(ctx context.Context, slug, lang string) (*models.CourseWithLessons, error)
}

// Handler управляет HTTP-запросами карточки курса.
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
// @Summary Курс по slug
// @Description Возвращает курс вместе со списком уроков на запрошенном языке.
// @Tags Courses
// @Produce json
// @Param slug path string true "Slug курса"
// @Param lang query string false "Язык описаний: en или ru" default(en)
// @Success 200 {object} map[string]any "Курс с уроками"
// @Failure 404 {object} response.ErrorResponse "Курс не найден"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /api/courses/{slug} [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.course.read"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	slug := chi.URLParam(r, "slug")
	lang := r.URL.Query().Get("lang")
	if lang == "" {
		lang = "en"
	}

	course, err := h.service.GetBySlug(r.Context(), slug, lang)
	if err != nil {
		if errors.Is(err, courseservice.ErrCourseNotFound) {
			w.WriteHeader(http.StatusNotFound)
			render.JSON(w, r, response.Error("Course not found"))
			return
		}
		log.Error("failed to fetch course", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("Failed to fetch course"))
		return
	}

	render.JSON(w, r, map[string]any{
		"course": course,
	})
}
