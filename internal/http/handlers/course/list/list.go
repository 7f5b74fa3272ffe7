// Package list реализует HTTP-обработчик списка курсов каталога.
package list

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/altynpony/mediaschoolsandbox/internal/http/response"
	"github.com/altynpony/mediaschoolsandbox/internal/lib/sl"
	"github.com/altynpony/mediaschoolsandbox/internal/models"
)

// Service описывает интерфейс каталога курсов.
type Service interface {
	List(ctx context.Context, lang string) ([]*models.Course, error)
}

// Handler управляет HTTP-запросами списка курсов.
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
// @Summary Список курсов
// @Description Возвращает опубликованные курсы с описанием на запрошенном языке.
// @Tags Courses
// @Produce json
// @Param lang query string false "Язык описаний: en или ru" default(en)
// @Success 200 {object} map[string]any "Список курсов"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /api/courses [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.course.list"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	lang := r.URL.Query().Get("lang")
	if lang == "" {
		lang = "en"
	}

	courses, err := h.service.List(r.Context(), lang)
	if err != nil {
		log.Error("failed to list courses", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("Failed to fetch courses"))
		return
	}
	if courses == nil {
		courses = []*models.Course{}
	}

	render.JSON(w, r, map[string]any{
		"courses": courses,
	})
}
