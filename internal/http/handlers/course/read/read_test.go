package read

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/altynpony/mediaschoolsandbox/internal/models"
	courseservice "github.com/altynpony/mediaschoolsandbox/internal/services/course"
)

// MockService реализует интерфейс read.Service
type MockService struct {
	mock.Mock
}

func (m *MockService) GetBySlug(ctx context.Context, slug, lang string) (*models.CourseWithLessons, error) {
	args := m.Called(ctx, slug, lang)
	if res := args.Get(0); res != nil {
		return res.(*models.CourseWithLessons), args.Error(1)
	}
	return nil, args.Error(1)
}

func newRouter(handler *Handler) *chi.Mux {
	r := chi.NewRouter()
	r.Get("/api/courses/{slug}", handler.ServeHTTP)
	return r
}

func TestReadHandler(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	t.Run("курс с уроками", func(t *testing.T) {
		service := new(MockService)
		service.On("GetBySlug", mock.Anything, "mobile-journalism", "ru").
			Return(&models.CourseWithLessons{
				Course: models.Course{ID: 3, Slug: "mobile-journalism", Title: "Мобильная журналистика"},
				Lessons: []*models.Lesson{
					{ID: 10, Title: "Введение"},
				},
			}, nil)
		handler := New(logger, service)

		req := httptest.NewRequest(http.MethodGet, "/api/courses/mobile-journalism?lang=ru", nil)
		rec := httptest.NewRecorder()
		newRouter(handler).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), `"slug":"mobile-journalism"`)
		assert.Contains(t, rec.Body.String(), `"lessons"`)
		service.AssertExpectations(t)
	})

	t.Run("курс не найден", func(t *testing.T) {
		service := new(MockService)
		service.On("GetBySlug", mock.Anything, "missing", "en").
			Return(nil, courseservice.ErrCourseNotFound)
		handler := New(logger, service)

		req := httptest.NewRequest(http.MethodGet, "/api/courses/missing", nil)
		rec := httptest.NewRecorder()
		newRouter(handler).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusNotFound, rec.Code)
		assert.Contains(t, rec.Body.String(), `{"error":"Course not found"}`)
	})

	t.Run("язык по умолчанию en", func(t *testing.T) {
		service := new(MockService)
		service.On("GetBySlug", mock.Anything, "docs", "en").
			Return(&models.CourseWithLessons{Course: models.Course{Slug: "docs"}}, nil)
		handler := New(logger, service)

		req := httptest.NewRequest(http.MethodGet, "/api/courses/docs", nil)
		rec := httptest.NewRecorder()
		newRouter(handler).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		service.AssertExpectations(t)
	})

	t.Run("незнакомый язык передается как есть", func(t *testing.T) {
		service := new(MockService)
		service.On("GetBySlug", mock.Anything, "docs", "de").
			Return(&models.CourseWithLessons{Course: models.Course{Slug: "docs"}}, nil)
		handler := New(logger, service)

		req := httptest.NewRequest(http.MethodGet, "/api/courses/docs?lang=de", nil)
		rec := httptest.NewRecorder()
		newRouter(handler).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		service.AssertExpectations(t)
	})
}
