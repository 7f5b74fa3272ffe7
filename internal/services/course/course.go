// Package services содержит бизнес-логику каталога курсов с кэшированием через Redis.
package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/altynpony/mediaschoolsandbox/internal/lib/sl"
	"github.com/altynpony/mediaschoolsandbox/internal/models"
)

// ErrCourseNotFound — курс с запрошенным slug не существует или снят с публикации.
var ErrCourseNotFound = errors.New("course not found")

// courseCacheTTL время жизни кэша каталога.
const courseCacheTTL = time.Hour

// CourseRepository определяет методы чтения каталога из хранилища.
type CourseRepository interface {
	// ListCourses возвращает опубликованные курсы с описанием на указанном языке.
	ListCourses(ctx context.Context, lang string) ([]*models.Course, error)
	// GetCourseBySlug возвращает курс по slug или nil, если не найден.
	GetCourseBySlug(ctx context.Context, slug, lang string) (*models.Course, error)
	// ListLessons возвращает уроки курса в порядке их веса.
	ListLessons(ctx context.Context, courseID int, lang string) ([]*models.Lesson, error)
}

// Cache определяет методы кэширования.
type Cache interface {
	Get(ctx context.Context, key string, dest any) error
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
	Invalidate(ctx context.Context, key string) error
}

// CourseService отдает каталог курсов, прозрачно кэшируя ответы хранилища.
// Ошибки кэша не фатальны, запрос всегда может уйти в базу.
type CourseService struct {
	repo  CourseRepository
	cache Cache
	log   *slog.Logger
}

// NewCourseService создает новый экземпляр CourseService.
func NewCourseService(repo CourseRepository, cache Cache, log *slog.Logger) *CourseService {
	return &CourseService{
		repo:  repo,
		cache: cache,
		log:   log,
	}
}

// List возвращает опубликованные курсы для языка lang.
func (s *CourseService) List(ctx context.Context, lang string) ([]*models.Course, error) {
	cacheKey := fmt.Sprintf("courses:%s", lang)

	var cached []*models.Course
	if err := s.cache.Get(ctx, cacheKey, &cached); err == nil {
		return cached, nil
	}

	courses, err := s.repo.ListCourses(ctx, lang)
	if err != nil {
		return nil, err
	}

	if err := s.cache.Set(ctx, cacheKey, courses, courseCacheTTL); err != nil {
		s.log.Warn("failed to cache course list", sl.Err(err))
	}
	return courses, nil
}

// GetBySlug возвращает курс вместе с уроками. Если курс не найден,
// возвращает ErrCourseNotFound.
func (s *CourseService) GetBySlug(ctx context.Context, slug, lang string) (*models.CourseWithLessons, error) {
	cacheKey := fmt.Sprintf("course:%s:%s", slug, lang)

	var cached models.CourseWithLessons
	if err := s.cache.Get(ctx, cacheKey, &cached); err == nil {
		return &cached, nil
	}

	course, err := s.repo.GetCourseBySlug(ctx, slug, lang)
	if err != nil {
		return nil, err
	}
	if course == nil {
		return nil, ErrCourseNotFound
	}

	lessons, err := s.repo.ListLessons(ctx, course.ID, lang)
	if err != nil {
		return nil, err
	}

	result := &models.CourseWithLessons{
		Course:  *course,
		Lessons: lessons,
	}
	if err := s.cache.Set(ctx, cacheKey, result, courseCacheTTL); err != nil {
		s.log.Warn("failed to cache course", sl.Err(err))
	}
	return result, nil
}
