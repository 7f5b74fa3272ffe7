package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/altynpony/mediaschoolsandbox/internal/models"
)

// ListCourses возвращает неархивированные курсы с локализованным описанием,
// упорядоченные по дате публикации.
func (s *Storage) ListCourses(ctx context.Context, lang string) ([]*models.Course, error) {
	const op = "storage.ListCourses"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT c.id, c.slug, c.lang, c.published, c.archived, c.is_live, c.updated,
			      cd.title, cd.description
			  FROM course c
			  JOIN course_description cd ON cd.course_id = c.id AND cd.lang = $1
			  WHERE c.archived IS NULL OR c.archived > now()
			  ORDER BY c.published`
	rows, err := s.DB.QueryContext(ctx, query, lang)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var result []*models.Course
	for rows.Next() {
		var item models.Course
		if err := rows.Scan(&item.ID, &item.Slug, &item.Lang, &item.Published,
			&item.Archived, &item.IsLive, &item.Updated, &item.Title, &item.Description); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, &item)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

// GetCourseBySlug возвращает курс по slug с описанием на запрошенном языке
// или nil, если курс не найден.
func (s *Storage) GetCourseBySlug(ctx context.Context, slug, lang string) (*models.Course, error) {
	const op = "storage.GetCourseBySlug"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT c.id, c.slug, c.lang, c.published, c.archived, c.is_live, c.updated,
			      cd.title, cd.description
			  FROM course c
			  JOIN course_description cd ON cd.course_id = c.id AND cd.lang = $2
			  WHERE c.slug = $1`
	var item models.Course
	row := s.DB.QueryRowContext(ctx, query, slug, lang)
	if err := row.Scan(&item.ID, &item.Slug, &item.Lang, &item.Published,
		&item.Archived, &item.IsLive, &item.Updated, &item.Title, &item.Description); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &item, nil
}

// ListLessons возвращает уроки курса с локализованным описанием,
// упорядоченные по весу.
func (s *Storage) ListLessons(ctx context.Context, courseID int, lang string) ([]*models.Lesson, error) {
	const op = "storage.ListLessons"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT l.id, l.slug, l.weight, ld.title, ld.description
			  FROM lesson l
			  JOIN lesson_description ld ON ld.lesson_id = l.id AND ld.lang = $2
			  WHERE l.course_id = $1
			  ORDER BY l.weight`
	rows, err := s.DB.QueryContext(ctx, query, courseID, lang)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var result []*models.Lesson
	for rows.Next() {
		var item models.Lesson
		if err := rows.Scan(&item.ID, &item.Slug, &item.Weight, &item.Title, &item.Description); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, &item)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

// CourseExists проверяет существование курса по ID.
func (s *Storage) CourseExists(ctx context.Context, courseID int) (bool, error) {
	const op = "storage.CourseExists"
	select {
	case <-ctx.Done():
		return false, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT EXISTS (SELECT 1 FROM course WHERE id = $1)`
	var exists bool
	if err := s.DB.QueryRowContext(ctx, query, courseID).Scan(&exists); err != nil {
		return false, fmt.Errorf("%s: %w", op, err)
	}
	return exists, nil
}
