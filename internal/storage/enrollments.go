package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/altynpony/mediaschoolsandbox/internal/models"
)

// FindEnrollment возвращает запись пользователя на курс или nil, если её нет.
func (s *Storage) FindEnrollment(ctx context.Context, userID string, courseID int) (*models.Enrollment, error) {
	const op = "storage.FindEnrollment"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT id, user_id, course_id, enrolled_at, completed_at, progress
			  FROM enrollment
			  WHERE user_id = $1 AND course_id = $2`
	var e models.Enrollment
	row := s.DB.QueryRowContext(ctx, query, userID, courseID)
	if err := row.Scan(&e.ID, &e.UserID, &e.CourseID, &e.EnrolledAt,
		&e.CompletedAt, &e.Progress); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &e, nil
}

// CreateEnrollment вставляет новую запись на курс и возвращает созданную строку.
// Повторная запись на тот же курс приводит к ErrDuplicate: уникальное
// ограничение (user_id, course_id) закрывает гонку параллельных запросов.
func (s *Storage) CreateEnrollment(ctx context.Context, e models.Enrollment) (*models.Enrollment, error) {
	const op = "storage.CreateEnrollment"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `INSERT INTO enrollment (id, user_id, course_id, enrolled_at, progress)
			  VALUES ($1, $2, $3, $4, $5)
			  RETURNING id, user_id, course_id, enrolled_at, completed_at, progress`
	var created models.Enrollment
	row := s.DB.QueryRowContext(ctx, query,
		e.ID, e.UserID, e.CourseID, e.EnrolledAt, e.Progress)
	if err := row.Scan(&created.ID, &created.UserID, &created.CourseID,
		&created.EnrolledAt, &created.CompletedAt, &created.Progress); err != nil {
		if isUniqueViolation(err) {
			return nil, fmt.Errorf("%s: %w", op, ErrDuplicate)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &created, nil
}

// ListEnrollments возвращает записи пользователя на курсы вместе с данными
// курса, упорядоченные по времени записи.
func (s *Storage) ListEnrollments(ctx context.Context, userID string) ([]*models.EnrollmentWithCourse, error) {
	const op = "storage.ListEnrollments"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT e.id, e.course_id, e.enrolled_at, e.completed_at, e.progress,
			      c.slug, c.is_live
			  FROM enrollment e
			  LEFT JOIN course c ON c.id = e.course_id
			  WHERE e.user_id = $1
			  ORDER BY e.enrolled_at`
	rows, err := s.DB.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var result []*models.EnrollmentWithCourse
	for rows.Next() {
		var item models.EnrollmentWithCourse
		if err := rows.Scan(&item.ID, &item.CourseID, &item.EnrolledAt,
			&item.CompletedAt, &item.Progress, &item.CourseSlug, &item.IsLive); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, &item)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}
