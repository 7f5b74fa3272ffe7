package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/altynpony/mediaschoolsandbox/internal/models"
)

// ListEvents возвращает опубликованные события с количеством активных
// регистраций, упорядоченные по дате начала. Фильтры по типу и по
// предстоящим событиям применяются опционально.
func (s *Storage) ListEvents(ctx context.Context, filter models.EventFilter) ([]*models.EventListItem, error) {
	const op = "storage.ListEvents"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT e.id, e.title, e.slug, e.type, e.description, e.start_date, e.end_date,
			      e.location, e.is_online, e.meeting_url, e.max_attendees, e.price, e.image_url,
			      (SELECT COUNT(*) FROM event_registration r
			       WHERE r.event_id = e.id AND r.cancelled_at IS NULL)::integer AS registration_count
			  FROM event e
			  WHERE e.status = 'published'`
	args := []any{}
	if filter.Type != "" {
		args = append(args, filter.Type)
		query += " AND e.type = $" + strconv.Itoa(len(args))
	}
	if filter.UpcomingOnly {
		query += " AND e.start_date >= now()"
	}
	query += " ORDER BY e.start_date"

	rows, err := s.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var result []*models.EventListItem
	for rows.Next() {
		var item models.EventListItem
		if err := rows.Scan(&item.ID, &item.Title, &item.Slug, &item.Type, &item.Description,
			&item.StartDate, &item.EndDate, &item.Location, &item.IsOnline, &item.MeetingURL,
			&item.MaxAttendees, &item.Price, &item.ImageURL, &item.RegistrationCount); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, &item)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

// ListActiveRegistrationEventIDs возвращает ID событий, на которые у
// пользователя есть активная регистрация.
func (s *Storage) ListActiveRegistrationEventIDs(ctx context.Context, userID string) ([]string, error) {
	const op = "storage.ListActiveRegistrationEventIDs"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT event_id
			  FROM event_registration
			  WHERE user_id = $1 AND cancelled_at IS NULL`
	rows, err := s.DB.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var result []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, id)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

// GetEvent возвращает событие по ID или nil, если оно не найдено.
func (s *Storage) GetEvent(ctx context.Context, eventID string) (*models.Event, error) {
	const op = "storage.GetEvent"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT id, title, slug, type, description, start_date, end_date, location,
			      is_online, meeting_url, max_attendees, price, image_url, status
			  FROM event
			  WHERE id = $1`
	var e models.Event
	row := s.DB.QueryRowContext(ctx, query, eventID)
	if err := row.Scan(&e.ID, &e.Title, &e.Slug, &e.Type, &e.Description, &e.StartDate,
		&e.EndDate, &e.Location, &e.IsOnline, &e.MeetingURL, &e.MaxAttendees,
		&e.Price, &e.ImageURL, &e.Status); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &e, nil
}

// RegisterForEvent регистрирует пользователя на событие в одной транзакции.
//
// Строка события блокируется через SELECT ... FOR UPDATE, после чего проверка
// вместимости и вставка (или реактивация отменённой регистрации) выполняются
// атомарно: параллельные регистрации на одно событие сериализуются и не могут
// превысить max_attendees. Возвращает регистрацию и признак реактивации.
//
// Возможные ошибки: ErrNotFound (нет события), ErrNoCapacity (мест не осталось),
// ErrDuplicate (активная регистрация уже есть).
func (s *Storage) RegisterForEvent(ctx context.Context, eventID, userID, newID string, now time.Time) (*models.EventRegistration, bool, error) {
	const op = "storage.RegisterForEvent"
	select {
	case <-ctx.Done():
		return nil, false, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return nil, false, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	var maxAttendees sql.NullInt64
	err = tx.QueryRowContext(ctx,
		`SELECT max_attendees FROM event WHERE id = $1 FOR UPDATE`,
		eventID).Scan(&maxAttendees)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, false, fmt.Errorf("%s: %w", op, ErrNotFound)
		}
		return nil, false, fmt.Errorf("%s: %w", op, err)
	}

	if maxAttendees.Valid {
		var count int64
		err = tx.QueryRowContext(ctx,
			`SELECT COUNT(*) FROM event_registration
			 WHERE event_id = $1 AND cancelled_at IS NULL`,
			eventID).Scan(&count)
		if err != nil {
			return nil, false, fmt.Errorf("%s: %w", op, err)
		}
		if count >= maxAttendees.Int64 {
			return nil, false, fmt.Errorf("%s: %w", op, ErrNoCapacity)
		}
	}

	var existing models.EventRegistration
	err = tx.QueryRowContext(ctx,
		`SELECT id, event_id, user_id, registered_at, attended, cancelled_at
		 FROM event_registration
		 WHERE event_id = $1 AND user_id = $2`,
		eventID, userID).Scan(&existing.ID, &existing.EventID, &existing.UserID,
		&existing.RegisteredAt, &existing.Attended, &existing.CancelledAt)
	switch {
	case err == nil:
		if existing.CancelledAt == nil {
			return nil, false, fmt.Errorf("%s: %w", op, ErrDuplicate)
		}
		// Реактивируем отменённую регистрацию вместо вставки новой строки.
		var reactivated models.EventRegistration
		err = tx.QueryRowContext(ctx,
			`UPDATE event_registration
			 SET cancelled_at = NULL
			 WHERE id = $1
			 RETURNING id, event_id, user_id, registered_at, attended, cancelled_at`,
			existing.ID).Scan(&reactivated.ID, &reactivated.EventID, &reactivated.UserID,
			&reactivated.RegisteredAt, &reactivated.Attended, &reactivated.CancelledAt)
		if err != nil {
			return nil, false, fmt.Errorf("%s: %w", op, err)
		}
		if err = tx.Commit(); err != nil {
			return nil, false, fmt.Errorf("%s: %w", op, err)
		}
		return &reactivated, true, nil
	case errors.Is(err, sql.ErrNoRows):
		var created models.EventRegistration
		err = tx.QueryRowContext(ctx,
			`INSERT INTO event_registration (id, event_id, user_id, registered_at)
			 VALUES ($1, $2, $3, $4)
			 RETURNING id, event_id, user_id, registered_at, attended, cancelled_at`,
			newID, eventID, userID, now).Scan(&created.ID, &created.EventID, &created.UserID,
			&created.RegisteredAt, &created.Attended, &created.CancelledAt)
		if err != nil {
			if isUniqueViolation(err) {
				return nil, false, fmt.Errorf("%s: %w", op, ErrDuplicate)
			}
			return nil, false, fmt.Errorf("%s: %w", op, err)
		}
		if err = tx.Commit(); err != nil {
			return nil, false, fmt.Errorf("%s: %w", op, err)
		}
		return &created, false, nil
	default:
		return nil, false, fmt.Errorf("%s: %w", op, err)
	}
}

// CancelRegistration мягко отменяет активную регистрацию пользователя,
// проставляя cancelled_at. Возвращает ErrNotFound, если активной
// регистрации нет.
func (s *Storage) CancelRegistration(ctx context.Context, eventID, userID string, now time.Time) (*models.EventRegistration, error) {
	const op = "storage.CancelRegistration"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `UPDATE event_registration
			  SET cancelled_at = $3
			  WHERE event_id = $1 AND user_id = $2 AND cancelled_at IS NULL
			  RETURNING id, event_id, user_id, registered_at, attended, cancelled_at`
	var cancelled models.EventRegistration
	row := s.DB.QueryRowContext(ctx, query, eventID, userID, now)
	if err := row.Scan(&cancelled.ID, &cancelled.EventID, &cancelled.UserID,
		&cancelled.RegisteredAt, &cancelled.Attended, &cancelled.CancelledAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w", op, ErrNotFound)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &cancelled, nil
}
