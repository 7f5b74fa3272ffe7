// Package services содержит бизнес-логику событий: списки, регистрация и отмена.
package services

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/altynpony/mediaschoolsandbox/internal/lib/rabbitmq"
	"github.com/altynpony/mediaschoolsandbox/internal/lib/sl"
	"github.com/altynpony/mediaschoolsandbox/internal/models"
	"github.com/altynpony/mediaschoolsandbox/internal/storage"
)

// Ошибки регистрации на события.
var (
	// ErrEventNotFound — событие не существует.
	ErrEventNotFound = errors.New("event not found")
	// ErrEventFull — у события не осталось свободных мест.
	ErrEventFull = errors.New("event is full")
	// ErrAlreadyRegistered — активная регистрация уже есть.
	ErrAlreadyRegistered = errors.New("already registered")
	// ErrRegistrationNotFound — активной регистрации для отмены нет.
	ErrRegistrationNotFound = errors.New("registration not found")
)

// EventRepository определяет методы хранилища для событий и регистраций.
type EventRepository interface {
	ListEvents(ctx context.Context, filter models.EventFilter) ([]*models.EventListItem, error)
	ListActiveRegistrationEventIDs(ctx context.Context, userID string) ([]string, error)
	GetEvent(ctx context.Context, eventID string) (*models.Event, error)
	RegisterForEvent(ctx context.Context, eventID, userID, newID string, now time.Time) (*models.EventRegistration, bool, error)
	CancelRegistration(ctx context.Context, eventID, userID string, now time.Time) (*models.EventRegistration, error)
}

// UserGetter возвращает пользователя по ID для писем-подтверждений.
type UserGetter interface {
	GetUser(ctx context.Context, userID string) (*models.User, error)
}

// Publisher публикует сообщения в обменник уведомлений по ключу
// маршрутизации.
type Publisher interface {
	Publish(routingKey string, message any) error
}

// EventService реализует бизнес-логику событий. Publisher опционален,
// без него подтверждения по почте просто не отправляются.
type EventService struct {
	repo      EventRepository
	users     UserGetter
	publisher Publisher
	log       *slog.Logger
}

// NewEventService создает новый экземпляр EventService.
func NewEventService(repo EventRepository, users UserGetter, publisher Publisher, log *slog.Logger) *EventService {
	return &EventService{
		repo:      repo,
		users:     users,
		publisher: publisher,
		log:       log,
	}
}

// List возвращает опубликованные события с вычисленными полями.
//
// SpotsLeft ограничен снизу нулём даже при перебронировании, у событий
// без лимита остаётся nil. IsRegistered заполняется только при непустом
// filter.UserID.
func (s *EventService) List(ctx context.Context, filter models.EventFilter) ([]*models.EventListItem, error) {
	events, err := s.repo.ListEvents(ctx, filter)
	if err != nil {
		return nil, err
	}

	var registered map[string]struct{}
	if filter.UserID != "" {
		ids, err := s.repo.ListActiveRegistrationEventIDs(ctx, filter.UserID)
		if err != nil {
			return nil, err
		}
		registered = make(map[string]struct{}, len(ids))
		for _, id := range ids {
			registered[id] = struct{}{}
		}
	}

	for _, e := range events {
		e.Attendees = e.RegistrationCount
		if e.MaxAttendees != nil {
			left := *e.MaxAttendees - e.RegistrationCount
			if left < 0 {
				left = 0
			}
			e.SpotsLeft = &left
		}
		if registered != nil {
			_, e.IsRegistered = registered[e.ID]
		}
	}
	return events, nil
}

// Register регистрирует пользователя на событие и ставит в очередь письмо
// с подтверждением. Возвращает регистрацию и признак реактивации ранее
// отменённой записи.
func (s *EventService) Register(ctx context.Context, userID, eventID string) (*models.EventRegistration, bool, error) {
	reg, reactivated, err := s.repo.RegisterForEvent(ctx, eventID, userID, uuid.New().String(), time.Now().UTC())
	if err != nil {
		switch {
		case errors.Is(err, storage.ErrNotFound):
			return nil, false, ErrEventNotFound
		case errors.Is(err, storage.ErrNoCapacity):
			return nil, false, ErrEventFull
		case errors.Is(err, storage.ErrDuplicate):
			return nil, false, ErrAlreadyRegistered
		}
		return nil, false, err
	}

	s.log.Info("event registration",
		slog.String("user_id", userID),
		slog.String("event_id", eventID),
		slog.Bool("reactivated", reactivated))

	s.queueConfirmation(ctx, userID, eventID)

	return reg, reactivated, nil
}

// queueConfirmation отправляет сообщение о регистрации в брокер. Ошибки
// здесь не влияют на результат регистрации, только логируются.
func (s *EventService) queueConfirmation(ctx context.Context, userID, eventID string) {
	if s.publisher == nil {
		return
	}

	user, err := s.users.GetUser(ctx, userID)
	if err != nil || user == nil {
		s.log.Warn("failed to load user for confirmation", sl.Err(err))
		return
	}
	event, err := s.repo.GetEvent(ctx, eventID)
	if err != nil || event == nil {
		s.log.Warn("failed to load event for confirmation", sl.Err(err))
		return
	}

	info := models.RegistrationInfo{
		Email:      user.Email,
		Name:       user.Name,
		EventTitle: event.Title,
		StartDate:  event.StartDate,
		Location:   event.Location,
	}
	if err := s.publisher.Publish(rabbitmq.RegistrationKey, info); err != nil {
		s.log.Warn("failed to publish registration confirmation", sl.Err(err))
	}
}

// Cancel мягко отменяет активную регистрацию пользователя.
func (s *EventService) Cancel(ctx context.Context, userID, eventID string) (*models.EventRegistration, error) {
	reg, err := s.repo.CancelRegistration(ctx, eventID, userID, time.Now().UTC())
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, ErrRegistrationNotFound
		}
		return nil, err
	}

	s.log.Info("registration cancelled",
		slog.String("user_id", userID), slog.String("event_id", eventID))
	return reg, nil
}
