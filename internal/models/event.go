package models

import "time"

// Типы событий платформы.
const (
	EventTypeMeetup     = "meetup"
	EventTypeWorkshop   = "workshop"
	EventTypeLiveLesson = "live_lesson"
	EventTypeConference = "conference"
)

// EventStatusPublished — только опубликованные события видны в списках.
const EventStatusPublished = "published"

// Event представляет событие платформы: митап, воркшоп, живой урок или конференцию.
// MaxAttendees == nil означает отсутствие ограничения по количеству участников.
type Event struct {
	ID           string     `json:"id"`
	Title        string     `json:"title"`
	Slug         string     `json:"slug"`
	Type         string     `json:"type"`
	Description  string     `json:"description"`
	StartDate    time.Time  `json:"startDate"`
	EndDate      *time.Time `json:"endDate"`
	Location     string     `json:"location"`
	IsOnline     bool       `json:"isOnline"`
	MeetingURL   *string    `json:"meetingUrl"`
	MaxAttendees *int       `json:"maxAttendees"`
	Price        string     `json:"price"`
	ImageURL     *string    `json:"imageUrl"`
	Status       string     `json:"-"`
}

// EventListItem — событие в списке вместе с вычисленными полями:
// количеством активных регистраций, свободными местами (nil — без лимита,
// никогда не отрицательное) и признаком регистрации текущего пользователя.
type EventListItem struct {
	Event
	RegistrationCount int  `json:"registrationCount"`
	SpotsLeft         *int `json:"spotsLeft"`
	IsRegistered      bool `json:"isRegistered"`
	Attendees         int  `json:"attendees"`
}

// EventFilter описывает фильтры списка событий. UserID заполняется только
// после проверки, что он совпадает с пользователем текущей сессии.
type EventFilter struct {
	Type         string
	UpcomingOnly bool
	UserID       string
}

// EventRegistration представляет регистрацию пользователя на событие.
// Регистрация с CancelledAt == nil считается активной; отмена — мягкая,
// повторная регистрация очищает CancelledAt вместо вставки новой строки.
type EventRegistration struct {
	ID           string     `json:"id"`
	EventID      string     `json:"eventId"`
	UserID       string     `json:"userId"`
	RegisteredAt time.Time  `json:"registeredAt"`
	Attended     bool       `json:"attended"`
	CancelledAt  *time.Time `json:"cancelledAt"`
}

// RegistrationInfo — сообщение для очереди уведомлений о подтверждении
// регистрации на событие.
type RegistrationInfo struct {
	Email      string    `json:"email"`
	Name       string    `json:"name"`
	EventTitle string    `json:"event_title"`
	StartDate  time.Time `json:"start_date"`
	Location   string    `json:"location"`
}
