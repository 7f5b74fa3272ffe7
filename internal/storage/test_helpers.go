package storage

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

// TestDataFactory содержит методы для создания тестовых данных
type TestDataFactory struct {
	storage *Storage
}

// NewTestDataFactory создает новую фабрику тестовых данных
func NewTestDataFactory(storage *Storage) *TestDataFactory {
	return &TestDataFactory{storage: storage}
}

// CreateUser создает тестового пользователя и возвращает его ID
func (f *TestDataFactory) CreateUser(t *testing.T, email, name string) string {
	id := uuid.New().String()
	_, err := f.storage.DB.Exec(`INSERT INTO users (id, email, name, password_hash, role)
		VALUES ($1, $2, $3, $4, 'user')`,
		id, email, name, "test-hash")
	require.NoError(t, err)
	return id
}

// CreateCourse создает опубликованный курс с описаниями на обоих языках
func (f *TestDataFactory) CreateCourse(t *testing.T, slug, titleEn, titleRu string) int {
	var id int
	err := f.storage.DB.QueryRow(`INSERT INTO course (slug, lang, published)
		VALUES ($1, 'ru', now()) RETURNING id`, slug).Scan(&id)
	require.NoError(t, err)

	_, err = f.storage.DB.Exec(`INSERT INTO course_description (course_id, lang, title, description)
		VALUES ($1, 'en', $2, 'description'), ($1, 'ru', $3, 'описание')`,
		id, titleEn, titleRu)
	require.NoError(t, err)
	return id
}

// CreateLesson создает урок курса с описанием на обоих языках
func (f *TestDataFactory) CreateLesson(t *testing.T, courseID int, slug string, weight int, titleEn, titleRu string) int {
	var id int
	err := f.storage.DB.QueryRow(`INSERT INTO lesson (slug, course_id, weight)
		VALUES ($1, $2, $3) RETURNING id`, slug, courseID, weight).Scan(&id)
	require.NoError(t, err)

	_, err = f.storage.DB.Exec(`INSERT INTO lesson_description (lesson_id, lang, title, description)
		VALUES ($1, 'en', $2, 'description'), ($1, 'ru', $3, 'описание')`,
		id, titleEn, titleRu)
	require.NoError(t, err)
	return id
}

// CreateSubscription создает подписку пользователя
func (f *TestDataFactory) CreateSubscription(t *testing.T, userID, planType, status string, endDate *time.Time) string {
	id := uuid.New().String()
	_, err := f.storage.DB.Exec(`INSERT INTO subscription (id, user_id, plan_type, status, start_date, end_date)
		VALUES ($1, $2, $3, $4, now(), $5)`,
		id, userID, planType, status, endDate)
	require.NoError(t, err)
	return id
}

// CreateEvent создает опубликованное событие. maxAttendees == nil означает
// событие без лимита мест.
func (f *TestDataFactory) CreateEvent(t *testing.T, slug, eventType string, startDate time.Time, maxAttendees *int) string {
	id := uuid.New().String()
	_, err := f.storage.DB.Exec(`INSERT INTO event (id, title, slug, type, start_date, max_attendees, status)
		VALUES ($1, $2, $3, $4, $5, $6, 'published')`,
		id, "Event "+slug, slug, eventType, startDate, maxAttendees)
	require.NoError(t, err)
	return id
}

// CreateRegistration создает активную регистрацию на событие
func (f *TestDataFactory) CreateRegistration(t *testing.T, eventID, userID string) string {
	id := uuid.New().String()
	_, err := f.storage.DB.Exec(`INSERT INTO event_registration (id, event_id, user_id)
		VALUES ($1, $2, $3)`,
		id, eventID, userID)
	require.NoError(t, err)
	return id
}
