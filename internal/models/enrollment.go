package models

import "time"

// Enrollment представляет запись пользователя на курс.
// Пара (UserID, CourseID) уникальна; активная подписка требуется
// только в момент создания записи.
type Enrollment struct {
	ID          string     `json:"id"`
	UserID      string     `json:"userId"`
	CourseID    int        `json:"courseId"`
	EnrolledAt  time.Time  `json:"enrolledAt"`
	CompletedAt *time.Time `json:"completedAt"`
	Progress    int        `json:"progress"` // Прогресс прохождения, 0–100
}

// EnrollmentWithCourse — запись на курс вместе с данными курса для списка
// записей пользователя.
type EnrollmentWithCourse struct {
	ID          string     `json:"id"`
	CourseID    int        `json:"courseId"`
	EnrolledAt  time.Time  `json:"enrolledAt"`
	CompletedAt *time.Time `json:"completedAt"`
	Progress    int        `json:"progress"`
	CourseSlug  string     `json:"courseSlug"`
	IsLive      bool       `json:"isLive"`
}
