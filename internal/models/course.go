package models

import "time"

// Course представляет курс каталога вместе с локализованным описанием.
//
// Поле Archived в будущем или nil означает, что курс виден в каталоге.
type Course struct {
	ID          int        `json:"id"`
	Slug        string     `json:"slug"`
	Lang        string     `json:"lang"`
	Published   *time.Time `json:"published"`
	Archived    *time.Time `json:"-"`
	IsLive      bool       `json:"isLive"`
	Updated     *time.Time `json:"updated"`
	Title       string     `json:"title"`       // Локализованный заголовок
	Description string     `json:"description"` // Локализованное описание
}

// Lesson представляет урок курса с локализованным описанием.
type Lesson struct {
	ID          int    `json:"id"`
	Slug        string `json:"slug"`
	Weight      int    `json:"weight"`
	Title       string `json:"title"`
	Description string `json:"description"`
}

// CourseWithLessons — курс вместе со списком уроков, упорядоченных по весу.
type CourseWithLessons struct {
	Course
	Lessons []*Lesson `json:"lessons"`
}
