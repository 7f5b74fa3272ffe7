// Package models содержит доменные структуры платформы: пользователей, курсы,
// события, подписки и записи на курсы. Структуры используются в бизнес‑логике
// и при работе с хранилищем.
package models

import "time"

// User представляет зарегистрированного пользователя платформы.
type User struct {
	ID           string    `json:"id"`    // Уникальный идентификатор пользователя
	Email        string    `json:"email"` // Электронная почта (уникальная)
	Name         string    `json:"name"`  // Отображаемое имя
	PasswordHash string    `json:"-"`     // Хэш пароля пользователя
	Role         string    `json:"role"`  // Роль пользователя, admin или user
	CreatedAt    time.Time `json:"-"`
	UpdatedAt    time.Time `json:"-"`
}
