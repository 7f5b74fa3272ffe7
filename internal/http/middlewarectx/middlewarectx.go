// Package middlewarectx содержит middleware аутентификации и ограничения
// частоты запросов, а также ключи контекста с данными сессии.
package middlewarectx

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/altynpony/mediaschoolsandbox/internal/http/response"
	"github.com/altynpony/mediaschoolsandbox/internal/lib/sl"
	"github.com/altynpony/mediaschoolsandbox/internal/models"
)

// Key тип ключа контекста запроса.
type Key string

// Ключи контекста с данными пользователя текущей сессии.
const (
	UserIDKey    Key = "user_id"
	UserEmailKey Key = "user_email"
	UserNameKey  Key = "user_name"
	UserRoleKey  Key = "user_role"
)

// Service проверяет токен сессии и возвращает пользователя.
type Service interface {
	ValidateToken(ctx context.Context, token string) (*models.User, error)
}

// JWTMiddleware извлекает Bearer токен, валидирует его и кладет данные
// пользователя в контекст запроса. Без валидного токена запрос завершается
// кодом 401.
func JWTMiddleware(service Service, log *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := BearerToken(r)
			if token == "" {
				render.Status(r, http.StatusUnauthorized)
				render.JSON(w, r, response.Error("Unauthorized"))
				return
			}

			user, err := service.ValidateToken(r.Context(), token)
			if err != nil {
				log.Warn("invalid session token",
					sl.Err(err),
					slog.String("request_id", middleware.GetReqID(r.Context())))
				render.Status(r, http.StatusUnauthorized)
				render.JSON(w, r, response.Error("Unauthorized"))
				return
			}

			ctx := context.WithValue(r.Context(), UserIDKey, user.ID)
			ctx = context.WithValue(ctx, UserEmailKey, user.Email)
			ctx = context.WithValue(ctx, UserNameKey, user.Name)
			ctx = context.WithValue(ctx, UserRoleKey, user.Role)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// OptionalJWTMiddleware работает как JWTMiddleware, но пропускает запрос
// дальше и без токена. Невалидный токен просто игнорируется, данные сессии
// в контекст при этом не попадают.
func OptionalJWTMiddleware(service Service, log *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := BearerToken(r)
			if token == "" {
				next.ServeHTTP(w, r)
				return
			}

			user, err := service.ValidateToken(r.Context(), token)
			if err != nil {
				log.Debug("ignoring invalid session token",
					sl.Err(err),
					slog.String("request_id", middleware.GetReqID(r.Context())))
				next.ServeHTTP(w, r)
				return
			}

			ctx := context.WithValue(r.Context(), UserIDKey, user.ID)
			ctx = context.WithValue(ctx, UserEmailKey, user.Email)
			ctx = context.WithValue(ctx, UserNameKey, user.Name)
			ctx = context.WithValue(ctx, UserRoleKey, user.Role)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// BearerToken извлекает токен из заголовка Authorization.
func BearerToken(r *http.Request) string {
	header := r.Header.Get("Authorization")
	if header == "" {
		return ""
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}

// UserID возвращает идентификатор пользователя текущей сессии из контекста.
func UserID(ctx context.Context) string {
	id, _ := ctx.Value(UserIDKey).(string)
	return id
}
