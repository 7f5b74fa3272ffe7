// Package storage реализует хранилище данных на основе PostgreSQL
// для курсов, событий, подписок и записей пользователей. Предоставляет
// методы чтения и изменения записей, включая транзакционную регистрацию
// на события с проверкой вместимости.
package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	// Регистрация драйвера pgx для использования с database/sql.
	"github.com/jackc/pgx/v5/pgconn"
	_ "github.com/jackc/pgx/v5/stdlib"
)

// Ошибки уровня хранилища. Сервисы сопоставляют их со своими доменными
// ошибками через errors.Is.
var (
	// ErrNotFound — запрошенная строка отсутствует.
	ErrNotFound = errors.New("row not found")
	// ErrDuplicate — вставка нарушила уникальное ограничение.
	ErrDuplicate = errors.New("duplicate row")
	// ErrNoCapacity — у события не осталось свободных мест.
	ErrNoCapacity = errors.New("no capacity left")
)

// Storage инкапсулирует соединение с базой данных PostgreSQL.
type Storage struct {
	DB *sql.DB
}

// New создаёт подключение к PostgreSQL и проверяет его доступность.
func New(storageConnectionString string) (*Storage, error) {
	const op = "storage.New"

	db, err := sql.Open("pgx", storageConnectionString)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if err = db.PingContext(context.Background()); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &Storage{
		DB: db,
	}, nil
}

// CheckDatabaseReady проверяет готовность базы данных.
func (s *Storage) CheckDatabaseReady(ctx context.Context) error {
	var exists bool
	err := s.DB.QueryRowContext(ctx, `SELECT EXISTS (
        SELECT FROM information_schema.tables
        WHERE table_name = 'course'
    )`).Scan(&exists)
	if err != nil || !exists {
		return fmt.Errorf("required table course missing or query error: %w", err)
	}
	return nil
}

// isUniqueViolation распознает нарушение уникального ограничения (код 23505).
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
