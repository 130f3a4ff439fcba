// Package repository реализует хранилище данных на основе PostgreSQL
// для приложения прогноза заказов. Предоставляет методы работы
// с пользователями, прогнозами, загруженными файлами и настройками.
package repository

import (
	"context"
	"errors"
	"fmt"

	// Регистрация драйвера pgx для использования с database/sql.
	_ "github.com/jackc/pgx/v5/stdlib"

	"database/sql"
)

// ErrUserExists возвращается при попытке зарегистрировать занятое имя пользователя.
// Уникальность гарантируется ограничением в базе, а не проверкой перед вставкой.
var ErrUserExists = errors.New("username already exists")

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
        WHERE table_name = 'predictions'
    )`).Scan(&exists)
	if err != nil || !exists {
		return fmt.Errorf("required table predictions missing or query error: %w", err)
	}
	return nil
}
