package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jemin1834/orders-prediction/internal/models"
)

// CreatePreference добавляет новую строку настроек пользователя и возвращает её ID.
// Таблица append-only: повторное сохранение не перезаписывает старые строки,
// актуальной считается последняя по saved_at.
func (s *Storage) CreatePreference(ctx context.Context, username, email string, notifications bool) (int, error) {
	const op = "storage.CreatePreference"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	var newID int
	query := `INSERT INTO preferences (username, email, notifications)
			  VALUES ($1, $2, $3) RETURNING id`
	if err := s.DB.QueryRowContext(ctx, query, username, email, notifications).Scan(&newID); err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return newID, nil
}

// LatestPreferenceByUsername возвращает последнюю сохранённую строку настроек
// пользователя или (nil, nil), если настройки ещё не сохранялись.
func (s *Storage) LatestPreferenceByUsername(ctx context.Context, username string) (*models.PreferenceRecord, error) {
	const op = "storage.LatestPreferenceByUsername"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT id, username, email, notifications, saved_at
			  FROM preferences
			  WHERE username = $1
			  ORDER BY saved_at DESC, id DESC
			  LIMIT 1`
	item := &models.PreferenceRecord{}
	row := s.DB.QueryRowContext(ctx, query, username)
	if err := row.Scan(&item.ID, &item.Username, &item.Email,
		&item.Notifications, &item.SavedAt); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return item, nil
}
