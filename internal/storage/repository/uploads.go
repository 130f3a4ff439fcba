package repository

import (
	"context"
	"fmt"

	"github.com/jemin1834/orders-prediction/internal/models"
)

// CreateUpload сохраняет сериализованную таблицу пользователя и возвращает ID записи.
func (s *Storage) CreateUpload(ctx context.Context, username, data string) (int, error) {
	const op = "storage.CreateUpload"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	var newID int
	query := `INSERT INTO uploads (username, data)
			  VALUES ($1, $2) RETURNING id`
	if err := s.DB.QueryRowContext(ctx, query, username, data).Scan(&newID); err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return newID, nil
}

// ListUploadsByUsername возвращает загрузки пользователя,
// отсортированные по убыванию времени загрузки.
func (s *Storage) ListUploadsByUsername(ctx context.Context, username string) ([]*models.UploadRecord, error) {
	const op = "storage.ListUploadsByUsername"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT id, username, data, uploaded_at
			  FROM uploads
			  WHERE username = $1
			  ORDER BY uploaded_at DESC`
	rows, err := s.DB.QueryContext(ctx, query, username)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var result []*models.UploadRecord
	for rows.Next() {
		item := &models.UploadRecord{}
		if err := rows.Scan(&item.ID, &item.Username, &item.Data, &item.UploadedAt); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

// ListUploadSummaries возвращает владельца и время каждой загрузки
// для обзорной таблицы администратора, без самих данных.
func (s *Storage) ListUploadSummaries(ctx context.Context) ([]*models.UploadRecord, error) {
	const op = "storage.ListUploadSummaries"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT id, username, uploaded_at
			  FROM uploads
			  ORDER BY uploaded_at DESC`
	rows, err := s.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var result []*models.UploadRecord
	for rows.Next() {
		item := &models.UploadRecord{}
		if err := rows.Scan(&item.ID, &item.Username, &item.UploadedAt); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

// ClearUploads удаляет загрузки всех пользователей и возвращает количество
// удалённых строк. Операция не ограничена одним пользователем,
// поэтому доступна только администратору.
func (s *Storage) ClearUploads(ctx context.Context) (int64, error) {
	const op = "storage.ClearUploads"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	result, err := s.DB.ExecContext(ctx, `DELETE FROM uploads`)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	deleted, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return deleted, nil
}
