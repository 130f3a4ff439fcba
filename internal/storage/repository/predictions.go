package repository

import (
	"context"
	"fmt"

	"github.com/jemin1834/orders-prediction/internal/models"
)

// CreatePrediction сохраняет прогноз вместе с вектором признаков и возвращает его ID.
func (s *Storage) CreatePrediction(ctx context.Context, record models.PredictionRecord) (int, error) {
	const op = "storage.CreatePrediction"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	var newID int
	query := `INSERT INTO predictions (username, store_id, store_type, location_type,
			      region_code, holiday, discount, sales, year, month, day, week,
			      predicted_orders, created_at)
			  VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
			  RETURNING id;`
	if err := s.DB.QueryRowContext(ctx, query,
		record.Username, record.StoreID, record.StoreType, record.LocationType,
		record.RegionCode, record.Holiday, record.Discount, record.Sales,
		record.Year, record.Month, record.Day, record.Week,
		record.PredictedOrders, record.CreatedAt).Scan(&newID); err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return newID, nil
}

// ListRecentPredictions возвращает последние прогнозы,
// отсортированные по убыванию времени создания.
func (s *Storage) ListRecentPredictions(ctx context.Context, limit int) ([]*models.PredictionRecord, error) {
	const op = "storage.ListRecentPredictions"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT id, username, store_id, store_type, location_type, region_code,
			      holiday, discount, sales, year, month, day, week,
			      predicted_orders, created_at
			  FROM predictions
			  ORDER BY created_at DESC
			  LIMIT $1`
	rows, err := s.DB.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var result []*models.PredictionRecord
	for rows.Next() {
		item := &models.PredictionRecord{}
		if err := rows.Scan(&item.ID, &item.Username, &item.StoreID, &item.StoreType,
			&item.LocationType, &item.RegionCode, &item.Holiday, &item.Discount,
			&item.Sales, &item.Year, &item.Month, &item.Day, &item.Week,
			&item.PredictedOrders, &item.CreatedAt); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

// ListAllPredictions возвращает полный журнал прогнозов для выгрузки администратором,
// отсортированный по убыванию времени создания.
func (s *Storage) ListAllPredictions(ctx context.Context) ([]*models.PredictionRecord, error) {
	const op = "storage.ListAllPredictions"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT id, username, store_id, store_type, location_type, region_code,
			      holiday, discount, sales, year, month, day, week,
			      predicted_orders, created_at
			  FROM predictions
			  ORDER BY created_at DESC`
	rows, err := s.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var result []*models.PredictionRecord
	for rows.Next() {
		item := &models.PredictionRecord{}
		if err := rows.Scan(&item.ID, &item.Username, &item.StoreID, &item.StoreType,
			&item.LocationType, &item.RegionCode, &item.Holiday, &item.Discount,
			&item.Sales, &item.Year, &item.Month, &item.Day, &item.Week,
			&item.PredictedOrders, &item.CreatedAt); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

// ClearPredictions удаляет все прогнозы и возвращает количество удалённых строк.
// Операция необратима и доступна только администратору.
func (s *Storage) ClearPredictions(ctx context.Context) (int64, error) {
	const op = "storage.ClearPredictions"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	result, err := s.DB.ExecContext(ctx, `DELETE FROM predictions`)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	deleted, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return deleted, nil
}
