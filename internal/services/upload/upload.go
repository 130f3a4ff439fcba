// Package services содержит бизнес-логику работы с загруженными таблицами:
// разбор CSV, сериализация в JSON для хранения и обратное восстановление.
package services

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/jemin1834/orders-prediction/internal/lib/sl"
	"github.com/jemin1834/orders-prediction/internal/lib/tabular"
	"github.com/jemin1834/orders-prediction/internal/models"
)

// UploadRepository определяет методы для работы с загрузками в хранилище.
type UploadRepository interface {
	CreateUpload(ctx context.Context, username, data string) (int, error)
	ListUploadsByUsername(ctx context.Context, username string) ([]*models.UploadRecord, error)
	ListUploadSummaries(ctx context.Context) ([]*models.UploadRecord, error)
	ClearUploads(ctx context.Context) (int64, error)
}

// UploadView представляет загрузку с уже восстановленной таблицей.
type UploadView struct {
	ID         int            `json:"id"`
	Username   string         `json:"username"`
	Table      *tabular.Table `json:"table"`
	UploadedAt string         `json:"uploaded_at"`
}

// UploadService реализует бизнес-логику загрузок.
type UploadService struct {
	repo UploadRepository
	log  *slog.Logger
}

// NewUploadService создает новый экземпляр UploadService.
func NewUploadService(repo UploadRepository, log *slog.Logger) *UploadService {
	return &UploadService{
		repo: repo,
		log:  log,
	}
}

// Save разбирает CSV из r, сериализует таблицу и сохраняет её за пользователем.
// Возвращает ID загрузки и разобранную таблицу для немедленного отображения.
func (s *UploadService) Save(ctx context.Context, username string, r io.Reader) (int, *tabular.Table, error) {
	const op = "services.upload.Save"

	table, err := tabular.ParseCSV(r)
	if err != nil {
		return 0, nil, fmt.Errorf("%s: %w", op, err)
	}

	data, err := table.Serialize()
	if err != nil {
		return 0, nil, fmt.Errorf("%s: %w", op, err)
	}

	id, err := s.repo.CreateUpload(ctx, username, data)
	if err != nil {
		return 0, nil, fmt.Errorf("%s: %w", op, err)
	}

	s.log.Info("upload stored",
		slog.Int("id", id),
		slog.String("username", username),
		slog.Int("rows", len(table.Rows)))
	return id, table, nil
}

// ListByUsername возвращает загрузки пользователя, восстанавливая таблицы из JSON.
// Записи с повреждёнными данными пропускаются с предупреждением в логе.
func (s *UploadService) ListByUsername(ctx context.Context, username string) ([]*UploadView, error) {
	const op = "services.upload.ListByUsername"

	records, err := s.repo.ListUploadsByUsername(ctx, username)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	views := make([]*UploadView, 0, len(records))
	for _, record := range records {
		table, err := tabular.Deserialize(record.Data)
		if err != nil {
			s.log.Warn("failed to deserialize stored upload",
				slog.Int("id", record.ID), sl.Err(err))
			continue
		}
		views = append(views, &UploadView{
			ID:         record.ID,
			Username:   record.Username,
			Table:      table,
			UploadedAt: record.UploadedAt.Format("2006-01-02 15:04:05"),
		})
	}
	return views, nil
}

// Summaries возвращает список всех загрузок без содержимого таблиц.
func (s *UploadService) Summaries(ctx context.Context) ([]*models.UploadRecord, error) {
	return s.repo.ListUploadSummaries(ctx)
}

// Clear удаляет все загрузки всех пользователей. Возвращает количество удалённых строк.
func (s *UploadService) Clear(ctx context.Context) (int64, error) {
	deleted, err := s.repo.ClearUploads(ctx)
	if err != nil {
		return 0, err
	}
	s.log.Info("uploads cleared", slog.Int64("deleted", deleted))
	return deleted, nil
}
