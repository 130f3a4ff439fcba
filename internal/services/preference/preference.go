// Package services содержит бизнес-логику настроек пользователя: сохранение,
// чтение актуальной версии и публикация события для воркера уведомлений.
package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jemin1834/orders-prediction/internal/lib/sl"
	"github.com/jemin1834/orders-prediction/internal/models"
)

// PreferenceRepository определяет методы для работы с настройками в хранилище.
type PreferenceRepository interface {
	CreatePreference(ctx context.Context, username, email string, notifications bool) (int, error)
	LatestPreferenceByUsername(ctx context.Context, username string) (*models.PreferenceRecord, error)
}

// Publisher определяет публикацию событий в брокер сообщений.
type Publisher interface {
	Publish(exchange, routingkey string, message any) error
}

// PreferenceService реализует бизнес-логику настроек.
type PreferenceService struct {
	repo      PreferenceRepository
	publisher Publisher
	log       *slog.Logger
}

// NewPreferenceService создает новый экземпляр PreferenceService.
func NewPreferenceService(repo PreferenceRepository, publisher Publisher, log *slog.Logger) *PreferenceService {
	return &PreferenceService{
		repo:      repo,
		publisher: publisher,
		log:       log,
	}
}

// Save сохраняет настройки пользователя. При включённых уведомлениях публикует
// событие для отправки письма-подтверждения; ошибка публикации не откатывает
// сохранение, настройки к этому моменту уже записаны.
func (s *PreferenceService) Save(ctx context.Context, username string, req models.DummyPreferenceRequest) (int, error) {
	const op = "services.preference.Save"

	id, err := s.repo.CreatePreference(ctx, username, req.Email, req.Notifications)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	s.log.Info("preferences saved",
		slog.Int("id", id),
		slog.String("username", username),
		slog.Bool("notifications", req.Notifications))

	if req.Notifications {
		event := models.PreferenceSavedEvent{
			Username: username,
			Email:    req.Email,
		}
		if err := s.publisher.Publish("notifications", "preferences.saved", event); err != nil {
			s.log.Error("failed to publish preference event", sl.Err(err))
		}
	}

	return id, nil
}

// Latest возвращает последние сохранённые настройки пользователя или nil,
// если пользователь ещё ничего не сохранял.
func (s *PreferenceService) Latest(ctx context.Context, username string) (*models.PreferenceRecord, error) {
	const op = "services.preference.Latest"

	record, err := s.repo.LatestPreferenceByUsername(ctx, username)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return record, nil
}
