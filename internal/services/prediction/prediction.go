// Package services содержит бизнес-логику прогноза заказов: построение вектора
// признаков, вызов модели, сохранение результата и кеширование последних прогнозов.
package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/jemin1834/orders-prediction/internal/lib/features"
	"github.com/jemin1834/orders-prediction/internal/models"
)

var (
	predictionsGenerated = promauto.NewCounter(prometheus.CounterOpts{
		Name: "orders_prediction_predictions_generated_total",
		Help: "Total number of predictions computed.",
	})
	predictionsStored = promauto.NewCounter(prometheus.CounterOpts{
		Name: "orders_prediction_predictions_stored_total",
		Help: "Total number of predictions stored in DB.",
	})
	predictionsFailed = promauto.NewCounter(prometheus.CounterOpts{
		Name: "orders_prediction_predictions_failed_total",
		Help: "Total number of prediction failures.",
	})
)

// Кешируется только лента с лимитом по умолчанию: именно её запрашивает
// страница прогнозов после каждого сохранения.
const (
	recentCacheKey     = "predictions:recent"
	DefaultRecentLimit = 5
)

// PredictionRepository определяет методы для работы с прогнозами в хранилище.
type PredictionRepository interface {
	// CreatePrediction добавляет прогноз и возвращает его ID.
	CreatePrediction(ctx context.Context, record models.PredictionRecord) (int, error)
	// ListRecentPredictions возвращает последние прогнозы по убыванию времени.
	ListRecentPredictions(ctx context.Context, limit int) ([]*models.PredictionRecord, error)
	// ListAllPredictions возвращает полный журнал прогнозов.
	ListAllPredictions(ctx context.Context) ([]*models.PredictionRecord, error)
	// ClearPredictions удаляет все прогнозы.
	ClearPredictions(ctx context.Context) (int64, error)
}

// Predictor описывает модель, возвращающую прогноз по вектору признаков.
type Predictor interface {
	Predict(v features.Vector) int
}

// Cache описывает методы для кэширования данных.
type Cache interface {
	Get(key string, result any) (bool, error)
	Set(key string, value any, expiration time.Duration) error
	Invalidate(key string) error
}

// PredictionService реализует бизнес-логику прогнозов, включая кеширование.
type PredictionService struct {
	repo  PredictionRepository
	model Predictor
	cache Cache
	log   *slog.Logger
}

// NewPredictionService создает новый экземпляр PredictionService.
func NewPredictionService(repo PredictionRepository, model Predictor, cache Cache, log *slog.Logger) *PredictionService {
	return &PredictionService{
		repo:  repo,
		model: model,
		cache: cache,
		log:   log,
	}
}

// Predict строит вектор признаков, выполняет прогноз и сохраняет запись
// с текущей меткой времени. Возвращает сохранённую запись.
func (s *PredictionService) Predict(ctx context.Context, username string, req models.DummyPredictionRequest) (*models.PredictionRecord, error) {
	date, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		return nil, fmt.Errorf("invalid date: %w", err)
	}

	vector := features.Derive(req.StoreType, req.LocationType, req.RegionCode, req.Discount, date)
	predicted := s.model.Predict(vector)
	predictionsGenerated.Inc()

	record := models.PredictionRecord{
		Username:        username,
		StoreID:         vector.StoreID,
		StoreType:       vector.StoreType,
		LocationType:    vector.LocationType,
		RegionCode:      vector.RegionCode,
		Holiday:         vector.Holiday,
		Discount:        vector.Discount,
		Sales:           vector.Sales,
		Year:            vector.Year,
		Month:           vector.Month,
		Day:             vector.Day,
		Week:            vector.Week,
		PredictedOrders: predicted,
		CreatedAt:       time.Now().UTC(),
	}

	id, err := s.repo.CreatePrediction(ctx, record)
	if err != nil {
		predictionsFailed.Inc()
		return nil, err
	}
	record.ID = id
	predictionsStored.Inc()

	s.log.Info("prediction stored",
		slog.Int("id", id),
		slog.Int("predicted_orders", predicted))

	if err := s.cache.Invalidate(recentCacheKey); err != nil {
		s.log.Warn("failed to invalidate recent predictions cache", slog.Any("err", err))
	}

	return &record, nil
}

// Recent возвращает последние limit прогнозов, используя кеш или репозиторий.
// Нестандартные лимиты читаются напрямую из базы, мимо кеша.
func (s *PredictionService) Recent(ctx context.Context, limit int) ([]*models.PredictionRecord, error) {
	if limit != DefaultRecentLimit {
		return s.repo.ListRecentPredictions(ctx, limit)
	}

	var result []*models.PredictionRecord
	found, err := s.cache.Get(recentCacheKey, &result)
	if err != nil {
		s.log.Warn("failed to read recent predictions cache", slog.Any("err", err))
	}
	if found {
		return result, nil
	}

	result, err = s.repo.ListRecentPredictions(ctx, limit)
	if err != nil {
		return nil, err
	}

	if err := s.cache.Set(recentCacheKey, result, time.Minute); err != nil {
		s.log.Warn("failed to cache recent predictions", slog.String("key", recentCacheKey), slog.Any("err", err))
	}
	return result, nil
}

// All возвращает полный журнал прогнозов для выгрузки администратором.
func (s *PredictionService) All(ctx context.Context) ([]*models.PredictionRecord, error) {
	return s.repo.ListAllPredictions(ctx)
}

// Clear удаляет все прогнозы и инвалидирует кеш. Возвращает количество удалённых строк.
func (s *PredictionService) Clear(ctx context.Context) (int64, error) {
	if err := s.cache.Invalidate(recentCacheKey); err != nil {
		s.log.Warn("failed to invalidate recent predictions cache", slog.Any("err", err))
	}

	deleted, err := s.repo.ClearPredictions(ctx)
	if err != nil {
		return 0, err
	}
	s.log.Info("predictions cleared", slog.Int64("deleted", deleted))
	return deleted, nil
}
