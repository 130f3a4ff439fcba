// Package ordersprediction собирает основное HTTP-приложение прогноза заказов:
// хранилище, миграции, кеш, артефакт модели, брокер сообщений и маршруты.
package ordersprediction

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi"
	"github.com/streadway/amqp"

	"github.com/jemin1834/orders-prediction/internal/cache"
	"github.com/jemin1834/orders-prediction/internal/config"
	"github.com/jemin1834/orders-prediction/internal/inference"
	customjwt "github.com/jemin1834/orders-prediction/internal/lib/jwt"
	"github.com/jemin1834/orders-prediction/internal/migrations"
	"github.com/jemin1834/orders-prediction/internal/rabbitmq"
	authservice "github.com/jemin1834/orders-prediction/internal/services/auth"
	predictionservice "github.com/jemin1834/orders-prediction/internal/services/prediction"
	preferenceservice "github.com/jemin1834/orders-prediction/internal/services/preference"
	uploadservice "github.com/jemin1834/orders-prediction/internal/services/upload"
	"github.com/jemin1834/orders-prediction/internal/storage/repository"
)

// App инкапсулирует HTTP-сервер и ресурсы, которые нужно закрыть при остановке.
type App struct {
	server *http.Server
	logger *slog.Logger
	db     *repository.Storage
	cache  *cache.Cache
	conn   *amqp.Connection
	ch     *amqp.Channel
}

// New создает приложение: подключает базу, применяет миграции, инициализирует
// кеш, загружает артефакт модели и собирает маршруты. Ошибка загрузки артефакта
// фатальна: без модели сервис не имеет смысла.
func New(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	db, err := repository.New(cfg.StorageConnectionString)
	if err != nil {
		return nil, err
	}
	if err = migrations.Run(db.DB, cfg.MigrationsPath); err != nil {
		return nil, err
	}

	cacheRedis, err := cache.InitServer(ctx, cfg.RedisConnection)
	if err != nil {
		return nil, err
	}

	model, err := inference.Load(cfg.ModelPath)
	if err != nil {
		return nil, err
	}
	logger.Info("model artifact loaded", slog.String("version", model.Version()))

	conn, err := rabbitmq.Connect(cfg.RabbitMQURL, cfg.RabbitMQMaxRetries, cfg.RabbitMQRetryDelay)
	if err != nil {
		return nil, err
	}
	ch, err := rabbitmq.SetupChannel(conn, rabbitmq.GetNotificationQueues())
	if err != nil {
		conn.Close()
		return nil, err
	}

	jwtMaker := customjwt.NewJWTMaker(cfg.JWTSecretKey, cfg.TokenTTL)
	authService := authservice.NewAuthService(db, jwtMaker, cacheRedis)
	predictionService := predictionservice.NewPredictionService(db, model, cacheRedis, logger)
	uploadService := uploadservice.NewUploadService(db, logger)
	preferenceService := preferenceservice.NewPreferenceService(db, rabbitmq.NewChannelPublisher(ch), logger)

	router := chi.NewRouter()
	RegisterRoutes(router, logger, db, model,
		authService, predictionService, uploadService, preferenceService)

	srv := &http.Server{
		Addr:         cfg.AddressHTTP,
		Handler:      router,
		ReadTimeout:  cfg.TimeoutHTTP,
		WriteTimeout: cfg.TimeoutHTTP,
		IdleTimeout:  cfg.IdleTimeout,
	}

	return &App{
		server: srv,
		logger: logger,
		db:     db,
		cache:  cacheRedis,
		conn:   conn,
		ch:     ch,
	}, nil
}

// Run запускает HTTP-сервер и завершает его корректно по отмене контекста.
func (a *App) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		a.logger.Info("HTTP server starting on", slog.String("address", a.server.Addr))
		err := a.server.ListenAndServe()
		if errors.Is(err, http.ErrServerClosed) {
			errCh <- nil
		} else {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		timeoutCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		a.logger.Info("shutting down HTTP server gracefully")
		err := a.server.Shutdown(timeoutCtx)
		if cerr := a.ch.Close(); cerr != nil {
			a.logger.Error("failed to close channel", slog.Any("err", cerr))
		}
		if cerr := a.conn.Close(); cerr != nil {
			a.logger.Error("failed to close connection", slog.Any("err", cerr))
		}
		a.db.DB.Close()
		return err
	}
}
