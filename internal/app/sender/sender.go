// Package sender собирает воркер отправки email-уведомлений: подключение
// к RabbitMQ, SMTP-транспорт и подписку на очередь событий настроек.
package sender

import (
	"context"
	"log/slog"

	"github.com/streadway/amqp"

	"github.com/jemin1834/orders-prediction/internal/config"
	"github.com/jemin1834/orders-prediction/internal/lib/smtp"
	"github.com/jemin1834/orders-prediction/internal/rabbitmq"
	senderservice "github.com/jemin1834/orders-prediction/internal/services/sender"
)

// App инкапсулирует соединение с брокером и сервис отправки писем.
type App struct {
	conn          *amqp.Connection
	ch            *amqp.Channel
	senderService *senderservice.SenderService
	logger        *slog.Logger
}

// New создает воркер уведомлений.
func New(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	conn, err := rabbitmq.Connect(cfg.RabbitMQURL, cfg.RabbitMQMaxRetries, cfg.RabbitMQRetryDelay)
	if err != nil {
		return nil, err
	}

	ch, err := rabbitmq.SetupChannel(conn, rabbitmq.GetNotificationQueues())
	if err != nil {
		conn.Close()
		return nil, err
	}

	transport := smtp.NewTransport(cfg, logger)
	senderService := senderservice.NewSenderService(transport, logger)

	return &App{
		conn:          conn,
		ch:            ch,
		senderService: senderService,
		logger:        logger,
	}, nil
}

// Run запускает потребителя очереди и блокируется до отмены контекста.
func (a *App) Run(ctx context.Context) error {
	err := rabbitmq.ConsumerMessage(ctx, a.ch, "notification.preferences", a.senderService.SendPreferenceConfirmation)
	if err != nil {
		a.logger.Error("failed to start notification.preferences consumer", slog.Any("err", err))
		return err
	}

	<-ctx.Done()
	a.logger.Info("Sender service shutting down gracefully")

	if err := a.ch.Close(); err != nil {
		a.logger.Error("failed to close channel", slog.Any("err", err))
	}

	if err := a.conn.Close(); err != nil {
		a.logger.Error("failed to close connection", slog.Any("err", err))
	}

	return nil
}
