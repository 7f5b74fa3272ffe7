// Package sender собирает приложение-воркер, которое читает очередь
// уведомлений и рассылает письма-подтверждения.
package sender

import (
	"context"
	"log/slog"

	"github.com/streadway/amqp"

	"github.com/altynpony/mediaschoolsandbox/internal/config"
	"github.com/altynpony/mediaschoolsandbox/internal/lib/rabbitmq"
	"github.com/altynpony/mediaschoolsandbox/internal/lib/smtp"
	senderservice "github.com/altynpony/mediaschoolsandbox/internal/services/sender"
)

// App инкапсулирует подключение к брокеру и сервис отправки писем.
type App struct {
	conn          *amqp.Connection
	ch            *amqp.Channel
	senderService *senderservice.SenderService
	logger        *slog.Logger
}

// New создает приложение: подключается к RabbitMQ, объявляет очереди
// и собирает сервис отправки.
func New(_ context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	conn, err := rabbitmq.Connect(cfg.RabbitMQURL, cfg.RabbitMQMaxRetries, cfg.RabbitMQRetryDelay)
	if err != nil {
		return nil, err
	}

	ch, err := rabbitmq.SetupChannel(conn, rabbitmq.GetNotificationQueues())
	if err != nil {
		_ = conn.Close()
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
	err := rabbitmq.ConsumerMessage(ctx, a.ch, rabbitmq.RegistrationQueue, a.senderService.SendRegistrationConfirmation)
	if err != nil {
		a.logger.Error("failed to start notification.registration consumer", slog.Any("err", err))
		return err
	}

	<-ctx.Done()
	a.logger.Info("sender service shutting down gracefully")

	if err := a.ch.Close(); err != nil {
		a.logger.Error("failed to close channel", slog.Any("err", err))
	}
	if err := a.conn.Close(); err != nil {
		a.logger.Error("failed to close connection", slog.Any("err", err))
	}
	return nil
}
