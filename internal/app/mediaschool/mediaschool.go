// Package mediaschool собирает основное HTTP-приложение платформы:
// хранилище, кеш, брокер уведомлений, сервисы и маршруты.
package mediaschool

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi"
	"github.com/streadway/amqp"

	"github.com/altynpony/mediaschoolsandbox/internal/cache"
	"github.com/altynpony/mediaschoolsandbox/internal/config"
	"github.com/altynpony/mediaschoolsandbox/internal/lib/jwt"
	"github.com/altynpony/mediaschoolsandbox/internal/lib/rabbitmq"
	"github.com/altynpony/mediaschoolsandbox/internal/lib/sl"
	"github.com/altynpony/mediaschoolsandbox/internal/migrations"
	authservice "github.com/altynpony/mediaschoolsandbox/internal/services/auth"
	courseservice "github.com/altynpony/mediaschoolsandbox/internal/services/course"
	enrollmentservice "github.com/altynpony/mediaschoolsandbox/internal/services/enrollment"
	eventservice "github.com/altynpony/mediaschoolsandbox/internal/services/event"
	subscriptionservice "github.com/altynpony/mediaschoolsandbox/internal/services/subscription"
	"github.com/altynpony/mediaschoolsandbox/internal/storage"
)

// App инкапсулирует HTTP-сервер и внешние подключения приложения.
type App struct {
	server *http.Server
	logger *slog.Logger
	db     *storage.Storage
	conn   *amqp.Connection
	ch     *amqp.Channel
}

// rabbitPublisher адаптирует канал RabbitMQ под интерфейс публикации
// сервиса событий.
type rabbitPublisher struct {
	ch *amqp.Channel
}

func (p *rabbitPublisher) Publish(routingKey string, message any) error {
	return rabbitmq.PublishNotification(p.ch, routingKey, message)
}

// New создает приложение: подключается к PostgreSQL, применяет миграции,
// инициализирует Redis и RabbitMQ, собирает сервисы и маршруты.
//
// Брокер уведомлений не обязателен для работы API: при недоступном
// RabbitMQ приложение стартует без отправки писем-подтверждений.
func New(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	db, err := storage.New(cfg.StorageConnectionString)
	if err != nil {
		return nil, err
	}
	if err = migrations.Run(db.DB, "./migrations"); err != nil {
		return nil, err
	}

	cacheRedis, err := cache.InitServer(ctx, cfg.RedisConnection)
	if err != nil {
		return nil, err
	}

	var conn *amqp.Connection
	var ch *amqp.Channel
	var publisher eventservice.Publisher
	conn, err = rabbitmq.Connect(cfg.RabbitMQURL, cfg.RabbitMQMaxRetries, cfg.RabbitMQRetryDelay)
	if err != nil {
		logger.Warn("rabbitmq unavailable, confirmation emails disabled", sl.Err(err))
	} else {
		ch, err = rabbitmq.SetupChannel(conn, rabbitmq.GetNotificationQueues())
		if err != nil {
			return nil, err
		}
		publisher = &rabbitPublisher{ch: ch}
	}

	jwtMaker := jwt.NewJWTMaker(cfg.JWTSecretKey, cfg.TokenTTL)

	authService := authservice.NewAuthService(db, jwtMaker)
	subscriptionService := subscriptionservice.NewSubscriptionService(db, logger)
	courseService := courseservice.NewCourseService(db, cacheRedis, logger)
	enrollmentService := enrollmentservice.NewEnrollmentService(db, subscriptionService, logger)
	eventService := eventservice.NewEventService(db, db, publisher, logger)

	router := chi.NewRouter()
	RegisterRoutes(router, logger, cfg, db,
		authService, subscriptionService, courseService, enrollmentService, eventService)

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
		conn:   conn,
		ch:     ch,
	}, nil
}

// Run запускает HTTP-сервер и останавливает его при отмене контекста.
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
		if a.ch != nil {
			_ = a.ch.Close()
		}
		if a.conn != nil {
			_ = a.conn.Close()
		}
		_ = a.db.DB.Close()
		return err
	}
}
