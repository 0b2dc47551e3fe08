package server

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"

	"github.com/acme/login-api/internal/config"
	"github.com/acme/login-api/internal/notification"
	"github.com/acme/login-api/internal/routes"
)

// Server wraps the Fiber application and the notification queue it feeds.
type Server struct {
	app           *fiber.App
	cfg           config.Config
	notifications notification.Queue
}

// New instantiates the HTTP server, starts notification delivery and delegates
// route wiring to routes.Setup. cache may be nil unless the redis backend is selected.
func New(cfg config.Config, db *pgxpool.Pool, cache *redis.Client, logger *slog.Logger) (*Server, error) {
	queue, err := NewNotificationQueue(cfg, cache, logger)
	if err != nil {
		return nil, err
	}

	app := fiber.New(fiber.Config{
		AppName:      cfg.AppName,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
	})

	deps := routes.Deps{Cfg: cfg, DB: db, Cache: cache, Logger: logger, Dispatcher: queue}
	if err := routes.Setup(app, deps); err != nil {
		_ = queue.Close(context.Background())
		return nil, err
	}

	return &Server{app: app, cfg: cfg, notifications: queue}, nil
}

// NewNotificationQueue builds the delivery backend selected by configuration.
func NewNotificationQueue(cfg config.Config, cache *redis.Client, logger *slog.Logger) (notification.Queue, error) {
	nc := cfg.Notification
	var notifier notification.Notifier = notification.NewHTTPNotifier(nc.URL, nc.Timeout)
	switch nc.Backend {
	case config.BackendRedis:
		if cache == nil {
			return nil, errors.New("redis notification backend requires a redis client")
		}
		return notification.NewRedisQueue(cache, notifier, logger, notification.RedisQueueOptions{
			Key:       nc.RedisKey,
			Workers:   nc.Workers,
			QueueSize: nc.QueueSize,
			Timeout:   nc.Timeout,
		}), nil
	case config.BackendLog:
		notifier = notification.NewLoggerNotifier(logger)
		fallthrough
	default:
		return notification.NewPool(notifier, logger, notification.PoolOptions{
			Workers:   nc.Workers,
			QueueSize: nc.QueueSize,
			Timeout:   nc.Timeout,
		}), nil
	}
}

// Listen starts the HTTP server.
func (s *Server) Listen() error {
	return s.app.Listen(s.cfg.Address())
}

// Shutdown stops accepting requests, then drains pending notifications within ctx.
func (s *Server) Shutdown(ctx context.Context) error {
	appErr := s.app.ShutdownWithContext(ctx)
	queueErr := s.notifications.Close(ctx)
	return errors.Join(appErr, queueErr)
}
