package routes

import (
	"fmt"
	"log/slog"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"

	"github.com/acme/login-api/internal/auth"
	"github.com/acme/login-api/internal/config"
	"github.com/acme/login-api/internal/identity"
	"github.com/acme/login-api/internal/middleware"
	"github.com/acme/login-api/internal/notification"
)

// Deps aggregates shared dependencies required to wire routes.
type Deps struct {
	Cfg        config.Config
	DB         *pgxpool.Pool
	Cache      *redis.Client
	Logger     *slog.Logger
	Dispatcher notification.Dispatcher
	// Users overrides the store selected from DB. Tests use it to seed records.
	Users identity.Repository
}

// Setup configures middlewares and all application routes.
func Setup(app *fiber.App, d Deps) error {
	if d.DB == nil && d.Users == nil && !d.Cfg.IsDev() {
		return fmt.Errorf("database is required when APP_ENV=%s", d.Cfg.AppEnv)
	}

	app.Use(recover.New())
	app.Use(middleware.RequestID())
	app.Use(middleware.Audit(d.Logger))

	RegisterHealthRoutes(app, d)

	users := d.Users
	if users == nil {
		if d.DB != nil {
			users = identity.NewPostgresRepository(d.DB)
		} else {
			d.Logger.Warn("DATABASE_URL not set; using in-memory user store")
			users = identity.NewMemoryRepository()
		}
	}

	authSvc, err := auth.NewService(users, d.Dispatcher, d.Logger, d.Cfg.BcryptCost)
	if err != nil {
		return err
	}
	RegisterAuthRoutes(app, auth.NewHandler(authSvc, d.Logger))

	return nil
}
