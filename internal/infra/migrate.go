package infra

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"log/slog"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
)

//go:embed migrations/*.sql
var migrations embed.FS

const migrationsDir = "migrations"

// Migrator applies the embedded users schema with goose.
type Migrator struct {
	dsn string
	log *slog.Logger
}

// NewMigrator returns a migrator for the database at dsn.
func NewMigrator(dsn string, log *slog.Logger) (Migrator, error) {
	if dsn == "" {
		return Migrator{}, errors.New("empty database dsn")
	}
	if log == nil {
		log = slog.Default()
	}
	goose.SetBaseFS(migrations)
	if err := goose.SetDialect("postgres"); err != nil {
		return Migrator{}, fmt.Errorf("configure goose: %w", err)
	}
	return Migrator{dsn: dsn, log: log}, nil
}

// Up applies pending migrations.
func (m Migrator) Up(ctx context.Context) error {
	return m.withDB(ctx, func(db *sql.DB) error {
		m.log.Info("applying migrations")
		if err := goose.UpContext(ctx, db, migrationsDir); err != nil {
			return fmt.Errorf("apply migrations: %w", err)
		}
		m.log.Info("migrations applied")
		return nil
	})
}

// Status logs applied and pending migrations.
func (m Migrator) Status(ctx context.Context) error {
	return m.withDB(ctx, func(db *sql.DB) error {
		if err := goose.Status(db, migrationsDir); err != nil {
			return fmt.Errorf("migration status: %w", err)
		}
		return nil
	})
}

// Down rolls back to targetVersion, or one step when targetVersion is zero.
func (m Migrator) Down(ctx context.Context, targetVersion int64) error {
	return m.withDB(ctx, func(db *sql.DB) error {
		if targetVersion > 0 {
			m.log.Info("rolling back migrations", "target", targetVersion)
			if err := goose.DownToContext(ctx, db, migrationsDir, targetVersion); err != nil {
				return fmt.Errorf("rollback to version %d: %w", targetVersion, err)
			}
			return nil
		}
		m.log.Info("rolling back latest migration")
		if err := goose.DownContext(ctx, db, migrationsDir); err != nil {
			return fmt.Errorf("rollback latest migration: %w", err)
		}
		return nil
	})
}

func (m Migrator) withDB(ctx context.Context, fn func(*sql.DB) error) error {
	db, err := sql.Open("pgx", m.dsn)
	if err != nil {
		return fmt.Errorf("open sql connection: %w", err)
	}
	defer db.Close()

	if err := db.PingContext(ctx); err != nil {
		return fmt.Errorf("ping sql connection: %w", err)
	}
	return fn(db)
}
