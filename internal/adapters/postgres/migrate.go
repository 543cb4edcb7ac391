package postgres

import (
	"context"
	"database/sql"
	"embed"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
	"github.com/squareboat/razorpay-cashier/internal/domain/ports"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

const migrationsDir = "migrations"

// Migrate applies all pending schema migrations
func Migrate(ctx context.Context, pool *pgxpool.Pool, logger ports.Logger) error {
	return RunMigrations(ctx, pool, "up", logger)
}

// RunMigrations runs a goose command (up, down, status, version, redo, reset, ...)
// against the embedded migrations.
func RunMigrations(ctx context.Context, pool *pgxpool.Pool, command string, logger ports.Logger, args ...string) error {
	// goose speaks database/sql; share the pool's connections through the stdlib bridge
	db := stdlib.OpenDBFromPool(pool)
	defer func(db *sql.DB) {
		if err := db.Close(); err != nil {
			logger.Error("Failed to close migration connection", ports.Err(err))
		}
	}(db)

	goose.SetBaseFS(migrationsFS)
	goose.SetLogger(&gooseLogger{logger: logger})

	if err := goose.SetDialect("postgres"); err != nil {
		return fmt.Errorf("set goose dialect: %w", err)
	}

	if err := goose.RunContext(ctx, command, db, migrationsDir, args...); err != nil {
		return fmt.Errorf("goose %s: %w", command, err)
	}
	return nil
}

// gooseLogger routes goose's printf logging through the application logger
type gooseLogger struct {
	logger ports.Logger
}

func (l *gooseLogger) Fatalf(format string, v ...interface{}) {
	l.logger.Error(fmt.Sprintf(format, v...))
}

func (l *gooseLogger) Printf(format string, v ...interface{}) {
	l.logger.Info(fmt.Sprintf(format, v...))
}
