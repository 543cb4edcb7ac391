package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/squareboat/razorpay-cashier/internal/adapters/postgres"
	"github.com/squareboat/razorpay-cashier/internal/config"
	"github.com/squareboat/razorpay-cashier/internal/domain/ports"
	"github.com/squareboat/razorpay-cashier/pkg/logging"
)

var (
	flags   = flag.NewFlagSet("migrate", flag.ExitOnError)
	timeout = flags.Duration("timeout", 5*time.Minute, "maximum time to run the command")
)

func main() {
	flags.Usage = usage
	_ = flags.Parse(os.Args[1:])

	args := flags.Args()
	if len(args) < 1 {
		flags.Usage()
		return
	}
	command := args[0]

	cfg, err := config.LoadMigrationConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	zapLogger, err := logging.New(cfg.Logger.Level, cfg.Logger.Development)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = zapLogger.Sync() }()
	logger := logging.NewZapLogger(zapLogger)

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	poolCfg := postgres.DefaultPoolConfig(cfg.Database.ConnectionString())
	poolCfg.MaxConns = 2
	poolCfg.MinConns = 0

	pool, err := postgres.NewPool(ctx, poolCfg, logger)
	if err != nil {
		logger.Error("Failed to connect to database", ports.Err(err))
		os.Exit(1)
	}
	defer pool.Close()

	if err := postgres.RunMigrations(ctx, pool, command, logger, args[1:]...); err != nil {
		logger.Error("Migration command failed",
			ports.String("command", command),
			ports.Err(err))
		pool.Close()
		os.Exit(1)
	}
}

func usage() {
	fmt.Print(`Usage: migrate [-timeout 5m] COMMAND

Commands:
    up                   Migrate the DB to the most recent version available
    up-by-one            Migrate the DB up by 1
    up-to VERSION        Migrate the DB to a specific VERSION
    down                 Roll back the version by 1
    down-to VERSION      Roll back to a specific VERSION
    redo                 Re-run the latest migration
    reset                Roll back all migrations
    status               Dump the migration status for the current DB
    version              Print the current version of the database

Migrations are embedded in the binary; database settings come from DB_* variables.

Examples:
    migrate up
    migrate down
    migrate status
`)
}
