package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/goodnatureofminers/pegaudit-backend/internal/peg/repository/sqlite"
	"github.com/jessevdk/go-flags"
)

type config struct {
	SQLiteDSN     string `long:"sqlite-dsn" env:"MIGRATIONS_SQLITE_DSN" default:"pegaudit.db" description:"SQLite database path"`
	MigrationsDir string `long:"migrations-dir" env:"MIGRATIONS_DIR" default:"migrations/sqlite" description:"Path to SQLite migration files"`
	Down          bool   `long:"down" description:"revert every applied migration instead of applying pending ones"`
}

func main() {
	cfg := config{}
	if _, err := flags.Parse(&cfg); err != nil {
		var ferr *flags.Error
		if errors.As(err, &ferr) && ferr.Type == flags.ErrHelp {
			return
		}
		log.Fatalf("failed to parse flags: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := runMigrations(ctx, cfg); err != nil {
		log.Fatalf("migration run failed: %v", err)
	}
}

func runMigrations(ctx context.Context, cfg config) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	info, err := os.Stat(cfg.MigrationsDir)
	if err != nil {
		return fmt.Errorf("stat migrations dir %s: %w", cfg.MigrationsDir, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("%s is not a directory", cfg.MigrationsDir)
	}

	if cfg.Down {
		if err := sqlite.MigrateDown(cfg.MigrationsDir, cfg.SQLiteDSN); err != nil {
			return err
		}
		log.Println("migrations reverted successfully")
		return nil
	}

	applied, err := sqlite.MigrateUp(cfg.MigrationsDir, cfg.SQLiteDSN)
	if err != nil {
		return err
	}
	if !applied {
		log.Println("no migrations to apply")
		return nil
	}
	log.Println("migrations applied successfully")
	return nil
}
