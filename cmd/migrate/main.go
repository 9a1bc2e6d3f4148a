package main

import (
	"errors"
	"flag"
	"fmt"
	"path/filepath"

	"storefront-be/internal/config"
	"storefront-be/internal/db"
	"storefront-be/internal/logger"

	"github.com/golang-migrate/migrate/v4"
	mpg "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"go.uber.org/zap"
)

// migrator is the subset of *migrate.Migrate this command drives.
type migrator interface {
	Up() error
	Steps(n int) error
	Version() (version uint, dirty bool, err error)
}

func main() {
	mode := flag.String("mode", "up", "migration mode: up, down or version")
	flag.Parse()

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.L().Fatal("failed to load config", zap.Error(err))
	}
	if err := logger.Init(cfg.AppEnv, cfg.LogLevel); err != nil {
		logger.L().Fatal("failed to initialize logger", zap.Error(err))
	}
	defer logger.Sync()

	database, err := db.NewDatabase(cfg)
	if err != nil {
		logger.L().Fatal("failed to connect to database", zap.Error(err))
	}
	defer database.Close()

	dir, err := filepath.Abs(cfg.MigrationsDir)
	if err != nil {
		logger.L().Fatal("invalid migrations dir", zap.Error(err))
	}

	driver, err := mpg.WithInstance(database, &mpg.Config{})
	if err != nil {
		logger.L().Fatal("failed to create migrate driver", zap.Error(err))
	}
	m, err := migrate.NewWithDatabaseInstance("file://"+dir, "postgres", driver)
	if err != nil {
		logger.L().Fatal("failed to load migrations", zap.String("dir", dir), zap.Error(err))
	}

	if err := run(m, *mode); err != nil {
		logger.L().Fatal("migration failed", zap.String("mode", *mode), zap.Error(err))
	}
}

// run applies all pending migrations for "up" and rolls back only the most
// recent one for "down".
func run(m migrator, mode string) error {
	log := logger.L().With(zap.String("mode", mode))

	switch mode {
	case "up":
		if err := m.Up(); err != nil {
			if errors.Is(err, migrate.ErrNoChange) {
				log.Info("no new migrations to apply")
				return nil
			}
			return fmt.Errorf("failed to apply migrations: %w", err)
		}
	case "down":
		if _, _, err := m.Version(); errors.Is(err, migrate.ErrNilVersion) {
			log.Info("no migrations to roll back")
			return nil
		}
		if err := m.Steps(-1); err != nil {
			return fmt.Errorf("failed to roll back migration: %w", err)
		}
	case "version":
	default:
		return fmt.Errorf("unknown mode: %s (use 'up', 'down' or 'version')", mode)
	}

	version, dirty, err := m.Version()
	if err != nil && !errors.Is(err, migrate.ErrNilVersion) {
		return fmt.Errorf("failed to read migration version: %w", err)
	}
	log.Info("migrations at version", zap.Uint("version", version), zap.Bool("dirty", dirty))
	return nil
}
