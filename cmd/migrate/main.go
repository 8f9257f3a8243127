package main

import (
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/fekuna/omnipos-repair-service/config"
	"github.com/fekuna/omnipos-repair-service/internal/database/postgres"
	"github.com/fekuna/omnipos-repair-service/internal/logger"
	"github.com/fekuna/omnipos-repair-service/migrations"
	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/pgx/v5"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

// Usage: migrate [-steps N] up|down|version
func main() {
	steps := flag.Int("steps", 0, "number of migrations to apply (0 = all)")
	flag.Parse()

	_ = godotenv.Load()
	cfg := config.LoadEnv()

	appLogger := logger.NewZapLogger(&logger.ZapLoggerConfig{
		IsDevelopment: cfg.IsDevelopment(),
		Encoding:      cfg.Logger.Encoding,
		Level:         cfg.Logger.Level,
	})
	defer appLogger.Sync()

	cmd := flag.Arg(0)
	if cmd == "" {
		cmd = "up"
	}

	if err := run(cfg, cmd, *steps, appLogger); err != nil {
		appLogger.Error("Migration failed", zap.String("command", cmd), zap.Error(err))
		os.Exit(1)
	}
}

func run(cfg *config.Config, cmd string, steps int, log logger.ZapLogger) error {
	src, err := iofs.New(migrations.FS, ".")
	if err != nil {
		return fmt.Errorf("open embedded migrations: %w", err)
	}

	pg := postgres.Config{
		Host:     cfg.Postgres.Host,
		Port:     cfg.Postgres.Port,
		User:     cfg.Postgres.User,
		Password: cfg.Postgres.Password,
		DBName:   cfg.Postgres.DBName,
		SSLMode:  cfg.Postgres.SSLMode,
	}
	m, err := migrate.NewWithSourceInstance("iofs", src, pg.URL("pgx5"))
	if err != nil {
		return fmt.Errorf("create migrator: %w", err)
	}
	defer m.Close()

	switch cmd {
	case "up":
		if steps > 0 {
			err = m.Steps(steps)
		} else {
			err = m.Up()
		}
	case "down":
		if steps > 0 {
			err = m.Steps(-steps)
		} else {
			err = m.Down()
		}
	case "version":
		version, dirty, verr := m.Version()
		if verr != nil && !errors.Is(verr, migrate.ErrNilVersion) {
			return verr
		}
		log.Info("Schema version", zap.Uint("version", version), zap.Bool("dirty", dirty))
		return nil
	default:
		return fmt.Errorf("unknown command %q", cmd)
	}

	if errors.Is(err, migrate.ErrNoChange) {
		log.Info("Schema already up to date")
		return nil
	}
	if err != nil {
		return err
	}
	log.Info("Migrations applied", zap.String("command", cmd), zap.String("db_name", cfg.Postgres.DBName))
	return nil
}
