package main

import (
	"errors"
	"flag"

	"prized-pic/internal/config"
	"prized-pic/internal/logging"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
)

func main() {
	dir := flag.String("dir", "db/migrations", "migrations directory")
	down := flag.Bool("down", false, "roll back the most recent migration")
	flag.Parse()

	dotenvErr := config.LoadDotEnv(".env")
	cfg := config.Load()
	logging.Bootstrap(cfg.LogLevel)
	if dotenvErr != nil {
		logging.Log.WithError(dotenvErr).Warn("failed to load .env")
	}
	if cfg.DatabaseURL == "" {
		logging.Log.Fatal("DATABASE_URL is not set")
	}

	m, err := migrate.New("file://"+*dir, cfg.DatabaseURL)
	if err != nil {
		logging.Log.WithError(err).Fatal("migration setup failed")
	}
	defer m.Close()

	if *down {
		err = m.Steps(-1)
	} else {
		err = m.Up()
	}
	if err != nil && !errors.Is(err, migrate.ErrNoChange) {
		logging.Log.WithError(err).Fatal("database migration failed")
	}
	version, dirty, _ := m.Version()
	logging.Log.WithField("version", version).WithField("dirty", dirty).Info("database migrations applied")
}
