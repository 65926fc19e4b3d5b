package main

import (
	"flag"

	"prized-pic/internal/config"
	"prized-pic/internal/db"
	"prized-pic/internal/logging"
)

func main() {
	filePath := flag.String("file", "contests.csv", "path to contests csv")
	migrateFirst := flag.Bool("migrate", false, "auto-migrate the schema before loading")
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

	conn, err := db.Open(cfg)
	if err != nil {
		logging.Log.WithError(err).Fatal("database connection failed")
	}
	defer db.Close(conn)

	if *migrateFirst {
		if err := db.Migrate(conn); err != nil {
			logging.Log.WithError(err).Fatal("schema migration failed")
		}
	}

	inserted, err := db.LoadContests(conn, *filePath)
	if err != nil {
		logging.Log.WithError(err).Fatal("failed to load contests")
	}
	logging.Log.WithField("file", *filePath).Infof("loaded %d new contests", inserted)
}
