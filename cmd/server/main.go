package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"prized-pic/internal/config"
	"prized-pic/internal/db"
	"prized-pic/internal/logging"
	"prized-pic/internal/server"
	"prized-pic/internal/signing"
	"prized-pic/internal/store"
	"prized-pic/internal/voting"

	"github.com/gin-gonic/gin"
)

func main() {
	dotenvErr := config.LoadDotEnv(".env")
	cfg := config.Load()
	logging.Bootstrap(cfg.LogLevel)
	if dotenvErr != nil {
		logging.Log.WithError(dotenvErr).Warn("failed to load .env")
	}
	gin.SetMode(cfg.GinMode)

	st, err := openStore(cfg)
	if err != nil {
		logging.Log.WithError(err).Fatal("store setup failed")
	}
	defer func() {
		if err := st.Close(); err != nil {
			logging.Log.WithError(err).Warn("store close failed")
		}
	}()

	signer := signing.NewSigner(signing.Credentials{
		CloudName: cfg.CloudinaryCloudName,
		APIKey:    cfg.CloudinaryAPIKey,
		APISecret: cfg.CloudinaryAPISecret,
	}, cfg.UploadFolder, nil)
	if !cfg.UploadsConfigured() {
		logging.Log.Warn("CLOUDINARY_* not set; uploads disabled")
	}

	svc := voting.NewService(st, nil)
	if cfg.DatabaseURL == "" && cfg.ContestsFile != "" {
		added, err := seedContests(svc, cfg.ContestsFile)
		if err != nil {
			logging.Log.WithError(err).Fatal("contest seeding failed")
		}
		logging.Log.WithField("file", cfg.ContestsFile).Infof("seeded %d contests", added)
	}

	srv := server.New(svc, signer, cfg)
	httpServer := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           srv.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		logging.Log.Infof("prized-pic server listening on %s", httpServer.Addr)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logging.Log.WithError(err).Fatal("server failed")
		}
	}()

	<-ctx.Done()
	logging.Log.Info("gracefully shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logging.Log.WithError(err).Error("shutdown failed")
	}
}

func openStore(cfg config.Config) (store.Store, error) {
	if cfg.DatabaseURL == "" {
		logging.Log.Warn("DATABASE_URL not set; using in-memory store (CONTESTS_FILE seeds contests)")
		return store.NewMemoryStore(), nil
	}
	conn, err := db.Open(cfg)
	if err != nil {
		return nil, err
	}
	if cfg.AutoMigrate {
		if err := db.Migrate(conn); err != nil {
			_ = db.Close(conn)
			return nil, err
		}
	}
	return store.NewGormStore(conn, cfg.StoreTimeout()), nil
}

func seedContests(svc *voting.Service, path string) (int, error) {
	file, err := os.Open(path)
	if err != nil {
		return 0, err
	}
	defer file.Close()
	return svc.ImportContests(context.Background(), file)
}
