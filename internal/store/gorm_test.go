package store

import (
	"context"
	"errors"
	"testing"
	"time"

	"prized-pic/internal/config"
	"prized-pic/internal/db"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	"gorm.io/gorm"
)

func setupPostgres(t *testing.T) *gorm.DB {
	t.Helper()
	if testing.Short() {
		t.Skip("skipping postgres integration test in short mode")
	}
	ctx := context.Background()

	container, err := postgres.Run(ctx, "postgres:15-alpine",
		postgres.WithDatabase("prized"),
		postgres.WithUsername("user"),
		postgres.WithPassword("password"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	if err != nil {
		t.Skipf("skipping postgres integration test; container unavailable: %v", err)
	}
	t.Cleanup(func() {
		_ = testcontainers.TerminateContainer(container)
	})

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	m, err := migrate.New("file://../../db/migrations", dsn)
	require.NoError(t, err)
	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		t.Fatalf("apply migrations: %v", err)
	}
	_, _ = m.Close()

	cfg := config.Default()
	cfg.DatabaseURL = dsn
	conn, err := db.Open(cfg)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close(conn) })
	return conn
}

func TestGormStore(t *testing.T) {
	conn := setupPostgres(t)
	runStoreContract(t, func(t *testing.T) Store {
		require.NoError(t, conn.Exec("TRUNCATE votes, photos, contests").Error)
		return NewGormStore(conn, 5*time.Second)
	})
}

func TestGormStoreMalformedIDIsNotFound(t *testing.T) {
	conn := setupPostgres(t)
	s := NewGormStore(conn, 5*time.Second)

	_, err := s.GetPhoto(context.Background(), "not-a-uuid")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestGormStoreTimeoutIsUnavailable(t *testing.T) {
	conn := setupPostgres(t)
	s := NewGormStore(conn, 5*time.Second)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := s.ListContests(ctx, ContestFilter{})
	assert.ErrorIs(t, err, ErrUnavailable)
}
