package server

import (
	"context"
	"net"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"prized-pic/internal/config"
	"prized-pic/internal/db"
	"prized-pic/internal/signing"
	"prized-pic/internal/store"
	"prized-pic/internal/voting"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2026, 6, 10, 12, 0, 0, 0, time.UTC)

type testApp struct {
	ts    *httptest.Server
	store *store.MemoryStore
}

func newTestServer(t *testing.T, handler http.Handler) *httptest.Server {
	t.Helper()
	listener, err := net.Listen("tcp4", "127.0.0.1:0")
	if err != nil {
		t.Skipf("skipping test; listen unavailable: %v", err)
	}
	ts := &httptest.Server{
		Listener: listener,
		Config:   &http.Server{Handler: handler},
	}
	ts.Start()
	t.Cleanup(ts.Close)
	return ts
}

func newTestApp(t *testing.T) *testApp {
	t.Helper()
	return newTestAppWithStore(t, store.NewMemoryStore())
}

func newTestAppWithStore(t *testing.T, st store.Store) *testApp {
	t.Helper()
	gin.SetMode(gin.TestMode)
	cfg := config.Default()
	cfg.PhotosPerPage = 2
	svc := voting.NewService(st, func() time.Time { return testNow })
	signer := signing.NewSigner(signing.Credentials{
		CloudName: "demo",
		APIKey:    "1234",
		APISecret: "secret",
	}, cfg.UploadFolder, func() time.Time { return testNow })
	app := &testApp{ts: newTestServer(t, New(svc, signer, cfg).Handler())}
	if mem, ok := st.(*store.MemoryStore); ok {
		app.store = mem
	}
	return app
}

func (a *testApp) contest(t *testing.T, name string, endsAt, submissionsClosedAt *time.Time) *db.Contest {
	t.Helper()
	contest := &db.Contest{
		Name:                name,
		CreatedAt:           testNow.Add(-48 * time.Hour),
		EndsAt:              endsAt,
		SubmissionsClosedAt: submissionsClosedAt,
	}
	require.NoError(t, a.store.CreateContest(context.Background(), contest))
	return contest
}

func (a *testApp) photo(t *testing.T, contest *db.Contest, submittedAt time.Time) *db.Photo {
	t.Helper()
	photo := &db.Photo{
		PublicID:    "photo-contest/" + submittedAt.Format("150405"),
		SecureURL:   "https://res.cloudinary.com/demo/image/upload/p.jpg",
		ContestID:   &contest.ID,
		SubmittedAt: submittedAt,
	}
	require.NoError(t, a.store.CreatePhoto(context.Background(), photo))
	return photo
}
