package server

import (
	"net/http"
	"strings"
	"testing"
	"time"

	"prized-pic/internal/config"
	"prized-pic/internal/signing"
	"prized-pic/internal/store"
	"prized-pic/internal/voting"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestHomePage(t *testing.T) {
	app := newTestApp(t)
	app.contest(t, "Golden Hour", nil, nil)

	resp := doRequest(t, app.ts, http.MethodGet, "/", nil)
	expectStatus(t, resp, http.StatusOK)
	html := readBody(t, resp)
	assert.Contains(t, html, "Golden Hour")
	assert.Contains(t, html, "Prized Pic")

	found := false
	for _, c := range resp.Cookies() {
		if c.Name == voterCookieName && c.Value != "" {
			found = true
		}
	}
	assert.True(t, found, "expected voter cookie to be minted")
}

func TestBrowseRedirectsToSelectedContest(t *testing.T) {
	app := newTestApp(t)
	contest := app.contest(t, "Pick me", nil, nil)

	resp := doRequestNoRedirect(t, app.ts, http.MethodGet, "/browse?contest="+contest.ID)
	expectStatus(t, resp, http.StatusFound)
	assert.Equal(t, "/browse/"+contest.ID, resp.Header.Get("Location"))

	resp = doRequest(t, app.ts, http.MethodGet, "/browse", nil)
	expectStatus(t, resp, http.StatusOK)
	assert.Contains(t, readBody(t, resp), "Pick a contest to see its photos.")
}

func TestBrowseContestPaginates(t *testing.T) {
	app := newTestApp(t)
	contest := app.contest(t, "Crowded", nil, nil)
	for i := 0; i < 3; i++ {
		app.photo(t, contest, testNow.Add(time.Duration(-i)*time.Minute))
	}

	resp := doRequest(t, app.ts, http.MethodGet, "/browse/"+contest.ID, nil)
	expectStatus(t, resp, http.StatusOK)
	html := readBody(t, resp)
	assert.Contains(t, html, "Page 1 of 2")
	assert.Contains(t, html, "page=2&amp;per_page=2")

	resp = doRequest(t, app.ts, http.MethodGet, "/browse/"+contest.ID+"?page=2", nil)
	expectStatus(t, resp, http.StatusOK)
	assert.Contains(t, readBody(t, resp), "Page 2 of 2")
}

func TestBrowseContestPageBeyondEnd(t *testing.T) {
	app := newTestApp(t)
	contest := app.contest(t, "Short", nil, nil)
	for i := 0; i < 3; i++ {
		app.photo(t, contest, testNow.Add(time.Duration(-i)*time.Minute))
	}

	for _, page := range []string{"50", "9223372036854775807"} {
		resp := doRequest(t, app.ts, http.MethodGet, "/browse/"+contest.ID+"?page="+page, nil)
		expectStatus(t, resp, http.StatusOK)
		html := readBody(t, resp)
		assert.Contains(t, html, "Page 2 of 2")
		assert.Equal(t, 1, strings.Count(html, `<article class="card">`), "page=%s", page)
	}
}

func TestBrowseMissingContestRedirects(t *testing.T) {
	app := newTestApp(t)
	resp := doRequestNoRedirect(t, app.ts, http.MethodGet, "/browse/missing")
	expectStatus(t, resp, http.StatusFound)
	assert.Equal(t, "/browse", resp.Header.Get("Location"))
}

func TestPhotoViewPage(t *testing.T) {
	app := newTestApp(t)
	ended := testNow.Add(-time.Minute)
	contest := app.contest(t, "Viewer", &ended, nil)
	newer := app.photo(t, contest, testNow.Add(-time.Hour))
	older := app.photo(t, contest, testNow.Add(-2*time.Hour))

	resp := doRequest(t, app.ts, http.MethodGet, "/browse/"+contest.ID+"/"+newer.ID, nil)
	expectStatus(t, resp, http.StatusOK)
	html := readBody(t, resp)
	assert.Contains(t, html, "/browse/"+contest.ID+"/"+older.ID)
	assert.Contains(t, html, "disabled")

	resp = doRequestNoRedirect(t, app.ts, http.MethodGet, "/browse/"+contest.ID+"/missing")
	expectStatus(t, resp, http.StatusFound)
	assert.Equal(t, "/browse/"+contest.ID, resp.Header.Get("Location"))

	resp = doRequest(t, app.ts, http.MethodGet, "/browse/missing/"+newer.ID, nil)
	expectStatus(t, resp, http.StatusNotFound)
}

func TestSubmitPageListsOpenContests(t *testing.T) {
	app := newTestApp(t)
	closedAt := testNow.Add(-time.Hour)
	app.contest(t, "Accepting", nil, nil)
	app.contest(t, "Judging", nil, &closedAt)

	resp := doRequest(t, app.ts, http.MethodGet, "/submit", nil)
	expectStatus(t, resp, http.StatusOK)
	html := readBody(t, resp)
	assert.Contains(t, html, "Accepting")
	assert.NotContains(t, html, "Judging")
	assert.Contains(t, html, `id="submitForm"`)
}

func TestHealthz(t *testing.T) {
	app := newTestApp(t)
	resp := doRequest(t, app.ts, http.MethodGet, "/healthz", nil)
	expectStatus(t, resp, http.StatusOK)
	assert.Equal(t, "ok", readBody(t, resp))
}

func TestProductionPinsAssetVersion(t *testing.T) {
	app := newTestApp(t)
	resp := doRequest(t, app.ts, http.MethodGet, "/", nil)
	expectStatus(t, resp, http.StatusOK)
	assert.Contains(t, readBody(t, resp), `src="/static/app.js"`)

	gin.SetMode(gin.TestMode)
	cfg := config.Default()
	cfg.Env = "prod"
	svc := voting.NewService(store.NewMemoryStore(), func() time.Time { return testNow })
	ts := newTestServer(t, New(svc, signing.NewSigner(signing.Credentials{}, cfg.UploadFolder, nil), cfg).Handler())
	resp = doRequest(t, ts, http.MethodGet, "/", nil)
	expectStatus(t, resp, http.StatusOK)
	assert.Contains(t, readBody(t, resp), `src="/static/app.js?v=`)
}
