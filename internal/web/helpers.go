package web

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/a-h/templ"
)

const appName = "Prized Pic"

var nowUTC = func() time.Time { return time.Now().UTC() }

func itoa(value int) string {
	return strconv.Itoa(value)
}

func esc(value string) string {
	return templ.EscapeString(value)
}

func derefOr(value *string, fallback string) string {
	if value == nil || *value == "" {
		return fallback
	}
	return *value
}

func pageURL(base string, page, perPage int) string {
	sep := "?"
	if strings.Contains(base, "?") {
		sep = "&"
	}
	return base + sep + "page=" + itoa(page) + "&per_page=" + itoa(perPage)
}

// browseURL and photoURL return attribute-safe paths.
func browseURL(contestID string) string {
	return esc("/browse/" + url.PathEscape(contestID))
}

func photoURL(contestID, photoID string) string {
	return esc("/browse/" + url.PathEscape(contestID) + "/" + url.PathEscape(photoID))
}

// timeRemaining renders the coarse time left until end, or "" once it has passed.
func timeRemaining(now, end time.Time) string {
	left := end.Sub(now)
	if left <= 0 {
		return ""
	}
	days := int(left.Hours()) / 24
	hours := int(left.Hours()) % 24
	minutes := int(left.Minutes()) % 60
	switch {
	case days > 0:
		return fmt.Sprintf("%dd %dh left", days, hours)
	case hours > 0:
		return fmt.Sprintf("%dh %dm left", hours, minutes)
	case minutes > 0:
		return fmt.Sprintf("%dm left", minutes)
	default:
		return "less than a minute left"
	}
}

func formatDate(t time.Time) string {
	return t.UTC().Format("Jan 2, 2006")
}

var prodAssetVersion = func() string {
	startedAt := time.Now().UTC().Format(time.RFC3339)
	sum := sha256.Sum256([]byte(startedAt))
	return hex.EncodeToString(sum[:8])
}()

type releaseAssetsKey struct{}

// WithReleaseAssets marks ctx so static asset URLs carry the process start
// version instead of a per-file content hash.
func WithReleaseAssets(ctx context.Context) context.Context {
	return context.WithValue(ctx, releaseAssetsKey{}, true)
}

func releaseAssets(ctx context.Context) bool {
	release, _ := ctx.Value(releaseAssetsKey{}).(bool)
	return release
}

func assetPath(ctx context.Context, path string) string {
	if path == "" || !strings.HasPrefix(path, "/static/") {
		return path
	}
	if releaseAssets(ctx) {
		return appendAssetVersion(path, prodAssetVersion)
	}
	data, err := os.ReadFile(filepath.Join("static", strings.TrimPrefix(path, "/static/")))
	if err != nil {
		return path
	}
	sum := sha256.Sum256(data)
	return appendAssetVersion(path, hex.EncodeToString(sum[:8]))
}

func appendAssetVersion(path string, hash string) string {
	if hash == "" {
		return path
	}
	if strings.Contains(path, "?") {
		return path + "&v=" + hash
	}
	return path + "?v=" + hash
}

// writePage wraps body in the shared document shell.
func writePage(ctx context.Context, w io.Writer, title, voterID string, body func(w io.Writer)) {
	pageTitle := appName
	if title != "" {
		pageTitle = title + " · " + appName
	}
	_, _ = io.WriteString(w, `<!doctype html>
<html lang="en">
  <head>
    <meta charset="utf-8"/>
    <meta name="viewport" content="width=device-width, initial-scale=1"/>
    <title>`+esc(pageTitle)+`</title>
    <link rel="stylesheet" href="`+assetPath(ctx, "/static/styles.css")+`"/>
  </head>
  <body data-voter-id="`+esc(voterID)+`">
    <nav class="topbar">
      <a class="brand" href="/">`+appName+`</a>
      <a href="/browse">Browse</a>
      <a href="/submit">Submit</a>
    </nav>
    <main class="shell">
`)
	body(w)
	_, _ = io.WriteString(w, `
    </main>
    <script src="`+assetPath(ctx, "/static/app.js")+`"></script>
  </body>
</html>
`)
}
