package server

import (
	"errors"
	"net/http"
	"time"

	"prized-pic/internal/logging"
	"prized-pic/internal/signing"
	"prized-pic/internal/store"
	"prized-pic/internal/voting"
	"prized-pic/internal/web"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

func writeJSON(c *gin.Context, status int, payload any) {
	c.JSON(status, payload)
}

func writeError(c *gin.Context, status int, message string) {
	c.AbortWithStatusJSON(status, gin.H{
		"error": message,
	})
}

type errorMessages struct {
	NotFound string
	Failure  string
}

// writeServiceError maps service and store errors onto HTTP statuses.
// Infrastructure details never reach the client.
func writeServiceError(c *gin.Context, err error, messages errorMessages) {
	var verr *voting.ValidationError
	var perr *signing.ParamError
	switch {
	case errors.As(err, &verr):
		writeError(c, http.StatusBadRequest, verr.Message)
	case errors.As(err, &perr):
		writeError(c, http.StatusBadRequest, perr.Error())
	case errors.Is(err, store.ErrNotFound):
		writeError(c, http.StatusNotFound, messages.NotFound)
	case errors.Is(err, voting.ErrContestClosed), errors.Is(err, voting.ErrSubmissionsClosed):
		writeError(c, http.StatusConflict, err.Error())
	case errors.Is(err, signing.ErrNotConfigured):
		writeError(c, http.StatusServiceUnavailable, err.Error())
	case errors.Is(err, store.ErrUnavailable):
		logging.Log.WithError(err).WithField("path", c.FullPath()).Warn("store unavailable")
		writeError(c, http.StatusServiceUnavailable, messages.Failure)
	default:
		logging.Log.WithError(err).WithField("path", c.FullPath()).Error("request failed")
		writeError(c, http.StatusInternalServerError, messages.Failure)
	}
}

func requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		started := time.Now()
		c.Next()
		entry := logging.Log.WithFields(logrus.Fields{
			"method":      c.Request.Method,
			"path":        c.Request.URL.Path,
			"status":      c.Writer.Status(),
			"duration_ms": time.Since(started).Milliseconds(),
		})
		if c.Writer.Status() >= http.StatusInternalServerError {
			entry.Warn("request served")
			return
		}
		entry.Debug("request served")
	}
}

func releaseAssets() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Request = c.Request.WithContext(web.WithReleaseAssets(c.Request.Context()))
		c.Next()
	}
}
