package server

import (
	"net/http"

	"prized-pic/internal/identity"

	"github.com/gin-gonic/gin"
)

const (
	voterCookieName = "pp_voter"
	voterHeaderName = "X-Voter-Id"
	voterCookieAge  = 365 * 24 * 60 * 60
)

// viewerID resolves the caller's voter token without minting one.
func viewerID(c *gin.Context) string {
	if token, ok := identity.Normalize(c.GetHeader(voterHeaderName)); ok {
		return token
	}
	if token, ok := identity.Normalize(c.Query("viewerId")); ok {
		return token
	}
	if raw, err := c.Cookie(voterCookieName); err == nil {
		if token, ok := identity.Normalize(raw); ok {
			return token
		}
	}
	return ""
}

// ensureVoterID returns the caller's voter token, minting and storing a new one when absent.
func ensureVoterID(c *gin.Context) string {
	if token := viewerID(c); token != "" {
		return token
	}
	token := identity.New()
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(voterCookieName, token, voterCookieAge, "/", "", false, false)
	return token
}

func (s *Server) handleIdentity(c *gin.Context) {
	writeJSON(c, http.StatusOK, gin.H{"voterId": ensureVoterID(c)})
}
