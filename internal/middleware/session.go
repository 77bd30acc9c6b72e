package middleware

import (
	"net/http"

	"github.com/Domenick1991/flightdb/config"
	"github.com/Domenick1991/flightdb/internal/session"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const sessionContextKey = "flightdb.session"

// cookieMaxAge is used when sessions never expire server-side.
const cookieMaxAge = 365 * 24 * 60 * 60

// Session attaches the visitor's *session.Session to the request. Visitors
// without a valid session cookie get a fresh id.
func Session(manager *session.Manager, cfg config.SessionConfig) gin.HandlerFunc {
	maxAge := cookieMaxAge
	if cfg.TTLHours > 0 {
		maxAge = cfg.TTLHours * 60 * 60
	}

	return func(c *gin.Context) {
		id, err := c.Cookie(cfg.CookieName)
		if err != nil || !validSessionID(id) {
			id = uuid.NewString()
			c.SetSameSite(http.SameSiteLaxMode)
			c.SetCookie(cfg.CookieName, id, maxAge, "/", "", cfg.CookieSecure, true)
		}

		c.Set(sessionContextKey, manager.Open(c.Request.Context(), id))
		c.Next()
	}
}

// SessionFrom returns the session attached by Session. It panics when the
// middleware is not installed.
func SessionFrom(c *gin.Context) *session.Session {
	return c.MustGet(sessionContextKey).(*session.Session)
}

func validSessionID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}
