package middleware

import (
	"context"
	"errors"
	"go-jobboard-web/internal/domain"
	"go-jobboard-web/pkg/apperror"
	"go-jobboard-web/pkg/logger"
	"net/http"
	"net/url"
	"time"

	"github.com/gin-gonic/gin"
)

// SessionCookieName holds the signed session id.
const SessionCookieName = "jb_session"

// LoginPath is where RequireCompany sends anonymous browsers.
const LoginPath = "/company/login"

// SessionTokens verifies the session cookie and returns the session id.
type SessionTokens interface {
	Decode(token string) (string, error)
}

// SessionLoader resolves the session cookie to a stored session and puts it
// on the gin context and the request context. Anonymous requests continue
// with no session; a stale cookie is cleared.
func SessionLoader(tokens SessionTokens, store domain.SessionStore, secureCookie bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		cookie, err := c.Cookie(SessionCookieName)
		if err != nil || cookie == "" {
			c.Next()
			return
		}

		id, err := tokens.Decode(cookie)
		if err != nil {
			ClearSessionCookie(c, secureCookie)
			c.Next()
			return
		}

		sess, err := store.Get(c.Request.Context(), id)
		if err != nil {
			if !errors.Is(err, domain.ErrSessionNotFound) {
				logger.Log.ErrorContext(c.Request.Context(), "Failed to load session",
					"request_id", RequestIDFrom(c), "error", err)
			}
			ClearSessionCookie(c, secureCookie)
			c.Next()
			return
		}

		c.Set(string(domain.KeySession), sess)
		ctx := context.WithValue(c.Request.Context(), domain.KeySession, sess)
		c.Request = c.Request.WithContext(ctx)

		c.Next()
	}
}

// RequireCompany rejects requests without an authenticated session. HTML
// routes are redirected to the login page.
func RequireCompany() gin.HandlerFunc {
	return func(c *gin.Context) {
		if SessionFrom(c).Authenticated() {
			c.Next()
			return
		}

		if IsAPIPath(c.Request.URL.Path) {
			_ = c.Error(apperror.Unauthorized("Please log in to continue"))
			c.Abort()
			return
		}

		target := LoginPath + "?next=" + url.QueryEscape(c.Request.URL.RequestURI())
		c.Redirect(http.StatusSeeOther, target)
		c.Abort()
	}
}

// SessionFrom returns the session loaded for this request, or nil.
func SessionFrom(c *gin.Context) *domain.Session {
	v, ok := c.Get(string(domain.KeySession))
	if !ok {
		return nil
	}
	sess, _ := v.(*domain.Session)
	return sess
}

func SetSessionCookie(c *gin.Context, token string, ttl time.Duration, secure bool) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(SessionCookieName, token, int(ttl.Seconds()), "/", "", secure, true)
}

func ClearSessionCookie(c *gin.Context, secure bool) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(SessionCookieName, "", -1, "/", "", secure, true)
}
