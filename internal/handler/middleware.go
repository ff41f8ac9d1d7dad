package handler

import (
	"net/http"
	"net/url"
	"time"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/qs-lzh/train-ticket/internal/app"
	"github.com/qs-lzh/train-ticket/internal/cache"
)

func SecurityHeaders() gin.HandlerFunc {
	return func(c *gin.Context) {
		h := c.Writer.Header()
		h.Set("X-Content-Type-Options", "nosniff")
		h.Set("X-Frame-Options", "SAMEORIGIN")
		h.Set("X-XSS-Protection", "1; mode=block")
		h.Set("Strict-Transport-Security", "max-age=31536000; includeSubDomains")
		h.Set("Content-Security-Policy", "default-src 'self'; img-src 'self' data:; style-src 'self' 'unsafe-inline'; script-src 'self' 'unsafe-inline';")
		c.Next()
	}
}

// LoadUser resolves the session cookie to a user row and stashes it in the
// request context. Anonymous requests pass through untouched.
func LoadUser(a *app.App) gin.HandlerFunc {
	return func(c *gin.Context) {
		sess := sessions.Default(c)
		v := sess.Get(sessionUserIDKey)
		if v == nil {
			c.Next()
			return
		}
		userID, ok := v.(uint)
		if !ok {
			c.Next()
			return
		}
		user, err := a.AccountService.GetUser(userID)
		if err != nil {
			// stale session, treat as logged out
			sess.Clear()
			sess.Save()
			c.Next()
			return
		}
		c.Set(contextUserKey, user)
		c.Next()
	}
}

func RequireLogin() gin.HandlerFunc {
	return func(c *gin.Context) {
		if currentUser(c) == nil {
			c.Redirect(http.StatusFound, "/login?next="+url.QueryEscape(c.Request.URL.RequestURI()))
			c.Abort()
			return
		}
		c.Next()
	}
}

// RateLimit caps requests per client address with a fixed window in redis.
// It fails open when redis is unreachable, a booking site should degrade
// rather than lock everyone out.
func RateLimit(a *app.App, scope string, limit int, window time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		if a.Cache == nil {
			c.Next()
			return
		}
		key := cache.MakeRateLimitKey(scope, c.ClientIP())
		allowed, err := a.Cache.Allow(key, limit, window)
		if err != nil {
			a.Logger.Warn("rate limiter unavailable", zap.String("scope", scope), zap.Error(err))
			c.Next()
			return
		}
		if !allowed {
			render(c, http.StatusTooManyRequests, "429.html", nil)
			c.Abort()
			return
		}
		c.Next()
	}
}

// MaxUpload caps the request body, oversized uploads surface as 413
// instead of filling the disk.
func MaxUpload(maxBytes int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBytes)
		c.Next()
	}
}
