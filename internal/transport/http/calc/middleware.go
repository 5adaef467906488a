package calchttp

import (
	"net/http"
	"strings"
	"time"

	"bmicalc/internal/logger"
	"bmicalc/internal/session"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/csrf"
)

const ctxSessionKey = "bmi.session"

// sessionMiddleware 为每个请求解析（或新建）会话并写回 cookie。
func sessionMiddleware(src SessionSource, cookieName string, maxAge int, secure bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, _ := c.Cookie(cookieName)
		sess, created := src.GetOrCreate(id)
		if created {
			c.SetSameSite(http.SameSiteLaxMode)
			c.SetCookie(cookieName, sess.ID(), maxAge, "/", "", secure, true)
		}
		c.Set(ctxSessionKey, sess)
		c.Next()
	}
}

func currentSession(c *gin.Context) *session.Session {
	v, ok := c.Get(ctxSessionKey)
	if !ok {
		return nil
	}
	sess, _ := v.(*session.Session)
	return sess
}

// csrfMiddleware protects form posts. JSON API requests
// (Content-Type: application/json) are exempt.
func csrfMiddleware(authKey []byte, trustedOrigins []string, secure bool) func(http.Handler) http.Handler {
	csrfProtect := csrf.Protect(
		authKey,
		csrf.Secure(secure),
		csrf.Path("/"),
		csrf.CookieName("bmi_csrf"),
		csrf.SameSite(csrf.SameSiteLaxMode),
		csrf.TrustedOrigins(trustedOrigins),
	)
	return func(next http.Handler) http.Handler {
		protected := csrfProtect(next)
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if strings.HasPrefix(r.Header.Get("Content-Type"), "application/json") {
				next.ServeHTTP(w, r)
				return
			}
			if r.TLS == nil && !secure {
				r = csrf.PlaintextHTTPRequest(r)
			}
			protected.ServeHTTP(w, r)
		})
	}
}

// requestLogger 记录每个请求，便于追踪提交与刷新。
func requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		method := c.Request.Method
		path := c.Request.URL.Path
		query := c.Request.URL.RawQuery
		client := c.ClientIP()
		c.Next()
		fullPath := path
		if query != "" {
			fullPath = path + "?" + query
		}
		logger.Slog().Debug("http request",
			"method", method,
			"path", fullPath,
			"status", c.Writer.Status(),
			"ip", client,
			"dur", time.Since(start),
		)
	}
}
