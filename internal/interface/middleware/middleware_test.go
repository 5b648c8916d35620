package middleware

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oksasatya/newsboard/internal/application"
	"github.com/oksasatya/newsboard/internal/domain/entity"
	"github.com/oksasatya/newsboard/internal/infrastructure/memory"
	"github.com/oksasatya/newsboard/pkg/helpers"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func quietLogger() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

func do(r http.Handler, method, path string, mutate func(*http.Request)) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, nil)
	if mutate != nil {
		mutate(req)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestRateLimitRejectsAfterMax(t *testing.T) {
	r := gin.New()
	r.Use(RealIP(false))
	r.GET("/x", RateLimit(memory.NewRateCounter(), RateLimitConfig{Name: "api", Max: 2, Window: time.Minute}), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	for i := 0; i < 2; i++ {
		w := do(r, http.MethodGet, "/x", nil)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "2", w.Header().Get("X-RateLimit-Limit"))
	}
	w := do(r, http.MethodGet, "/x", nil)
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Contains(t, w.Body.String(), RateLimitMessage)
	assert.Equal(t, "0", w.Header().Get("X-RateLimit-Remaining"))
	assert.NotEmpty(t, w.Header().Get("Retry-After"))
}

func TestRateLimitSkipSuccessful(t *testing.T) {
	r := gin.New()
	limiter := RateLimit(memory.NewRateCounter(), RateLimitConfig{Name: "auth", Max: 2, Window: time.Minute, SkipSuccessful: true})
	r.POST("/login", limiter, func(c *gin.Context) {
		if c.Query("ok") == "1" {
			c.Status(http.StatusOK)
			return
		}
		c.Status(http.StatusUnauthorized)
	})

	for i := 0; i < 5; i++ {
		assert.Equal(t, http.StatusOK, do(r, http.MethodPost, "/login?ok=1", nil).Code)
	}
	assert.Equal(t, http.StatusUnauthorized, do(r, http.MethodPost, "/login", nil).Code)
	assert.Equal(t, http.StatusUnauthorized, do(r, http.MethodPost, "/login", nil).Code)
	assert.Equal(t, http.StatusTooManyRequests, do(r, http.MethodPost, "/login", nil).Code)
}

func TestRateLimitSeparatesClients(t *testing.T) {
	r := gin.New()
	r.Use(RealIP(true))
	r.GET("/x", RateLimit(memory.NewRateCounter(), RateLimitConfig{Name: "api", Max: 1, Window: time.Minute}), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	from := func(ip string) func(*http.Request) {
		return func(req *http.Request) { req.Header.Set("X-Forwarded-For", ip+", 10.0.0.1") }
	}
	assert.Equal(t, http.StatusOK, do(r, http.MethodGet, "/x", from("203.0.113.1")).Code)
	assert.Equal(t, http.StatusTooManyRequests, do(r, http.MethodGet, "/x", from("203.0.113.1")).Code)
	assert.Equal(t, http.StatusOK, do(r, http.MethodGet, "/x", from("203.0.113.2")).Code)
}

type failingCounter struct{}

func (failingCounter) Incr(context.Context, string, time.Duration) (int64, time.Duration, error) {
	return 0, 0, errors.New("store down")
}
func (failingCounter) Decr(context.Context, string) error { return nil }

func TestRateLimitFailsOpen(t *testing.T) {
	r := gin.New()
	r.GET("/x", RateLimit(failingCounter{}, RateLimitConfig{Name: "api", Max: 1, Window: time.Minute}), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})
	for i := 0; i < 3; i++ {
		assert.Equal(t, http.StatusOK, do(r, http.MethodGet, "/x", nil).Code)
	}
}

func TestRealIPIgnoresHeadersWhenUntrusted(t *testing.T) {
	r := gin.New()
	require.NoError(t, r.SetTrustedProxies(nil))
	r.Use(RealIP(false))
	r.GET("/ip", func(c *gin.Context) { c.String(http.StatusOK, c.GetString("real_ip")) })

	w := do(r, http.MethodGet, "/ip", func(req *http.Request) {
		req.RemoteAddr = "192.0.2.10:1234"
		req.Header.Set("CF-Connecting-IP", "198.51.100.7")
		req.Header.Set("X-Forwarded-For", "198.51.100.8")
	})
	assert.Equal(t, "192.0.2.10", w.Body.String())
}

type stubResolver struct {
	user *entity.User
	err  error
}

func (s stubResolver) Resolve(_ context.Context, token string) (*entity.User, error) {
	if s.err != nil {
		return nil, s.err
	}
	if token == "" {
		return nil, application.ErrUnauthenticated
	}
	return s.user, nil
}

func TestAuth(t *testing.T) {
	alice := &entity.User{ID: 7, Username: "alice", Role: entity.RoleUser}
	build := func(res SessionResolver) *gin.Engine {
		r := gin.New()
		r.GET("/me", Auth(res, quietLogger()), func(c *gin.Context) {
			c.String(http.StatusOK, CurrentUser(c).Username)
		})
		return r
	}

	w := do(build(stubResolver{user: alice}), http.MethodGet, "/me", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "Not authenticated")

	w = do(build(stubResolver{user: alice}), http.MethodGet, "/me", func(req *http.Request) {
		req.AddCookie(&http.Cookie{Name: helpers.SessionCookieName, Value: "tok"})
	})
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "alice", w.Body.String())

	w = do(build(stubResolver{err: errors.New("redis down")}), http.MethodGet, "/me", nil)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestRequestIDAndRecovery(t *testing.T) {
	r := gin.New()
	r.Use(RequestID(), Recovery(quietLogger()))
	r.GET("/boom", func(c *gin.Context) { panic("boom") })

	w := do(r, http.MethodGet, "/boom", nil)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	id := w.Header().Get(RequestIDHeader)
	assert.NotEmpty(t, id)
	assert.Contains(t, w.Body.String(), id)
	assert.NotContains(t, w.Body.String(), "boom")
}

func TestMetricsExposition(t *testing.T) {
	m := NewMetrics("newsboard")
	r := gin.New()
	r.Use(m.Instrument())
	r.GET("/ok", func(c *gin.Context) { c.Status(http.StatusOK) })
	r.GET("/metrics", gin.WrapH(m.Handler()))

	do(r, http.MethodGet, "/ok", nil)
	w := do(r, http.MethodGet, "/metrics", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.True(t, strings.Contains(w.Body.String(), `newsboard_http_requests_total{method="GET",route="/ok",status="200"} 1`))
}

func TestSecurityHeaders(t *testing.T) {
	r := gin.New()
	r.Use(SecurityHeaders(false))
	r.GET("/x", func(c *gin.Context) { c.Status(http.StatusOK) })

	w := do(r, http.MethodGet, "/x", nil)
	assert.Equal(t, "nosniff", w.Header().Get("X-Content-Type-Options"))
	assert.Equal(t, "DENY", w.Header().Get("X-Frame-Options"))
}

func TestAllowFuncs(t *testing.T) {
	r := gin.New()
	r.Use(RealIP(false))
	limiter := RateLimit(memory.NewRateCounter(), RateLimitConfig{
		Name:   "api",
		Max:    1,
		Window: time.Minute,
		Allow:  AllOf(AllowPaths("/metrics"), AllowPrivateIP()),
	})
	r.GET("/metrics", limiter, func(c *gin.Context) { c.Status(http.StatusOK) })

	internal := func(req *http.Request) { req.RemoteAddr = "10.1.2.3:5000" }
	for i := 0; i < 3; i++ {
		assert.Equal(t, http.StatusOK, do(r, http.MethodGet, "/metrics", internal).Code)
	}

	external := func(req *http.Request) { req.RemoteAddr = "203.0.113.9:5000" }
	assert.Equal(t, http.StatusOK, do(r, http.MethodGet, "/metrics", external).Code)
	assert.Equal(t, http.StatusTooManyRequests, do(r, http.MethodGet, "/metrics", external).Code)

	assert.False(t, AllOf()(nil))
}
