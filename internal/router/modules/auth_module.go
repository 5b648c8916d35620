package modules

import (
	"github.com/gin-gonic/gin"

	"github.com/oksasatya/newsboard/internal/container"
	handlers "github.com/oksasatya/newsboard/internal/interface/http"
	"github.com/oksasatya/newsboard/internal/interface/middleware"
)

// AuthModule wires session endpoints.
// Public: POST /auth/register, POST /auth/login (shared tight limiter)
// Protected: POST /auth/logout, GET /auth/user
type AuthModule struct {
	Handler *handlers.AuthHandler
	Auth    gin.HandlerFunc
}

func NewAuthModule(h *handlers.AuthHandler, auth gin.HandlerFunc) *AuthModule {
	return &AuthModule{Handler: h, Auth: auth}
}

func (m *AuthModule) Register(rg *gin.RouterGroup) {
	cfg := container.GetConfig()
	credLimiter := middleware.RateLimit(container.GetRateCounter(), middleware.RateLimitConfig{
		Name:           "auth",
		Max:            cfg.AuthRateLimit,
		Window:         cfg.AuthRateWindow,
		Key:            middleware.KeyByIP(),
		SkipSuccessful: true,
		Metrics:        container.GetMetrics(),
	})

	rg.POST("/auth/register", credLimiter, m.Handler.Register)
	rg.POST("/auth/login", credLimiter, m.Handler.Login)

	auth := rg.Group("/auth")
	auth.Use(m.Auth)
	{
		auth.POST("/logout", m.Handler.Logout)
		auth.GET("/user", m.Handler.CurrentUser)
	}
}
