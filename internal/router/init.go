package router

import (
	"github.com/oksasatya/newsboard/internal/container"
	handlers "github.com/oksasatya/newsboard/internal/interface/http"
	"github.com/oksasatya/newsboard/internal/interface/middleware"
	"github.com/oksasatya/newsboard/internal/router/modules"
	"github.com/oksasatya/newsboard/pkg/helpers"
)

// InitModules initializes all application modules and registers them with the router registry
// This function should be called once during application startup to wire up all modules
func InitModules(r *Registry) {
	cfg := container.GetConfig()
	logger := container.GetLogger()
	users := container.GetUserService()
	auth := middleware.Auth(users, logger)

	authHandler := handlers.NewAuthHandler(users, helpers.NewCookie(cfg.CookieDomain, cfg.CookieSecure), logger)
	articleHandler := handlers.NewArticleHandler(container.GetArticleService(), logger)
	healthHandler := handlers.NewHealthHandler(container.DatabasePing(), container.SessionStorePing(), logger)

	r.Add(modules.NewHealthModule(healthHandler))
	r.Add(modules.NewAuthModule(authHandler, auth))
	r.Add(modules.NewArticleModule(articleHandler, auth))
	if cfg.DebugMetricsEnabled {
		r.Add(modules.NewDebugModule(container.GetMetrics()))
	}
}
