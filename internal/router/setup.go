package router

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/oksasatya/newsboard/internal/container"
	"github.com/oksasatya/newsboard/internal/interface/middleware"
	"github.com/oksasatya/newsboard/internal/router/modules"
)

// Setup builds the gin engine from the container. container.Build must
// have succeeded first.
func Setup() *gin.Engine {
	cfg := container.GetConfig()
	logger := container.GetLogger()
	metrics := container.GetMetrics()

	r := gin.New()
	if !cfg.TrustProxy {
		_ = r.SetTrustedProxies(nil)
	}
	r.Use(middleware.RequestID())
	r.Use(middleware.Recovery(logger))
	r.Use(middleware.RealIP(cfg.TrustProxy))
	r.Use(middleware.SecurityHeaders(cfg.IsProduction()))
	if origins := cfg.CORSOrigins(); len(origins) > 0 {
		r.Use(cors.New(cors.Config{
			AllowOrigins:     origins,
			AllowMethods:     []string{"GET", "POST", "DELETE", "OPTIONS"},
			AllowHeaders:     []string{"Origin", "Content-Type", "Accept"},
			ExposeHeaders:    []string{"Content-Length", middleware.RequestIDHeader},
			AllowCredentials: true,
			MaxAge:           12 * time.Hour,
		}))
	}
	if cfg.HTTPLogEnabled {
		r.Use(middleware.AccessLog(logger))
	}
	r.Use(metrics.Instrument())

	reg := NewRegistry(r)
	// metrics scrapes from inside the network never count against the API ceiling
	reg.Use(middleware.RateLimit(container.GetRateCounter(), middleware.RateLimitConfig{
		Name:    "api",
		Max:     cfg.APIRateLimit,
		Window:  cfg.APIRateWindow,
		Key:     middleware.KeyByIP(),
		Allow:   middleware.AllOf(middleware.AllowPaths(modules.MetricsPath), middleware.AllowPrivateIP()),
		Metrics: metrics,
	}))
	InitModules(reg)
	reg.RegisterAll()
	return r
}
