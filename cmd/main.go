package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"github.com/oksasatya/newsboard/config"
	"github.com/oksasatya/newsboard/internal/container"
	"github.com/oksasatya/newsboard/internal/router"
	"github.com/oksasatya/newsboard/pkg/helpers"
	"github.com/oksasatya/newsboard/pkg/validation"
)

func main() {
	_ = godotenv.Load() // load .env if present

	cfg := config.Load()
	logger := helpers.NewLogger(cfg.AppName, cfg.Env)
	warnings, err := cfg.Validate()
	for _, w := range warnings {
		logger.Warn(w)
	}
	if err != nil {
		logger.Fatalf("invalid configuration: %v", err)
	}
	gin.SetMode(cfg.GinMode)
	validation.Init()

	ctx := context.Background()

	closeDB, err := container.OpenDatabase(ctx, cfg, logger)
	if err != nil {
		logger.Fatalf("database: %v", err)
	}
	defer closeDB()

	closeSessions, err := container.OpenSessions(ctx, cfg, logger)
	if err != nil {
		logger.Fatalf("session store: %v", err)
	}
	defer closeSessions()

	container.SetConfig(cfg)
	container.SetLogger(logger)
	if err := container.Build(); err != nil {
		logger.Fatalf("wiring: %v", err)
	}

	if _, err := container.GetUserService().EnsureAdmin(ctx, cfg.AdminPassword); err != nil {
		logger.Fatalf("bootstrap admin: %v", err)
	}

	r := router.Setup()

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}
	go func() {
		logger.Infof("server starting on :%s (db=%s)", cfg.Port, cfg.DBDriver)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatalf("listen: %s", err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("shutting down server")

	ctxShutdown, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctxShutdown); err != nil {
		logger.Errorf("server forced to shutdown: %v", err)
		return
	}
	logger.Info("server exited properly")
}
