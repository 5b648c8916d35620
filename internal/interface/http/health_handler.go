package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/newsboard/pkg/helpers"
	"github.com/oksasatya/newsboard/pkg/response"
)

// Pinger checks that a backing service answers.
type Pinger func(ctx context.Context) error

type HealthHandler struct {
	Database Pinger
	// Sessions is nil when the in-process stores are in use.
	Sessions Pinger
	Logger   *logrus.Logger
}

func NewHealthHandler(db, sessions Pinger, logger *logrus.Logger) *HealthHandler {
	return &HealthHandler{Database: db, Sessions: sessions, Logger: logger}
}

type healthResponse struct {
	Status   string `json:"status"`
	Database string `json:"database"`
	Sessions string `json:"sessions"`
}

// Check GET /api/healthz
func (h *HealthHandler) Check(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	res := healthResponse{Status: "ok", Database: "ok", Sessions: "memory"}
	status := http.StatusOK

	if h.Database != nil {
		if err := h.Database(ctx); err != nil {
			helpers.LogError(h.Logger, "database ping", err, nil)
			res.Status, res.Database = "unavailable", "down"
			status = http.StatusServiceUnavailable
		}
	}
	if h.Sessions != nil {
		res.Sessions = "ok"
		if err := h.Sessions(ctx); err != nil {
			helpers.LogError(h.Logger, "session store ping", err, nil)
			res.Status, res.Sessions = "unavailable", "down"
			status = http.StatusServiceUnavailable
		}
	}
	response.Success(c, status, res)
}
