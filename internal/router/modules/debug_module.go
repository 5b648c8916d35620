package modules

import (
	"github.com/gin-gonic/gin"

	"github.com/oksasatya/newsboard/internal/interface/middleware"
)

// MetricsPath is the full route of the Prometheus endpoint.
const MetricsPath = "/api/debug/metrics"

type DebugModule struct {
	Metrics *middleware.Metrics
}

func NewDebugModule(m *middleware.Metrics) *DebugModule { return &DebugModule{Metrics: m} }

func (m *DebugModule) Register(rg *gin.RouterGroup) {
	rg.GET("/debug/metrics", gin.WrapH(m.Metrics.Handler()))
}
