package modules

import (
	"github.com/gin-gonic/gin"

	handlers "github.com/oksasatya/newsboard/internal/interface/http"
)

type ArticleModule struct {
	Handler *handlers.ArticleHandler
	Auth    gin.HandlerFunc
}

func NewArticleModule(h *handlers.ArticleHandler, auth gin.HandlerFunc) *ArticleModule {
	return &ArticleModule{Handler: h, Auth: auth}
}

func (m *ArticleModule) Register(rg *gin.RouterGroup) {
	rg.GET("/articles", m.Handler.List)
	rg.POST("/articles", m.Auth, m.Handler.Create)
	rg.DELETE("/articles/:id", m.Auth, m.Handler.Delete)
}
