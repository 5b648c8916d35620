package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/newsboard/internal/application"
	"github.com/oksasatya/newsboard/internal/interface/middleware"
	"github.com/oksasatya/newsboard/pkg/response"
)

type ArticleHandler struct {
	Service *application.ArticleService
	Logger  *logrus.Logger
}

func NewArticleHandler(svc *application.ArticleService, logger *logrus.Logger) *ArticleHandler {
	return &ArticleHandler{Service: svc, Logger: logger}
}

type createArticleRequest struct {
	Title string `json:"title" binding:"required,title"`
	URL   string `json:"url" binding:"required,weburl"`
}

// List GET /api/articles
func (h *ArticleHandler) List(c *gin.Context) {
	items, err := h.Service.List(c.Request.Context())
	if err != nil {
		fail(c, h.Logger, "list articles", err)
		return
	}
	response.Success(c, http.StatusOK, items)
}

// Create POST /api/articles (auth required)
func (h *ArticleHandler) Create(c *gin.Context) {
	var req createArticleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	a, err := h.Service.Create(c.Request.Context(), middleware.CurrentUser(c), req.Title, req.URL)
	if err != nil {
		fail(c, h.Logger, "create article", err)
		return
	}
	response.Success(c, http.StatusCreated, a)
}

// Delete DELETE /api/articles/:id (auth required, owner or admin)
func (h *ArticleHandler) Delete(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		response.Error(c, http.StatusBadRequest, "Invalid article id", nil)
		return
	}
	if err := h.Service.Delete(c.Request.Context(), middleware.CurrentUser(c), id); err != nil {
		fail(c, h.Logger, "delete article", err)
		return
	}
	response.Message(c, http.StatusOK, "Article deleted successfully")
}
