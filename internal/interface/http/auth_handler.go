package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/newsboard/internal/application"
	"github.com/oksasatya/newsboard/internal/domain/entity"
	"github.com/oksasatya/newsboard/internal/interface/middleware"
	"github.com/oksasatya/newsboard/pkg/helpers"
	"github.com/oksasatya/newsboard/pkg/response"
)

type AuthHandler struct {
	Service *application.UserService
	Cookies *helpers.Manager
	Logger  *logrus.Logger
}

func NewAuthHandler(svc *application.UserService, cookies *helpers.Manager, logger *logrus.Logger) *AuthHandler {
	return &AuthHandler{Service: svc, Cookies: cookies, Logger: logger}
}

type registerRequest struct {
	Username string `json:"username" binding:"required,username"`
	Password string `json:"password" binding:"required,pwd"`
}

type loginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type userResponse struct {
	User *entity.User `json:"user"`
}

// dropPreviousSession destroys whatever session the request carried so a
// fresh sid is issued on every successful login or registration.
func (h *AuthHandler) dropPreviousSession(c *gin.Context) {
	if old, err := c.Cookie(helpers.SessionCookieName); err == nil && old != "" {
		if err := h.Service.Logout(c.Request.Context(), old); err != nil {
			helpers.LogError(h.Logger, "drop previous session", err, logrus.Fields{"request_id": c.GetString("request_id")})
		}
	}
}

// Register POST /api/auth/register
func (h *AuthHandler) Register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	u, sess, err := h.Service.Register(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		fail(c, h.Logger, "register", err)
		return
	}
	h.dropPreviousSession(c)
	h.Cookies.SetSession(c, sess.Token, sess.ExpiresAt)
	response.Success(c, http.StatusCreated, userResponse{User: u})
}

// Login POST /api/auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	u, sess, err := h.Service.Login(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		fail(c, h.Logger, "login", err)
		return
	}
	h.dropPreviousSession(c)
	h.Cookies.SetSession(c, sess.Token, sess.ExpiresAt)
	response.Success(c, http.StatusOK, userResponse{User: u})
}

// Logout POST /api/auth/logout (auth required)
func (h *AuthHandler) Logout(c *gin.Context) {
	token, _ := c.Cookie(helpers.SessionCookieName)
	if err := h.Service.Logout(c.Request.Context(), token); err != nil {
		helpers.LogError(h.Logger, "logout", err, logrus.Fields{"request_id": c.GetString("request_id")})
	}
	h.Cookies.Clear(c)
	response.Message(c, http.StatusOK, "Logged out successfully")
}

// CurrentUser GET /api/auth/user (auth required)
func (h *AuthHandler) CurrentUser(c *gin.Context) {
	response.Success(c, http.StatusOK, userResponse{User: middleware.CurrentUser(c)})
}
