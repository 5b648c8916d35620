package middleware

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/newsboard/internal/application"
	"github.com/oksasatya/newsboard/internal/domain/entity"
	"github.com/oksasatya/newsboard/pkg/helpers"
	"github.com/oksasatya/newsboard/pkg/response"
)

const CtxUserKey = "currentUser"

// SessionResolver turns a session cookie value into the user it belongs to.
type SessionResolver interface {
	Resolve(ctx context.Context, token string) (*entity.User, error)
}

// Auth requires a live session. The resolved user is stored in the gin
// context and read back with CurrentUser.
func Auth(resolver SessionResolver, logger *logrus.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, _ := c.Cookie(helpers.SessionCookieName)
		u, err := resolver.Resolve(c.Request.Context(), token)
		if err != nil {
			if errors.Is(err, application.ErrUnauthenticated) {
				response.Error(c, http.StatusUnauthorized, "Not authenticated", nil)
				return
			}
			helpers.LogError(logger, "session lookup failed", err, logrus.Fields{"request_id": c.GetString("request_id")})
			response.Error(c, http.StatusInternalServerError, "Internal server error", nil)
			return
		}
		c.Set(CtxUserKey, u)
		c.Next()
	}
}

// CurrentUser returns the user set by Auth, or nil on public routes.
func CurrentUser(c *gin.Context) *entity.User {
	v, ok := c.Get(CtxUserKey)
	if !ok {
		return nil
	}
	u, _ := v.(*entity.User)
	return u
}
