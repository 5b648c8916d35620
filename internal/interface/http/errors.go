package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/newsboard/internal/application"
	"github.com/oksasatya/newsboard/pkg/helpers"
	"github.com/oksasatya/newsboard/pkg/response"
	"github.com/oksasatya/newsboard/pkg/validation"
)

const msgInternal = "Internal server error"

// badRequest answers a binding failure with the first violation as the
// message and every field violation under details.
func badRequest(c *gin.Context, err error) {
	var details interface{}
	if d := validation.ToDetails(err); len(d) > 0 {
		details = d
	}
	response.Error(c, http.StatusBadRequest, validation.Message(err), details)
}

// fail maps service errors onto status codes. Anything unrecognised is
// logged and hidden behind a generic 500.
func fail(c *gin.Context, logger *logrus.Logger, op string, err error) {
	var verr *application.ValidationError
	switch {
	case errors.As(err, &verr):
		response.Error(c, http.StatusBadRequest, verr.Message, nil)
	case errors.Is(err, application.ErrUsernameTaken):
		response.Error(c, http.StatusBadRequest, "Username already exists", nil)
	case errors.Is(err, application.ErrInvalidCredentials):
		response.Error(c, http.StatusUnauthorized, "Invalid username or password", nil)
	case errors.Is(err, application.ErrUnauthenticated):
		response.Error(c, http.StatusUnauthorized, "Not authenticated", nil)
	case errors.Is(err, application.ErrForbidden):
		response.Error(c, http.StatusForbidden, "Forbidden", nil)
	case errors.Is(err, application.ErrArticleNotFound):
		response.Error(c, http.StatusNotFound, "Article not found", nil)
	default:
		helpers.LogError(logger, op+" failed", err, logrus.Fields{"request_id": c.GetString("request_id")})
		response.Error(c, http.StatusInternalServerError, msgInternal, nil)
	}
}
