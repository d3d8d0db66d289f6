package utils

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rcsmith8/starter-restaurant-reservation/models"
	"github.com/rcsmith8/starter-restaurant-reservation/services"
	"github.com/rcsmith8/starter-restaurant-reservation/validation"
	"github.com/sirupsen/logrus"
)

const MsgInternal = "internal server error"

type DataResponse struct {
	Data interface{} `json:"data"`
}

// ErrorResponse carries one message as a string and several as a list.
type ErrorResponse struct {
	Error interface{} `json:"error"`
}

func RespondJSON(c *gin.Context, code int, data interface{}) {
	c.JSON(code, DataResponse{Data: data})
}

// RespondError writes err with the status its type calls for. Errors of unknown
// type are logged and reported as 500.
func RespondError(c *gin.Context, err error) {
	var (
		verr  *validation.Error
		nf    *services.NotFoundError
		rule  *services.RuleError
		trans *models.TransitionError
	)
	switch {
	case errors.As(err, &verr):
		c.AbortWithStatusJSON(http.StatusBadRequest, ErrorResponse{Error: verr.Payload()})
	case errors.As(err, &nf):
		c.AbortWithStatusJSON(http.StatusNotFound, ErrorResponse{Error: nf.Error()})
	case errors.As(err, &rule):
		c.AbortWithStatusJSON(http.StatusBadRequest, ErrorResponse{Error: rule.Error()})
	case errors.As(err, &trans):
		c.AbortWithStatusJSON(http.StatusBadRequest, ErrorResponse{Error: trans.Error()})
	case errors.Is(err, services.ErrInvalidCredentials):
		c.AbortWithStatusJSON(http.StatusUnauthorized, ErrorResponse{Error: err.Error()})
	case errors.Is(err, services.ErrForbidden):
		c.AbortWithStatusJSON(http.StatusForbidden, ErrorResponse{Error: err.Error()})
	default:
		ErrorLogger.WithError(err).WithFields(logrus.Fields{
			"method":     c.Request.Method,
			"path":       c.Request.URL.Path,
			"request_id": c.GetString(RequestIDKey),
		}).Error("Request failed")
		c.AbortWithStatusJSON(http.StatusInternalServerError, ErrorResponse{Error: MsgInternal})
	}
}

// RespondStatus writes a plain message with an explicit status, for auth and routing
// failures that have no typed error.
func RespondStatus(c *gin.Context, code int, message string) {
	c.AbortWithStatusJSON(code, ErrorResponse{Error: message})
}

// RequestIDKey is the gin context key holding the request id.
const RequestIDKey = "request_id"
