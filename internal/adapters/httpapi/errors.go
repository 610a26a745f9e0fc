package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"

	"blogcap/internal/adapters/httpapi/middleware"
	"blogcap/internal/core/errs"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// errorWriter maps core outcomes to HTTP answers. Anything it does not know
// is a server fault and is logged.
type errorWriter struct {
	logger *zap.Logger
}

func newErrorWriter(logger *zap.Logger) *errorWriter {
	return &errorWriter{logger: logger}
}

func (w *errorWriter) write(c *gin.Context, err error) {
	var validation *errs.ValidationError
	var quota *errs.QuotaExceededError

	switch {
	case errors.As(err, &validation):
		c.JSON(http.StatusBadRequest, gin.H{"error": validation.Error(), "field": validation.Field})
	case errors.Is(err, errs.ErrInvalidCredentials):
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid credentials"})
	case errors.Is(err, errs.ErrUnauthenticated):
		c.JSON(http.StatusUnauthorized, gin.H{"error": "please log in", "login_url": middleware.UserLoginURL})
	case errors.Is(err, errs.ErrPermission):
		c.JSON(http.StatusForbidden, gin.H{"error": "you don't have permission to do that"})
	case errors.As(err, &quota):
		c.JSON(http.StatusForbidden, gin.H{"error": quota.Error(), "limit": quota.Limit})
	case errors.Is(err, errs.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
	case errors.Is(err, errs.ErrConflict):
		c.JSON(http.StatusConflict, gin.H{"error": "username or email already taken"})
	case errors.Is(err, errs.ErrHasComments):
		c.JSON(http.StatusConflict, gin.H{"error": "cannot delete post: it has comments"})
	case errors.Is(err, errs.ErrContention):
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": errs.ErrContention.Error()})
	default:
		w.logger.Error("❌ Request failed", zap.String("path", c.FullPath()), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}

// bind decodes the JSON body into req. A value of the wrong type is reported
// against its field; any other decoding or binding failure is a plain 400.
func (w *errorWriter) bind(c *gin.Context, req interface{}) bool {
	err := c.ShouldBindJSON(req)
	if err == nil {
		return true
	}
	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) && typeErr.Field != "" {
		w.write(c, errs.Invalid(typeErr.Field, "must be of type "+typeErr.Type.String()))
		return false
	}
	c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input"})
	return false
}
