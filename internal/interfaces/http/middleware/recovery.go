package middleware

import (
	"fmt"
	"net/http"
	"runtime/debug"

	"github.com/gin-gonic/gin"

	"github.com/turtacn/KeyIP-Descriptors/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/KeyIP-Descriptors/pkg/errors"
)

// Recovery turns a handler panic into a 500 with the standard error body.
func Recovery(logger logging.Logger) gin.HandlerFunc {
	if logger == nil {
		logger = logging.NewNopLogger()
	}
	return func(c *gin.Context) {
		defer func() {
			r := recover()
			if r == nil {
				return
			}
			logger.Error("panic in HTTP handler",
				logging.String("panic", fmt.Sprint(r)),
				logging.String("path", c.Request.URL.Path),
				logging.String("request_id", GetRequestID(c)),
				logging.String("stack", string(debug.Stack())))
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
				"code":       errors.ErrCodeInternal.String(),
				"message":    errors.DefaultMessageForCode(errors.ErrCodeInternal),
				"request_id": GetRequestID(c),
			})
		}()
		c.Next()
	}
}

//Personal.AI order the ending
