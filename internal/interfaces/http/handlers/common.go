// Package handlers implements the gin handlers of the HTTP API.
package handlers

import (
	stderrors "errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/turtacn/KeyIP-Descriptors/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/KeyIP-Descriptors/internal/interfaces/http/middleware"
	"github.com/turtacn/KeyIP-Descriptors/pkg/errors"
)

// ErrorResponse is the standard error response body.
type ErrorResponse struct {
	Code      string `json:"code"`
	Message   string `json:"message"`
	Detail    string `json:"detail,omitempty"`
	RequestID string `json:"request_id,omitempty"`
}

// writeError maps err to its HTTP status and writes the error body.
func writeError(c *gin.Context, logger logging.Logger, err error) {
	writeErrorStatus(c, logger, errors.HTTPStatus(err), err)
}

// writeErrorStatus writes err with an explicit status. Errors outside the
// AppError taxonomy are masked as internal errors.
func writeErrorStatus(c *gin.Context, logger logging.Logger, status int, err error) {
	_ = c.Error(err)
	resp := ErrorResponse{RequestID: middleware.GetRequestID(c)}

	code := errors.GetCode(err)
	if code == errors.CodeUnknown {
		logger.Error("unexpected handler error", logging.Err(err), logging.String("request_id", resp.RequestID))
		resp.Code = errors.ErrCodeInternal.String()
		resp.Message = errors.DefaultMessageForCode(errors.ErrCodeInternal)
		c.AbortWithStatusJSON(http.StatusInternalServerError, resp)
		return
	}

	resp.Code = code.String()
	var ae *errors.AppError
	if stderrors.As(err, &ae) {
		resp.Message = ae.Message
		resp.Detail = ae.Detail
	}
	if resp.Message == "" {
		resp.Message = errors.DefaultMessageForCode(code)
	}
	c.AbortWithStatusJSON(status, resp)
}

//Personal.AI order the ending
