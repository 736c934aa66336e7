package middleware

import (
	"github.com/gin-gonic/gin"

	"stockbook/internal/core/apperror"
	appctx "stockbook/internal/core/context"
	"stockbook/internal/infrastructure/http/v1/dto"
	"stockbook/pkg/logger"
)

// ErrorHandler renders the last handler error as a dto.ErrorResponse.
// Errors that are not AppErrors become INTERNAL_ERROR and their text is
// only logged.
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 || c.Writer.Written() {
			return
		}

		ctx := c.Request.Context()
		err := c.Errors.Last().Err

		appErr, ok := apperror.AsAppError(err)
		if !ok {
			logger.Error(ctx, "unhandled error", "error", err)
			appErr = apperror.NewInternal(err).
				WithDetail("request_id", appctx.GetRequestID(ctx))
		} else if appErr.Err != nil {
			logger.Error(ctx, "request error", "code", appErr.Code, "cause", appErr.Err)
		}

		c.JSON(apperror.GetHTTPStatus(appErr), dto.ErrorResponse{
			Code:    appErr.Code,
			Message: appErr.Message,
			Details: appErr.Details,
		})
	}
}

// NotFound renders unknown routes in the error format.
func NotFound() gin.HandlerFunc {
	return func(c *gin.Context) {
		_ = c.Error(apperror.NewNotFound("route", c.Request.Method+" "+c.Request.URL.Path))
		c.Abort()
	}
}
