package middleware

import (
	"net/http"
	"runtime/debug"

	"github.com/employee-directory/apperrors"
	"github.com/employee-directory/dto"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Recovery logs panics and returns 500 with a generic message.
func Recovery(log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if rec := recover(); rec != nil {
				log.Error("panic recovered",
					zap.String("id", GetRequestID(c)),
					zap.Any("panic", rec),
					zap.ByteString("stack", debug.Stack()),
				)
				c.AbortWithStatusJSON(http.StatusInternalServerError, dto.ErrorResponse{
					Status:  false,
					Message: apperrors.GenericMessage,
				})
			}
		}()
		c.Next()
	}
}
