package v1

import (
	"github.com/employee-directory/apperrors"
	"github.com/employee-directory/dto"
	"github.com/employee-directory/middleware"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// respondError writes the {status:false, message} body for err. Causes of
// server errors are logged and never returned to the client.
func respondError(c *gin.Context, log *zap.Logger, err error) {
	status := apperrors.HTTPStatus(err)
	if status >= 500 {
		log.Error("request failed",
			zap.String("request_id", middleware.GetRequestID(c)),
			zap.String("method", c.Request.Method),
			zap.String("path", c.FullPath()),
			zap.Error(err),
		)
	}
	c.AbortWithStatusJSON(status, dto.ErrorResponse{
		Status:  false,
		Message: apperrors.PublicMessage(err),
	})
}
