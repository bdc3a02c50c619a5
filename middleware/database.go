package middleware

import (
	"net/http"

	"github.com/employee-directory/database"
	"github.com/employee-directory/dto"
	"github.com/employee-directory/repositories"
	"github.com/gin-gonic/gin"
)

// Database resolves the handle before the request reaches a handler, so a
// lazily connected deployment opens its pool on first use. When no
// connection can be made the request ends with a 500.
func Database(db repositories.HandleProvider) gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, err := db.Handle(c.Request.Context()); err != nil {
			c.AbortWithStatusJSON(http.StatusInternalServerError, dto.ErrorResponse{
				Status:  false,
				Message: database.ConnectionErrorMessage,
			})
			return
		}
		c.Next()
	}
}
