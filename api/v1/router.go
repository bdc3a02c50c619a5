package v1

import (
	"github.com/gin-gonic/gin"
)

// Controllers groups the handlers mounted under /api/v1.
type Controllers struct {
	Health    *HealthController
	Users     *UserController
	Employees *EmployeeController
}

// RegisterRoutes registers all v1 API routes. The data middleware guards
// every route that touches the database; health reports its own status.
func RegisterRoutes(router *gin.RouterGroup, ctrl Controllers, data gin.HandlerFunc) {
	// Health check endpoint
	router.GET("/health", ctrl.Health.HealthCheck)

	guarded := router.Group("")
	if data != nil {
		guarded.Use(data)
	}
	ctrl.Users.RegisterRoutes(guarded)
	ctrl.Employees.RegisterRoutes(guarded)
}
