package routes

import (
	"context"
	"net/http"
	"time"

	v1 "github.com/employee-directory/api/v1"
	"github.com/employee-directory/dto"
	"github.com/employee-directory/middleware"
	"github.com/employee-directory/repositories"
	"github.com/employee-directory/services"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Database is the gateway the router needs: a per-request handle and a ping.
type Database interface {
	repositories.HandleProvider
	Ping(ctx context.Context) error
}

// Dependencies holds everything the router wires into handlers.
type Dependencies struct {
	Logger         *zap.Logger
	DB             Database
	Users          *services.UserService
	Employees      *services.EmployeeService
	AllowedOrigins []string // empty allows any origin
}

// NewRouter builds the gin engine with middleware and all routes.
func NewRouter(deps Dependencies) *gin.Engine {
	log := deps.Logger
	if log == nil {
		log = zap.NewNop()
	}

	router := gin.New()
	router.Use(
		middleware.RequestID(),
		middleware.Logging(log),
		middleware.Recovery(log),
		cors.New(corsConfig(deps.AllowedOrigins)),
	)

	// Public root banner
	router.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, dto.StatusResponse{
			Message: "Employee Management API",
			Status:  true,
		})
	})

	api := router.Group("/api/v1")
	v1.RegisterRoutes(api, v1.Controllers{
		Health:    v1.NewHealthController(deps.DB),
		Users:     v1.NewUserController(deps.Users, log),
		Employees: v1.NewEmployeeController(deps.Employees, log),
	}, middleware.Database(deps.DB))

	router.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, dto.ErrorResponse{Status: false, Message: "Route not found"})
	})

	return router
}

func corsConfig(origins []string) cors.Config {
	cfg := cors.Config{
		AllowMethods:  []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Accept", middleware.RequestIDHeader},
		ExposeHeaders: []string{middleware.RequestIDHeader},
		MaxAge:        12 * time.Hour,
	}
	if len(origins) == 0 {
		cfg.AllowAllOrigins = true
	} else {
		cfg.AllowOrigins = origins
	}
	return cfg
}
