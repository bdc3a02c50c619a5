package v1

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// Pinger reports whether the database answers.
type Pinger interface {
	Ping(ctx context.Context) error
}

// HealthController serves the health check endpoint
type HealthController struct {
	db Pinger
}

// NewHealthController creates a new health controller
func NewHealthController(db Pinger) *HealthController {
	return &HealthController{db: db}
}

// HealthCheck reports service and database status. It answers 503 when the
// database cannot be reached.
func (hc *HealthController) HealthCheck(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	code, status, database := http.StatusOK, "ok", "up"
	if err := hc.db.Ping(ctx); err != nil {
		code, status, database = http.StatusServiceUnavailable, "degraded", "down"
	}

	c.JSON(code, gin.H{
		"status":    status,
		"service":   "employee-directory",
		"database":  database,
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}
