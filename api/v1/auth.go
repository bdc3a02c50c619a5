package v1

import (
	"net/http"

	"github.com/employee-directory/dto"
	"github.com/employee-directory/services"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// UserController handles signup and login
type UserController struct {
	users *services.UserService
	log   *zap.Logger
}

// NewUserController creates a new user controller
func NewUserController(users *services.UserService, log *zap.Logger) *UserController {
	return &UserController{users: users, log: log}
}

// RegisterRoutes registers user routes
func (uc *UserController) RegisterRoutes(router *gin.RouterGroup) {
	user := router.Group("/user")
	{
		user.POST("/signup", uc.Signup)
		user.POST("/login", uc.Login)
	}
}

// Signup handles user registration
func (uc *UserController) Signup(c *gin.Context) {
	var req dto.SignupRequest
	if err := bindJSON(c, &req); err != nil {
		respondError(c, uc.log, err)
		return
	}

	userID, err := uc.users.Register(c.Request.Context(), req)
	if err != nil {
		respondError(c, uc.log, err)
		return
	}

	c.JSON(http.StatusCreated, dto.SignupResponse{
		Message: "User created successfully.",
		UserID:  userID,
	})
}

// Login checks the supplied credentials. No session or token is issued.
func (uc *UserController) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := bindJSON(c, &req); err != nil {
		respondError(c, uc.log, err)
		return
	}

	if err := uc.users.Authenticate(c.Request.Context(), req); err != nil {
		respondError(c, uc.log, err)
		return
	}

	c.JSON(http.StatusOK, dto.MessageResponse{Message: "Login successful."})
}
