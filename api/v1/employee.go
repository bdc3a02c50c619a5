package v1

import (
	"net/http"

	"github.com/employee-directory/apperrors"
	"github.com/employee-directory/dto"
	"github.com/employee-directory/services"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// EmployeeController handles employee-related API endpoints
type EmployeeController struct {
	employees *services.EmployeeService
	log       *zap.Logger
}

// NewEmployeeController creates a new employee controller
func NewEmployeeController(employees *services.EmployeeService, log *zap.Logger) *EmployeeController {
	return &EmployeeController{employees: employees, log: log}
}

// RegisterRoutes registers employee routes
func (ec *EmployeeController) RegisterRoutes(router *gin.RouterGroup) {
	employees := router.Group("/emp/employees")
	{
		employees.GET("", ec.ListEmployees)
		employees.POST("", ec.CreateEmployee)
		employees.GET("/:eid", ec.GetEmployee)
		employees.PUT("/:eid", ec.UpdateEmployee)
		employees.DELETE("", ec.DeleteEmployee)
	}
}

// ListEmployees returns every employee, or the search result when a
// department or position filter is present in the query string.
func (ec *EmployeeController) ListEmployees(c *gin.Context) {
	query := c.Request.URL.Query()
	if query.Has("department") || query.Has("position") {
		ec.SearchEmployees(c)
		return
	}

	employees, err := ec.employees.List(c.Request.Context())
	if err != nil {
		respondError(c, ec.log, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewEmployeeListResponse(employees))
}

// SearchEmployees filters employees by department and/or position
func (ec *EmployeeController) SearchEmployees(c *gin.Context) {
	var filter dto.EmployeeSearch
	if err := c.ShouldBindQuery(&filter); err != nil {
		respondError(c, ec.log, apperrors.Wrap(err, apperrors.CodeBadRequest, services.MsgSearchFilterRequired))
		return
	}

	employees, err := ec.employees.Search(c.Request.Context(), filter)
	if err != nil {
		respondError(c, ec.log, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewEmployeeListResponse(employees))
}

// CreateEmployee adds a new employee
func (ec *EmployeeController) CreateEmployee(c *gin.Context) {
	var req dto.CreateEmployeeRequest
	if err := bindJSON(c, &req); err != nil {
		respondError(c, ec.log, err)
		return
	}

	id, err := ec.employees.Create(c.Request.Context(), req)
	if err != nil {
		respondError(c, ec.log, err)
		return
	}

	c.JSON(http.StatusCreated, dto.CreateEmployeeResponse{
		Message:    "Employee created successfully.",
		EmployeeID: id,
	})
}

// GetEmployee returns a single employee
func (ec *EmployeeController) GetEmployee(c *gin.Context) {
	employee, err := ec.employees.GetByID(c.Request.Context(), c.Param("eid"))
	if err != nil {
		respondError(c, ec.log, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewEmployeeResponse(employee))
}

// UpdateEmployee applies a partial update
func (ec *EmployeeController) UpdateEmployee(c *gin.Context) {
	var req dto.UpdateEmployeeRequest
	if err := bindJSON(c, &req); err != nil {
		respondError(c, ec.log, err)
		return
	}

	if err := ec.employees.Update(c.Request.Context(), c.Param("eid"), req); err != nil {
		respondError(c, ec.log, err)
		return
	}

	c.JSON(http.StatusOK, dto.MessageResponse{Message: "Employee details updated successfully."})
}

// DeleteEmployee removes the employee named by the eid query parameter
func (ec *EmployeeController) DeleteEmployee(c *gin.Context) {
	if err := ec.employees.Delete(c.Request.Context(), c.Query("eid")); err != nil {
		respondError(c, ec.log, err)
		return
	}
	c.Status(http.StatusNoContent)
}
