package dto

import (
	"bytes"
	"encoding/json"
	"strconv"
	"time"

	"github.com/employee-directory/models"
)

// Numeric holds a value that may arrive as a JSON number or a numeric
// string. It keeps the textual form so validation and coercion can run on it.
type Numeric string

// UnmarshalJSON accepts strings verbatim, numbers in plain decimal form and
// any other literal as its raw text.
func (n *Numeric) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	switch {
	case len(b) > 0 && b[0] == '"':
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*n = Numeric(s)
	case bytes.Equal(b, []byte("null")):
		*n = ""
	default:
		*n = Numeric(b)
		// JSON numbers are normalised to plain decimal so exponent forms
		// such as 5e4 pass the numeric rule.
		if f, err := strconv.ParseFloat(string(b), 64); err == nil {
			*n = Numeric(strconv.FormatFloat(f, 'f', -1, 64))
		}
	}
	return nil
}

// CreateEmployeeRequest represents the payload for creating an employee
type CreateEmployeeRequest struct {
	FirstName     string  `json:"first_name" binding:"required"`
	LastName      string  `json:"last_name" binding:"required"`
	Email         string  `json:"email" binding:"email"`
	Position      string  `json:"position" binding:"required"`
	Salary        Numeric `json:"salary" binding:"numeric"`
	DateOfJoining string  `json:"date_of_joining" binding:"required"`
	Department    string  `json:"department" binding:"required"`
}

// ValidationMessages maps each field to the message shown when its rule fails.
func (CreateEmployeeRequest) ValidationMessages() map[string]string {
	return employeeMessages
}

// UpdateEmployeeRequest carries a partial update; absent fields stay nil.
type UpdateEmployeeRequest struct {
	FirstName     *string  `json:"first_name"`
	LastName      *string  `json:"last_name"`
	Email         *string  `json:"email"`
	Position      *string  `json:"position"`
	Salary        *Numeric `json:"salary"`
	DateOfJoining *string  `json:"date_of_joining"`
	Department    *string  `json:"department"`
}

// IsEmpty reports whether the request supplies no field at all.
func (r UpdateEmployeeRequest) IsEmpty() bool {
	return r.FirstName == nil && r.LastName == nil && r.Email == nil &&
		r.Position == nil && r.Salary == nil && r.DateOfJoining == nil &&
		r.Department == nil
}

var employeeMessages = map[string]string{
	"FirstName":     "Please enter a first name",
	"LastName":      "Please enter a last name",
	"Email":         "Please enter a valid email",
	"Position":      "Please enter a position",
	"Salary":        "Please enter a valid salary (numeric)",
	"DateOfJoining": "Please enter a date of joining",
	"Department":    "Please enter a department",
}

// Messages for values that pass the field rules but cannot be coerced.
const (
	InvalidSalaryMessage = "Please enter a valid salary (numeric)"
	InvalidDateMessage   = "Please enter a valid date of joining"
)

// EmployeeResponse is the public shape of an employee
type EmployeeResponse struct {
	EmployeeID    string    `json:"employee_id"`
	FirstName     string    `json:"first_name"`
	LastName      string    `json:"last_name"`
	Email         string    `json:"email"`
	Position      string    `json:"position"`
	Salary        float64   `json:"salary"`
	DateOfJoining time.Time `json:"date_of_joining"`
	Department    string    `json:"department"`
}

// NewEmployeeResponse maps a model to its public shape
func NewEmployeeResponse(e models.Employee) EmployeeResponse {
	return EmployeeResponse{
		EmployeeID:    e.ID,
		FirstName:     e.FirstName,
		LastName:      e.LastName,
		Email:         e.Email,
		Position:      e.Position,
		Salary:        e.Salary,
		DateOfJoining: e.DateOfJoining.UTC(),
		Department:    e.Department,
	}
}

// NewEmployeeListResponse maps models to their public shape. The result is
// never nil so an empty list encodes as [].
func NewEmployeeListResponse(employees []models.Employee) []EmployeeResponse {
	out := make([]EmployeeResponse, 0, len(employees))
	for _, e := range employees {
		out = append(out, NewEmployeeResponse(e))
	}
	return out
}

// CreateEmployeeResponse is returned after an employee is created
type CreateEmployeeResponse struct {
	Message    string `json:"message"`
	EmployeeID string `json:"employee_id"`
}

// EmployeeSearch holds the optional search filters
type EmployeeSearch struct {
	Department string `form:"department"`
	Position   string `form:"position"`
}
