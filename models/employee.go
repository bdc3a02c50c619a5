package models

import (
	"time"
)

// Employee represents an employee record
type Employee struct {
	ID            string    `json:"employee_id" gorm:"primaryKey;type:uuid;default:gen_random_uuid()"`
	FirstName     string    `json:"first_name" gorm:"not null"`
	LastName      string    `json:"last_name" gorm:"not null"`
	Email         string    `json:"email" gorm:"not null;uniqueIndex:idx_employees_email"`
	Position      string    `json:"position" gorm:"not null;index"`
	Salary        float64   `json:"salary" gorm:"not null"`
	DateOfJoining time.Time `json:"date_of_joining" gorm:"type:date;not null"`
	Department    string    `json:"department" gorm:"not null;index"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// EmployeeChanges is a partial update. Nil fields are left untouched.
type EmployeeChanges struct {
	FirstName     *string
	LastName      *string
	Email         *string
	Position      *string
	Salary        *float64
	DateOfJoining *time.Time
	Department    *string
}

// Columns returns the column assignments for the supplied fields.
func (c EmployeeChanges) Columns() map[string]interface{} {
	cols := make(map[string]interface{})
	if c.FirstName != nil {
		cols["first_name"] = *c.FirstName
	}
	if c.LastName != nil {
		cols["last_name"] = *c.LastName
	}
	if c.Email != nil {
		cols["email"] = *c.Email
	}
	if c.Position != nil {
		cols["position"] = *c.Position
	}
	if c.Salary != nil {
		cols["salary"] = *c.Salary
	}
	if c.DateOfJoining != nil {
		cols["date_of_joining"] = *c.DateOfJoining
	}
	if c.Department != nil {
		cols["department"] = *c.Department
	}
	return cols
}

// Apply merges the supplied fields into e.
func (c EmployeeChanges) Apply(e *Employee) {
	if c.FirstName != nil {
		e.FirstName = *c.FirstName
	}
	if c.LastName != nil {
		e.LastName = *c.LastName
	}
	if c.Email != nil {
		e.Email = *c.Email
	}
	if c.Position != nil {
		e.Position = *c.Position
	}
	if c.Salary != nil {
		e.Salary = *c.Salary
	}
	if c.DateOfJoining != nil {
		e.DateOfJoining = *c.DateOfJoining
	}
	if c.Department != nil {
		e.Department = *c.Department
	}
}
