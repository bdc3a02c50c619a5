package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/employee-directory/apperrors"
	"github.com/employee-directory/dto"
	"github.com/employee-directory/models"
	"github.com/employee-directory/repositories"
	"github.com/employee-directory/utils"
	"go.uber.org/zap"
)

// EmployeeService handles business logic for employees
type EmployeeService struct {
	employees repositories.EmployeeRepository
	log       *zap.Logger
	now       func() time.Time
}

// NewEmployeeService creates a new employee service instance
func NewEmployeeService(employees repositories.EmployeeRepository, log *zap.Logger) *EmployeeService {
	return &EmployeeService{
		employees: employees,
		log:       log,
		now:       time.Now,
	}
}

// List retrieves every employee
func (s *EmployeeService) List(ctx context.Context) ([]models.Employee, error) {
	employees, err := s.employees.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("list employees: %w", err)
	}
	return employees, nil
}

// Search retrieves employees by department and/or position. Terms match
// case-insensitively anywhere in the field; at least one is required.
func (s *EmployeeService) Search(ctx context.Context, filter dto.EmployeeSearch) ([]models.Employee, error) {
	department := strings.TrimSpace(filter.Department)
	position := strings.TrimSpace(filter.Position)
	if department == "" && position == "" {
		return nil, apperrors.New(apperrors.CodeBadRequest, MsgSearchFilterRequired)
	}

	employees, err := s.employees.Search(ctx, department, position)
	if err != nil {
		return nil, fmt.Errorf("search employees: %w", err)
	}
	return employees, nil
}

// Create stores a new employee and returns its id
func (s *EmployeeService) Create(ctx context.Context, req dto.CreateEmployeeRequest) (string, error) {
	salary, err := utils.ParseSalary(string(req.Salary))
	if err != nil {
		return "", apperrors.Wrap(err, apperrors.CodeValidation, dto.InvalidSalaryMessage)
	}
	joined, err := utils.ParseDate(req.DateOfJoining)
	if err != nil {
		return "", apperrors.Wrap(err, apperrors.CodeValidation, dto.InvalidDateMessage)
	}

	exists, err := s.employees.ExistsByEmail(ctx, req.Email)
	if err != nil {
		return "", fmt.Errorf("check existing employee: %w", err)
	}
	if exists {
		return "", apperrors.New(apperrors.CodeConflict, MsgEmployeeExists)
	}

	now := s.now()
	employee := models.Employee{
		FirstName:     req.FirstName,
		LastName:      req.LastName,
		Email:         req.Email,
		Position:      req.Position,
		Salary:        salary,
		DateOfJoining: joined,
		Department:    req.Department,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	if err := s.employees.Create(ctx, &employee); err != nil {
		if errors.Is(err, repositories.ErrDuplicateKey) {
			return "", apperrors.Wrap(err, apperrors.CodeConflict, MsgEmployeeExists)
		}
		return "", fmt.Errorf("create employee: %w", err)
	}

	s.log.Info("employee created", zap.String("employee_id", employee.ID))
	return employee.ID, nil
}

// GetByID retrieves an employee by its ID
func (s *EmployeeService) GetByID(ctx context.Context, id string) (models.Employee, error) {
	if !utils.IsValidID(id) {
		return models.Employee{}, apperrors.New(apperrors.CodeInvalidID, MsgInvalidEmployeeID)
	}

	employee, err := s.employees.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return models.Employee{}, apperrors.New(apperrors.CodeNotFound, MsgEmployeeNotFound)
		}
		return models.Employee{}, fmt.Errorf("get employee: %w", err)
	}
	return employee, nil
}

// Update merges the supplied fields into the employee and refreshes
// updated_at. Email uniqueness is not re-checked here.
func (s *EmployeeService) Update(ctx context.Context, id string, req dto.UpdateEmployeeRequest) error {
	if req.IsEmpty() {
		return apperrors.New(apperrors.CodeBadRequest, MsgNoUpdateData)
	}
	if !utils.IsValidID(id) {
		return apperrors.New(apperrors.CodeInvalidID, MsgInvalidEmployeeID)
	}

	changes := models.EmployeeChanges{
		FirstName:  req.FirstName,
		LastName:   req.LastName,
		Email:      req.Email,
		Position:   req.Position,
		Department: req.Department,
	}
	if req.Salary != nil {
		salary, err := utils.ParseSalary(string(*req.Salary))
		if err != nil {
			return apperrors.Wrap(err, apperrors.CodeValidation, dto.InvalidSalaryMessage)
		}
		changes.Salary = &salary
	}
	if req.DateOfJoining != nil {
		joined, err := utils.ParseDate(*req.DateOfJoining)
		if err != nil {
			return apperrors.Wrap(err, apperrors.CodeValidation, dto.InvalidDateMessage)
		}
		changes.DateOfJoining = &joined
	}

	if err := s.employees.Update(ctx, id, changes, s.now()); err != nil {
		switch {
		case errors.Is(err, repositories.ErrNotFound):
			return apperrors.New(apperrors.CodeNotFound, MsgEmployeeNotFound)
		case errors.Is(err, repositories.ErrDuplicateKey):
			return apperrors.Wrap(err, apperrors.CodeConflict, MsgEmployeeExists)
		}
		return fmt.Errorf("update employee: %w", err)
	}

	s.log.Info("employee updated", zap.String("employee_id", id))
	return nil
}

// Delete permanently removes an employee
func (s *EmployeeService) Delete(ctx context.Context, id string) error {
	if id == "" {
		return apperrors.New(apperrors.CodeBadRequest, MsgEmployeeIDRequired)
	}
	if !utils.IsValidID(id) {
		return apperrors.New(apperrors.CodeInvalidID, MsgInvalidEmployeeID)
	}

	if err := s.employees.Delete(ctx, id); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return apperrors.New(apperrors.CodeNotFound, MsgEmployeeNotFound)
		}
		return fmt.Errorf("delete employee: %w", err)
	}

	s.log.Info("employee deleted", zap.String("employee_id", id))
	return nil
}
