package repositories

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/employee-directory/apperrors"
	"github.com/employee-directory/models"
	"gorm.io/gorm"
)

// EmployeeRepository handles database operations for employees
type EmployeeRepository interface {
	FindAll(ctx context.Context) ([]models.Employee, error)
	Search(ctx context.Context, department, position string) ([]models.Employee, error)
	FindByID(ctx context.Context, id string) (models.Employee, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	Create(ctx context.Context, employee *models.Employee) error
	Update(ctx context.Context, id string, changes models.EmployeeChanges, updatedAt time.Time) error
	Delete(ctx context.Context, id string) error
}

type employeeRepository struct {
	db HandleProvider
}

// NewEmployeeRepository creates a new employee repository instance
func NewEmployeeRepository(db HandleProvider) EmployeeRepository {
	return &employeeRepository{db: db}
}

// FindAll retrieves all employees in insertion order
func (r *employeeRepository) FindAll(ctx context.Context) ([]models.Employee, error) {
	db, err := r.db.Handle(ctx)
	if err != nil {
		return nil, err
	}
	var employees []models.Employee
	if err := db.Order("created_at, id").Find(&employees).Error; err != nil {
		return nil, apperrors.Wrap(err, apperrors.CodeInternal, "find employees failed")
	}
	return employees, nil
}

// Search retrieves employees whose department and/or position contain the
// given terms, case-insensitively. Blank terms are not filtered on.
func (r *employeeRepository) Search(ctx context.Context, department, position string) ([]models.Employee, error) {
	db, err := r.db.Handle(ctx)
	if err != nil {
		return nil, err
	}

	query := db.Model(&models.Employee{})
	if department != "" {
		query = query.Where("department ILIKE ?", containsPattern(department))
	}
	if position != "" {
		query = query.Where("position ILIKE ?", containsPattern(position))
	}

	var employees []models.Employee
	if err := query.Order("created_at, id").Find(&employees).Error; err != nil {
		return nil, apperrors.Wrap(err, apperrors.CodeInternal, "search employees failed")
	}
	return employees, nil
}

// FindByID retrieves an employee by its ID
func (r *employeeRepository) FindByID(ctx context.Context, id string) (models.Employee, error) {
	var employee models.Employee
	db, err := r.db.Handle(ctx)
	if err != nil {
		return employee, err
	}
	if err := db.First(&employee, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return employee, ErrNotFound
		}
		return employee, apperrors.Wrap(err, apperrors.CodeInternal, "find employee failed")
	}
	return employee, nil
}

// ExistsByEmail checks if an employee with the given email exists
func (r *employeeRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	db, err := r.db.Handle(ctx)
	if err != nil {
		return false, err
	}
	var count int64
	if err := db.Model(&models.Employee{}).Where("email = ?", email).Count(&count).Error; err != nil {
		return false, apperrors.Wrap(err, apperrors.CodeInternal, "count employees failed")
	}
	return count > 0, nil
}

// Create inserts a new employee; the id is assigned by the database
func (r *employeeRepository) Create(ctx context.Context, employee *models.Employee) error {
	db, err := r.db.Handle(ctx)
	if err != nil {
		return err
	}
	if err := db.Create(employee).Error; err != nil {
		if isDuplicateKey(err) {
			return ErrDuplicateKey
		}
		return apperrors.Wrap(err, apperrors.CodeInternal, "create employee failed")
	}
	return nil
}

// Update sets only the supplied fields plus updated_at
func (r *employeeRepository) Update(ctx context.Context, id string, changes models.EmployeeChanges, updatedAt time.Time) error {
	db, err := r.db.Handle(ctx)
	if err != nil {
		return err
	}

	cols := changes.Columns()
	cols["updated_at"] = updatedAt

	result := db.Model(&models.Employee{}).Where("id = ?", id).Updates(cols)
	if result.Error != nil {
		if isDuplicateKey(result.Error) {
			return ErrDuplicateKey
		}
		return apperrors.Wrap(result.Error, apperrors.CodeInternal, "update employee failed")
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete permanently removes an employee
func (r *employeeRepository) Delete(ctx context.Context, id string) error {
	db, err := r.db.Handle(ctx)
	if err != nil {
		return err
	}
	result := db.Where("id = ?", id).Delete(&models.Employee{})
	if result.Error != nil {
		return apperrors.Wrap(result.Error, apperrors.CodeInternal, "delete employee failed")
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func containsPattern(term string) string {
	return "%" + likeEscaper.Replace(term) + "%"
}
