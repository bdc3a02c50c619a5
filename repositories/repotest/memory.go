// Package repotest provides in-memory repositories for tests.
package repotest

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/employee-directory/models"
	"github.com/employee-directory/repositories"
	"github.com/google/uuid"
)

// EmployeeStore is an in-memory EmployeeRepository. It enforces the
// unique email index the way the database does.
type EmployeeStore struct {
	mu    sync.Mutex
	rows  map[string]models.Employee
	order []string

	// Err, when set, is returned by every operation.
	Err error
	// Calls counts operations that reached the store.
	Calls int
}

var _ repositories.EmployeeRepository = (*EmployeeStore)(nil)

// NewEmployeeStore creates an empty store.
func NewEmployeeStore() *EmployeeStore {
	return &EmployeeStore{rows: make(map[string]models.Employee)}
}

func (s *EmployeeStore) begin() error {
	s.Calls++
	return s.Err
}

func (s *EmployeeStore) FindAll(ctx context.Context) ([]models.Employee, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.begin(); err != nil {
		return nil, err
	}
	out := make([]models.Employee, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, s.rows[id])
	}
	return out, nil
}

func (s *EmployeeStore) Search(ctx context.Context, department, position string) ([]models.Employee, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.begin(); err != nil {
		return nil, err
	}
	var out []models.Employee
	for _, id := range s.order {
		e := s.rows[id]
		if department != "" && !containsFold(e.Department, department) {
			continue
		}
		if position != "" && !containsFold(e.Position, position) {
			continue
		}
		out = append(out, e)
	}
	return out, nil
}

func (s *EmployeeStore) FindByID(ctx context.Context, id string) (models.Employee, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.begin(); err != nil {
		return models.Employee{}, err
	}
	e, ok := s.rows[id]
	if !ok {
		return models.Employee{}, repositories.ErrNotFound
	}
	return e, nil
}

func (s *EmployeeStore) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.begin(); err != nil {
		return false, err
	}
	return s.emailTaken(email, ""), nil
}

func (s *EmployeeStore) Create(ctx context.Context, employee *models.Employee) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.begin(); err != nil {
		return err
	}
	if s.emailTaken(employee.Email, "") {
		return repositories.ErrDuplicateKey
	}
	employee.ID = uuid.NewString()
	s.rows[employee.ID] = *employee
	s.order = append(s.order, employee.ID)
	return nil
}

func (s *EmployeeStore) Update(ctx context.Context, id string, changes models.EmployeeChanges, updatedAt time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.begin(); err != nil {
		return err
	}
	e, ok := s.rows[id]
	if !ok {
		return repositories.ErrNotFound
	}
	if changes.Email != nil && s.emailTaken(*changes.Email, id) {
		return repositories.ErrDuplicateKey
	}
	changes.Apply(&e)
	e.UpdatedAt = updatedAt
	s.rows[id] = e
	return nil
}

func (s *EmployeeStore) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.begin(); err != nil {
		return err
	}
	if _, ok := s.rows[id]; !ok {
		return repositories.ErrNotFound
	}
	delete(s.rows, id)
	for i, v := range s.order {
		if v == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	return nil
}

// Len returns the number of stored employees.
func (s *EmployeeStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.rows)
}

func (s *EmployeeStore) emailTaken(email, exceptID string) bool {
	for id, e := range s.rows {
		if id != exceptID && e.Email == email {
			return true
		}
	}
	return false
}

// UserStore is an in-memory UserRepository with unique username and email.
type UserStore struct {
	mu   sync.Mutex
	rows []models.User

	// Err, when set, is returned by every operation.
	Err error
}

var _ repositories.UserRepository = (*UserStore)(nil)

// NewUserStore creates an empty store.
func NewUserStore() *UserStore {
	return &UserStore{}
}

func (s *UserStore) ExistsByUsernameOrEmail(ctx context.Context, username, email string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return false, s.Err
	}
	for _, u := range s.rows {
		if u.Username == username || u.Email == email {
			return true, nil
		}
	}
	return false, nil
}

func (s *UserStore) Create(ctx context.Context, user *models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return s.Err
	}
	for _, u := range s.rows {
		if u.Username == user.Username || u.Email == user.Email {
			return repositories.ErrDuplicateKey
		}
	}
	user.ID = uuid.NewString()
	s.rows = append(s.rows, *user)
	return nil
}

func (s *UserStore) FindByLogin(ctx context.Context, username, email string) (models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return models.User{}, s.Err
	}
	for _, u := range s.rows {
		if (username != "" && u.Username == username) || (email != "" && u.Email == email) {
			return u, nil
		}
	}
	return models.User{}, repositories.ErrNotFound
}

// Len returns the number of stored users.
func (s *UserStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.rows)
}

func containsFold(s, substr string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}
