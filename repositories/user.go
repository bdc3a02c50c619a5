package repositories

import (
	"context"
	"errors"

	"github.com/employee-directory/apperrors"
	"github.com/employee-directory/models"
	"gorm.io/gorm"
)

// UserRepository handles database operations for users
type UserRepository interface {
	ExistsByUsernameOrEmail(ctx context.Context, username, email string) (bool, error)
	Create(ctx context.Context, user *models.User) error
	FindByLogin(ctx context.Context, username, email string) (models.User, error)
}

type userRepository struct {
	db HandleProvider
}

// NewUserRepository creates a new user repository instance
func NewUserRepository(db HandleProvider) UserRepository {
	return &userRepository{db: db}
}

// ExistsByUsernameOrEmail checks whether any user already has the username or the email
func (r *userRepository) ExistsByUsernameOrEmail(ctx context.Context, username, email string) (bool, error) {
	db, err := r.db.Handle(ctx)
	if err != nil {
		return false, err
	}
	var count int64
	result := db.Model(&models.User{}).Where("username = ? OR email = ?", username, email).Count(&count)
	if result.Error != nil {
		return false, apperrors.Wrap(result.Error, apperrors.CodeInternal, "count users failed")
	}
	return count > 0, nil
}

// Create inserts a new user; the id is assigned by the database
func (r *userRepository) Create(ctx context.Context, user *models.User) error {
	db, err := r.db.Handle(ctx)
	if err != nil {
		return err
	}
	if err := db.Create(user).Error; err != nil {
		if isDuplicateKey(err) {
			return ErrDuplicateKey
		}
		return apperrors.Wrap(err, apperrors.CodeInternal, "create user failed")
	}
	return nil
}

// FindByLogin retrieves the user whose username or email matches. Empty
// identifiers are ignored.
func (r *userRepository) FindByLogin(ctx context.Context, username, email string) (models.User, error) {
	var user models.User
	if username == "" && email == "" {
		return user, ErrNotFound
	}

	db, err := r.db.Handle(ctx)
	if err != nil {
		return user, err
	}

	query := db.Model(&models.User{})
	switch {
	case username != "" && email != "":
		query = query.Where("email = ? OR username = ?", email, username)
	case email != "":
		query = query.Where("email = ?", email)
	default:
		query = query.Where("username = ?", username)
	}

	if err := query.Order("created_at").First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return user, ErrNotFound
		}
		return user, apperrors.Wrap(err, apperrors.CodeInternal, "find user failed")
	}
	return user, nil
}
