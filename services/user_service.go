package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/employee-directory/apperrors"
	"github.com/employee-directory/dto"
	"github.com/employee-directory/models"
	"github.com/employee-directory/repositories"
	"github.com/employee-directory/utils"
	"go.uber.org/zap"
)

// UserService handles account creation and sign-in
type UserService struct {
	users  repositories.UserRepository
	hasher utils.PasswordHasher
	log    *zap.Logger
	now    func() time.Time
}

// NewUserService creates a new user service instance
func NewUserService(users repositories.UserRepository, hasher utils.PasswordHasher, log *zap.Logger) *UserService {
	return &UserService{
		users:  users,
		hasher: hasher,
		log:    log,
		now:    time.Now,
	}
}

// Register creates a new user account and returns its id. Username and
// email must both be unused.
func (s *UserService) Register(ctx context.Context, req dto.SignupRequest) (string, error) {
	exists, err := s.users.ExistsByUsernameOrEmail(ctx, req.Username, req.Email)
	if err != nil {
		return "", fmt.Errorf("check existing user: %w", err)
	}
	if exists {
		return "", apperrors.New(apperrors.CodeConflict, MsgUserExists)
	}

	digest, err := s.hasher.Hash(req.Password)
	if err != nil {
		return "", apperrors.Wrap(err, apperrors.CodeInternal, "hash password failed")
	}

	now := s.now()
	user := models.User{
		Username:  req.Username,
		Email:     req.Email,
		Password:  digest,
		CreatedAt: now,
		UpdatedAt: now,
	}

	// The unique indexes catch a signup racing past the check above.
	if err := s.users.Create(ctx, &user); err != nil {
		if errors.Is(err, repositories.ErrDuplicateKey) {
			return "", apperrors.Wrap(err, apperrors.CodeConflict, MsgUserExists)
		}
		return "", fmt.Errorf("create user: %w", err)
	}

	s.log.Info("user registered", zap.String("user_id", user.ID))
	return user.ID, nil
}

// Authenticate checks the password of the user matching the username or
// email. No session or token is issued.
func (s *UserService) Authenticate(ctx context.Context, req dto.LoginRequest) error {
	user, err := s.users.FindByLogin(ctx, req.Username, req.Email)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return apperrors.New(apperrors.CodeInvalidCredentials, MsgInvalidCredentials)
		}
		return fmt.Errorf("find user: %w", err)
	}

	if !s.hasher.Verify(user.Password, req.Password) {
		return apperrors.New(apperrors.CodeInvalidCredentials, MsgInvalidCredentials)
	}
	return nil
}
