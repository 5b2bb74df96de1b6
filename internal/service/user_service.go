package service

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/resume-server/internal/auth"
	"github.com/spec-kit/resume-server/internal/domain"
	"github.com/spec-kit/resume-server/internal/repository"
	apperrors "github.com/spec-kit/resume-server/pkg/util"
)

// UserService covers account administration endpoints.
type UserService struct {
	users      repository.UserRepository
	bcryptCost int
}

// NewUserService builds the service.
func NewUserService(users repository.UserRepository, bcryptCost int) *UserService {
	return &UserService{users: users, bcryptCost: bcryptCost}
}

// ListActive returns all active accounts. Admin-gated at the route.
func (s *UserService) ListActive(ctx context.Context) ([]domain.User, error) {
	return s.users.ListActive(ctx)
}

// Get returns one account; regular users may only read themselves.
func (s *UserService) Get(ctx context.Context, principal *auth.Principal, id int64) (*domain.User, error) {
	if !auth.CanAccess(principal, id) {
		return nil, apperrors.NewForbidden("access denied")
	}
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("user", nil)
		}
		return nil, err
	}
	return user, nil
}

// CreateInput carries admin user creation fields.
type CreateUserInput struct {
	Username string
	Email    string
	Phone    *string
	Password string
	Role     domain.Role
	IsActive bool
}

// Create adds an account with an explicit role. Admin-gated at the route.
func (s *UserService) Create(ctx context.Context, in CreateUserInput) (*domain.User, error) {
	if _, err := s.users.FindConflict(ctx, in.Username, in.Email, in.Phone); err == nil {
		return nil, apperrors.NewValidationError("username or email already exists", nil)
	} else if !errors.Is(err, pgx.ErrNoRows) {
		return nil, err
	}

	hash, err := auth.HashPassword(in.Password, s.bcryptCost)
	if err != nil {
		return nil, err
	}
	role := in.Role
	if role == "" {
		role = domain.RoleUser
	}
	user := &domain.User{
		Username:     in.Username,
		Email:        in.Email,
		Phone:        in.Phone,
		PasswordHash: hash,
		Role:         role,
		IsActive:     in.IsActive,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}
	user.PasswordHash = ""
	return user, nil
}
