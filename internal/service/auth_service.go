package service

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/resume-server/internal/auth"
	"github.com/spec-kit/resume-server/internal/config"
	"github.com/spec-kit/resume-server/internal/domain"
	"github.com/spec-kit/resume-server/internal/repository"
	apperrors "github.com/spec-kit/resume-server/pkg/util"
)

// AuthService coordinates registration, login and the admin bootstrap.
type AuthService struct {
	users      repository.UserRepository
	tokenMgr   *auth.TokenManager
	bcryptCost int
	bootstrap  config.AdminBootstrapConfig
}

// NewAuthService builds the service.
func NewAuthService(cfg config.Config, users repository.UserRepository) *AuthService {
	return &AuthService{
		users:      users,
		tokenMgr:   auth.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.TokenTTLHours),
		bcryptCost: cfg.Auth.BcryptCost,
		bootstrap:  cfg.Admin,
	}
}

// Register creates a new regular-user account after a uniqueness check on
// username, email and phone.
func (s *AuthService) Register(ctx context.Context, username, email string, phone *string, password string) (*domain.User, error) {
	if _, err := s.users.FindConflict(ctx, username, email, phone); err == nil {
		return nil, apperrors.NewValidationError("username, email or phone already exists", nil)
	} else if !errors.Is(err, pgx.ErrNoRows) {
		return nil, err
	}

	hash, err := auth.HashPassword(password, s.bcryptCost)
	if err != nil {
		return nil, err
	}

	user := &domain.User{
		Username:     username,
		Email:        email,
		Phone:        phone,
		PasswordHash: hash,
		Role:         domain.RoleUser,
		IsActive:     true,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}
	user.PasswordHash = ""
	return user, nil
}

// Login authenticates by email or phone. Missing, inactive and
// wrong-password cases all collapse into one unauthorized answer.
func (s *AuthService) Login(ctx context.Context, identifier, password string) (*domain.User, string, time.Time, error) {
	user, err := s.users.GetByIdentifier(ctx, identifier)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, "", time.Time{}, apperrors.NewUnauthorized("invalid credentials")
		}
		return nil, "", time.Time{}, err
	}
	if !user.IsActive {
		return nil, "", time.Time{}, apperrors.NewUnauthorized("invalid credentials")
	}
	if err := auth.ComparePassword(user.PasswordHash, password); err != nil {
		return nil, "", time.Time{}, apperrors.NewUnauthorized("invalid credentials")
	}

	if err := s.users.TouchLastLogin(ctx, user.ID); err != nil {
		return nil, "", time.Time{}, err
	}
	now := time.Now()
	user.LastLogin = &now

	token, exp, err := s.tokenMgr.Issue(user.ID)
	if err != nil {
		return nil, "", time.Time{}, err
	}
	user.PasswordHash = ""
	return user, token, exp, nil
}

// Logout no-ops for the stateless token approach; the client discards its
// token.
func (s *AuthService) Logout(_ context.Context, _ int64) error {
	return nil
}

// InitAdmin seeds the first admin account. Refuses once any admin exists.
func (s *AuthService) InitAdmin(ctx context.Context) (*domain.User, error) {
	exists, err := s.users.HasAdmin(ctx)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, apperrors.NewValidationError("admin user already exists", nil)
	}

	hash, err := auth.HashPassword(s.bootstrap.Password, s.bcryptCost)
	if err != nil {
		return nil, err
	}
	admin := &domain.User{
		Username:     s.bootstrap.Username,
		Email:        s.bootstrap.Email,
		PasswordHash: hash,
		Role:         domain.RoleAdmin,
		IsActive:     true,
	}
	if err := s.users.Create(ctx, admin); err != nil {
		return nil, err
	}
	admin.PasswordHash = ""
	return admin, nil
}

// TokenManager exposes the underlying token manager for middleware usage.
func (s *AuthService) TokenManager() *auth.TokenManager {
	return s.tokenMgr
}
