package handlers

import (
	"net/http"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/resume-server/internal/api/dto"
	"github.com/spec-kit/resume-server/internal/auth"
	"github.com/spec-kit/resume-server/internal/service"
	apperrors "github.com/spec-kit/resume-server/pkg/util"
)

// AuthHandler exposes registration, login and session endpoints.
type AuthHandler struct {
	auth *service.AuthService
}

// NewAuthHandler constructs handler.
func NewAuthHandler(authService *service.AuthService) *AuthHandler {
	return &AuthHandler{auth: authService}
}

// Register handles POST /auth/register.
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var req dto.RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.Username == "" || req.Email == "" || req.Password == "" {
		return apperrors.NewValidationError("username, email, password required", nil)
	}
	if len(req.Password) < 6 {
		return apperrors.NewValidationError("password must be at least 6 characters", nil)
	}

	user, err := h.auth.Register(c.UserContext(), req.Username, req.Email, req.Phone, req.Password)
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"user": dto.NewUserResponse(user)})
}

// Login handles POST /auth/login. The strict rate limiter runs before this
// handler, so throttling precedes any credential check.
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	identifier := strings.TrimSpace(req.Identifier)
	if identifier == "" {
		identifier = strings.TrimSpace(req.Email)
	}
	if identifier == "" {
		return apperrors.NewValidationError("email or phone number is required", nil)
	}

	user, token, _, err := h.auth.Login(c.UserContext(), identifier, req.Password)
	if err != nil {
		return err
	}
	return c.JSON(dto.LoginResponse{User: dto.NewUserResponse(user), Token: token})
}

// Profile handles GET /auth/profile.
func (h *AuthHandler) Profile(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	return c.JSON(fiber.Map{"user": dto.NewUserResponse(principal.User)})
}

// Logout handles POST /auth/logout. Stateless tokens make this a client-side
// affair; the endpoint exists for API symmetry.
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	if err := h.auth.Logout(c.UserContext(), principal.ID()); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"message": "Logout successful"})
}

// InitAdmin handles POST /auth/init-admin.
func (h *AuthHandler) InitAdmin(c *fiber.Ctx) error {
	admin, err := h.auth.InitAdmin(c.UserContext())
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{
		"message": "Admin user initialized successfully",
		"user":    dto.NewUserResponse(admin),
	})
}
