package auth

import (
	"github.com/gofiber/fiber/v2"

	apperrors "github.com/spec-kit/resume-server/pkg/util"
)

// RequireAdmin gates admin-only routes. Runs after Handle, so a missing
// principal means a wiring mistake rather than a missing token.
func RequireAdmin() fiber.Handler {
	return func(c *fiber.Ctx) error {
		principal, ok := PrincipalFromContext(c)
		if !ok {
			return apperrors.NewUnauthorized("authentication required")
		}
		if !principal.IsAdmin() {
			return apperrors.NewForbidden("access denied: admin role required")
		}
		return c.Next()
	}
}
