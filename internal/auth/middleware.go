package auth

import (
	"context"
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/resume-server/internal/domain"
	apperrors "github.com/spec-kit/resume-server/pkg/util"
)

const principalKey = "auth_principal"

// Principal represents the authenticated caller, loaded once per request.
type Principal struct {
	User *domain.User
}

// ID returns the caller's account id.
func (p *Principal) ID() int64 {
	return p.User.ID
}

// IsAdmin reports whether the caller holds the admin role.
func (p *Principal) IsAdmin() bool {
	return p.User.IsAdmin()
}

// IdentityStore loads the caller's identity during authentication. The
// returned projection must exclude credential secrets.
type IdentityStore interface {
	FindActiveByID(ctx context.Context, id int64) (*domain.User, error)
}

// AuthMiddleware validates bearer tokens and attaches principals.
type AuthMiddleware struct {
	tokens     *TokenManager
	identities IdentityStore
}

// NewAuthMiddleware constructs middleware.
func NewAuthMiddleware(tokens *TokenManager, identities IdentityStore) *AuthMiddleware {
	return &AuthMiddleware{tokens: tokens, identities: identities}
}

// Handle enforces authentication for protected routes: extract token, verify
// it, load the active identity, attach it. Any failure is a terminal 401.
func (m *AuthMiddleware) Handle(c *fiber.Ctx) error {
	authHeader := c.Get(fiber.HeaderAuthorization)
	if authHeader == "" {
		return apperrors.NewUnauthorized("access denied: no token provided")
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return apperrors.NewUnauthorized("invalid authorization header")
	}

	subjectID, err := m.tokens.Verify(parts[1])
	if err != nil {
		return apperrors.NewUnauthorized("invalid token")
	}

	user, err := m.identities.FindActiveByID(c.UserContext(), subjectID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewUnauthorized("invalid token or user not found")
		}
		return apperrors.MapError(err)
	}
	if user == nil || !user.IsActive {
		return apperrors.NewUnauthorized("invalid token or user not found")
	}

	c.Locals(principalKey, &Principal{User: user})
	return c.Next()
}

// PrincipalFromContext retrieves the authenticated caller.
func PrincipalFromContext(c *fiber.Ctx) (*Principal, bool) {
	val := c.Locals(principalKey)
	if val == nil {
		return nil, false
	}
	principal, ok := val.(*Principal)
	return principal, ok
}
