package auth

import (
	"context"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/resume-server/internal/domain"
	apperrors "github.com/spec-kit/resume-server/pkg/util"
)

type fakeIdentityStore struct {
	users map[int64]*domain.User
}

func (f *fakeIdentityStore) FindActiveByID(_ context.Context, id int64) (*domain.User, error) {
	user, ok := f.users[id]
	if !ok || !user.IsActive {
		return nil, pgx.ErrNoRows
	}
	return user, nil
}

func newAuthTestApp(t *testing.T, store *fakeIdentityStore) (*fiber.App, *TokenManager) {
	t.Helper()
	tm := NewTokenManager("test-secret", 1)
	mw := NewAuthMiddleware(tm, store)

	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			de := apperrors.ToDomainError(err)
			return c.Status(de.HTTPStatus).JSON(fiber.Map{"error": fiber.Map{"code": de.Code, "message": de.Message}})
		},
	})
	app.Get("/me", mw.Handle, func(c *fiber.Ctx) error {
		p, ok := PrincipalFromContext(c)
		require.True(t, ok)
		return c.JSON(fiber.Map{"id": p.ID(), "admin": p.IsAdmin()})
	})
	return app, tm
}

func TestHandleRejectsMissingHeader(t *testing.T) {
	app, _ := newAuthTestApp(t, &fakeIdentityStore{})

	resp, err := app.Test(httptest.NewRequest("GET", "/me", nil))
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestHandleRejectsMalformedHeader(t *testing.T) {
	app, _ := newAuthTestApp(t, &fakeIdentityStore{})

	req := httptest.NewRequest("GET", "/me", nil)
	req.Header.Set(fiber.HeaderAuthorization, "Token abc123")
	resp, err := app.Test(req)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestHandleRejectsBadToken(t *testing.T) {
	app, _ := newAuthTestApp(t, &fakeIdentityStore{})

	req := httptest.NewRequest("GET", "/me", nil)
	req.Header.Set(fiber.HeaderAuthorization, "Bearer not-a-real-token")
	resp, err := app.Test(req)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestHandleRejectsUnknownSubject(t *testing.T) {
	app, tm := newAuthTestApp(t, &fakeIdentityStore{users: map[int64]*domain.User{}})

	token, _, err := tm.Issue(99)
	require.NoError(t, err)

	req := httptest.NewRequest("GET", "/me", nil)
	req.Header.Set(fiber.HeaderAuthorization, "Bearer "+token)
	resp, err := app.Test(req)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestHandleRejectsInactiveUser(t *testing.T) {
	store := &fakeIdentityStore{users: map[int64]*domain.User{
		7: {ID: 7, Username: "ghost", Role: domain.RoleUser, IsActive: false},
	}}
	app, tm := newAuthTestApp(t, store)

	token, _, err := tm.Issue(7)
	require.NoError(t, err)

	req := httptest.NewRequest("GET", "/me", nil)
	req.Header.Set(fiber.HeaderAuthorization, "Bearer "+token)
	resp, err := app.Test(req)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestHandleAttachesPrincipal(t *testing.T) {
	store := &fakeIdentityStore{users: map[int64]*domain.User{
		7: {ID: 7, Username: "alice", Role: domain.RoleUser, IsActive: true},
	}}
	app, tm := newAuthTestApp(t, store)

	token, _, err := tm.Issue(7)
	require.NoError(t, err)

	req := httptest.NewRequest("GET", "/me", nil)
	req.Header.Set(fiber.HeaderAuthorization, "Bearer "+token)
	resp, err := app.Test(req)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}

func TestRequireAdmin(t *testing.T) {
	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			de := apperrors.ToDomainError(err)
			return c.Status(de.HTTPStatus).JSON(fiber.Map{"error": de.Code})
		},
	})
	app.Get("/admin", func(c *fiber.Ctx) error {
		if role := c.Get("X-Test-Role"); role != "" {
			c.Locals("auth_principal", &Principal{User: &domain.User{ID: 1, Role: domain.Role(role), IsActive: true}})
		}
		return c.Next()
	}, RequireAdmin(), func(c *fiber.Ctx) error {
		return c.SendString("ok")
	})

	cases := []struct {
		role string
		want int
	}{
		{"", fiber.StatusUnauthorized},
		{"user", fiber.StatusForbidden},
		{"admin", fiber.StatusOK},
	}
	for _, tc := range cases {
		req := httptest.NewRequest("GET", "/admin", nil)
		if tc.role != "" {
			req.Header.Set("X-Test-Role", tc.role)
		}
		resp, err := app.Test(req)
		require.NoError(t, err)
		resp.Body.Close()
		assert.Equal(t, tc.want, resp.StatusCode, "role %q", tc.role)
	}
}
