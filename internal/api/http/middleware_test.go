package http

import (
	"context"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/spec-kit/resume-server/internal/api/http/handlers"
	"github.com/spec-kit/resume-server/internal/config"
	"github.com/spec-kit/resume-server/internal/domain"
	"github.com/spec-kit/resume-server/internal/service"
)

func TestRequestTimeoutSetsDeadline(t *testing.T) {
	app := fiber.New()
	app.Use(requestTimeoutMiddleware(50 * time.Millisecond))

	var hasDeadline bool
	app.Get("/probe-ctx", func(c *fiber.Ctx) error {
		_, hasDeadline = c.UserContext().Deadline()
		return c.SendString("ok")
	})

	resp, err := app.Test(httptest.NewRequest("GET", "/probe-ctx", nil))
	require.NoError(t, err)
	resp.Body.Close()
	assert.True(t, hasDeadline)
}

// blockingUserRepo parks every identifier lookup until the request context
// expires, standing in for a stalled database.
type blockingUserRepo struct{}

func (blockingUserRepo) Create(_ context.Context, user *domain.User) error {
	user.ID = 1
	return nil
}
func (blockingUserRepo) Update(context.Context, *domain.User) error { return nil }
func (blockingUserRepo) FindActiveByID(context.Context, int64) (*domain.User, error) {
	return nil, pgx.ErrNoRows
}
func (blockingUserRepo) GetByID(context.Context, int64) (*domain.User, error) {
	return nil, pgx.ErrNoRows
}
func (blockingUserRepo) GetByIdentifier(ctx context.Context, _ string) (*domain.User, error) {
	<-ctx.Done()
	return nil, ctx.Err()
}
func (blockingUserRepo) FindConflict(context.Context, string, string, *string) (*domain.User, error) {
	return nil, pgx.ErrNoRows
}
func (blockingUserRepo) ListActive(context.Context) ([]domain.User, error) { return nil, nil }
func (blockingUserRepo) HasAdmin(context.Context) (bool, error)            { return false, nil }
func (blockingUserRepo) TouchLastLogin(context.Context, int64) error       { return nil }

func TestRequestTimeoutCancelsStalledLookups(t *testing.T) {
	cfg := config.Config{Auth: config.AuthConfig{JWTSecret: "test-secret", TokenTTLHours: 1, BcryptCost: 4}}
	authHandler := handlers.NewAuthHandler(service.NewAuthService(cfg, blockingUserRepo{}))

	app := fiber.New()
	RegisterMiddlewares(app, MiddlewareConfig{
		Logger:         zap.NewNop(),
		RequestTimeout: 30 * time.Millisecond,
	})
	app.Post("/auth/login", authHandler.Login)

	req := httptest.NewRequest("POST", "/auth/login",
		strings.NewReader(`{"identifier":"alice@example.com","password":"secret-pw"}`))
	req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)

	resp, err := app.Test(req, 2000)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, fiber.StatusInternalServerError, resp.StatusCode)
}
