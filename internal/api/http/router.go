package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/resume-server/internal/api/http/handlers"
	"github.com/spec-kit/resume-server/internal/auth"
	"github.com/spec-kit/resume-server/internal/ratelimit"
)

// RouteConfig bundles the handlers and middlewares the router wires up.
type RouteConfig struct {
	Health    *handlers.HealthHandler
	Auth      *handlers.AuthHandler
	Users     *handlers.UsersHandler
	Resumes   *handlers.ResumesHandler
	Positions *handlers.PositionsHandler

	AuthMiddleware *auth.AuthMiddleware
	LoginLimiter   *ratelimit.Limiter
	APILimiter     *ratelimit.Limiter
}

// RegisterRoutes mounts the HTTP surface. The login route carries its own
// strict limiter so brute-force attempts are throttled before credentials
// are ever checked; everything else shares the loose API limiter.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	apiLimit := ratelimit.Middleware(cfg.APILimiter, ratelimit.ClientKey)
	loginLimit := ratelimit.Middleware(cfg.LoginLimiter, ratelimit.ClientKey)

	app.Get("/", cfg.Health.Root)
	app.Get("/health", cfg.Health.Health)

	authGroup := app.Group("/auth", apiLimit)
	authGroup.Post("/register", cfg.Auth.Register)
	authGroup.Post("/login", loginLimit, cfg.Auth.Login)
	authGroup.Post("/init-admin", cfg.Auth.InitAdmin)
	authGroup.Get("/profile", cfg.AuthMiddleware.Handle, cfg.Auth.Profile)
	authGroup.Post("/logout", cfg.AuthMiddleware.Handle, cfg.Auth.Logout)

	users := app.Group("/users", apiLimit, cfg.AuthMiddleware.Handle)
	users.Get("/", auth.RequireAdmin(), cfg.Users.List)
	users.Post("/", auth.RequireAdmin(), cfg.Users.Create)
	users.Get("/:id", cfg.Users.Get)

	resumes := app.Group("/resumes", apiLimit, cfg.AuthMiddleware.Handle)
	resumes.Post("/list", cfg.Resumes.List)
	resumes.Post("/detail", cfg.Resumes.Detail)
	resumes.Post("/create", cfg.Resumes.Create)
	resumes.Put("/:id", cfg.Resumes.Update)
	resumes.Post("/delete", cfg.Resumes.Delete)
	resumes.Patch("/batch-status", auth.RequireAdmin(), cfg.Resumes.BatchStatus)
	resumes.Get("/stats/overview", auth.RequireAdmin(), cfg.Resumes.Stats)

	positions := app.Group("/positions", apiLimit, cfg.AuthMiddleware.Handle)
	positions.Post("/list", cfg.Positions.List)
	positions.Post("/detail", cfg.Positions.Detail)
	positions.Post("/create", cfg.Positions.Create)
	positions.Put("/:id", cfg.Positions.Update)
	positions.Post("/delete", cfg.Positions.Delete)
	positions.Patch("/batch-status", auth.RequireAdmin(), cfg.Positions.BatchStatus)
	positions.Get("/stats/overview", auth.RequireAdmin(), cfg.Positions.Stats)
}
