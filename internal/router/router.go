package router

import (
	"github.com/gofiber/fiber/v3"
	recoverer "github.com/gofiber/fiber/v3/middleware/recover"

	"github.com/Mohamed-Rabiaa/alx-polly/internal/handler"
	"github.com/Mohamed-Rabiaa/alx-polly/internal/middleware"
)

// Handlers holds all handler instances needed by the router.
type Handlers struct {
	Auth   *handler.AuthHandler
	Poll   *handler.PollHandler
	Vote   *handler.VoteHandler
	Stats  *handler.StatsHandler
	Health *handler.HealthHandler
}

// Setup configures the middleware stack and all API routes on the given
// Fiber app. resolve turns bearer tokens into user IDs.
func Setup(app *fiber.App, h *Handlers, resolve middleware.UserResolver, corsOrigins, ipSalt string) {
	// Middleware stack (order matters)
	app.Use(recoverer.New())
	app.Use(middleware.NewRequestLogger(ipSalt))
	app.Use(handler.MetricsMiddleware())
	app.Use(middleware.NewCORS(corsOrigins))

	// Probes and metrics (no auth, no rate limit)
	app.Get("/health/live", h.Health.Live)
	app.Get("/health/ready", h.Health.Ready)
	app.Get("/metrics", handler.MetricsHandler())

	readLimit := middleware.NewReadRateLimiter().Handler()
	writeLimit := middleware.NewPollWriteRateLimiter().Handler()
	voteLimit := middleware.NewVoteRateLimiter().Handler()
	authLimit := middleware.NewAuthRateLimiter().Handler()

	api := app.Group("/api")

	// Auth routes
	api.Post("/auth/register", h.Auth.Register, authLimit)
	api.Post("/auth/login", h.Auth.Login, authLimit)
	api.Post("/auth/logout", h.Auth.Logout, middleware.RequireAuth(resolve))
	api.Get("/auth/me", h.Auth.Me, middleware.RequireAuth(resolve))

	// Poll routes. Reads are public; an optional session marks the
	// caller's own polls editable. Mutation routes require a session and
	// the service layer re-checks ownership against the creator.
	api.Get("/polls", h.Poll.List, middleware.OptionalAuth(resolve), readLimit)
	api.Get("/polls/:pollId", h.Poll.Get, middleware.OptionalAuth(resolve), readLimit)
	api.Post("/polls", h.Poll.Create, middleware.RequireAuth(resolve), writeLimit)
	api.Put("/polls/:pollId", h.Poll.Update, middleware.RequireAuth(resolve), writeLimit)
	api.Delete("/polls/:pollId", h.Poll.Delete, middleware.RequireAuth(resolve), writeLimit)

	// Vote routes
	api.Post("/polls/:pollId/votes", h.Vote.Cast, middleware.RequireAuth(resolve), voteLimit)

	// Stats
	api.Get("/stats", h.Stats.GetStats, readLimit)
}
