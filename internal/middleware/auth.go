package middleware

import (
	"context"
	"strings"

	"github.com/gofiber/fiber/v3"
)

// userIDKey is the fiber.Locals key the auth middleware stores the
// resolved user ID under.
const userIDKey = "userID"

// UserResolver turns a bearer token into a user ID. Implemented by the
// auth service; kept as a function type so handler tests can stub it.
type UserResolver func(ctx context.Context, token string) (string, error)

// RequireAuth resolves the Authorization bearer token and rejects the
// request when no valid session exists. The resolved user ID is stored
// in the request locals for handlers.
func RequireAuth(resolve UserResolver) fiber.Handler {
	return func(c fiber.Ctx) error {
		token := bearerToken(c)
		if token == "" {
			return ErrorResponse(c, fiber.StatusUnauthorized, "UNAUTHENTICATED", "Authentication required")
		}

		userID, err := resolve(c.Context(), token)
		if err != nil || userID == "" {
			return ErrorResponse(c, fiber.StatusUnauthorized, "UNAUTHENTICATED", "Invalid or expired session")
		}

		c.Locals(userIDKey, userID)
		return c.Next()
	}
}

// OptionalAuth resolves the bearer token when present but lets the
// request through either way. Read endpoints use it so owners can be
// shown their edit controls.
func OptionalAuth(resolve UserResolver) fiber.Handler {
	return func(c fiber.Ctx) error {
		if token := bearerToken(c); token != "" {
			if userID, err := resolve(c.Context(), token); err == nil && userID != "" {
				c.Locals(userIDKey, userID)
			}
		}
		return c.Next()
	}
}

// UserID returns the authenticated user's ID, or "" when the request is
// anonymous.
func UserID(c fiber.Ctx) string {
	if v, ok := c.Locals(userIDKey).(string); ok {
		return v
	}
	return ""
}

func bearerToken(c fiber.Ctx) string {
	auth := c.Get("Authorization")
	const prefix = "Bearer "
	if !strings.HasPrefix(auth, prefix) {
		return ""
	}
	return strings.TrimSpace(auth[len(prefix):])
}
