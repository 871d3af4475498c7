package middleware

import (
	"context"
	"slices"
	"strings"

	. "cleanhub/internal/models"
	"cleanhub/internal/types"

	"github.com/gofiber/fiber/v2"
)

type AuthContextKey string

const (
	UserKey      AuthContextKey = "user"
	UserKeyFiber string         = "User"
)

// BearerToken returns the token from an "Authorization: Bearer <token>" header.
func BearerToken(c *fiber.Ctx) string {
	parts := strings.Fields(c.Get(fiber.HeaderAuthorization))
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		return ""
	}
	return parts[1]
}

// RequireAuth validates the access token and stores the caller in the request.
func (m *Middleware) RequireAuth() fiber.Handler {
	return func(c *fiber.Ctx) error {
		log := m.log.Function("RequireAuth").TraceFromContext(c.UserContext())

		token := BearerToken(c)
		if token == "" {
			log.Info("missing bearer token", "path", c.Path())
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "Authorization header required",
			})
		}

		user, err := m.tokens.ValidateAccessToken(token)
		if err != nil {
			log.Info("token validation failed", "error", err.Error())
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": types.ErrorMessage(err),
			})
		}

		c.Locals(UserKeyFiber, user)
		c.SetUserContext(context.WithValue(c.UserContext(), UserKey, user))

		return c.Next()
	}
}

// RequireRole must run after RequireAuth.
func (m *Middleware) RequireRole(roles ...UserRole) fiber.Handler {
	return func(c *fiber.Ctx) error {
		user, ok := GetUser(c)
		if !ok {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "Authentication required",
			})
		}

		if !slices.Contains(roles, UserRole(user.Role)) {
			m.log.Function("RequireRole").TraceFromContext(c.UserContext()).
				Info("role not permitted", "userID", user.ID, "role", user.Role, "path", c.Path())
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
				"error": "You do not have permission to perform this action.",
			})
		}

		return c.Next()
	}
}

func GetUser(c *fiber.Ctx) (types.AuthUser, bool) {
	user, ok := c.Locals(UserKeyFiber).(types.AuthUser)
	return user, ok
}
