package middleware

import (
	"github.com/gofiber/fiber/v2"

	"github.com/matplanerare/matplanerare/internal/store"
	"github.com/matplanerare/matplanerare/internal/types"
)

// RequireLogin rejects requests when no session is open. The logged-in
// username is stored in context as "user".
func RequireLogin(s *store.Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		user := s.CurrentUser()
		if user == "" {
			return &types.CustomError{
				Code:    fiber.StatusUnauthorized,
				Message: "Not logged in",
				Type:    "auth.session",
			}
		}
		c.Locals("user", user)
		return c.Next()
	}
}

// RequireAdmin rejects requests unless the session belongs to the admin.
func RequireAdmin(s *store.Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		user := s.CurrentUser()
		if user == "" {
			return &types.CustomError{
				Code:    fiber.StatusUnauthorized,
				Message: "Not logged in",
				Type:    "auth.session",
			}
		}
		if !s.IsAdmin() {
			return &types.CustomError{
				Code:    fiber.StatusForbidden,
				Message: "Admin privileges required",
				Type:    "auth.admin",
			}
		}
		c.Locals("user", user)
		return c.Next()
	}
}
