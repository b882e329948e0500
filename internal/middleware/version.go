package middleware

import (
	"github.com/gofiber/fiber/v2"
)

// DefaultAPIVersion is assumed when the client sends no X-Api-Version header.
const DefaultAPIVersion = "1.0.0"

// APIVersion resolves the X-Api-Version request header and stores it in
// context for handlers that need to branch on it.
func APIVersion() fiber.Handler {
	return func(c *fiber.Ctx) error {
		version := c.Get("X-Api-Version", DefaultAPIVersion)

		// Short alias for the current line
		if version == "1.0" {
			version = DefaultAPIVersion
		}

		c.Locals("apiVersion", version)
		return c.Next()
	}
}
