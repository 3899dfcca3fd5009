package middleware

import (
	"github.com/gofiber/fiber/v2"
	"github.com/truematch/truematch-api/internal/config"
	"github.com/truematch/truematch-api/internal/services"
	"github.com/truematch/truematch-api/internal/utils"
)

// AuthUser validates that the request carries a valid user session
func AuthUser(cfg *config.Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		return authorize(c, cfg, []string{"user"})
	}
}

// AuthAdmin validates that the request carries a valid admin session
func AuthAdmin(cfg *config.Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		return authorize(c, cfg, []string{"admin"})
	}
}

// authorize performs the session check against the Authorizer deployment.
// Every failure collapses to the same Unauthorized response; the session
// user map lands in c.Locals("user") on success.
func authorize(c *fiber.Ctx, cfg *config.Config, roles []string) error {
	if !services.IsAuthorizerInitialized() {
		if err := services.InitAuthorizer(cfg, c.Protocol(), c.Hostname()); err != nil {
			return utils.UnauthorizedResponse(c)
		}
	}

	session := c.Cookies("cookie_session")
	if session == "" {
		return utils.UnauthorizedResponse(c)
	}

	user, err := services.ValidateSession(session, roles)
	if err != nil {
		return utils.UnauthorizedResponse(c)
	}

	c.Locals("user", user)

	return c.Next()
}
