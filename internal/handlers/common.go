package handlers

import (
	"github.com/gofiber/fiber/v2"
)

// sessionUser pulls the validated session user out of the request locals.
// The middleware stores the Authorizer profile as a generic map; handlers
// only care about the id and email claims.
func sessionUser(c *fiber.Ctx) (authID, email string, ok bool) {
	user, castOK := c.Locals("user").(map[string]interface{})
	if !castOK {
		return "", "", false
	}

	authID, _ = user["id"].(string)
	email, _ = user["email"].(string)
	if authID == "" {
		return "", "", false
	}

	return authID, email, true
}
