package utils

import (
	"github.com/gofiber/fiber/v2"
)

// ErrorResponse sends the API error shape: {"error": message}.
// Clients only ever see these generic messages; detail stays in the
// server logs.
func ErrorResponse(c *fiber.Ctx, status int, message string) error {
	return c.Status(status).JSON(fiber.Map{
		"error": message,
	})
}

// UnauthorizedResponse sends a 401 with the canonical message.
func UnauthorizedResponse(c *fiber.Ctx) error {
	return ErrorResponse(c, fiber.StatusUnauthorized, "Unauthorized")
}

// NotFoundResponse sends a 404 with the given message.
func NotFoundResponse(c *fiber.Ctx, message string) error {
	return ErrorResponse(c, fiber.StatusNotFound, message)
}

// InvalidInputResponse sends a 400 for malformed request bodies.
func InvalidInputResponse(c *fiber.Ctx) error {
	return ErrorResponse(c, fiber.StatusBadRequest, "Invalid input")
}

// ErrorResponseStruct defines the schema for error responses
type ErrorResponseStruct struct {
	Error string `json:"error"`
}
