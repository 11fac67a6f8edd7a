package utils

import (
	"log"
	"net/http"

	"github.com/gofiber/fiber/v2"

	"habitflow/backend/apperr"
)

// ErrorResponse is the JSON shape of every failed request.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

// Error writes a JSON error response with the given status.
func Error(c *fiber.Ctx, status int, message string) error {
	return c.Status(status).JSON(ErrorResponse{
		Error:   http.StatusText(status),
		Message: message,
	})
}

// NotFound sends 404 Not Found.
func NotFound(c *fiber.Ctx, message string) error {
	return Error(c, fiber.StatusNotFound, message)
}

// BadRequest sends 400 Bad Request.
func BadRequest(c *fiber.Ctx, message string) error {
	return Error(c, fiber.StatusBadRequest, message)
}

// Unauthorized sends 401 Unauthorized.
func Unauthorized(c *fiber.Ctx, message string) error {
	return Error(c, fiber.StatusUnauthorized, message)
}

// Forbidden sends 403 Forbidden.
func Forbidden(c *fiber.Ctx, message string) error {
	return Error(c, fiber.StatusForbidden, message)
}

// InternalServerError sends 500 Internal Server Error.
func InternalServerError(c *fiber.Ctx, message string) error {
	return Error(c, fiber.StatusInternalServerError, message)
}

// FromError maps a service failure to its HTTP response. Expected
// failures carry their own message; anything else is logged and surfaced
// as a generic 500.
func FromError(c *fiber.Ctx, logger *log.Logger, err error) error {
	switch apperr.KindOf(err) {
	case apperr.KindNotFound:
		return NotFound(c, apperr.Message(err, "Not found"))
	case apperr.KindConflict, apperr.KindInvalidInput:
		return BadRequest(c, apperr.Message(err, "Bad request"))
	default:
		if logger != nil {
			logger.Printf("internal error: %s %s: %v", c.Method(), c.Path(), err)
		}
		return InternalServerError(c, "Server error")
	}
}
