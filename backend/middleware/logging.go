package middleware

import (
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// LoggingMiddleware logs one line per request, tagged with a request id
// that is also echoed back in the X-Request-ID header.
func LoggingMiddleware(logger *log.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()

		reqID := uuid.NewString()
		c.Locals("requestID", reqID)
		c.Set("X-Request-ID", reqID)

		err := c.Next()

		logger.Printf("%s %s %s %s %d %v",
			reqID,
			c.IP(),
			c.Method(),
			c.Path(),
			c.Response().StatusCode(),
			time.Since(start),
		)

		return err
	}
}
