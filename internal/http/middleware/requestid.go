package middleware

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

const (
	// RequestIDHeader carries the request ID on requests and responses.
	RequestIDHeader = "X-Request-ID"
	// RequestIDLocalKey is where the request ID lives in fiber's context
	// locals; the logger and the error envelope read it from there.
	RequestIDLocalKey = "request_id"
)

// RequestID tags every request with an ID. An incoming X-Request-ID is
// trusted and passed through so callers can correlate across services;
// otherwise a fresh UUID is generated. The ID is stored in context locals
// and echoed on the response header.
func RequestID() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Get(RequestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}

		c.Locals(RequestIDLocalKey, id)
		c.Set(RequestIDHeader, id)

		return c.Next()
	}
}
