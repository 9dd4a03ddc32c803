package middleware

import (
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// EnsureClientID stores a client id in Locals("clientID"). It is taken from
// the X-Client-ID header, then the clientId query parameter, and generated
// when neither is set.
func EnsureClientID() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if c.Locals("clientID") != nil {
			return c.Next()
		}

		clientID := c.Get("X-Client-ID")
		if clientID == "" {
			clientID = c.Query("clientId")
		}
		if clientID == "" {
			clientID = uuid.New().String()
			log.Printf("assigned client id %s", clientID)
		}

		c.Locals("clientID", clientID)
		c.Set("X-Client-ID", clientID)
		return c.Next()
	}
}
