package middleware

import (
	"time"

	"gamehub/internal/store"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// SessionLocal is the fiber.Ctx locals key the resolved session lives under.
const SessionLocal = "session"

const clientCookie = "gamehub_client"

// ResolveSession attaches the caller's session to the request context. The
// client id comes from the X-Client-ID header or the client cookie; a caller
// with neither gets a fresh id set as a cookie.
func ResolveSession(sessions *store.Manager) fiber.Handler {
	return func(c *fiber.Ctx) error {
		clientID := c.Get("X-Client-ID")
		if clientID == "" {
			clientID = c.Cookies(clientCookie)
		}
		if clientID == "" {
			clientID = uuid.New().String()
			c.Cookie(&fiber.Cookie{
				Name:     clientCookie,
				Value:    clientID,
				Expires:  time.Now().Add(365 * 24 * time.Hour),
				HTTPOnly: true,
			})
		}

		c.Locals(SessionLocal, sessions.Session(clientID))
		return c.Next()
	}
}

// SessionFrom pulls the session attached by ResolveSession.
func SessionFrom(c *fiber.Ctx) *store.Session {
	s, _ := c.Locals(SessionLocal).(*store.Session)
	return s
}
