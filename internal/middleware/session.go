package middleware

import (
	"errors"
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/aadyanvi/wealth-admin/internal/session"
)

// AdminIDKey is the request-locals key holding the authenticated admin id.
const AdminIDKey = "admin_id"

// RequireSession authenticates requests through the opaque session cookie.
// The token is resolved server-side against the session store; there is no
// client-decodable state in the cookie.
func RequireSession(cookieName string, store session.Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		token := c.Cookies(cookieName)
		if token == "" {
			return fiber.NewError(http.StatusUnauthorized, "not authenticated")
		}
		sess, err := store.Get(c.UserContext(), token)
		if err != nil {
			if errors.Is(err, session.ErrNotFound) {
				return fiber.NewError(http.StatusUnauthorized, "not authenticated")
			}
			return fiber.NewError(http.StatusInternalServerError, "session lookup failed")
		}
		c.Locals(AdminIDKey, sess.AdminID)
		return c.Next()
	}
}
