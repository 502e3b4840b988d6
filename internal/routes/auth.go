package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/aadyanvi/wealth-admin/internal/admin"
)

// RegisterAuthRoutes wires the session endpoints. checkAuth stays public so
// the dashboard can probe its session before rendering anything.
func RegisterAuthRoutes(r fiber.Router, h *admin.Handler, rateLimiter fiber.Handler) {
	if rateLimiter != nil {
		r.Post("/login", rateLimiter, h.Login)
	} else {
		r.Post("/login", h.Login)
	}
	r.Post("/logout", h.Logout)
	r.Get("/checkAuth", h.CheckAuth)
}
