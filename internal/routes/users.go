package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/aadyanvi/wealth-admin/internal/user"
)

// RegisterUserRoutes wires investor management endpoints.
func RegisterUserRoutes(r fiber.Router, h *user.Handler) {
	r.Get("/get-users", h.List)
	r.Get("/get-user/:id", h.Get)
	r.Post("/create-user", h.Create)
	// Alias kept because both spellings are live in dashboard builds.
	r.Post("/create-new-user", h.Create)
	r.Post("/verify-user", h.Verify)
}
