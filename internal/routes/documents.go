package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/aadyanvi/wealth-admin/internal/document"
)

// RegisterDocumentRoutes wires the KYC document upload endpoint.
func RegisterDocumentRoutes(r fiber.Router, h *document.Handler) {
	r.Post("/upload", h.Upload)
}
