package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/aadyanvi/wealth-admin/internal/plan"
)

// RegisterPlanRoutes wires investment plan management endpoints.
func RegisterPlanRoutes(r fiber.Router, h *plan.Handler) {
	r.Get("/get-investment-plans", h.List)
	r.Post("/create-investment-plan", h.Create)
	r.Post("/edit-investment-plan", h.Edit)
	r.Post("/planStatus", h.SetStatus)
	r.Delete("/deletePlan/:id", h.Delete)
}
