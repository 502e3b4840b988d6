package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/aadyanvi/wealth-admin/internal/stats"
)

// RegisterStatsRoutes wires the dashboard aggregate endpoints.
func RegisterStatsRoutes(r fiber.Router, h *stats.Handler) {
	r.Get("/aum", h.AUM)
	r.Get("/activeInvestors", h.ActiveInvestors)
	r.Get("/getUnusedFunds", h.UnusedFunds)
	r.Get("/activePlans", h.ActivePlans)
	r.Get("/pendingRequests", h.PendingRequests)
}
