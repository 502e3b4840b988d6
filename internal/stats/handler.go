package stats

import (
	"log/slog"

	"github.com/gofiber/fiber/v2"
)

// Handler exposes the dashboard aggregates over HTTP. Response shapes match
// what the dashboard client already parses.
type Handler struct {
	svc    *Service
	logger *slog.Logger
}

// NewHandler builds a stats HTTP handler.
func NewHandler(svc *Service, logger *slog.Logger) *Handler {
	return &Handler{svc: svc, logger: logger}
}

func rupees(paise int64) float64 {
	return float64(paise) / 100
}

// AUM handles GET /aum.
func (h *Handler) AUM(c *fiber.Ctx) error {
	total, err := h.svc.AUM(c.UserContext())
	if err != nil {
		h.logger.Error("aum aggregate failed", "error", err)
		return fiber.NewError(fiber.StatusInternalServerError, "could not compute assets under management")
	}
	return c.JSON(fiber.Map{
		"assets": fiber.Map{
			"_sum": fiber.Map{"investedAmount": rupees(total)},
		},
	})
}

// ActiveInvestors handles GET /activeInvestors.
func (h *Handler) ActiveInvestors(c *fiber.Ctx) error {
	count, err := h.svc.ActiveInvestors(c.UserContext())
	if err != nil {
		h.logger.Error("active investor aggregate failed", "error", err)
		return fiber.NewError(fiber.StatusInternalServerError, "could not count active investors")
	}
	return c.JSON(fiber.Map{"count": count})
}

// UnusedFunds handles GET /getUnusedFunds.
func (h *Handler) UnusedFunds(c *fiber.Ctx) error {
	total, err := h.svc.UnusedFunds(c.UserContext())
	if err != nil {
		h.logger.Error("unused funds aggregate failed", "error", err)
		return fiber.NewError(fiber.StatusInternalServerError, "could not compute unused funds")
	}
	return c.JSON(fiber.Map{
		"funds": fiber.Map{
			"_sum": fiber.Map{"availableBalance": rupees(total)},
		},
	})
}

// ActivePlans handles GET /activePlans.
func (h *Handler) ActivePlans(c *fiber.Ctx) error {
	plans, err := h.svc.ActivePlans(c.UserContext())
	if err != nil {
		h.logger.Error("active plan aggregate failed", "error", err)
		return fiber.NewError(fiber.StatusInternalServerError, "could not count active plans")
	}
	byType := make([]fiber.Map, 0, len(plans.ByType))
	for _, tc := range plans.ByType {
		byType = append(byType, fiber.Map{
			"type":   tc.Type,
			"_count": fiber.Map{"type": tc.Count},
		})
	}
	return c.JSON(fiber.Map{"totalPlans": plans.Total, "plansByType": byType})
}

// PendingRequests handles GET /pendingRequests.
func (h *Handler) PendingRequests(c *fiber.Ctx) error {
	count, err := h.svc.PendingRequests(c.UserContext())
	if err != nil {
		h.logger.Error("pending request aggregate failed", "error", err)
		return fiber.NewError(fiber.StatusInternalServerError, "could not count pending requests")
	}
	return c.JSON(fiber.Map{"totalPending": count})
}
