package plan

import (
	"errors"
	"log/slog"
	"time"

	"github.com/gofiber/fiber/v2"
)

// Handler exposes plan management over HTTP.
type Handler struct {
	svc    *Service
	logger *slog.Logger
}

// NewHandler builds a plan HTTP handler.
func NewHandler(svc *Service, logger *slog.Logger) *Handler {
	return &Handler{svc: svc, logger: logger}
}

type planRequest struct {
	ProductName    string  `json:"productName"`
	ROIAAR         float64 `json:"roiAAR"`
	MinInvestment  float64 `json:"minInvestment"`
	InvestmentTerm int     `json:"investmentTerm"`
	ProductType    string  `json:"productType"`
}

type planResponse struct {
	ID             string  `json:"id"`
	ProductName    string  `json:"productName"`
	ROIAAR         float64 `json:"roiAAR"`
	ROIAMR         float64 `json:"roiAMR"`
	MinInvestment  float64 `json:"minInvestment"`
	InvestmentTerm int     `json:"investmentTerm"`
	ProductType    string  `json:"productType"`
	Status         string  `json:"status"`
	TotalGain      float64 `json:"totalGain"`
	MaturityValue  float64 `json:"maturityValue"`
	CreatedAt      string  `json:"createdAt"`
	UpdatedAt      string  `json:"updatedAt"`
}

func toResponse(p Plan) planResponse {
	return planResponse{
		ID:             p.ID,
		ProductName:    p.ProductName,
		ROIAAR:         p.ROIAAR,
		ROIAMR:         p.ROIAMR,
		MinInvestment:  p.MinInvestment,
		InvestmentTerm: p.InvestmentTerm,
		ProductType:    p.ProductType,
		Status:         p.Status,
		TotalGain:      p.TotalGain,
		MaturityValue:  p.MaturityValue,
		CreatedAt:      p.CreatedAt.Format(time.RFC3339),
		UpdatedAt:      p.UpdatedAt.Format(time.RFC3339),
	}
}

// List handles GET /get-investment-plans.
func (h *Handler) List(c *fiber.Ctx) error {
	plans, err := h.svc.List(c.UserContext())
	if err != nil {
		h.logger.Error("list plans failed", "error", err)
		return fiber.NewError(fiber.StatusInternalServerError, "could not load plans")
	}
	out := make([]planResponse, 0, len(plans))
	for _, p := range plans {
		out = append(out, toResponse(p))
	}
	return c.JSON(fiber.Map{"plans": out})
}

// Create handles POST /create-investment-plan.
func (h *Handler) Create(c *fiber.Ctx) error {
	var req planRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}
	p, err := h.svc.Create(c.UserContext(), Input{
		ProductName:    req.ProductName,
		ROIAAR:         req.ROIAAR,
		MinInvestment:  req.MinInvestment,
		InvestmentTerm: req.InvestmentTerm,
		ProductType:    req.ProductType,
	})
	if err != nil {
		if errors.Is(err, ErrInvalidInput) {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
		h.logger.Error("create plan failed", "error", err)
		return fiber.NewError(fiber.StatusInternalServerError, "could not create plan")
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"plan": toResponse(p)})
}

// Edit handles POST /edit-investment-plan.
func (h *Handler) Edit(c *fiber.Ctx) error {
	var req struct {
		planRequest
		PlanID string `json:"planId"`
	}
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}
	if req.PlanID == "" {
		return fiber.NewError(fiber.StatusBadRequest, "planId is required")
	}
	p, err := h.svc.Edit(c.UserContext(), req.PlanID, Input{
		ProductName:    req.ProductName,
		ROIAAR:         req.ROIAAR,
		MinInvestment:  req.MinInvestment,
		InvestmentTerm: req.InvestmentTerm,
		ProductType:    req.ProductType,
	})
	if err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			return fiber.NewError(fiber.StatusNotFound, "plan not found")
		case errors.Is(err, ErrInvalidInput):
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
		h.logger.Error("edit plan failed", "error", err, "plan_id", req.PlanID)
		return fiber.NewError(fiber.StatusInternalServerError, "could not update plan")
	}
	return c.JSON(fiber.Map{"plan": toResponse(p)})
}

// SetStatus handles POST /planStatus.
func (h *Handler) SetStatus(c *fiber.Ctx) error {
	var req struct {
		PlanID string `json:"planId"`
		Active bool   `json:"active"`
	}
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}
	if req.PlanID == "" {
		return fiber.NewError(fiber.StatusBadRequest, "planId is required")
	}
	p, err := h.svc.SetStatus(c.UserContext(), req.PlanID, req.Active)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "plan not found")
		}
		h.logger.Error("plan status change failed", "error", err, "plan_id", req.PlanID)
		return fiber.NewError(fiber.StatusInternalServerError, "could not update plan status")
	}
	return c.JSON(fiber.Map{"plan": toResponse(p)})
}

// Delete handles DELETE /deletePlan/:id.
func (h *Handler) Delete(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return fiber.NewError(fiber.StatusBadRequest, "plan id is required")
	}
	if err := h.svc.Delete(c.UserContext(), id); err != nil {
		if errors.Is(err, ErrNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "plan not found")
		}
		h.logger.Error("delete plan failed", "error", err, "plan_id", id)
		return fiber.NewError(fiber.StatusInternalServerError, "could not delete plan")
	}
	return c.JSON(fiber.Map{"deleted": true})
}
