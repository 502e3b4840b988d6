package user

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/aadyanvi/wealth-admin/internal/forms"
)

// Handler exposes the user-management HTTP endpoints.
type Handler struct {
	service *Service
}

// NewHandler builds a user HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

type userResponse struct {
	ID                string            `json:"id"`
	FirstName         string            `json:"firstName"`
	LastName          string            `json:"lastName"`
	Email             string            `json:"email"`
	EmailVerified     bool              `json:"emailVerified"`
	MobileNumber      string            `json:"mobileNumber"`
	MobileVerified    bool              `json:"mobileVerified"`
	DateOfBirth       string            `json:"dateOfBirth"`
	ReferralCode      string            `json:"referralCode"`
	VerificationState string            `json:"verificationState"`
	AvailableBalance  string            `json:"availableBalance"`
	CreatedAt         string            `json:"createdAt"`
	UpdatedAt         string            `json:"updatedAt"`
	Address           *addressResponse  `json:"address,omitempty"`
	IdentityDetails   *identityResponse `json:"identityDetails,omitempty"`
	BankDetails       *bankResponse     `json:"bankDetails,omitempty"`
}

type addressResponse struct {
	AddressLine1 string `json:"addressLine1"`
	AddressLine2 string `json:"addressLine2,omitempty"`
	City         string `json:"city,omitempty"`
	State        string `json:"state,omitempty"`
	Pincode      string `json:"pincode"`
}

type identityResponse struct {
	PANNumber     string `json:"panNumber"`
	PANAttachment string `json:"panAttachment"`
	AadharNumber  string `json:"aadharNumber"`
	AadharFront   string `json:"aadharFront"`
	AadharBack    string `json:"aadharBack"`
}

type bankResponse struct {
	AccountNumber   string `json:"accountNumber"`
	IFSCCode        string `json:"ifscCode"`
	BranchName      string `json:"branchName"`
	ProofAttachment string `json:"proofAttachment"`
}

func (h *Handler) toResponse(c *fiber.Ctx, u User) userResponse {
	balance := int64(0)
	if b, err := h.service.AvailableBalance(c.UserContext(), u.ID); err == nil {
		balance = b
	}
	resp := userResponse{
		ID:                u.ID,
		FirstName:         u.FirstName,
		LastName:          u.LastName,
		Email:             u.Email,
		EmailVerified:     u.EmailVerified,
		MobileNumber:      u.MobileNumber,
		MobileVerified:    u.MobileVerified,
		DateOfBirth:       u.DateOfBirth.Format(time.RFC3339),
		ReferralCode:      u.ReferralCode,
		VerificationState: u.VerificationState,
		AvailableBalance:  paiseToRupees(balance),
		CreatedAt:         u.CreatedAt.Format(time.RFC3339),
		UpdatedAt:         u.UpdatedAt.Format(time.RFC3339),
	}
	if u.Address != nil {
		resp.Address = &addressResponse{
			AddressLine1: u.Address.AddressLine1,
			AddressLine2: u.Address.AddressLine2,
			City:         u.Address.City,
			State:        u.Address.State,
			Pincode:      u.Address.Pincode,
		}
	}
	if u.Identity != nil {
		resp.IdentityDetails = &identityResponse{
			PANNumber:     u.Identity.PANNumber,
			PANAttachment: u.Identity.PANAttachment,
			AadharNumber:  u.Identity.AadharNumber,
			AadharFront:   u.Identity.AadharFront,
			AadharBack:    u.Identity.AadharBack,
		}
	}
	if u.Bank != nil {
		resp.BankDetails = &bankResponse{
			AccountNumber:   u.Bank.AccountNumber,
			IFSCCode:        u.Bank.IFSCCode,
			BranchName:      u.Bank.BranchName,
			ProofAttachment: u.Bank.ProofAttachment,
		}
	}
	return resp
}

// List returns every investor account.
func (h *Handler) List(c *fiber.Ctx) error {
	users, err := h.service.List(c.UserContext())
	if err != nil {
		return fiber.NewError(http.StatusInternalServerError, err.Error())
	}
	out := make([]userResponse, 0, len(users))
	for _, u := range users {
		out = append(out, h.toResponse(c, u))
	}
	return c.Status(http.StatusOK).JSON(fiber.Map{"users": out})
}

// Get returns a single investor.
func (h *Handler) Get(c *fiber.Ctx) error {
	u, err := h.service.Get(c.UserContext(), c.Params("id"))
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return fiber.NewError(http.StatusNotFound, err.Error())
		}
		return fiber.NewError(http.StatusInternalServerError, err.Error())
	}
	return c.Status(http.StatusOK).JSON(fiber.Map{"user": h.toResponse(c, u)})
}

// Create provisions an investor from a validated form payload. Validation
// failures answer 422 with the full field-path error map so the dashboard can
// render each message under its field.
func (h *Handler) Create(c *fiber.Ctx) error {
	var payload forms.CreateUserPayload
	if err := c.BodyParser(&payload); err != nil {
		return fiber.NewError(http.StatusBadRequest, err.Error())
	}

	u, err := h.service.Create(c.UserContext(), payload)
	if err != nil {
		var verr ErrValidation
		if errors.As(err, &verr) {
			return c.Status(http.StatusUnprocessableEntity).JSON(fiber.Map{
				"message": "validation failed",
				"errors":  verr.Result.Errors,
			})
		}
		if errors.Is(err, ErrEmailTaken) {
			return fiber.NewError(http.StatusConflict, err.Error())
		}
		return fiber.NewError(http.StatusInternalServerError, err.Error())
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"user": h.toResponse(c, u)})
}

type verifyRequest struct {
	UserID string `json:"userId"`
	Status string `json:"status"` // approve | reject
}

// Verify applies an identity verification decision.
func (h *Handler) Verify(c *fiber.Ctx) error {
	var req verifyRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, err.Error())
	}
	if req.UserID == "" {
		return fiber.NewError(http.StatusBadRequest, "userId is required")
	}

	var approve bool
	switch req.Status {
	case "approve":
		approve = true
	case "reject":
		approve = false
	default:
		return fiber.NewError(http.StatusBadRequest, fmt.Sprintf("unknown status %q", req.Status))
	}

	u, err := h.service.Verify(c.UserContext(), req.UserID, approve)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return fiber.NewError(http.StatusNotFound, err.Error())
		}
		return fiber.NewError(http.StatusBadRequest, err.Error())
	}
	return c.Status(http.StatusOK).JSON(fiber.Map{"user": h.toResponse(c, u)})
}

func paiseToRupees(paise int64) string {
	sign := ""
	if paise < 0 {
		sign = "-"
		paise = -paise
	}
	return fmt.Sprintf("%s%d.%02d", sign, paise/100, paise%100)
}
