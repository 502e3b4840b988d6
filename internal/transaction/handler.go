package transaction

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/aadyanvi/wealth-admin/internal/ledger"
)

// Handler exposes fund-request review over HTTP.
type Handler struct {
	svc    *Service
	logger *slog.Logger
}

// NewHandler builds a transaction HTTP handler.
func NewHandler(svc *Service, logger *slog.Logger) *Handler {
	return &Handler{svc: svc, logger: logger}
}

type txResponse struct {
	ID        string  `json:"id"`
	UserID    string  `json:"userId"`
	Type      string  `json:"type"`
	Amount    string  `json:"amount"`
	Status    string  `json:"status"`
	CreatedAt string  `json:"createdAt"`
	DecidedAt *string `json:"decidedAt,omitempty"`
}

func toResponse(tx Transaction) txResponse {
	out := txResponse{
		ID:        tx.ID,
		UserID:    tx.UserID,
		Type:      tx.Type,
		Amount:    paiseToRupees(tx.Amount),
		Status:    tx.Status,
		CreatedAt: tx.CreatedAt.Format(time.RFC3339),
	}
	if tx.DecidedAt != nil {
		decided := tx.DecidedAt.Format(time.RFC3339)
		out.DecidedAt = &decided
	}
	return out
}

func paiseToRupees(paise int64) string {
	sign := ""
	if paise < 0 {
		sign = "-"
		paise = -paise
	}
	return fmt.Sprintf("%s%d.%02d", sign, paise/100, paise%100)
}

func listResponse(txs []Transaction) fiber.Map {
	out := make([]txResponse, 0, len(txs))
	for _, tx := range txs {
		out = append(out, toResponse(tx))
	}
	return fiber.Map{"transactions": out}
}

// PendingDeposits handles GET /get-deposit-transactions.
func (h *Handler) PendingDeposits(c *fiber.Ctx) error {
	txs, err := h.svc.PendingDeposits(c.UserContext())
	if err != nil {
		h.logger.Error("list deposits failed", "error", err)
		return fiber.NewError(fiber.StatusInternalServerError, "could not load transactions")
	}
	return c.JSON(listResponse(txs))
}

// PendingWithdrawals handles GET /get-withdrawal-transactions.
func (h *Handler) PendingWithdrawals(c *fiber.Ctx) error {
	txs, err := h.svc.PendingWithdrawals(c.UserContext())
	if err != nil {
		h.logger.Error("list withdrawals failed", "error", err)
		return fiber.NewError(fiber.StatusInternalServerError, "could not load transactions")
	}
	return c.JSON(listResponse(txs))
}

type decisionRequest struct {
	TransactionsID string `json:"transactionsId"`
	Status         string `json:"status"`
}

// decide parses the shared decision payload and applies it. The review
// screens send status "approved" or "reject".
func (h *Handler) decide(c *fiber.Ctx, wantType string) error {
	var req decisionRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}
	if req.TransactionsID == "" {
		return fiber.NewError(fiber.StatusBadRequest, "transactionsId is required")
	}

	var approve bool
	switch req.Status {
	case "approved":
		approve = true
	case "reject":
		approve = false
	default:
		return fiber.NewError(fiber.StatusBadRequest, "status must be approved or reject")
	}

	var (
		decided Transaction
		err     error
	)
	if approve {
		decided, err = h.svc.Approve(c.UserContext(), req.TransactionsID)
	} else {
		decided, err = h.svc.Reject(c.UserContext(), req.TransactionsID)
	}
	if err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			return fiber.NewError(fiber.StatusNotFound, "transaction not found")
		case errors.Is(err, ErrAlreadyDecided):
			return fiber.NewError(fiber.StatusConflict, "transaction already decided")
		case errors.Is(err, ledger.ErrInsufficientFunds):
			return fiber.NewError(fiber.StatusUnprocessableEntity, "insufficient available balance")
		}
		h.logger.Error("transaction decision failed", "error", err, "tx_id", req.TransactionsID)
		return fiber.NewError(fiber.StatusInternalServerError, "could not process transaction")
	}
	if decided.Type != wantType {
		// Decision landed through the wrong review screen; report it but
		// do not undo a settled posting.
		h.logger.Warn("decision type mismatch", "tx_id", decided.ID, "type", decided.Type)
	}
	return c.JSON(fiber.Map{"transaction": toResponse(decided)})
}

// DecideDeposit handles POST /add-funds.
func (h *Handler) DecideDeposit(c *fiber.Ctx) error {
	return h.decide(c, TypeDeposit)
}

// DecideWithdrawal handles POST /withdraw-funds.
func (h *Handler) DecideWithdrawal(c *fiber.Ctx) error {
	return h.decide(c, TypeWithdrawal)
}
