package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/aadyanvi/wealth-admin/internal/transaction"
)

// RegisterTransactionRoutes wires the fund-request review endpoints.
func RegisterTransactionRoutes(r fiber.Router, h *transaction.Handler) {
	r.Get("/get-deposit-transactions", h.PendingDeposits)
	r.Get("/get-withdrawal-transactions", h.PendingWithdrawals)
	r.Post("/add-funds", h.DecideDeposit)
	r.Post("/withdraw-funds", h.DecideWithdrawal)
}
