package transaction

import "time"

// Transaction types.
const (
	TypeDeposit    = "DEPOSIT"
	TypeWithdrawal = "WITHDRAWAL"
)

// Transaction statuses.
const (
	StatusPending  = "PENDING"
	StatusApproved = "APPROVED"
	StatusRejected = "REJECTED"
)

// Transaction is a user-initiated fund movement awaiting an admin decision.
// Amounts are in paise.
type Transaction struct {
	ID        string
	UserID    string
	Type      string
	Amount    int64
	Status    string
	CreatedAt time.Time
	DecidedAt *time.Time
}
