package ledger

import (
	"context"
	"errors"
)

var (
	// ErrInsufficientFunds occurs when the source account lacks available balance
	// to cover a requested posting.
	ErrInsufficientFunds = errors.New("insufficient funds")

	// ErrDuplicateTransaction indicates the provided client transaction identifier
	// already exists and therefore the operation should be treated as idempotent.
	ErrDuplicateTransaction = errors.New("duplicate transaction")
)

const (
	// SettlementAccountCode is the platform-side account that balances every
	// investor deposit and withdrawal posting.
	SettlementAccountCode = "platform:settlement"

	kindDeposit  = "deposit"
	kindWithdraw = "withdrawal"

	availablePrefix = "available:"
	investedPrefix  = "invested:"
)

// AvailableAccountCode returns the ledger code of an investor's uninvested
// (withdrawable) balance.
func AvailableAccountCode(userID string) string { return availablePrefix + userID }

// InvestedAccountCode returns the ledger code of an investor's deployed
// capital. This service only reads it (AUM, active-investor count); the
// investor-facing platform writes it when plans are purchased.
func InvestedAccountCode(userID string) string { return investedPrefix + userID }

// AvailablePrefix exposes the code family of uninvested balances for
// aggregate queries.
func AvailablePrefix() string { return availablePrefix }

// InvestedPrefix exposes the code family of deployed capital.
func InvestedPrefix() string { return investedPrefix }

// PostingResult captures the outcome of a deposit or withdrawal posting.
type PostingResult struct {
	PostingID        string
	AvailableBalance int64
}

// Ledger is the double-entry funds backend. Amounts are integer paise.
type Ledger interface {
	EnsureAccount(ctx context.Context, code string) error
	Balance(ctx context.Context, code string) (int64, error)

	// Deposit posts settlement -> available for the user, keyed by the
	// admin-approved transaction id so a replayed approval is a no-op.
	Deposit(ctx context.Context, userID, clientTxID string, amount int64) (PostingResult, error)

	// Withdraw posts available -> settlement, failing with
	// ErrInsufficientFunds when the user's available balance cannot cover it.
	Withdraw(ctx context.Context, userID, clientTxID string, amount int64) (PostingResult, error)

	// SumByPrefix totals every account whose code starts with prefix. Feeds
	// the AUM and unused-funds dashboard aggregates.
	SumByPrefix(ctx context.Context, prefix string) (int64, error)

	// CountPositiveByPrefix counts accounts under prefix holding a positive
	// balance. Feeds the active-investor count.
	CountPositiveByPrefix(ctx context.Context, prefix string) (int, error)
}
