package transaction

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/aadyanvi/wealth-admin/internal/ledger"
	"github.com/aadyanvi/wealth-admin/internal/notification"
)

// ErrAlreadyDecided is returned when an approval or rejection targets a
// transaction that is no longer pending.
var ErrAlreadyDecided = errors.New("transaction already decided")

// Service owns the deposit/withdrawal decision flow. Approvals move money
// through the ledger; rejections only mark the request.
type Service struct {
	repo     Repository
	books    ledger.Ledger
	notifier notification.Notifier
	logger   *slog.Logger
	now      func() time.Time
}

// NewService builds a transaction service. notifier may be nil.
func NewService(repo Repository, books ledger.Ledger, logger *slog.Logger) *Service {
	return &Service{repo: repo, books: books, logger: logger, now: func() time.Time { return time.Now().UTC() }}
}

// WithNotifier attaches a notifier informed of every decision.
func (s *Service) WithNotifier(n notification.Notifier) *Service {
	s.notifier = n
	return s
}

func (s *Service) notify(ctx context.Context, tx Transaction, decision string) {
	if s.notifier == nil {
		return
	}
	kind := notification.KindDepositDecision
	if tx.Type == TypeWithdrawal {
		kind = notification.KindWithdrawalDecision
	}
	msg := notification.Message{
		Kind:        kind,
		Destination: tx.UserID,
		Body:        fmt.Sprintf("your %s request of %d paise was %s", strings.ToLower(tx.Type), tx.Amount, strings.ToLower(decision)),
	}
	if err := s.notifier.Send(ctx, msg); err != nil {
		s.logger.Warn("decision notification failed", "tx_id", tx.ID, "error", err)
	}
}

// Submit records a new pending fund-movement request.
func (s *Service) Submit(ctx context.Context, userID, txType string, amount int64) (Transaction, error) {
	if txType != TypeDeposit && txType != TypeWithdrawal {
		return Transaction{}, fmt.Errorf("unknown transaction type %q", txType)
	}
	if amount <= 0 {
		return Transaction{}, errors.New("amount must be positive")
	}
	tx := Transaction{
		ID:        uuid.NewString(),
		UserID:    userID,
		Type:      txType,
		Amount:    amount,
		Status:    StatusPending,
		CreatedAt: s.now(),
	}
	if err := s.repo.Create(ctx, tx); err != nil {
		return Transaction{}, fmt.Errorf("submit transaction: %w", err)
	}
	return tx, nil
}

// PendingDeposits lists deposit requests awaiting a decision, oldest first.
func (s *Service) PendingDeposits(ctx context.Context) ([]Transaction, error) {
	return s.repo.ListPending(ctx, TypeDeposit)
}

// PendingWithdrawals lists withdrawal requests awaiting a decision, oldest first.
func (s *Service) PendingWithdrawals(ctx context.Context) ([]Transaction, error) {
	return s.repo.ListPending(ctx, TypeWithdrawal)
}

// CountPending counts every pending request across both types.
func (s *Service) CountPending(ctx context.Context) (int, error) {
	return s.repo.CountPending(ctx)
}

// Approve posts the ledger movement for a pending transaction and marks it
// APPROVED. The posting is keyed by the transaction id, so a retried
// approval that already moved money still settles to APPROVED without a
// second posting. A withdrawal that the user's balance cannot cover fails
// and leaves the request pending.
func (s *Service) Approve(ctx context.Context, id string) (Transaction, error) {
	tx, err := s.repo.Get(ctx, id)
	if err != nil {
		return Transaction{}, err
	}
	if tx.Status != StatusPending {
		return Transaction{}, ErrAlreadyDecided
	}

	switch tx.Type {
	case TypeDeposit:
		_, err = s.books.Deposit(ctx, tx.UserID, tx.ID, tx.Amount)
	case TypeWithdrawal:
		_, err = s.books.Withdraw(ctx, tx.UserID, tx.ID, tx.Amount)
	default:
		return Transaction{}, fmt.Errorf("unknown transaction type %q", tx.Type)
	}
	if err != nil && !errors.Is(err, ledger.ErrDuplicateTransaction) {
		return Transaction{}, fmt.Errorf("approve %s: %w", tx.ID, err)
	}

	if err := s.repo.SetStatus(ctx, tx.ID, StatusApproved, s.now()); err != nil {
		return Transaction{}, err
	}
	s.logger.Info("transaction approved", "tx_id", tx.ID, "type", tx.Type, "amount", tx.Amount)
	s.notify(ctx, tx, StatusApproved)
	return s.repo.Get(ctx, tx.ID)
}

// Reject marks a pending transaction REJECTED. No money moves.
func (s *Service) Reject(ctx context.Context, id string) (Transaction, error) {
	tx, err := s.repo.Get(ctx, id)
	if err != nil {
		return Transaction{}, err
	}
	if tx.Status != StatusPending {
		return Transaction{}, ErrAlreadyDecided
	}
	if err := s.repo.SetStatus(ctx, tx.ID, StatusRejected, s.now()); err != nil {
		return Transaction{}, err
	}
	s.logger.Info("transaction rejected", "tx_id", tx.ID, "type", tx.Type)
	s.notify(ctx, tx, StatusRejected)
	return s.repo.Get(ctx, tx.ID)
}
