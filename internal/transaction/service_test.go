package transaction

import (
	"context"
	"errors"
	"testing"

	"github.com/aadyanvi/wealth-admin/internal/ledger"
	"github.com/aadyanvi/wealth-admin/internal/logging"
)

func newTestService(t *testing.T) (*Service, ledger.Ledger) {
	t.Helper()
	books := ledger.NewInMemory()
	return NewService(NewMemoryRepository(), books, logging.Discard()), books
}

func TestApproveDepositCreditsBalance(t *testing.T) {
	svc, books := newTestService(t)
	ctx := context.Background()

	tx, err := svc.Submit(ctx, "user-1", TypeDeposit, 250000)
	if err != nil {
		t.Fatalf("submit: %v", err)
	}

	decided, err := svc.Approve(ctx, tx.ID)
	if err != nil {
		t.Fatalf("approve: %v", err)
	}
	if decided.Status != StatusApproved {
		t.Fatalf("status = %q, want %q", decided.Status, StatusApproved)
	}
	if decided.DecidedAt == nil {
		t.Fatal("expected decidedAt to be set")
	}

	balance, err := books.Balance(ctx, ledger.AvailableAccountCode("user-1"))
	if err != nil {
		t.Fatalf("balance: %v", err)
	}
	if balance != 250000 {
		t.Fatalf("balance = %d, want 250000", balance)
	}
}

func TestApproveIsIdempotentAtLedger(t *testing.T) {
	svc, books := newTestService(t)
	ctx := context.Background()

	tx, err := svc.Submit(ctx, "user-1", TypeDeposit, 100000)
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if _, err := books.Deposit(ctx, "user-1", tx.ID, tx.Amount); err != nil {
		t.Fatalf("first posting: %v", err)
	}

	// The posting already exists; approving must still mark the request
	// APPROVED without doubling the balance.
	decided, err := svc.Approve(ctx, tx.ID)
	if err != nil {
		t.Fatalf("approve after posting: %v", err)
	}
	if decided.Status != StatusApproved {
		t.Fatalf("status = %q, want %q", decided.Status, StatusApproved)
	}
	balance, err := books.Balance(ctx, ledger.AvailableAccountCode("user-1"))
	if err != nil {
		t.Fatalf("balance: %v", err)
	}
	if balance != 100000 {
		t.Fatalf("balance = %d, want 100000", balance)
	}
}

func TestApproveWithdrawalRequiresFunds(t *testing.T) {
	svc, books := newTestService(t)
	ctx := context.Background()

	tx, err := svc.Submit(ctx, "user-1", TypeWithdrawal, 50000)
	if err != nil {
		t.Fatalf("submit: %v", err)
	}

	_, err = svc.Approve(ctx, tx.ID)
	if !errors.Is(err, ledger.ErrInsufficientFunds) {
		t.Fatalf("err = %v, want ErrInsufficientFunds", err)
	}

	// The failed approval leaves the request pending.
	pending, err := svc.PendingWithdrawals(ctx)
	if err != nil {
		t.Fatalf("pending: %v", err)
	}
	if len(pending) != 1 || pending[0].ID != tx.ID {
		t.Fatalf("pending = %+v, want the original request", pending)
	}

	ledger.SeedBalance(books, ledger.AvailableAccountCode("user-1"), 80000)
	decided, err := svc.Approve(ctx, tx.ID)
	if err != nil {
		t.Fatalf("approve after funding: %v", err)
	}
	if decided.Status != StatusApproved {
		t.Fatalf("status = %q, want %q", decided.Status, StatusApproved)
	}
	balance, err := books.Balance(ctx, ledger.AvailableAccountCode("user-1"))
	if err != nil {
		t.Fatalf("balance: %v", err)
	}
	if balance != 30000 {
		t.Fatalf("balance = %d, want 30000", balance)
	}
}

func TestRejectMovesNoMoney(t *testing.T) {
	svc, books := newTestService(t)
	ctx := context.Background()

	tx, err := svc.Submit(ctx, "user-1", TypeDeposit, 100000)
	if err != nil {
		t.Fatalf("submit: %v", err)
	}

	decided, err := svc.Reject(ctx, tx.ID)
	if err != nil {
		t.Fatalf("reject: %v", err)
	}
	if decided.Status != StatusRejected {
		t.Fatalf("status = %q, want %q", decided.Status, StatusRejected)
	}

	if err := books.EnsureAccount(ctx, ledger.AvailableAccountCode("user-1")); err != nil {
		t.Fatalf("ensure account: %v", err)
	}
	balance, err := books.Balance(ctx, ledger.AvailableAccountCode("user-1"))
	if err != nil {
		t.Fatalf("balance: %v", err)
	}
	if balance != 0 {
		t.Fatalf("balance = %d, want 0", balance)
	}
}

func TestDecisionIsFinal(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	tx, err := svc.Submit(ctx, "user-1", TypeDeposit, 100000)
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if _, err := svc.Approve(ctx, tx.ID); err != nil {
		t.Fatalf("approve: %v", err)
	}
	if _, err := svc.Reject(ctx, tx.ID); !errors.Is(err, ErrAlreadyDecided) {
		t.Fatalf("reject after approve: err = %v, want ErrAlreadyDecided", err)
	}
	if _, err := svc.Approve(ctx, tx.ID); !errors.Is(err, ErrAlreadyDecided) {
		t.Fatalf("second approve: err = %v, want ErrAlreadyDecided", err)
	}
}

func TestPendingListsSplitByType(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	if _, err := svc.Submit(ctx, "user-1", TypeDeposit, 100); err != nil {
		t.Fatalf("submit: %v", err)
	}
	if _, err := svc.Submit(ctx, "user-2", TypeWithdrawal, 200); err != nil {
		t.Fatalf("submit: %v", err)
	}

	deposits, err := svc.PendingDeposits(ctx)
	if err != nil {
		t.Fatalf("deposits: %v", err)
	}
	withdrawals, err := svc.PendingWithdrawals(ctx)
	if err != nil {
		t.Fatalf("withdrawals: %v", err)
	}
	if len(deposits) != 1 || deposits[0].Type != TypeDeposit {
		t.Fatalf("deposits = %+v", deposits)
	}
	if len(withdrawals) != 1 || withdrawals[0].Type != TypeWithdrawal {
		t.Fatalf("withdrawals = %+v", withdrawals)
	}

	count, err := svc.CountPending(ctx)
	if err != nil {
		t.Fatalf("count: %v", err)
	}
	if count != 2 {
		t.Fatalf("pending count = %d, want 2", count)
	}
}
