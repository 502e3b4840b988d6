package ledger

import (
	"context"
	"errors"
	"testing"
)

func TestDepositCreditsAvailable(t *testing.T) {
	led := NewInMemory()
	ctx := context.Background()

	res, err := led.Deposit(ctx, "user-1", "tx-1", 50_000)
	if err != nil {
		t.Fatalf("deposit: %v", err)
	}
	if res.AvailableBalance != 50_000 {
		t.Fatalf("expected 50000 available, got %d", res.AvailableBalance)
	}

	settlement, err := led.Balance(ctx, SettlementAccountCode)
	if err != nil {
		t.Fatalf("settlement balance: %v", err)
	}
	if settlement != -50_000 {
		t.Fatalf("posting must balance: settlement %d", settlement)
	}
}

func TestDepositIsIdempotentPerTransactionID(t *testing.T) {
	led := NewInMemory()
	ctx := context.Background()

	first, err := led.Deposit(ctx, "user-1", "tx-1", 10_000)
	if err != nil {
		t.Fatalf("deposit: %v", err)
	}
	replay, err := led.Deposit(ctx, "user-1", "tx-1", 10_000)
	if !errors.Is(err, ErrDuplicateTransaction) {
		t.Fatalf("expected ErrDuplicateTransaction, got %v", err)
	}
	if replay.AvailableBalance != first.AvailableBalance {
		t.Fatalf("replay must return the original outcome")
	}

	bal, _ := led.Balance(ctx, AvailableAccountCode("user-1"))
	if bal != 10_000 {
		t.Fatalf("replay must not move money twice, balance %d", bal)
	}
}

func TestWithdrawRequiresFunds(t *testing.T) {
	led := NewInMemory()
	ctx := context.Background()

	if _, err := led.Withdraw(ctx, "user-1", "tx-1", 5_000); !errors.Is(err, ErrInsufficientFunds) {
		t.Fatalf("expected ErrInsufficientFunds, got %v", err)
	}

	if _, err := led.Deposit(ctx, "user-1", "tx-2", 5_000); err != nil {
		t.Fatalf("deposit: %v", err)
	}
	res, err := led.Withdraw(ctx, "user-1", "tx-3", 5_000)
	if err != nil {
		t.Fatalf("withdraw: %v", err)
	}
	if res.AvailableBalance != 0 {
		t.Fatalf("expected drained balance, got %d", res.AvailableBalance)
	}
}

func TestAggregatesByPrefix(t *testing.T) {
	led := NewInMemory()
	ctx := context.Background()

	SeedBalance(led, InvestedAccountCode("user-1"), 100_000)
	SeedBalance(led, InvestedAccountCode("user-2"), 250_000)
	SeedBalance(led, InvestedAccountCode("user-3"), 0)
	SeedBalance(led, AvailableAccountCode("user-1"), 7_500)

	aum, err := led.SumByPrefix(ctx, InvestedPrefix())
	if err != nil {
		t.Fatalf("sum: %v", err)
	}
	if aum != 350_000 {
		t.Fatalf("expected AUM 350000, got %d", aum)
	}

	investors, err := led.CountPositiveByPrefix(ctx, InvestedPrefix())
	if err != nil {
		t.Fatalf("count: %v", err)
	}
	if investors != 2 {
		t.Fatalf("expected 2 active investors, got %d", investors)
	}

	unused, err := led.SumByPrefix(ctx, AvailablePrefix())
	if err != nil {
		t.Fatalf("sum available: %v", err)
	}
	if unused != 7_500 {
		t.Fatalf("expected unused funds 7500, got %d", unused)
	}
}
