package stats

import (
	"context"
	"testing"

	"github.com/aadyanvi/wealth-admin/internal/ledger"
	"github.com/aadyanvi/wealth-admin/internal/logging"
	"github.com/aadyanvi/wealth-admin/internal/plan"
	"github.com/aadyanvi/wealth-admin/internal/transaction"
)

func newTestStats(t *testing.T) (*Service, ledger.Ledger, *plan.Service, *transaction.Service) {
	t.Helper()
	books := ledger.NewInMemory()
	plans := plan.NewService(plan.NewMemoryRepository(), logging.Discard())
	txs := transaction.NewService(transaction.NewMemoryRepository(), books, logging.Discard())
	return NewService(books, plans, txs), books, plans, txs
}

func TestAggregatesFromLedger(t *testing.T) {
	svc, books, _, _ := newTestStats(t)
	ctx := context.Background()

	ledger.SeedBalance(books, ledger.InvestedAccountCode("user-1"), 20000000)
	ledger.SeedBalance(books, ledger.InvestedAccountCode("user-2"), 15000000)
	ledger.SeedBalance(books, ledger.InvestedAccountCode("user-3"), 0)
	ledger.SeedBalance(books, ledger.AvailableAccountCode("user-1"), 500000)
	ledger.SeedBalance(books, ledger.AvailableAccountCode("user-2"), 250000)

	aum, err := svc.AUM(ctx)
	if err != nil {
		t.Fatalf("aum: %v", err)
	}
	if aum != 35000000 {
		t.Fatalf("aum = %d, want 35000000", aum)
	}

	investors, err := svc.ActiveInvestors(ctx)
	if err != nil {
		t.Fatalf("active investors: %v", err)
	}
	if investors != 2 {
		t.Fatalf("active investors = %d, want 2", investors)
	}

	unused, err := svc.UnusedFunds(ctx)
	if err != nil {
		t.Fatalf("unused funds: %v", err)
	}
	if unused != 750000 {
		t.Fatalf("unused funds = %d, want 750000", unused)
	}
}

func TestActivePlanBreakdown(t *testing.T) {
	svc, _, plans, _ := newTestStats(t)
	ctx := context.Background()

	mk := func(name, typ string) plan.Plan {
		p, err := plans.Create(ctx, plan.Input{
			ProductName:    name,
			ROIAAR:         10,
			MinInvestment:  1000,
			InvestmentTerm: 1,
			ProductType:    typ,
		})
		if err != nil {
			t.Fatalf("create plan: %v", err)
		}
		return p
	}
	mk("A", plan.TypeSIP)
	mk("B", plan.TypeSIP)
	off := mk("C", plan.TypeLumpsum)
	if _, err := plans.SetStatus(ctx, off.ID, false); err != nil {
		t.Fatalf("deactivate: %v", err)
	}

	active, err := svc.ActivePlans(ctx)
	if err != nil {
		t.Fatalf("active plans: %v", err)
	}
	if active.Total != 2 {
		t.Fatalf("total = %d, want 2", active.Total)
	}
	if len(active.ByType) != 1 || active.ByType[0].Type != plan.TypeSIP || active.ByType[0].Count != 2 {
		t.Fatalf("byType = %+v, want single SIP entry with count 2", active.ByType)
	}
}

func TestPendingRequestsCountsBothTypes(t *testing.T) {
	svc, _, _, txs := newTestStats(t)
	ctx := context.Background()

	if _, err := txs.Submit(ctx, "user-1", transaction.TypeDeposit, 100); err != nil {
		t.Fatalf("submit: %v", err)
	}
	if _, err := txs.Submit(ctx, "user-2", transaction.TypeWithdrawal, 100); err != nil {
		t.Fatalf("submit: %v", err)
	}
	rejected, err := txs.Submit(ctx, "user-3", transaction.TypeDeposit, 100)
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if _, err := txs.Reject(ctx, rejected.ID); err != nil {
		t.Fatalf("reject: %v", err)
	}

	count, err := svc.PendingRequests(ctx)
	if err != nil {
		t.Fatalf("pending: %v", err)
	}
	if count != 2 {
		t.Fatalf("pending = %d, want 2", count)
	}
}
