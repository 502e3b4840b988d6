package stats

import (
	"context"
	"fmt"

	"github.com/aadyanvi/wealth-admin/internal/ledger"
	"github.com/aadyanvi/wealth-admin/internal/plan"
)

// PendingCounter reports how many fund requests await a decision.
type PendingCounter interface {
	CountPending(ctx context.Context) (int, error)
}

// PlanCounter reports active plans grouped by product type.
type PlanCounter interface {
	CountActiveByType(ctx context.Context) ([]plan.TypeCount, error)
}

// ActivePlans carries the dashboard's plan breakdown.
type ActivePlans struct {
	Total  int
	ByType []plan.TypeCount
}

// Service computes the dashboard aggregates.
type Service struct {
	books   ledger.Ledger
	plans   PlanCounter
	pending PendingCounter
}

// NewService builds a stats service.
func NewService(books ledger.Ledger, plans PlanCounter, pending PendingCounter) *Service {
	return &Service{books: books, plans: plans, pending: pending}
}

// AUM totals capital deployed into plans across all investors, in paise.
func (s *Service) AUM(ctx context.Context) (int64, error) {
	total, err := s.books.SumByPrefix(ctx, ledger.InvestedPrefix())
	if err != nil {
		return 0, fmt.Errorf("sum invested: %w", err)
	}
	return total, nil
}

// ActiveInvestors counts investors holding deployed capital.
func (s *Service) ActiveInvestors(ctx context.Context) (int, error) {
	count, err := s.books.CountPositiveByPrefix(ctx, ledger.InvestedPrefix())
	if err != nil {
		return 0, fmt.Errorf("count invested: %w", err)
	}
	return count, nil
}

// UnusedFunds totals uninvested balances across all investors, in paise.
func (s *Service) UnusedFunds(ctx context.Context) (int64, error) {
	total, err := s.books.SumByPrefix(ctx, ledger.AvailablePrefix())
	if err != nil {
		return 0, fmt.Errorf("sum available: %w", err)
	}
	return total, nil
}

// ActivePlans returns the active plan count and its by-type breakdown.
func (s *Service) ActivePlans(ctx context.Context) (ActivePlans, error) {
	byType, err := s.plans.CountActiveByType(ctx)
	if err != nil {
		return ActivePlans{}, fmt.Errorf("count plans: %w", err)
	}
	out := ActivePlans{ByType: byType}
	for _, tc := range byType {
		out.Total += tc.Count
	}
	return out, nil
}

// PendingRequests counts deposits and withdrawals awaiting review.
func (s *Service) PendingRequests(ctx context.Context) (int, error) {
	count, err := s.pending.CountPending(ctx)
	if err != nil {
		return 0, fmt.Errorf("count pending: %w", err)
	}
	return count, nil
}
