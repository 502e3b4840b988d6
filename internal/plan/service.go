package plan

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"strings"
	"time"

	"github.com/google/uuid"
)

// ErrInvalidInput is returned when plan fields fail validation.
var ErrInvalidInput = errors.New("invalid plan input")

// Input carries the writable plan fields. Derived figures are computed
// by the service and never taken from the caller.
type Input struct {
	ProductName    string
	ROIAAR         float64
	MinInvestment  float64
	InvestmentTerm int
	ProductType    string
}

// Service owns plan lifecycle and derivation rules.
type Service struct {
	repo   Repository
	logger *slog.Logger
	now    func() time.Time
}

// NewService builds a plan service.
func NewService(repo Repository, logger *slog.Logger) *Service {
	return &Service{repo: repo, logger: logger, now: func() time.Time { return time.Now().UTC() }}
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func (s *Service) validate(in Input) (Input, error) {
	in.ProductName = strings.TrimSpace(in.ProductName)
	in.ProductType = strings.ToUpper(strings.TrimSpace(in.ProductType))
	switch {
	case in.ProductName == "":
		return in, fmt.Errorf("%w: product name is required", ErrInvalidInput)
	case in.ROIAAR <= 0:
		return in, fmt.Errorf("%w: annual rate of return must be positive", ErrInvalidInput)
	case in.MinInvestment <= 0:
		return in, fmt.Errorf("%w: minimum investment must be positive", ErrInvalidInput)
	case in.InvestmentTerm <= 0:
		return in, fmt.Errorf("%w: investment term must be positive", ErrInvalidInput)
	case in.ProductType != TypeSIP && in.ProductType != TypeLumpsum:
		return in, fmt.Errorf("%w: product type must be %s or %s", ErrInvalidInput, TypeSIP, TypeLumpsum)
	}
	return in, nil
}

// derive fills the computed figures from the writable fields.
func derive(p *Plan) {
	p.ROIAMR = round2(p.ROIAAR / 12)
	p.TotalGain = round2(p.MinInvestment * p.ROIAAR * float64(p.InvestmentTerm) / 100)
	p.MaturityValue = round2(p.MinInvestment + p.TotalGain)
}

// Create validates, derives and stores a new active plan.
func (s *Service) Create(ctx context.Context, in Input) (Plan, error) {
	in, err := s.validate(in)
	if err != nil {
		return Plan{}, err
	}
	now := s.now()
	p := Plan{
		ID:             uuid.NewString(),
		ProductName:    in.ProductName,
		ROIAAR:         in.ROIAAR,
		MinInvestment:  in.MinInvestment,
		InvestmentTerm: in.InvestmentTerm,
		ProductType:    in.ProductType,
		Status:         StatusActive,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	derive(&p)
	if err := s.repo.Create(ctx, p); err != nil {
		return Plan{}, fmt.Errorf("create plan: %w", err)
	}
	s.logger.Info("plan created", "plan_id", p.ID, "type", p.ProductType)
	return p, nil
}

// Edit replaces the writable fields of an existing plan and recomputes
// the derived figures. Status is preserved.
func (s *Service) Edit(ctx context.Context, id string, in Input) (Plan, error) {
	in, err := s.validate(in)
	if err != nil {
		return Plan{}, err
	}
	p, err := s.repo.Get(ctx, id)
	if err != nil {
		return Plan{}, err
	}
	p.ProductName = in.ProductName
	p.ROIAAR = in.ROIAAR
	p.MinInvestment = in.MinInvestment
	p.InvestmentTerm = in.InvestmentTerm
	p.ProductType = in.ProductType
	p.UpdatedAt = s.now()
	derive(&p)
	if err := s.repo.Update(ctx, p); err != nil {
		return Plan{}, fmt.Errorf("edit plan: %w", err)
	}
	s.logger.Info("plan updated", "plan_id", p.ID)
	return p, nil
}

// Get fetches a single plan.
func (s *Service) Get(ctx context.Context, id string) (Plan, error) {
	return s.repo.Get(ctx, id)
}

// List returns every plan, newest first.
func (s *Service) List(ctx context.Context) ([]Plan, error) {
	return s.repo.List(ctx)
}

// SetStatus toggles a plan between ACTIVE and DEACTIVATED.
func (s *Service) SetStatus(ctx context.Context, id string, active bool) (Plan, error) {
	status := StatusDeactivated
	if active {
		status = StatusActive
	}
	if err := s.repo.UpdateStatus(ctx, id, status); err != nil {
		return Plan{}, err
	}
	s.logger.Info("plan status changed", "plan_id", id, "status", status)
	return s.repo.Get(ctx, id)
}

// Delete removes a plan permanently.
func (s *Service) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info("plan deleted", "plan_id", id)
	return nil
}

// CountActiveByType groups active plans by product type for the dashboard.
func (s *Service) CountActiveByType(ctx context.Context) ([]TypeCount, error) {
	return s.repo.CountActiveByType(ctx)
}
