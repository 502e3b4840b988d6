package user

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/aadyanvi/wealth-admin/internal/forms"
	"github.com/aadyanvi/wealth-admin/internal/ledger"
)

// ErrValidation wraps a non-empty validation result from the form re-check.
type ErrValidation struct {
	Result forms.ValidationResult
}

func (e ErrValidation) Error() string { return "validation failed" }

const referralAlphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"

// Service manages investor accounts.
type Service struct {
	repo   Repository
	ledger ledger.Ledger
}

// NewService creates a new user service.
func NewService(repo Repository, led ledger.Ledger) *Service {
	return &Service{repo: repo, ledger: led}
}

// Create re-validates the submitted payload with the same rules the dashboard
// ran, then provisions the account and its ledger accounts. A rejected
// payload never reaches the repository.
func (s *Service) Create(ctx context.Context, payload forms.CreateUserPayload) (User, error) {
	if res := forms.Validate(payload.Form()); !res.Valid() {
		return User{}, ErrValidation{Result: res}
	}

	email := strings.ToLower(strings.TrimSpace(payload.Email))
	if _, err := s.repo.FindByEmail(ctx, email); err == nil {
		return User{}, ErrEmailTaken
	} else if !errors.Is(err, ErrNotFound) {
		return User{}, err
	}

	dob, err := time.Parse(time.RFC3339, payload.DateOfBirth)
	if err != nil {
		return User{}, fmt.Errorf("parse date of birth: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(payload.Password), bcrypt.DefaultCost)
	if err != nil {
		return User{}, err
	}

	referral := strings.TrimSpace(derefString(payload.ReferralCode))
	if referral == "" {
		referral, err = newReferralCode()
		if err != nil {
			return User{}, err
		}
	}

	now := time.Now().UTC()
	u := User{
		ID:                uuid.NewString(),
		FirstName:         payload.FirstName,
		LastName:          payload.LastName,
		Email:             email,
		MobileNumber:      payload.MobileNumber,
		PasswordHash:      hash,
		DateOfBirth:       dob.UTC(),
		ReferralCode:      referral,
		VerificationState: VerificationUnverified,
		CreatedAt:         now,
		UpdatedAt:         now,
	}

	if payload.Address != nil {
		u.Address = &Address{
			AddressLine1: payload.Address.AddressLine1,
			AddressLine2: derefString(payload.Address.AddressLine2),
			City:         derefString(payload.Address.City),
			State:        derefString(payload.Address.State),
			Pincode:      payload.Address.Pincode,
		}
	}
	if payload.IdentityDetails != nil {
		u.Identity = &IdentityDetails{
			PANNumber:     payload.IdentityDetails.PANNumber,
			PANAttachment: payload.IdentityDetails.PANAttachment,
			AadharNumber:  payload.IdentityDetails.AadharNumber,
			AadharFront:   payload.IdentityDetails.AadharFront,
			AadharBack:    payload.IdentityDetails.AadharBack,
		}
		// Submitted documents queue the account for review.
		u.VerificationState = VerificationPending
	}
	if payload.BankDetails != nil {
		u.Bank = &BankDetails{
			AccountNumber:   payload.BankDetails.AccountNumber,
			IFSCCode:        payload.BankDetails.IFSCCode,
			BranchName:      payload.BankDetails.BranchName,
			ProofAttachment: payload.BankDetails.ProofAttachment,
		}
	}

	if err := s.repo.Create(ctx, u); err != nil {
		return User{}, err
	}
	if err := s.ledger.EnsureAccount(ctx, ledger.AvailableAccountCode(u.ID)); err != nil {
		return User{}, err
	}
	if err := s.ledger.EnsureAccount(ctx, ledger.InvestedAccountCode(u.ID)); err != nil {
		return User{}, err
	}

	return u, nil
}

// Get fetches a single investor.
func (s *Service) Get(ctx context.Context, id string) (User, error) {
	return s.repo.Get(ctx, id)
}

// List returns all investors.
func (s *Service) List(ctx context.Context) ([]User, error) {
	return s.repo.List(ctx)
}

// AvailableBalance reads the investor's uninvested balance in paise.
func (s *Service) AvailableBalance(ctx context.Context, id string) (int64, error) {
	return s.ledger.Balance(ctx, ledger.AvailableAccountCode(id))
}

// Verify applies an identity decision. Only accounts awaiting review can be
// decided; repeating the same decision is rejected rather than absorbed, so
// a double-submitted approval surfaces to the operator.
func (s *Service) Verify(ctx context.Context, id string, approve bool) (User, error) {
	u, err := s.repo.Get(ctx, id)
	if err != nil {
		return User{}, err
	}
	if u.VerificationState != VerificationPending {
		return User{}, fmt.Errorf("user is not pending verification (state %s)", u.VerificationState)
	}

	state := VerificationRejected
	if approve {
		state = VerificationVerified
	}
	if err := s.repo.UpdateVerification(ctx, id, state); err != nil {
		return User{}, err
	}
	u.VerificationState = state
	u.UpdatedAt = time.Now().UTC()
	return u, nil
}

func newReferralCode() (string, error) {
	buf := make([]byte, 8)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	code := make([]byte, 8)
	for i, b := range buf {
		code[i] = referralAlphabet[int(b)%len(referralAlphabet)]
	}
	return string(code), nil
}

func derefString(v *string) string {
	if v == nil {
		return ""
	}
	return *v
}
