package user

import (
	"context"
	"errors"
	"testing"

	"github.com/aadyanvi/wealth-admin/internal/forms"
	"github.com/aadyanvi/wealth-admin/internal/ledger"
)

func basePayload() forms.CreateUserPayload {
	return forms.CreateUserPayload{
		FirstName:    "Asha",
		LastName:     "Verma",
		Email:        "Asha.Verma@example.com",
		MobileNumber: "9876543210",
		Password:     "s3cret-pass",
		DateOfBirth:  "1991-04-23T00:00:00Z",
	}
}

func identityPayload() *forms.IdentityPayload {
	return &forms.IdentityPayload{
		PANNumber:     "ABCDE1234F",
		PANAttachment: "https://cdn.example.com/pan.pdf",
		AadharNumber:  "123412341234",
		AadharFront:   "https://cdn.example.com/front.pdf",
		AadharBack:    "https://cdn.example.com/back.pdf",
	}
}

func newService() *Service {
	return NewService(NewMemoryRepository(), ledger.NewInMemory())
}

func TestCreateMinimalUser(t *testing.T) {
	svc := newService()
	ctx := context.Background()

	u, err := svc.Create(ctx, basePayload())
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if u.Email != "asha.verma@example.com" {
		t.Fatalf("expected normalized email, got %s", u.Email)
	}
	if u.VerificationState != VerificationUnverified {
		t.Fatalf("no documents submitted: expected UNVERIFIED, got %s", u.VerificationState)
	}
	if u.ReferralCode == "" {
		t.Fatalf("expected generated referral code")
	}
	if len(u.PasswordHash) == 0 {
		t.Fatalf("password must be hashed")
	}

	balance, err := svc.AvailableBalance(ctx, u.ID)
	if err != nil {
		t.Fatalf("balance: %v", err)
	}
	if balance != 0 {
		t.Fatalf("fresh account must start empty, got %d", balance)
	}
}

func TestCreateWithIdentityQueuesVerification(t *testing.T) {
	svc := newService()
	payload := basePayload()
	payload.IdentityDetails = identityPayload()

	u, err := svc.Create(context.Background(), payload)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if u.VerificationState != VerificationPending {
		t.Fatalf("documents submitted: expected PENDING, got %s", u.VerificationState)
	}
}

func TestCreateRejectsInvalidPayloadWithoutPersisting(t *testing.T) {
	repo := NewMemoryRepository()
	svc := NewService(repo, ledger.NewInMemory())

	payload := basePayload()
	payload.IdentityDetails = &forms.IdentityPayload{PANNumber: "X"}

	_, err := svc.Create(context.Background(), payload)
	var verr ErrValidation
	if !errors.As(err, &verr) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
	if verr.Result.Errors["identityDetails.panNumber"] == "" {
		t.Fatalf("expected PAN error in result, got %v", verr.Result.Errors)
	}

	users, _ := repo.List(context.Background())
	if len(users) != 0 {
		t.Fatalf("rejected payload must not persist, found %d users", len(users))
	}
}

func TestCreateRejectsDuplicateEmail(t *testing.T) {
	svc := newService()
	ctx := context.Background()

	if _, err := svc.Create(ctx, basePayload()); err != nil {
		t.Fatalf("first create: %v", err)
	}
	if _, err := svc.Create(ctx, basePayload()); !errors.Is(err, ErrEmailTaken) {
		t.Fatalf("expected ErrEmailTaken, got %v", err)
	}
}

func TestVerifyTransitions(t *testing.T) {
	svc := newService()
	ctx := context.Background()

	payload := basePayload()
	payload.IdentityDetails = identityPayload()
	u, err := svc.Create(ctx, payload)
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	verified, err := svc.Verify(ctx, u.ID, true)
	if err != nil {
		t.Fatalf("verify: %v", err)
	}
	if verified.VerificationState != VerificationVerified {
		t.Fatalf("expected VERIFIED, got %s", verified.VerificationState)
	}

	// Deciding an already-decided account is an error, not a silent no-op.
	if _, err := svc.Verify(ctx, u.ID, false); err == nil {
		t.Fatalf("expected error on second decision")
	}
}

func TestVerifyRejectsUnverifiedAccount(t *testing.T) {
	svc := newService()
	ctx := context.Background()

	u, err := svc.Create(ctx, basePayload())
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, err := svc.Verify(ctx, u.ID, true); err == nil {
		t.Fatalf("account without documents cannot be verified")
	}
}
