package forms

import (
	"encoding/json"
	"strings"
	"testing"
)

func TestPayloadNormalizesDateAndOptionals(t *testing.T) {
	f := validBaseForm()
	f.ReferralCode = "  "

	p, err := Payload(f)
	if err != nil {
		t.Fatalf("payload: %v", err)
	}
	if p.DateOfBirth != "1991-04-23T00:00:00Z" {
		t.Fatalf("expected canonical timestamp, got %q", p.DateOfBirth)
	}
	if p.ReferralCode != nil {
		t.Fatalf("blank optional must be absent, got %q", *p.ReferralCode)
	}

	raw, err := json.Marshal(p)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	body := string(raw)
	if strings.Contains(body, "referralCode") {
		t.Fatalf("absent optional leaked into payload: %s", body)
	}
	if strings.Contains(body, "identityDetails") || strings.Contains(body, "address") || strings.Contains(body, "bankDetails") {
		t.Fatalf("disabled sections leaked into payload: %s", body)
	}
}

func TestPayloadIncludesEnabledSections(t *testing.T) {
	f := validBaseForm()
	f.Identity = IdentitySection{
		Enabled:       true,
		PANNumber:     "abcde1234f",
		AadharNumber:  "123412341234",
		PANAttachment: resolvedSlot(),
		AadharFront:   resolvedSlot(),
		AadharBack:    resolvedSlot(),
	}

	p, err := Payload(f)
	if err != nil {
		t.Fatalf("payload: %v", err)
	}
	if p.IdentityDetails == nil {
		t.Fatalf("enabled identity section missing from payload")
	}
	if p.IdentityDetails.PANNumber != "ABCDE1234F" {
		t.Fatalf("PAN not upper-cased: %q", p.IdentityDetails.PANNumber)
	}
	if p.IdentityDetails.PANAttachment == "" {
		t.Fatalf("attachment URL missing")
	}
}

func TestPayloadRejectsUnparseableDate(t *testing.T) {
	f := validBaseForm()
	f.DateOfBirth = "23/04/1991"
	if _, err := Payload(f); err == nil {
		t.Fatalf("expected error for non-canonical date input")
	}
}

func TestPayloadFormRoundTripPreservesValidity(t *testing.T) {
	f := validBaseForm()
	f.Bank = BankSection{
		Enabled:       true,
		AccountNumber: "001234567890",
		IFSCCode:      "hdfc0001234",
		BranchName:    "Indiranagar",
		Proof:         resolvedSlot(),
	}

	p, err := Payload(f)
	if err != nil {
		t.Fatalf("payload: %v", err)
	}
	rebuilt := p.Form()
	if res := Validate(rebuilt); !res.Valid() {
		t.Fatalf("server-side view of a valid submission failed validation: %v", res.Errors)
	}
	if !rebuilt.Bank.Proof.Resolved() {
		t.Fatalf("inbound attachment URL must map to a settled slot")
	}
}
