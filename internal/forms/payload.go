package forms

import (
	"fmt"
	"strings"
	"time"
)

// CreateUserPayload is the normalized wire shape of a validated form. Dates
// are canonical RFC 3339 UTC timestamps, optional scalars are nil when empty
// instead of "", and disabled sections are omitted entirely.
type CreateUserPayload struct {
	FirstName    string  `json:"firstName"`
	LastName     string  `json:"lastName"`
	Email        string  `json:"email"`
	MobileNumber string  `json:"mobileNumber"`
	Password     string  `json:"password"`
	DateOfBirth  string  `json:"dateOfBirth"`
	ReferralCode *string `json:"referralCode,omitempty"`

	Address         *AddressPayload  `json:"address,omitempty"`
	IdentityDetails *IdentityPayload `json:"identityDetails,omitempty"`
	BankDetails     *BankPayload     `json:"bankDetails,omitempty"`
}

// AddressPayload is the wire shape of an enabled address section.
type AddressPayload struct {
	AddressLine1 string  `json:"addressLine1"`
	AddressLine2 *string `json:"addressLine2,omitempty"`
	City         *string `json:"city,omitempty"`
	State        *string `json:"state,omitempty"`
	Pincode      string  `json:"pincode"`
}

// IdentityPayload is the wire shape of an enabled identity section.
type IdentityPayload struct {
	PANNumber     string `json:"panNumber"`
	PANAttachment string `json:"panAttachment"`
	AadharNumber  string `json:"aadharNumber"`
	AadharFront   string `json:"aadharFront"`
	AadharBack    string `json:"aadharBack"`
}

// BankPayload is the wire shape of an enabled bank section.
type BankPayload struct {
	AccountNumber   string `json:"accountNumber"`
	IFSCCode        string `json:"ifscCode"`
	BranchName      string `json:"branchName"`
	ProofAttachment string `json:"proofAttachment"`
}

// Payload assembles the normalized submission payload from a form that has
// already passed Validate. The date of birth is parsed as a calendar date and
// emitted as midnight UTC.
func Payload(f UserForm) (CreateUserPayload, error) {
	dob, err := time.Parse("2006-01-02", strings.TrimSpace(f.DateOfBirth))
	if err != nil {
		return CreateUserPayload{}, fmt.Errorf("parse date of birth: %w", err)
	}

	p := CreateUserPayload{
		FirstName:    strings.TrimSpace(f.FirstName),
		LastName:     strings.TrimSpace(f.LastName),
		Email:        strings.TrimSpace(f.Email),
		MobileNumber: strings.TrimSpace(f.MobileNumber),
		Password:     f.Password,
		DateOfBirth:  dob.UTC().Format(time.RFC3339),
		ReferralCode: optional(f.ReferralCode),
	}

	if f.Address.Enabled {
		p.Address = &AddressPayload{
			AddressLine1: strings.TrimSpace(f.Address.AddressLine1),
			AddressLine2: optional(f.Address.AddressLine2),
			City:         optional(f.Address.City),
			State:        optional(f.Address.State),
			Pincode:      strings.TrimSpace(f.Address.Pincode),
		}
	}
	if f.Identity.Enabled {
		p.IdentityDetails = &IdentityPayload{
			PANNumber:     strings.ToUpper(strings.TrimSpace(f.Identity.PANNumber)),
			PANAttachment: f.Identity.PANAttachment.URL,
			AadharNumber:  strings.TrimSpace(f.Identity.AadharNumber),
			AadharFront:   f.Identity.AadharFront.URL,
			AadharBack:    f.Identity.AadharBack.URL,
		}
	}
	if f.Bank.Enabled {
		p.BankDetails = &BankPayload{
			AccountNumber:   strings.TrimSpace(f.Bank.AccountNumber),
			IFSCCode:        strings.ToUpper(strings.TrimSpace(f.Bank.IFSCCode)),
			BranchName:      strings.TrimSpace(f.Bank.BranchName),
			ProofAttachment: f.Bank.Proof.URL,
		}
	}

	return p, nil
}

// Form rebuilds the validator's view of an inbound payload so the server can
// re-run the same rules the client ran before submitting. Attachment URLs
// arrive already resolved, so each present slot maps to a settled upload.
func (p CreateUserPayload) Form() UserForm {
	f := UserForm{
		FirstName:    p.FirstName,
		LastName:     p.LastName,
		Email:        p.Email,
		MobileNumber: p.MobileNumber,
		Password:     p.Password,
		DateOfBirth:  dateOnly(p.DateOfBirth),
		ReferralCode: deref(p.ReferralCode),
	}
	if p.Address != nil {
		f.Address = AddressSection{
			Enabled:      true,
			AddressLine1: p.Address.AddressLine1,
			AddressLine2: deref(p.Address.AddressLine2),
			City:         deref(p.Address.City),
			State:        deref(p.Address.State),
			Pincode:      p.Address.Pincode,
		}
	}
	if p.IdentityDetails != nil {
		f.Identity = IdentitySection{
			Enabled:       true,
			PANNumber:     p.IdentityDetails.PANNumber,
			AadharNumber:  p.IdentityDetails.AadharNumber,
			PANAttachment: UploadState{URL: p.IdentityDetails.PANAttachment},
			AadharFront:   UploadState{URL: p.IdentityDetails.AadharFront},
			AadharBack:    UploadState{URL: p.IdentityDetails.AadharBack},
		}
	}
	if p.BankDetails != nil {
		f.Bank = BankSection{
			Enabled:       true,
			AccountNumber: p.BankDetails.AccountNumber,
			IFSCCode:      p.BankDetails.IFSCCode,
			BranchName:    p.BankDetails.BranchName,
			Proof:         UploadState{URL: p.BankDetails.ProofAttachment},
		}
	}
	return f
}

func dateOnly(ts string) string {
	if t, err := time.Parse(time.RFC3339, ts); err == nil {
		return t.UTC().Format("2006-01-02")
	}
	return ts
}

func optional(v string) *string {
	v = strings.TrimSpace(v)
	if v == "" {
		return nil
	}
	return &v
}

func deref(v *string) string {
	if v == nil {
		return ""
	}
	return *v
}
