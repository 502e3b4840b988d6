package user

import "time"

// Verification states of an investor account. PENDING means identity
// documents were submitted and await an admin decision.
const (
	VerificationUnverified = "UNVERIFIED"
	VerificationPending    = "PENDING"
	VerificationVerified   = "VERIFIED"
	VerificationRejected   = "REJECTED"
)

// User represents an investor account surfaced in the dashboard.
type User struct {
	ID                string
	FirstName         string
	LastName          string
	Email             string
	EmailVerified     bool
	MobileNumber      string
	MobileVerified    bool
	PasswordHash      []byte
	DateOfBirth       time.Time
	ReferralCode      string
	VerificationState string
	CreatedAt         time.Time
	UpdatedAt         time.Time

	Address  *Address
	Identity *IdentityDetails
	Bank     *BankDetails
}

// Address is the investor's optional postal address.
type Address struct {
	AddressLine1 string
	AddressLine2 string
	City         string
	State        string
	Pincode      string
}

// IdentityDetails holds KYC numbers and stored document URLs.
type IdentityDetails struct {
	PANNumber     string
	PANAttachment string
	AadharNumber  string
	AadharFront   string
	AadharBack    string
}

// BankDetails holds the payout account and its proof document URL.
type BankDetails struct {
	AccountNumber   string
	IFSCCode        string
	BranchName      string
	ProofAttachment string
}
