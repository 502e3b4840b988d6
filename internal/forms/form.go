package forms

// UserForm is the typed schema of the multi-section investor registration
// form. Scalar fields are always present; the address, identity and bank
// sections are progressively disclosed: a section contributes nothing to
// validation or to the submitted payload unless Enabled is set.
type UserForm struct {
	FirstName    string
	LastName     string
	Email        string
	MobileNumber string
	Password     string
	DateOfBirth  string // yyyy-mm-dd as entered; normalized on submit
	ReferralCode string

	Address  AddressSection
	Identity IdentitySection
	Bank     BankSection
}

// AddressSection holds the optional postal address block.
type AddressSection struct {
	Enabled      bool
	AddressLine1 string
	AddressLine2 string
	City         string
	State        string
	Pincode      string
}

// IdentitySection holds KYC identifiers and their document slots. The wire
// spelling "aadhar" matches the upstream payloads and is kept throughout.
type IdentitySection struct {
	Enabled      bool
	PANNumber    string
	AadharNumber string

	PANAttachment UploadState
	AadharFront   UploadState
	AadharBack    UploadState
}

// BankSection holds payout account details and the bank-proof document slot.
type BankSection struct {
	Enabled       bool
	AccountNumber string
	IFSCCode      string
	BranchName    string

	Proof UploadState
}

// Slots returns every document slot of the form, including slots belonging to
// disabled sections (an upload started before a section was collapsed still
// blocks submission until it settles).
func (f UserForm) Slots() []UploadState {
	return []UploadState{
		f.Identity.PANAttachment,
		f.Identity.AadharFront,
		f.Identity.AadharBack,
		f.Bank.Proof,
	}
}
