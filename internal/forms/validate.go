package forms

import (
	"regexp"
	"strings"
)

var (
	emailRe   = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	mobileRe  = regexp.MustCompile(`^[0-9]{10}$`)
	pincodeRe = regexp.MustCompile(`^[0-9]{6}$`)
	panRe     = regexp.MustCompile(`^[A-Z]{5}[0-9]{4}[A-Z]{1}$`)
	aadharRe  = regexp.MustCompile(`^[0-9]{12}$`)
	ifscRe    = regexp.MustCompile(`^[A-Z]{4}0[A-Z0-9]{6}$`)
)

// ValidationResult maps dot-delimited field paths to error messages. An empty
// map means the form is submit-eligible.
type ValidationResult struct {
	Errors map[string]string
}

// Valid reports whether no violations were found.
func (r ValidationResult) Valid() bool {
	return len(r.Errors) == 0
}

// Validate checks every rule of the form in a single pass and aggregates all
// violations. It is pure: no network access, no mutation of the form, and a
// fresh error map on every call. Disabled sections contribute no errors
// regardless of their contents.
func Validate(f UserForm) ValidationResult {
	errs := make(map[string]string)

	requireScalar(errs, "firstName", f.FirstName, "First name is required")
	requireScalar(errs, "lastName", f.LastName, "Last name is required")
	requireScalar(errs, "email", f.Email, "Email is required")
	requireScalar(errs, "mobileNumber", f.MobileNumber, "Mobile number is required")
	requireScalar(errs, "password", f.Password, "Password is required")
	requireScalar(errs, "dateOfBirth", f.DateOfBirth, "Date of birth is required")

	if _, seen := errs["email"]; !seen && !emailRe.MatchString(strings.TrimSpace(f.Email)) {
		errs["email"] = "Invalid email format"
	}
	if _, seen := errs["mobileNumber"]; !seen && !mobileRe.MatchString(strings.TrimSpace(f.MobileNumber)) {
		errs["mobileNumber"] = "Mobile number must be 10 digits"
	}

	if f.Address.Enabled {
		validateAddress(errs, f.Address)
	}
	if f.Identity.Enabled {
		validateIdentity(errs, f.Identity)
	}
	if f.Bank.Enabled {
		validateBank(errs, f.Bank)
	}

	return ValidationResult{Errors: errs}
}

func validateAddress(errs map[string]string, a AddressSection) {
	requireScalar(errs, "address.addressLine1", a.AddressLine1, "Address line 1 is required")
	if strings.TrimSpace(a.Pincode) == "" {
		errs["address.pincode"] = "Pincode is required"
	} else if !pincodeRe.MatchString(strings.TrimSpace(a.Pincode)) {
		errs["address.pincode"] = "Pincode must be 6 digits"
	}
}

func validateIdentity(errs map[string]string, id IdentitySection) {
	if !panRe.MatchString(strings.TrimSpace(id.PANNumber)) {
		errs["identityDetails.panNumber"] = "Invalid PAN format"
	}
	if !aadharRe.MatchString(strings.TrimSpace(id.AadharNumber)) {
		errs["identityDetails.aadharNumber"] = "Aadhar number must be 12 digits"
	}
	// A slot mid-upload or errored is not yet satisfied.
	if !id.PANAttachment.Resolved() {
		errs["identityDetails.panAttachment"] = "PAN card attachment is required"
	}
	if !id.AadharFront.Resolved() {
		errs["identityDetails.aadharFront"] = "Aadhar front attachment is required"
	}
	if !id.AadharBack.Resolved() {
		errs["identityDetails.aadharBack"] = "Aadhar back attachment is required"
	}
}

func validateBank(errs map[string]string, b BankSection) {
	requireScalar(errs, "bankDetails.accountNumber", b.AccountNumber, "Account number is required")
	requireScalar(errs, "bankDetails.branchName", b.BranchName, "Branch name is required")
	if strings.TrimSpace(b.IFSCCode) == "" {
		errs["bankDetails.ifscCode"] = "IFSC code is required"
	} else if !ifscRe.MatchString(strings.TrimSpace(b.IFSCCode)) {
		errs["bankDetails.ifscCode"] = "Invalid IFSC format"
	}
	// An in-flight proof upload defers submission via CanSubmit instead of
	// failing validation.
	if !b.Proof.Uploading && !b.Proof.Resolved() {
		errs["bankDetails.proofAttachment"] = "Bank proof attachment is required"
	}
}

func requireScalar(errs map[string]string, path, value, message string) {
	if strings.TrimSpace(value) == "" {
		errs[path] = message
	}
}
