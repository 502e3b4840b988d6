package forms

import (
	"reflect"
	"strings"
	"testing"
)

func validBaseForm() UserForm {
	return UserForm{
		FirstName:    "Asha",
		LastName:     "Verma",
		Email:        "asha.verma@example.com",
		MobileNumber: "9876543210",
		Password:     "s3cret-pass",
		DateOfBirth:  "1991-04-23",
	}
}

func resolvedSlot() UploadState {
	return UploadState{URL: "https://cdn.example.com/doc.pdf"}
}

func TestValidateAcceptsMinimalForm(t *testing.T) {
	res := Validate(validBaseForm())
	if !res.Valid() {
		t.Fatalf("expected no errors, got %v", res.Errors)
	}
}

func TestValidateRequiredScalars(t *testing.T) {
	res := Validate(UserForm{Email: "   ", MobileNumber: "\t"})

	expect := map[string]string{
		"firstName":    "First name is required",
		"lastName":     "Last name is required",
		"email":        "Email is required",
		"mobileNumber": "Mobile number is required",
		"password":     "Password is required",
		"dateOfBirth":  "Date of birth is required",
	}
	for path, msg := range expect {
		if got := res.Errors[path]; got != msg {
			t.Fatalf("path %s: expected %q, got %q", path, msg, got)
		}
	}
}

func TestValidateEmailAndMobileFormats(t *testing.T) {
	f := validBaseForm()
	f.Email = "not-an-email"
	f.MobileNumber = "12345"

	res := Validate(f)
	if res.Errors["email"] != "Invalid email format" {
		t.Fatalf("expected email format error, got %q", res.Errors["email"])
	}
	if res.Errors["mobileNumber"] != "Mobile number must be 10 digits" {
		t.Fatalf("expected mobile digits error, got %q", res.Errors["mobileNumber"])
	}
}

func TestValidateIsDeterministic(t *testing.T) {
	f := validBaseForm()
	f.Email = "broken"
	f.Identity.Enabled = true

	first := Validate(f)
	second := Validate(f)
	if !reflect.DeepEqual(first.Errors, second.Errors) {
		t.Fatalf("same input produced different error maps: %v vs %v", first.Errors, second.Errors)
	}
}

func TestCollapsedSectionsContributeNoErrors(t *testing.T) {
	f := validBaseForm()
	// All three sections left collapsed and completely empty.
	res := Validate(f)
	for path := range res.Errors {
		if strings.HasPrefix(path, "identityDetails.") ||
			strings.HasPrefix(path, "address.") ||
			strings.HasPrefix(path, "bankDetails.") {
			t.Fatalf("collapsed section produced error at %s", path)
		}
	}
	if !res.Valid() {
		t.Fatalf("expected valid form, got %v", res.Errors)
	}
}

func TestValidateAddressSection(t *testing.T) {
	f := validBaseForm()
	f.Address = AddressSection{Enabled: true, Pincode: "5600"}

	res := Validate(f)
	if res.Errors["address.addressLine1"] != "Address line 1 is required" {
		t.Fatalf("expected line1 error, got %q", res.Errors["address.addressLine1"])
	}
	if res.Errors["address.pincode"] != "Pincode must be 6 digits" {
		t.Fatalf("expected pincode error, got %q", res.Errors["address.pincode"])
	}

	f.Address = AddressSection{Enabled: true, AddressLine1: "12 MG Road", Pincode: "560001"}
	if res := Validate(f); !res.Valid() {
		t.Fatalf("expected valid address, got %v", res.Errors)
	}
}

func TestPincodeShapes(t *testing.T) {
	cases := map[string]bool{
		"560001": true,
		"5600":   false,
		"56000a": false,
	}
	for pin, ok := range cases {
		f := validBaseForm()
		f.Address = AddressSection{Enabled: true, AddressLine1: "12 MG Road", Pincode: pin}
		_, bad := Validate(f).Errors["address.pincode"]
		if bad == ok {
			t.Fatalf("pincode %q: expected valid=%v", pin, ok)
		}
	}
}

func TestPANShapes(t *testing.T) {
	cases := map[string]bool{
		"ABCDE1234F": true,
		"abcde1234f": false,
		"ABCDE12345": false,
		"AB1234567F": false,
	}
	for pan, ok := range cases {
		f := validBaseForm()
		f.Identity = IdentitySection{
			Enabled:       true,
			PANNumber:     pan,
			AadharNumber:  "123412341234",
			PANAttachment: resolvedSlot(),
			AadharFront:   resolvedSlot(),
			AadharBack:    resolvedSlot(),
		}
		_, bad := Validate(f).Errors["identityDetails.panNumber"]
		if bad == ok {
			t.Fatalf("pan %q: expected valid=%v", pan, ok)
		}
	}
}

func TestIFSCShapes(t *testing.T) {
	cases := map[string]bool{
		"HDFC0001234": true,
		"HDFC1001234": false, // missing the literal zero
		"HDFC000123":  false, // too short
	}
	for ifsc, ok := range cases {
		f := validBaseForm()
		f.Bank = BankSection{
			Enabled:       true,
			AccountNumber: "001234567890",
			IFSCCode:      ifsc,
			BranchName:    "Indiranagar",
			Proof:         resolvedSlot(),
		}
		_, bad := Validate(f).Errors["bankDetails.ifscCode"]
		if bad == ok {
			t.Fatalf("ifsc %q: expected valid=%v", ifsc, ok)
		}
	}
}

func TestIdentitySlotsMustBeResolved(t *testing.T) {
	f := validBaseForm()
	f.Identity = IdentitySection{
		Enabled:       true,
		PANNumber:     "ABCDE1234F",
		AadharNumber:  "123412341234",
		PANAttachment: resolvedSlot(),
		AadharFront:   UploadState{Uploading: true, Progress: 40},
		AadharBack:    UploadState{Error: "upload failed"},
	}

	res := Validate(f)
	if _, ok := res.Errors["identityDetails.panAttachment"]; ok {
		t.Fatalf("resolved slot should not error")
	}
	if res.Errors["identityDetails.aadharFront"] == "" {
		t.Fatalf("mid-upload slot must be treated as unsatisfied")
	}
	if res.Errors["identityDetails.aadharBack"] == "" {
		t.Fatalf("errored slot must be treated as unsatisfied")
	}
}

func TestBankProofDeferredWhileUploading(t *testing.T) {
	f := validBaseForm()
	f.Bank = BankSection{
		Enabled:       true,
		AccountNumber: "001234567890",
		IFSCCode:      "HDFC0001234",
		BranchName:    "Indiranagar",
		Proof:         UploadState{Uploading: true, Progress: 10},
	}

	res := Validate(f)
	if msg, ok := res.Errors["bankDetails.proofAttachment"]; ok {
		t.Fatalf("in-flight proof upload should defer, not reject: %q", msg)
	}
	if CanSubmit(f.Slots()) {
		t.Fatalf("submission must be blocked while proof uploads")
	}

	f.Bank.Proof = UploadState{}
	if Validate(f).Errors["bankDetails.proofAttachment"] == "" {
		t.Fatalf("empty settled proof slot must error")
	}
}

func TestValidateAggregatesAllViolations(t *testing.T) {
	f := UserForm{
		Email:        "bad",
		MobileNumber: "1",
		Identity:     IdentitySection{Enabled: true, PANNumber: "X"},
	}
	res := Validate(f)
	if len(res.Errors) < 8 {
		t.Fatalf("expected violations from every failing rule in one pass, got %d: %v", len(res.Errors), res.Errors)
	}
	if res.Errors["identityDetails.panNumber"] == "" {
		t.Fatalf("expected PAN error for %q", "X")
	}
}

func TestCanSubmit(t *testing.T) {
	slots := []UploadState{resolvedSlot(), {}, {Error: "failed"}}
	if !CanSubmit(slots) {
		t.Fatalf("terminal slots must be submittable")
	}
	slots = append(slots, UploadState{Uploading: true})
	if CanSubmit(slots) {
		t.Fatalf("any in-flight slot must block submission")
	}
}
