package forms

// UploadState tracks the lifecycle of a single document slot. A slot starts
// empty, moves to Uploading when a file is selected, and settles with either
// URL populated (success) or Error populated (failure, retried by
// reselecting the file).
type UploadState struct {
	FileName  string
	URL       string
	Uploading bool
	Error     string
	Progress  int // 0..100
}

// Resolved reports whether the slot holds a usable document URL.
func (u UploadState) Resolved() bool {
	return !u.Uploading && u.Error == "" && u.URL != ""
}

// CanSubmit reports whether a form with the given document slots may be
// submitted. It is a separate gate from Validate: a form with no field errors
// is still not submittable while any upload is in flight.
func CanSubmit(slots []UploadState) bool {
	for _, s := range slots {
		if s.Uploading {
			return false
		}
	}
	return true
}
