package client

import (
	"context"
	"errors"
	"net/http"

	"github.com/aadyanvi/wealth-admin/internal/forms"
)

// SubmitOutcome reports what happened to one submission attempt. At most
// one POST is ever issued per call.
type SubmitOutcome struct {
	// Created is true when the server accepted the investor.
	Created bool
	// Errors holds dot-path validation messages, either from the local
	// pass or from the server's own re-validation. Empty on success.
	Errors map[string]string
	// Advisory is a non-blocking message for the operator, e.g. when the
	// submission was held back because uploads are still in flight.
	Advisory string
}

// ErrConnectivity wraps transport failures behind a stable, generic message
// so raw network errors never reach the operator verbatim.
var ErrConnectivity = errors.New("could not reach the server, please try again")

// SubmitUser runs the full submission pipeline for a new investor form:
// the upload gate, local validation, then exactly one POST. Validation
// failures and the in-flight-upload hold both return without touching the
// network.
func (c *Client) SubmitUser(ctx context.Context, form forms.UserForm) (SubmitOutcome, error) {
	if !forms.CanSubmit(form.Slots()) {
		return SubmitOutcome{
			Advisory: "Document uploads are still in progress. Wait for them to finish before submitting.",
		}, nil
	}

	if result := forms.Validate(form); !result.Valid() {
		return SubmitOutcome{Errors: result.Errors}, nil
	}

	payload, err := forms.Payload(form)
	if err != nil {
		return SubmitOutcome{Errors: map[string]string{"dateOfBirth": "Invalid date of birth"}}, nil
	}

	status, serverErrors, err := c.createUser(ctx, payload)
	if err != nil {
		return SubmitOutcome{}, ErrConnectivity
	}

	switch status {
	case http.StatusCreated:
		return SubmitOutcome{Created: true}, nil
	case http.StatusUnprocessableEntity:
		return SubmitOutcome{Errors: serverErrors}, nil
	case http.StatusConflict:
		return SubmitOutcome{Errors: map[string]string{"email": "Email is already registered"}}, nil
	case http.StatusUnauthorized:
		return SubmitOutcome{}, ErrUnauthorized
	default:
		return SubmitOutcome{}, ErrConnectivity
	}
}
