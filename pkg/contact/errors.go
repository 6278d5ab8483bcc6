package contact

import (
	"errors"
	"fmt"
	"strings"

	"github.com/shreebharatraj/contact-mailer/pkg/mail"
)

// ErrForbidden is returned by SendTestEmail in production.
var ErrForbidden = errors.New("test endpoint not available in production")

// ValidationError means the submission lacks a required field or the body
// could not be decoded. It is raised before any mail is rendered or sent.
type ValidationError struct {
	Missing []string
	Cause   error
}

func (e *ValidationError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("invalid submission: %v", e.Cause)
	}
	return "missing required fields: " + strings.Join(e.Missing, ", ")
}

func (e *ValidationError) Unwrap() error {
	return e.Cause
}

// DispatchError wraps a failure to render or deliver a message whose
// delivery the caller depends on.
type DispatchError struct {
	Kind      mail.Kind
	Recipient string
	Err       error
}

func (e *DispatchError) Error() string {
	return fmt.Sprintf("dispatching %s to %q: %v", e.Kind, e.Recipient, e.Err)
}

func (e *DispatchError) Unwrap() error {
	return e.Err
}

// AcknowledgmentError wraps a failed acknowledgment. It is only ever logged.
type AcknowledgmentError struct {
	Recipient string
	Err       error
}

func (e *AcknowledgmentError) Error() string {
	return fmt.Sprintf("acknowledgment to %q failed: %v", e.Recipient, e.Err)
}

func (e *AcknowledgmentError) Unwrap() error {
	return e.Err
}
