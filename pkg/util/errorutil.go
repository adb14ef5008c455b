package util

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/jackc/pgx/v5"
)

// Error codes used across the service layer. Each maps to exactly one
// HTTP status; handlers never invent their own mapping.
const (
	CodeValidation    = "VALIDATION_FAILED"
	CodeNotFound      = "NOT_FOUND"
	CodeUnauthorized  = "UNAUTHORIZED"
	CodeInvalidState  = "INVALID_STATE"
	CodeStorage       = "STORAGE_FAILURE"
	CodeMailTransport = "MAIL_TRANSPORT_FAILURE"
	CodeEmailLog      = "EMAIL_LOG_FAILED"
	CodeInternal      = "INTERNAL_ERROR"
)

// DomainError standardizes application errors.
type DomainError struct {
	Code       string
	Message    string
	HTTPStatus int
	Details    map[string]any
	Err        error
}

func (e *DomainError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *DomainError) Unwrap() error {
	return e.Err
}

// NewDomainError constructs a DomainError.
func NewDomainError(code, message string, status int, details map[string]any) *DomainError {
	return &DomainError{Code: code, Message: message, HTTPStatus: status, Details: details}
}

// NewValidationError reports caller-supplied input violating a business rule.
func NewValidationError(message string, details map[string]any) error {
	return NewDomainError(CodeValidation, message, http.StatusBadRequest, details)
}

// NewNotFound reports a missing aggregate.
func NewNotFound(resource string, details map[string]any) error {
	return NewDomainError(CodeNotFound, fmt.Sprintf("%s not found", resource), http.StatusNotFound, details)
}

// NewUnauthorized reports a failed credential or token check.
func NewUnauthorized(message string) error {
	return NewDomainError(CodeUnauthorized, message, http.StatusUnauthorized, nil)
}

// NewStateError reports a configuration or data state that prevents the
// operation, e.g. a contact without an email address.
func NewStateError(message string) error {
	return NewDomainError(CodeInvalidState, message, http.StatusInternalServerError, nil)
}

// NewStorageError wraps a storage-level failure with its root cause.
func NewStorageError(op string, err error) error {
	return &DomainError{
		Code:       CodeStorage,
		Message:    op,
		HTTPStatus: http.StatusInternalServerError,
		Err:        err,
	}
}

// NewMailTransportError wraps an outbound mail dispatch failure. Nothing
// has been logged when this is returned; the send may be retried.
func NewMailTransportError(err error) error {
	return &DomainError{
		Code:       CodeMailTransport,
		Message:    "unable to send email",
		HTTPStatus: http.StatusInternalServerError,
		Err:        err,
	}
}

// NewEmailLogError reports the partial-consequence failure where the
// email went out but the log write failed. Distinct from a transport
// failure so operators can reconcile without re-sending.
func NewEmailLogError(err error) error {
	return &DomainError{
		Code:       CodeEmailLog,
		Message:    "email sent but could not be logged",
		HTTPStatus: http.StatusInternalServerError,
		Err:        err,
	}
}

// NewInternalError wraps unexpected failures such as recovered panics.
func NewInternalError(err error) error {
	return &DomainError{
		Code:       CodeInternal,
		Message:    "internal server error",
		HTTPStatus: http.StatusInternalServerError,
		Err:        err,
	}
}

// ToDomainError converts generic errors to DomainError.
func ToDomainError(err error) *DomainError {
	if err == nil {
		return nil
	}
	var domainErr *DomainError
	if errors.As(err, &domainErr) {
		return domainErr
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return &DomainError{
			Code:       CodeNotFound,
			Message:    "resource not found",
			HTTPStatus: http.StatusNotFound,
		}
	}
	return &DomainError{
		Code:       CodeInternal,
		Message:    "internal server error",
		HTTPStatus: http.StatusInternalServerError,
		Err:        err,
	}
}
