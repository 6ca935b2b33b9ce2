// Package shared contains common domain types, errors, and value objects
// that are used across all domain packages. This package has zero external dependencies.
package shared

import (
	"errors"
	"fmt"
)

// Base domain errors that can be used for error checking with errors.Is().
var (
	// Entity errors
	ErrNotFound      = errors.New("entity not found")
	ErrAlreadyExists = errors.New("entity already exists")
	ErrInvalidEntity = errors.New("invalid entity")

	// Validation errors
	ErrValidation    = errors.New("validation error")
	ErrInvalidID     = errors.New("invalid ID")
	ErrInvalidInput  = errors.New("invalid input")
	ErrEmptyValue    = errors.New("value cannot be empty")
	ErrInvalidFormat = errors.New("invalid format")

	// State errors
	ErrInvalidState    = errors.New("invalid state")
	ErrStateTransition = errors.New("invalid state transition")
	ErrExpired         = errors.New("expired")

	// Authorization errors
	ErrUnauthorized  = errors.New("unauthorized")
	ErrForbidden     = errors.New("forbidden")
	ErrBadCredential = errors.New("bad credential")

	// External service errors
	ErrTransport          = errors.New("transport error")
	ErrServiceUnavailable = errors.New("service unavailable")
)

// DomainError represents a domain-specific error with context.
type DomainError struct {
	Domain  string // e.g., "account", "submission", "session"
	Op      string // Operation that failed, e.g., "Create", "Review"
	Kind    error  // Base error type for errors.Is() checking
	Message string // Human-readable message
	Err     error  // Underlying error (optional)
}

// Error implements the error interface.
func (e *DomainError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s.%s: %s: %v", e.Domain, e.Op, e.Message, e.Err)
	}
	return fmt.Sprintf("%s.%s: %s", e.Domain, e.Op, e.Message)
}

// Unwrap returns the underlying error for errors.Unwrap().
func (e *DomainError) Unwrap() error {
	if e.Err != nil {
		return e.Err
	}
	return e.Kind
}

// Is implements errors.Is() matching.
func (e *DomainError) Is(target error) bool {
	if e.Kind != nil && errors.Is(e.Kind, target) {
		return true
	}
	if e.Err != nil && errors.Is(e.Err, target) {
		return true
	}
	return false
}

// NewDomainError creates a new domain error.
func NewDomainError(domain, op string, kind error, message string) *DomainError {
	return &DomainError{
		Domain:  domain,
		Op:      op,
		Kind:    kind,
		Message: message,
	}
}

// WrapError wraps an existing error with domain context.
func WrapError(domain, op string, kind error, message string, err error) *DomainError {
	return &DomainError{
		Domain:  domain,
		Op:      op,
		Kind:    kind,
		Message: message,
		Err:     err,
	}
}

// Account domain errors
var (
	ErrAccountNotFound = NewDomainError("account", "Find", ErrNotFound, "account not found")
	ErrDuplicateEmail  = NewDomainError("account", "Create", ErrAlreadyExists, "email already registered")
	ErrInvalidEmail    = NewDomainError("account", "Validate", ErrInvalidFormat, "invalid email address")
	ErrInvalidRole     = NewDomainError("account", "Validate", ErrInvalidInput, "invalid account role")
	ErrWrongPassword   = NewDomainError("account", "Verify", ErrBadCredential, "password does not match")
)

// Submission domain errors
var (
	ErrSubmissionNotFound = NewDomainError("submission", "Find", ErrNotFound, "submission not found")
	ErrEmptySkillName     = NewDomainError("submission", "Validate", ErrEmptyValue, "skill name cannot be empty")
	ErrInvalidStatus      = NewDomainError("submission", "Validate", ErrInvalidInput, "invalid submission status")
	ErrNotReviewable      = NewDomainError("submission", "Review", ErrInvalidState, "status must be Validated or Rejected")
)

// Session domain errors
var (
	ErrSessionNotFound = NewDomainError("session", "Find", ErrNotFound, "session not found")
	ErrSessionExpired  = NewDomainError("session", "Check", ErrExpired, "session expired")
	ErrNotStudent      = NewDomainError("session", "Authorize", ErrUnauthorized, "requires student role")
	ErrNotFaculty      = NewDomainError("session", "Authorize", ErrUnauthorized, "requires faculty role")
)

// Storage errors
var (
	ErrEvidenceNotFound = NewDomainError("storage", "Find", ErrNotFound, "evidence file not found")
	ErrEvidenceRejected = NewDomainError("storage", "Validate", ErrInvalidFormat, "evidence file type not allowed")
	ErrStoreUnavailable = NewDomainError("store", "Request", ErrTransport, "record store is unavailable")
)

// IsNotFound checks if the error is a "not found" error.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsAlreadyExists checks if the error is an "already exists" error.
func IsAlreadyExists(err error) bool {
	return errors.Is(err, ErrAlreadyExists)
}

// IsValidation checks if the error is a validation error.
func IsValidation(err error) bool {
	return errors.Is(err, ErrValidation) ||
		errors.Is(err, ErrInvalidID) ||
		errors.Is(err, ErrInvalidInput) ||
		errors.Is(err, ErrEmptyValue) ||
		errors.Is(err, ErrInvalidFormat)
}

// IsUnauthorized checks if the error is an authorization failure.
func IsUnauthorized(err error) bool {
	return errors.Is(err, ErrUnauthorized) ||
		errors.Is(err, ErrForbidden) ||
		errors.Is(err, ErrBadCredential)
}

// IsTransport checks if the error came from the backing store's transport.
func IsTransport(err error) bool {
	return errors.Is(err, ErrTransport) ||
		errors.Is(err, ErrServiceUnavailable)
}
