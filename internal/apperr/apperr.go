// Package apperr defines the failure kinds returned by marketplace operations.
package apperr

import (
	"errors"
	"fmt"
)

// Sentinel errors for classified failures
var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrDuplicateEmail     = errors.New("email already exists")
	ErrNotFound           = errors.New("not found")
	ErrNotOwner           = errors.New("resource belongs to another user")
	ErrNotOpen            = errors.New("job is not open")
	ErrAlreadyApplied     = errors.New("already applied for this job")
	ErrAlreadySaved       = errors.New("job already saved")
	ErrNoFieldsProvided   = errors.New("no update fields provided")
)

// ValidationError names the input field that failed a syntax check.
type ValidationError struct {
	Field string
	Msg   string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Msg)
}

// Invalid is shorthand for building a *ValidationError.
func Invalid(field, msg string) error {
	return &ValidationError{Field: field, Msg: msg}
}

// UnauthorizedError is returned when the session lacks the required role.
// An empty RequiredRole means any authenticated session would do.
type UnauthorizedError struct {
	RequiredRole string
}

func (e *UnauthorizedError) Error() string {
	if e.RequiredRole == "" {
		return "unauthorized: login required"
	}
	return fmt.Sprintf("unauthorized: must be logged in as %s", e.RequiredRole)
}

// TransactionError wraps an unclassified failure that rolled back a transaction.
type TransactionError struct {
	Op  string
	Err error
}

func (e *TransactionError) Error() string {
	return fmt.Sprintf("%s: transaction failed: %v", e.Op, e.Err)
}

func (e *TransactionError) Unwrap() error { return e.Err }

var classified = []error{
	ErrInvalidCredentials,
	ErrDuplicateEmail,
	ErrNotFound,
	ErrNotOwner,
	ErrNotOpen,
	ErrAlreadyApplied,
	ErrAlreadySaved,
	ErrNoFieldsProvided,
}

// IsClassified reports whether err is one of the domain failure kinds rather
// than an infrastructure failure.
func IsClassified(err error) bool {
	if err == nil {
		return false
	}
	for _, target := range classified {
		if errors.Is(err, target) {
			return true
		}
	}
	var ve *ValidationError
	var ue *UnauthorizedError
	var te *TransactionError
	return errors.As(err, &ve) || errors.As(err, &ue) || errors.As(err, &te)
}

// Kind returns a short label for err, used in metrics and CLI output.
func Kind(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, ErrInvalidCredentials):
		return "invalid_credentials"
	case errors.Is(err, ErrDuplicateEmail):
		return "duplicate_email"
	case errors.Is(err, ErrNotFound):
		return "not_found"
	case errors.Is(err, ErrNotOwner):
		return "not_owner"
	case errors.Is(err, ErrNotOpen):
		return "not_open"
	case errors.Is(err, ErrAlreadyApplied):
		return "already_applied"
	case errors.Is(err, ErrAlreadySaved):
		return "already_saved"
	case errors.Is(err, ErrNoFieldsProvided):
		return "no_fields_provided"
	}
	var ve *ValidationError
	if errors.As(err, &ve) {
		return "validation"
	}
	var ue *UnauthorizedError
	if errors.As(err, &ue) {
		return "unauthorized"
	}
	var te *TransactionError
	if errors.As(err, &te) {
		return "transaction_failure"
	}
	return "error"
}
