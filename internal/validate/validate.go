// Package validate holds the field syntax checks applied before any storage access.
// Every function is pure and reports failures as *apperr.ValidationError.
package validate

import (
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/khrees2412/hireboard/internal/apperr"
	"github.com/khrees2412/hireboard/pkg/models"
	"golang.org/x/text/cases"
)

// MinPasswordLength is the shortest accepted password
const MinPasswordLength = 6

// Field pairs an input name with its raw value
type Field struct {
	Name  string
	Value string
}

// Required fails on the first field whose value is empty
func Required(fields ...Field) error {
	for _, f := range fields {
		if f.Value == "" {
			return apperr.Invalid(f.Name, "is required")
		}
	}
	return nil
}

// Email checks that an address is non-empty and contains '@' and '.'
func Email(value string) error {
	if value == "" || !strings.Contains(value, "@") || !strings.Contains(value, ".") {
		return apperr.Invalid("email", "must contain '@' and '.'")
	}
	return nil
}

// Phone checks that a phone number is non-empty and digits only
func Phone(value string) error {
	if value == "" {
		return apperr.Invalid("phone", "is required")
	}
	for _, r := range value {
		if r < '0' || r > '9' {
			return apperr.Invalid("phone", "must be digits only")
		}
	}
	return nil
}

// Password checks the minimum length
func Password(value string) error {
	if utf8.RuneCountInString(value) < MinPasswordLength {
		return apperr.Invalid("password", "must be at least 6 characters")
	}
	return nil
}

// ID parses a required integer identifier such as a job or application id
func ID(field, raw string) (int64, error) {
	if raw == "" {
		return 0, apperr.Invalid(field, "is required")
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, apperr.Invalid(field, "must be a valid number")
	}
	return id, nil
}

// Experience parses a required, non-negative number of years
func Experience(field, raw string) (int, error) {
	if raw == "" {
		return 0, apperr.Invalid(field, "is required")
	}
	years, err := strconv.Atoi(raw)
	if err != nil {
		return 0, apperr.Invalid(field, "must be a valid number")
	}
	if years < 0 {
		return 0, apperr.Invalid(field, "cannot be negative")
	}
	return years, nil
}

// OptionalExperience is Experience for filters: an empty value means "not supplied".
func OptionalExperience(field, raw string) (*int, error) {
	if raw == "" {
		return nil, nil
	}
	years, err := Experience(field, raw)
	if err != nil {
		return nil, err
	}
	return &years, nil
}

// equalFold compares under Unicode case folding. A Caser is stateful, so
// each call gets its own.
func equalFold(a, b string) bool {
	fold := cases.Fold()
	return fold.String(a) == fold.String(b)
}

// Role matches raw input against the two roles, ignoring case
func Role(raw string) (models.Role, error) {
	switch {
	case equalFold(raw, string(models.RoleEmployer)):
		return models.RoleEmployer, nil
	case equalFold(raw, string(models.RoleJobSeeker)):
		return models.RoleJobSeeker, nil
	}
	return "", apperr.Invalid("role", "must be 'Employer' or 'JobSeeker'")
}

// ApplicationStatus accepts only the two review outcomes an employer may set
func ApplicationStatus(raw string) (models.ApplicationStatus, error) {
	switch {
	case equalFold(raw, string(models.ApplicationAccepted)):
		return models.ApplicationAccepted, nil
	case equalFold(raw, string(models.ApplicationRejected)):
		return models.ApplicationRejected, nil
	}
	return "", apperr.Invalid("status", "must be 'Accepted' or 'Rejected'")
}
