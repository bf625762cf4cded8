package validate

import (
	"errors"
	"testing"

	"github.com/khrees2412/hireboard/internal/apperr"
	"github.com/khrees2412/hireboard/pkg/models"
)

func fieldOf(t *testing.T, err error) string {
	t.Helper()
	var ve *apperr.ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("expected *apperr.ValidationError, got %T (%v)", err, err)
	}
	return ve.Field
}

func TestEmail(t *testing.T) {
	tests := []struct {
		name  string
		email string
		valid bool
	}{
		{name: "valid", email: "bo@example.com", valid: true},
		{name: "empty", email: "", valid: false},
		{name: "missing at", email: "bo.example.com", valid: false},
		{name: "missing dot", email: "bo@example", valid: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Email(tt.email)
			if tt.valid && err != nil {
				t.Errorf("Email(%q) returned %v, expected nil", tt.email, err)
			}
			if !tt.valid {
				if err == nil {
					t.Fatalf("Email(%q) should fail", tt.email)
				}
				if f := fieldOf(t, err); f != "email" {
					t.Errorf("expected field email, got %q", f)
				}
			}
		})
	}
}

func TestPhone(t *testing.T) {
	tests := []struct {
		phone string
		valid bool
	}{
		{"0123456789", true},
		{"", false},
		{"+44123", false},
		{"12 34", false},
		{"١٢٣", false},
	}

	for _, tt := range tests {
		err := Phone(tt.phone)
		if (err == nil) != tt.valid {
			t.Errorf("Phone(%q) error = %v, expected valid=%v", tt.phone, err, tt.valid)
		}
	}
}

func TestPassword(t *testing.T) {
	if err := Password("12345"); err == nil {
		t.Error("5 character password should fail")
	}
	if err := Password("123456"); err != nil {
		t.Errorf("6 character password should pass, got %v", err)
	}
	if f := fieldOf(t, Password("")); f != "password" {
		t.Errorf("expected field password, got %q", f)
	}
}

func TestRequired(t *testing.T) {
	err := Required(Field{"title", "Backend Engineer"}, Field{"description", ""}, Field{"industry", ""})
	if f := fieldOf(t, err); f != "description" {
		t.Errorf("expected first empty field description, got %q", f)
	}
	if err := Required(Field{"title", "x"}); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestExperience(t *testing.T) {
	tests := []struct {
		raw   string
		want  int
		valid bool
	}{
		{"0", 0, true},
		{"7", 7, true},
		{"-1", 0, false},
		{"two", 0, false},
		{"", 0, false},
	}

	for _, tt := range tests {
		got, err := Experience("min_experience", tt.raw)
		if (err == nil) != tt.valid {
			t.Errorf("Experience(%q) error = %v, expected valid=%v", tt.raw, err, tt.valid)
			continue
		}
		if tt.valid && got != tt.want {
			t.Errorf("Experience(%q) = %d, expected %d", tt.raw, got, tt.want)
		}
	}
}

func TestOptionalExperience(t *testing.T) {
	got, err := OptionalExperience("max_experience", "")
	if err != nil || got != nil {
		t.Errorf("empty input should be absent, got %v, %v", got, err)
	}
	got, err = OptionalExperience("max_experience", "3")
	if err != nil || got == nil || *got != 3 {
		t.Errorf("expected 3, got %v, %v", got, err)
	}
	if _, err := OptionalExperience("max_experience", "-2"); err == nil {
		t.Error("negative experience should fail")
	}
}

func TestID(t *testing.T) {
	id, err := ID("job_id", "42")
	if err != nil || id != 42 {
		t.Errorf("ID(42) = %d, %v", id, err)
	}
	if _, err := ID("job_id", "4x"); err == nil {
		t.Error("non numeric id should fail")
	}
	if f := fieldOf(t, func() error { _, err := ID("application_id", ""); return err }()); f != "application_id" {
		t.Errorf("expected field application_id, got %q", f)
	}
}

func TestRole(t *testing.T) {
	tests := []struct {
		raw  string
		want models.Role
	}{
		{"Employer", models.RoleEmployer},
		{"employer", models.RoleEmployer},
		{"JOBSEEKER", models.RoleJobSeeker},
		{"JobSeeker", models.RoleJobSeeker},
	}
	for _, tt := range tests {
		got, err := Role(tt.raw)
		if err != nil || got != tt.want {
			t.Errorf("Role(%q) = %q, %v; expected %q", tt.raw, got, err, tt.want)
		}
	}
	if _, err := Role("Admin"); err == nil {
		t.Error("unknown role should fail")
	}
}

func TestApplicationStatus(t *testing.T) {
	got, err := ApplicationStatus("accepted")
	if err != nil || got != models.ApplicationAccepted {
		t.Errorf("ApplicationStatus(accepted) = %q, %v", got, err)
	}
	if _, err := ApplicationStatus("Pending"); err == nil {
		t.Error("Pending is not a status an employer can set")
	}
}
