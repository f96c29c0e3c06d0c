package utils

import "testing"

type filterForm struct {
	Status string `json:"status" validate:"omitempty,oneof=all upcoming past"`
	Email  string `json:"email" validate:"required,email"`
}

func TestValidateStruct_UsesJSONNames(t *testing.T) {
	errs := ValidateStruct(filterForm{Status: "someday", Email: "not-an-email"})
	if len(errs) != 2 {
		t.Fatalf("expected 2 errors, got %v", errs)
	}
	if errs["status"] != "Must be one of: all, upcoming, past" {
		t.Fatalf("unexpected status message %q", errs["status"])
	}
	if errs["email"] != "Invalid email format" {
		t.Fatalf("unexpected email message %q", errs["email"])
	}

	got := FormatValidationErrors(errs)
	want := "email: Invalid email format; status: Must be one of: all, upcoming, past"
	if got != want {
		t.Fatalf("expected %q, got %q", want, got)
	}
}

func TestValidateStruct_Valid(t *testing.T) {
	if errs := ValidateStruct(filterForm{Email: "vader@empire.gov"}); errs != nil {
		t.Fatalf("expected no errors, got %v", errs)
	}
}
