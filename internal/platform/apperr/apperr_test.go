package apperr

import (
	"errors"
	"fmt"
	"net/http"
	"testing"
)

func TestKind_Status(t *testing.T) {
	tests := []struct {
		kind Kind
		want int
		code string
	}{
		{KindValidation, http.StatusBadRequest, "validation_error"},
		{KindNotFound, http.StatusNotFound, "not_found"},
		{KindConflict, http.StatusConflict, "conflict"},
		{KindAuth, http.StatusUnauthorized, "unauthorized"},
		{KindInternal, http.StatusInternalServerError, "internal_error"},
	}
	for _, tt := range tests {
		if got := tt.kind.Status(); got != tt.want {
			t.Errorf("%s: expected status %d, got %d", tt.code, tt.want, got)
		}
		if got := tt.kind.String(); got != tt.code {
			t.Errorf("expected code %q, got %q", tt.code, got)
		}
	}
}

func TestKindOf_Wrapped(t *testing.T) {
	err := fmt.Errorf("create clinic: %w", NotFound("Doctor not found"))
	if KindOf(err) != KindNotFound {
		t.Errorf("expected KindNotFound, got %v", KindOf(err))
	}
	if KindOf(errors.New("boom")) != KindInternal {
		t.Error("expected plain errors to be internal")
	}
}

func TestErrInvalidCredentials_Is(t *testing.T) {
	err := fmt.Errorf("login: %w", Auth("Invalid credentials"))
	if !errors.Is(err, ErrInvalidCredentials) {
		t.Error("expected errors.Is to match ErrInvalidCredentials")
	}
	if errors.Is(Auth("invalid token"), ErrInvalidCredentials) {
		t.Error("different auth messages must not match")
	}
}

func TestInternal_Unwrap(t *testing.T) {
	cause := errors.New("connection refused")
	err := Internal("Error creating clinic", cause)
	if !errors.Is(err, cause) {
		t.Error("expected Internal to wrap its cause")
	}
	if err.Error() != "Error creating clinic: connection refused" {
		t.Errorf("unexpected message: %s", err.Error())
	}
}

func TestValidation_Details(t *testing.T) {
	err := Validation("name is required; doctor_id is required", "name is required", "doctor_id is required")
	e, ok := As(err)
	if !ok {
		t.Fatal("expected As to succeed")
	}
	if len(e.Details) != 2 {
		t.Errorf("expected 2 details, got %d", len(e.Details))
	}
}
