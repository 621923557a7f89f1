package errors

import (
	"errors"
	"net/http"
	"testing"
)

func TestNew(t *testing.T) {
	err := New(CodeValidation, "validation failed", http.StatusUnprocessableEntity)

	if err.Code != CodeValidation {
		t.Errorf("expected code %s, got %s", CodeValidation, err.Code)
	}
	if err.Message != "validation failed" {
		t.Errorf("expected message 'validation failed', got %s", err.Message)
	}
	if err.HTTPStatus != http.StatusUnprocessableEntity {
		t.Errorf("expected status %d, got %d", http.StatusUnprocessableEntity, err.HTTPStatus)
	}
}

func TestWrapUnwrap(t *testing.T) {
	cause := errors.New("connection refused")
	err := Wrap(cause, CodeInternal, "storage failure", http.StatusInternalServerError)

	if !errors.Is(err, cause) {
		t.Error("expected wrapped error to match cause via errors.Is")
	}
	if err.Unwrap() != cause {
		t.Error("expected Unwrap to return the cause")
	}
}

func TestConstructorStatuses(t *testing.T) {
	tests := []struct {
		name   string
		err    *AppError
		code   string
		status int
	}{
		{"not found", NotFoundWithID("Booking", "abc"), CodeNotFound, http.StatusNotFound},
		{"conflict", Conflict("room already booked"), CodeConflict, http.StatusConflict},
		{"forbidden", Forbidden("not the booking owner"), CodeForbidden, http.StatusForbidden},
		{"invalid input", InvalidInput("bad id"), CodeInvalidInput, http.StatusBadRequest},
		{"validation", Validation("bad dates", nil), CodeValidation, http.StatusUnprocessableEntity},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.err.Code != tt.code {
				t.Errorf("expected code %s, got %s", tt.code, tt.err.Code)
			}
			if tt.err.StatusCode() != tt.status {
				t.Errorf("expected status %d, got %d", tt.status, tt.err.StatusCode())
			}
		})
	}
}

func TestAsAppError(t *testing.T) {
	appErr := Conflict("overlap")
	if got := AsAppError(appErr); got != appErr {
		t.Error("expected AsAppError to return the same *AppError")
	}

	plain := errors.New("boom")
	got := AsAppError(plain)
	if got.Code != CodeInternal {
		t.Errorf("expected plain errors to map to %s, got %s", CodeInternal, got.Code)
	}
	if !errors.Is(got, plain) {
		t.Error("expected the original error to be preserved as cause")
	}
}
