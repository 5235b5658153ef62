package apperr

import (
	"errors"
	"fmt"
	"net/http"
	"testing"
)

func TestHTTPStatus(t *testing.T) {
	tests := []struct {
		code Code
		want int
	}{
		{CodeValidation, http.StatusBadRequest},
		{CodeConflict, http.StatusConflict},
		{CodeUnauthorized, http.StatusUnauthorized},
		{CodeNotFound, http.StatusNotFound},
		{Code("UNKNOWN"), http.StatusInternalServerError},
	}
	for _, tc := range tests {
		if got := New(tc.code, "msg").HTTPStatus(); got != tc.want {
			t.Errorf("HTTPStatus(%s) = %d, want %d", tc.code, got, tc.want)
		}
	}
}

func TestIsMatchesByCode(t *testing.T) {
	err := Wrap(CodeNotFound, "project not found", errors.New("sql: no rows"))

	if !errors.Is(err, New(CodeNotFound, "different message")) {
		t.Fatal("expected errors with the same code to match")
	}
	if errors.Is(err, New(CodeConflict, "project not found")) {
		t.Fatal("errors with different codes must not match")
	}

	wrapped := fmt.Errorf("handling request: %w", err)
	if !errors.Is(wrapped, New(CodeNotFound, "")) {
		t.Fatal("expected match through a wrapped chain")
	}
}

func TestUnwrapKeepsCause(t *testing.T) {
	cause := errors.New("disk on fire")
	err := Wrap(CodeValidation, "bad input", cause)
	if !errors.Is(err, cause) {
		t.Fatal("expected the cause to stay reachable")
	}
	if err.Error() != "bad input" {
		t.Fatalf("client message leaked the cause: %q", err.Error())
	}
}
