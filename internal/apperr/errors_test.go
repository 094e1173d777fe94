package apperr

import (
	"errors"
	"fmt"
	"net/http"
	"testing"
)

func TestStatus(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"not found", NotFound("purchase list not found"), http.StatusNotFound},
		{"forbidden", Forbidden("access denied"), http.StatusForbidden},
		{"conflict", Conflict("duplicate"), http.StatusBadRequest},
		{"invalid quantity", InvalidQuantity("too many"), http.StatusBadRequest},
		{"unprocessable", Unprocessable("bad shape"), http.StatusUnprocessableEntity},
		{"wrapped kind", fmt.Errorf("load item: %w", NotFound("item not found")), http.StatusNotFound},
		{"plain error", errors.New("connection reset"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Status(tt.err); got != tt.want {
				t.Errorf("Status() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestMessage(t *testing.T) {
	if got := Message(Conflict("store %q already exists", "Shop A")); got != `store "Shop A" already exists` {
		t.Errorf("unexpected message %q", got)
	}
	if got := Message(errors.New("pq: relation does not exist")); got != "internal error" {
		t.Errorf("internal errors must not leak, got %q", got)
	}
}

func TestErrorsIs(t *testing.T) {
	err := fmt.Errorf("create allocation: %w", InvalidQuantity("total allocated quantity (6) exceeds item quantity (5)"))
	if !errors.Is(err, ErrInvalidQuantity) {
		t.Fatal("expected ErrInvalidQuantity")
	}
	if errors.Is(err, ErrConflict) {
		t.Fatal("did not expect ErrConflict")
	}
}
