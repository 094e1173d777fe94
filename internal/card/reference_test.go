package card

import (
	"errors"
	"testing"

	"sharedeck/internal/apperr"
)

func strPtr(s string) *string { return &s }

func TestParseReference(t *testing.T) {
	tests := []struct {
		name     string
		cardID   *string
		customID *string
		wantKind Kind
		wantErr  bool
	}{
		{"catalog", strPtr("c1"), nil, KindCatalog, false},
		{"custom", nil, strPtr("x1"), KindCustom, false},
		{"empty custom string ignored", strPtr("c1"), strPtr(""), KindCatalog, false},
		{"both set", strPtr("c1"), strPtr("x1"), 0, true},
		{"neither set", nil, nil, 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ref, err := ParseReference(tt.cardID, tt.customID)
			if tt.wantErr {
				if !errors.Is(err, apperr.ErrUnprocessable) {
					t.Fatalf("expected unprocessable, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if ref.Kind() != tt.wantKind {
				t.Errorf("kind = %v, want %v", ref.Kind(), tt.wantKind)
			}
		})
	}
}

func TestReferenceColumns(t *testing.T) {
	cardID, customID := Catalog("c1").Columns()
	if cardID == nil || *cardID != "c1" || customID != nil {
		t.Errorf("catalog columns wrong: %v %v", cardID, customID)
	}

	cardID, customID = Custom("x1").Columns()
	if cardID != nil || customID == nil || *customID != "x1" {
		t.Errorf("custom columns wrong: %v %v", cardID, customID)
	}

	if !(Reference{}).IsZero() {
		t.Error("zero reference must report IsZero")
	}
}
