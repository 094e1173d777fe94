package store

import (
	"context"
	"errors"
	"testing"

	"sharedeck/internal/apperr"
	"sharedeck/internal/db/dbtest"
)

type recordingBackfill struct {
	stores []string
	err    error
}

func (r *recordingBackfill) OnStoreCreated(ctx context.Context, userID, storeID string) error {
	r.stores = append(r.stores, storeID)
	return r.err
}

func (r *recordingBackfill) OnItemCreated(ctx context.Context, userID, itemID string) error {
	return nil
}

func newTestService(t *testing.T) (*Service, *recordingBackfill, string, string) {
	t.Helper()
	conn := dbtest.New(t)
	alice := dbtest.SeedUser(t, conn, "alice@example.com")
	bob := dbtest.SeedUser(t, conn, "bob@example.com")
	backfill := &recordingBackfill{}
	return NewService(NewPostgresRepository(conn), backfill), backfill, alice, bob
}

func TestCreateStore(t *testing.T) {
	svc, backfill, alice, _ := newTestService(t)
	ctx := context.Background()

	st, err := svc.Create(ctx, alice, "  Card Shop  ", "#ff5733")
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if st.Name != "Card Shop" || st.Color != "#FF5733" {
		t.Errorf("input not normalized: %+v", st)
	}
	if len(backfill.stores) != 1 || backfill.stores[0] != st.ID {
		t.Errorf("backfill not requested for new store: %v", backfill.stores)
	}
}

func TestCreateStoreSurvivesBackfillFailure(t *testing.T) {
	svc, backfill, alice, _ := newTestService(t)
	backfill.err = errors.New("backfill down")

	if _, err := svc.Create(context.Background(), alice, "Shop", "#000000"); err != nil {
		t.Fatalf("backfill failure must not fail create: %v", err)
	}
}

func TestCreateStoreValidation(t *testing.T) {
	svc, _, alice, bob := newTestService(t)
	ctx := context.Background()

	if _, err := svc.Create(ctx, alice, "Shop", "#123456"); err != nil {
		t.Fatalf("seed store: %v", err)
	}

	tests := []struct {
		name      string
		userID    string
		storeName string
		color     string
		want      error
	}{
		{"duplicate name", alice, "Shop", "#FFFFFF", apperr.ErrConflict},
		{"blank name", alice, "   ", "#FFFFFF", apperr.ErrUnprocessable},
		{"long name", alice, "123456789012345678901234567890123456789012345678901", "#FFFFFF", apperr.ErrUnprocessable},
		{"missing hash", alice, "Other", "FFFFFF1", apperr.ErrUnprocessable},
		{"short color", alice, "Other", "#FFF", apperr.ErrUnprocessable},
		{"non hex color", alice, "Other", "#GGGGGG", apperr.ErrUnprocessable},
		{"same name other user", bob, "Shop", "#FFFFFF", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Create(ctx, tt.userID, tt.storeName, tt.color)
			if tt.want == nil {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			if !errors.Is(err, tt.want) {
				t.Errorf("expected %v, got %v", tt.want, err)
			}
		})
	}
}

func TestListStoresInCreationOrder(t *testing.T) {
	svc, _, alice, _ := newTestService(t)
	ctx := context.Background()

	for _, name := range []string{"Zeta", "Alpha", "Mid"} {
		if _, err := svc.Create(ctx, alice, name, "#FFFFFF"); err != nil {
			t.Fatalf("create %s: %v", name, err)
		}
	}

	stores, err := svc.List(ctx, alice)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	got := []string{stores[0].Name, stores[1].Name, stores[2].Name}
	want := []string{"Zeta", "Alpha", "Mid"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("order = %v, want %v", got, want)
		}
	}
}

func TestUpdateAndDeleteOwnership(t *testing.T) {
	svc, _, alice, bob := newTestService(t)
	ctx := context.Background()

	shop, _ := svc.Create(ctx, alice, "Shop", "#111111")
	if _, err := svc.Create(ctx, alice, "Other", "#222222"); err != nil {
		t.Fatalf("create: %v", err)
	}

	newName := "Other"
	if _, err := svc.Update(ctx, alice, shop.ID, &newName, nil); !errors.Is(err, apperr.ErrConflict) {
		t.Errorf("rename onto existing name must conflict, got %v", err)
	}

	renamed := "Renamed"
	color := "#abcdef"
	updated, err := svc.Update(ctx, alice, shop.ID, &renamed, &color)
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.Name != "Renamed" || updated.Color != "#ABCDEF" {
		t.Errorf("unexpected update result %+v", updated)
	}

	if _, err := svc.Update(ctx, bob, shop.ID, &renamed, nil); !errors.Is(err, apperr.ErrNotFound) {
		t.Errorf("foreign update must be not found, got %v", err)
	}
	if err := svc.Delete(ctx, bob, shop.ID); !errors.Is(err, apperr.ErrNotFound) {
		t.Errorf("foreign delete must be not found, got %v", err)
	}
	if err := svc.Delete(ctx, alice, shop.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if err := svc.Delete(ctx, alice, shop.ID); !errors.Is(err, apperr.ErrNotFound) {
		t.Errorf("second delete must be not found, got %v", err)
	}
}
