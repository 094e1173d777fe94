package pricing

import (
	"context"
	"errors"
	"testing"

	"github.com/jmoiron/sqlx"

	"sharedeck/internal/apperr"
	"sharedeck/internal/db/dbtest"
	"sharedeck/internal/purchase"
	"sharedeck/internal/store"
)

func exec(t *testing.T, conn *sqlx.DB, query string, args ...any) {
	t.Helper()
	if _, err := conn.Exec(conn.Rebind(query), args...); err != nil {
		t.Fatalf("exec: %v", err)
	}
}

// seedGrid creates one list with item i1 (qty 3) and stores s1, s2 for
// alice, plus store s3 for bob.
func seedGrid(t *testing.T) (conn *sqlx.DB, alice, bob string) {
	t.Helper()
	conn = dbtest.New(t)
	alice = dbtest.SeedUser(t, conn, "usopp@example.com")
	bob = dbtest.SeedUser(t, conn, "chopper@example.com")
	cardID := dbtest.SeedCard(t, conn, "OP01-004", "Usopp")

	exec(t, conn, `INSERT INTO purchase_lists (id, user_id, status, created_at, updated_at) VALUES ('l1', ?, 'planning', 1, 1)`, alice)
	exec(t, conn, `INSERT INTO purchase_items (id, list_id, card_id, quantity, created_at, updated_at) VALUES ('i1', 'l1', ?, 3, 1, 1)`, cardID)
	exec(t, conn, `INSERT INTO stores (id, user_id, name, color, created_at, updated_at) VALUES ('s1', ?, 'X', '#000000', 1, 1)`, alice)
	exec(t, conn, `INSERT INTO stores (id, user_id, name, color, created_at, updated_at) VALUES ('s2', ?, 'Y', '#000000', 2, 2)`, alice)
	exec(t, conn, `INSERT INTO stores (id, user_id, name, color, created_at, updated_at) VALUES ('s3', ?, 'Z', '#000000', 3, 3)`, bob)
	return conn, alice, bob
}

func newTestService(conn *sqlx.DB) *Service {
	return NewService(NewPostgresRepository(conn), purchase.NewPostgresRepository(conn), store.NewPostgresRepository(conn))
}

func intPtr(i int) *int { return &i }

func TestSetPriceIsIdempotent(t *testing.T) {
	conn, alice, _ := seedGrid(t)
	svc := newTestService(conn)
	ctx := context.Background()

	first, err := svc.Set(ctx, alice, "i1", "s1", intPtr(500))
	if err != nil {
		t.Fatalf("set: %v", err)
	}
	second, err := svc.Set(ctx, alice, "i1", "s1", intPtr(500))
	if err != nil {
		t.Fatalf("set again: %v", err)
	}
	if first.ID != second.ID {
		t.Errorf("upsert created a second entry: %s != %s", first.ID, second.ID)
	}

	entries, err := svc.List(ctx, alice, "i1")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(entries) != 1 || entries[0].Price == nil || *entries[0].Price != 500 {
		t.Fatalf("unexpected entries %+v", entries)
	}

	out, err := svc.Set(ctx, alice, "i1", "s1", nil)
	if err != nil {
		t.Fatalf("set null: %v", err)
	}
	if out.Price != nil || out.ID != first.ID {
		t.Errorf("null price must update the same entry: %+v", out)
	}
}

func TestSetPriceValidation(t *testing.T) {
	conn, alice, bob := seedGrid(t)
	svc := newTestService(conn)

	tests := []struct {
		name    string
		userID  string
		itemID  string
		storeID string
		price   *int
		want    error
	}{
		{"zero price", alice, "i1", "s1", intPtr(0), apperr.ErrUnprocessable},
		{"too expensive", alice, "i1", "s1", intPtr(10000), apperr.ErrUnprocessable},
		{"foreign store", alice, "i1", "s3", intPtr(100), apperr.ErrNotFound},
		{"foreign item", bob, "i1", "s3", intPtr(100), apperr.ErrNotFound},
		{"missing item", alice, "nope", "s1", intPtr(100), apperr.ErrNotFound},
		{"missing store", alice, "i1", "nope", intPtr(100), apperr.ErrNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Set(context.Background(), tt.userID, tt.itemID, tt.storeID, tt.price)
			if !errors.Is(err, tt.want) {
				t.Errorf("expected %v, got %v", tt.want, err)
			}
		})
	}
}

func TestDeletePrice(t *testing.T) {
	conn, alice, _ := seedGrid(t)
	svc := newTestService(conn)
	ctx := context.Background()

	if _, err := svc.Set(ctx, alice, "i1", "s2", intPtr(120)); err != nil {
		t.Fatalf("set: %v", err)
	}
	if err := svc.Delete(ctx, alice, "i1", "s2"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if err := svc.Delete(ctx, alice, "i1", "s2"); !errors.Is(err, apperr.ErrNotFound) {
		t.Errorf("second delete must be not found, got %v", err)
	}
}
