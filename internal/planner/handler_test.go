package planner

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"

	"sharedeck/internal/db/dbtest"
	"sharedeck/internal/httpx"
	"sharedeck/internal/pricing"
)

func exec(t *testing.T, conn *sqlx.DB, query string, args ...any) {
	t.Helper()
	if _, err := conn.Exec(conn.Rebind(query), args...); err != nil {
		t.Fatalf("exec: %v", err)
	}
}

func setupTestRouter(t *testing.T, userID string, conn *sqlx.DB) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	h := NewHandler(NewService(pricing.NewLoader(conn)))
	r := gin.New()
	r.Use(func(c *gin.Context) {
		c.Set(httpx.KeyUserID, userID)
		c.Next()
	})
	r.GET("/purchase-lists/:id/optimal-plan", h.OptimalPlan)
	return r
}

func get(r *gin.Engine, path string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
	return w
}

func TestOptimalPlanEndpoint(t *testing.T) {
	conn := dbtest.New(t)
	alice := dbtest.SeedUser(t, conn, "jinbe@example.com")
	bob := dbtest.SeedUser(t, conn, "brook@example.com")
	cardID := dbtest.SeedCard(t, conn, "OP02-001", "Edward.Newgate")

	exec(t, conn, `INSERT INTO purchase_lists (id, user_id, status, created_at, updated_at) VALUES ('l1', ?, 'planning', 1, 1)`, alice)
	exec(t, conn, `INSERT INTO purchase_items (id, list_id, card_id, quantity, created_at, updated_at) VALUES ('i1', 'l1', ?, 3, 1, 1)`, cardID)
	exec(t, conn, `INSERT INTO purchase_items (id, list_id, card_id, quantity, created_at, updated_at) VALUES ('i2', 'l1', ?, 1, 2, 2)`, cardID)
	exec(t, conn, `INSERT INTO purchase_items (id, list_id, card_id, quantity, created_at, updated_at) VALUES ('i3', 'l1', ?, 1, 3, 3)`, cardID)
	exec(t, conn, `INSERT INTO stores (id, user_id, name, color, created_at, updated_at) VALUES ('sx', ?, 'X', '#000000', 1, 1)`, alice)
	exec(t, conn, `INSERT INTO stores (id, user_id, name, color, created_at, updated_at) VALUES ('sy', ?, 'Y', '#000000', 2, 2)`, alice)
	exec(t, conn, `INSERT INTO stores (id, user_id, name, color, created_at, updated_at) VALUES ('sz', ?, 'Z', '#000000', 3, 3)`, alice)

	// i1: tie between X and Y, Z out of stock.
	exec(t, conn, `INSERT INTO price_entries (id, item_id, store_id, price, created_at, updated_at) VALUES ('p1', 'i1', 'sy', 500, 1, 1)`)
	exec(t, conn, `INSERT INTO price_entries (id, item_id, store_id, price, created_at, updated_at) VALUES ('p2', 'i1', 'sx', 500, 2, 2)`)
	exec(t, conn, `INSERT INTO price_entries (id, item_id, store_id, price, created_at, updated_at) VALUES ('p3', 'i1', 'sz', NULL, 3, 3)`)
	// i2: explicit null everywhere. i3: no entries at all.
	exec(t, conn, `INSERT INTO price_entries (id, item_id, store_id, price, created_at, updated_at) VALUES ('p4', 'i2', 'sx', NULL, 4, 4)`)
	exec(t, conn, `INSERT INTO price_entries (id, item_id, store_id, price, created_at, updated_at) VALUES ('p5', 'i2', 'sy', NULL, 5, 5)`)

	w := get(setupTestRouter(t, alice, conn), "/purchase-lists/l1/optimal-plan")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", w.Code, w.Body.String())
	}

	var plan Plan
	if err := json.Unmarshal(w.Body.Bytes(), &plan); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if plan.TotalPrice != 1500 || plan.StoreSummary["X"] != 1500 {
		t.Errorf("unexpected totals %d %v", plan.TotalPrice, plan.StoreSummary)
	}
	if len(plan.Items) != 3 {
		t.Fatalf("expected 3 items, got %d", len(plan.Items))
	}
	if plan.Items[0].SelectedStoreID == nil || *plan.Items[0].SelectedStoreID != "sx" {
		t.Errorf("tie must go to the first created store, got %v", plan.Items[0].SelectedStoreID)
	}
	if plan.Items[1] != (ItemPlan{ItemID: "i2", CardName: "Edward.Newgate", Quantity: 1, Status: StatusOutOfStock}) {
		t.Errorf("null-priced item: %+v", plan.Items[1])
	}
	if plan.Items[2] != (ItemPlan{ItemID: "i3", CardName: "Edward.Newgate", Quantity: 1, Status: StatusOutOfStock}) {
		t.Errorf("unpriced item: %+v", plan.Items[2])
	}

	if w := get(setupTestRouter(t, bob, conn), "/purchase-lists/l1/optimal-plan"); w.Code != http.StatusNotFound {
		t.Errorf("foreign list status = %d, want 404", w.Code)
	}
}
