package admin

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"

	"sharedeck/internal/card"
	"sharedeck/internal/cardsync"
	"sharedeck/internal/db/dbtest"
)

type stubSync struct {
	res *cardsync.Result
	err error
}

func (s stubSync) Run(ctx context.Context) (*cardsync.Result, error) { return s.res, s.err }

type countingCatalog struct{ n int }

func (c *countingCatalog) InvalidateCatalog(ctx context.Context) { c.n++ }

func setCardPath(t *testing.T, conn *sqlx.DB, id, path string) {
	t.Helper()
	if _, err := conn.Exec(conn.Rebind(`UPDATE cards SET image_path = ? WHERE id = ?`), path, id); err != nil {
		t.Fatalf("set path: %v", err)
	}
}

func TestStats(t *testing.T) {
	conn := dbtest.New(t)
	dbtest.SeedUser(t, conn, "a@example.com")
	dbtest.SeedUser(t, conn, "b@example.com")
	dbtest.SeedCard(t, conn, "OP01-001", "Zoro")

	st, err := NewService(conn, card.NewPostgresRepository(conn), nil, stubSync{}, "").Stats(context.Background())
	if err != nil {
		t.Fatalf("stats: %v", err)
	}
	if *st != (Stats{TotalCards: 1, TotalDecks: 0, TotalUsers: 2}) {
		t.Errorf("unexpected stats %+v", st)
	}
}

func TestScrape(t *testing.T) {
	ok := NewService(nil, nil, nil, stubSync{res: &cardsync.Result{NewCards: 2, UpdatedCards: 1, TotalCards: 3, Errors: []string{}}}, "")
	res := ok.Scrape(context.Background())
	if res.Status != "success" || res.NewCards != 2 || res.TotalCards != 3 {
		t.Errorf("unexpected result %+v", res)
	}

	failing := NewService(nil, nil, nil, stubSync{err: errors.New("site down")}, "")
	res = failing.Scrape(context.Background())
	if res.Status != "error" || len(res.Errors) != 1 {
		t.Errorf("unexpected result %+v", res)
	}
}

func TestImageURLMigration(t *testing.T) {
	conn := dbtest.New(t)
	repo := card.NewPostgresRepository(conn)
	const public = "https://cdn.example.com"

	setCardPath(t, conn, dbtest.SeedCard(t, conn, "OP01-001", "Zoro"), public+"/cards/OP01-001.jpg")
	setCardPath(t, conn, dbtest.SeedCard(t, conn, "OP01-002", "Law"), "https://www.onepiece-cardgame.com/images/OP01-002.png")
	setCardPath(t, conn, dbtest.SeedCard(t, conn, "OP01-003", "Luffy"), "/static/OP01-003.png")
	setCardPath(t, conn, dbtest.SeedCard(t, conn, "OP01-004", "Usopp"), "OP01-004.png")

	catalog := &countingCatalog{}
	svc := NewService(conn, repo, catalog, stubSync{}, public+"/")
	ctx := context.Background()

	report, err := svc.CheckImageURLs(ctx)
	if err != nil {
		t.Fatalf("check: %v", err)
	}
	want := ImageCategories{R2URLs: 1, ExternalURLs: 1, LocalPaths: 1, Other: 1}
	if report.Categories != want || report.MigrationStatus.NeedsMigration != 3 || report.MigrationStatus.IsComplete {
		t.Errorf("unexpected report %+v", report)
	}

	res, err := svc.MigrateImageURLs(ctx)
	if err != nil {
		t.Fatalf("migrate: %v", err)
	}
	if res.Status != "success" || res.UpdatedCount != 3 || res.SkippedCount != 1 {
		t.Errorf("unexpected migration %+v", res)
	}
	if catalog.n != 1 {
		t.Errorf("catalog invalidated %d times", catalog.n)
	}

	again, err := svc.MigrateImageURLs(ctx)
	if err != nil {
		t.Fatalf("migrate again: %v", err)
	}
	if again.Status != "no_changes_needed" || again.UpdatedCount != 0 {
		t.Errorf("second migration %+v", again)
	}

	report, _ = svc.CheckImageURLs(ctx)
	if !report.MigrationStatus.IsComplete {
		t.Errorf("migration should be complete: %+v", report.MigrationStatus)
	}
}

func TestMigrateWithoutPublicURL(t *testing.T) {
	gin.SetMode(gin.TestMode)
	h := NewHandler(NewService(nil, nil, nil, stubSync{}, ""))

	r := gin.New()
	r.POST("/admin/migrate-image-urls", h.MigrateImageURLs)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/admin/migrate-image-urls", nil))
	if w.Code != http.StatusInternalServerError {
		t.Errorf("status = %d, want 500", w.Code)
	}
}
