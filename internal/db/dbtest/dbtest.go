// Package dbtest provides migrated throwaway SQLite databases for tests.
package dbtest

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"sharedeck/internal/db"
)

// New returns a migrated database in the test's temp dir, closed on cleanup.
func New(t *testing.T) *sqlx.DB {
	t.Helper()

	database, err := db.OpenSQLite(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	t.Cleanup(func() { database.Close() })

	if err := db.Migrate(context.Background(), database.DB); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return database.DB
}

// SeedUser inserts a member user and returns its id.
func SeedUser(t *testing.T, conn *sqlx.DB, email string) string {
	t.Helper()

	id := uuid.NewString()
	now := time.Now().UnixNano()
	_, err := conn.Exec(conn.Rebind(`
		INSERT INTO users (id, google_id, email, role, is_active, created_at, updated_at)
		VALUES (?, ?, ?, 'member', TRUE, ?, ?)
	`), id, "google-"+id, email, now, now)
	if err != nil {
		t.Fatalf("seed user: %v", err)
	}
	return id
}

// SeedCard inserts a catalog card and returns its id.
func SeedCard(t *testing.T, conn *sqlx.DB, code, name string) string {
	t.Helper()

	id := uuid.NewString()
	now := time.Now().UnixNano()
	_, err := conn.Exec(conn.Rebind(`
		INSERT INTO cards (id, card_id, name, color, block_icon, image_path, created_at, updated_at)
		VALUES (?, ?, ?, 'Red', 1, ?, ?, ?)
	`), id, code, name, "https://cdn.example/cards/"+code+".jpg", now, now)
	if err != nil {
		t.Fatalf("seed card: %v", err)
	}
	return id
}
