package db

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jmoiron/sqlx"
)

// schema is applied in order on every start. Every statement must stay
// idempotent and valid on both postgres and sqlite.
var schema = []string{
	// -------------------------------
	// USERS
	// -------------------------------
	`CREATE TABLE IF NOT EXISTS users (
		id TEXT PRIMARY KEY,
		google_id TEXT NOT NULL UNIQUE,
		email TEXT NOT NULL,
		nickname TEXT,
		image TEXT,
		role TEXT NOT NULL DEFAULT 'member' CHECK (role IN ('member', 'admin')),
		is_active BOOLEAN NOT NULL DEFAULT TRUE,
		created_at BIGINT NOT NULL,
		updated_at BIGINT NOT NULL
	)`,

	// -------------------------------
	// CARDS
	// -------------------------------
	`CREATE TABLE IF NOT EXISTS cards (
		id TEXT PRIMARY KEY,
		card_id TEXT NOT NULL UNIQUE,
		name TEXT NOT NULL,
		color TEXT NOT NULL,
		block_icon INTEGER NOT NULL DEFAULT 0,
		image_path TEXT NOT NULL,
		created_at BIGINT NOT NULL,
		updated_at BIGINT NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS custom_cards (
		id TEXT PRIMARY KEY,
		user_id TEXT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		name TEXT NOT NULL,
		color TEXT NOT NULL,
		color2 TEXT,
		created_at BIGINT NOT NULL,
		updated_at BIGINT NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_custom_cards_user ON custom_cards(user_id)`,

	// -------------------------------
	// DECKS
	// -------------------------------
	`CREATE TABLE IF NOT EXISTS decks (
		id TEXT PRIMARY KEY,
		user_id TEXT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		name TEXT NOT NULL,
		status TEXT NOT NULL DEFAULT 'built' CHECK (status IN ('built', 'planning')),
		leader_card_id TEXT REFERENCES cards(id) ON DELETE CASCADE,
		custom_card_id TEXT REFERENCES custom_cards(id) ON DELETE CASCADE,
		created_at BIGINT NOT NULL,
		updated_at BIGINT NOT NULL,
		CHECK ((leader_card_id IS NULL) <> (custom_card_id IS NULL))
	)`,
	`CREATE INDEX IF NOT EXISTS idx_decks_user ON decks(user_id)`,

	// -------------------------------
	// STORES
	// -------------------------------
	`CREATE TABLE IF NOT EXISTS stores (
		id TEXT PRIMARY KEY,
		user_id TEXT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		name TEXT NOT NULL,
		color TEXT NOT NULL,
		created_at BIGINT NOT NULL,
		updated_at BIGINT NOT NULL,
		UNIQUE (user_id, name)
	)`,
	`CREATE INDEX IF NOT EXISTS idx_stores_user_created ON stores(user_id, created_at)`,

	// -------------------------------
	// PURCHASE LISTS + ITEMS
	// -------------------------------
	`CREATE TABLE IF NOT EXISTS purchase_lists (
		id TEXT PRIMARY KEY,
		user_id TEXT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		name TEXT,
		status TEXT NOT NULL DEFAULT 'planning' CHECK (status IN ('planning', 'purchased')),
		created_at BIGINT NOT NULL,
		updated_at BIGINT NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_purchase_lists_user ON purchase_lists(user_id)`,
	`CREATE TABLE IF NOT EXISTS purchase_items (
		id TEXT PRIMARY KEY,
		list_id TEXT NOT NULL REFERENCES purchase_lists(id) ON DELETE CASCADE,
		card_id TEXT REFERENCES cards(id) ON DELETE CASCADE,
		custom_card_id TEXT REFERENCES custom_cards(id) ON DELETE CASCADE,
		quantity INTEGER NOT NULL CHECK (quantity BETWEEN 1 AND 10),
		selected_store_id TEXT REFERENCES stores(id) ON DELETE SET NULL,
		created_at BIGINT NOT NULL,
		updated_at BIGINT NOT NULL,
		CHECK ((card_id IS NULL) <> (custom_card_id IS NULL))
	)`,
	`CREATE INDEX IF NOT EXISTS idx_purchase_items_list ON purchase_items(list_id, created_at)`,

	// -------------------------------
	// PRICES + ALLOCATIONS
	// -------------------------------
	`CREATE TABLE IF NOT EXISTS price_entries (
		id TEXT PRIMARY KEY,
		item_id TEXT NOT NULL REFERENCES purchase_items(id) ON DELETE CASCADE,
		store_id TEXT NOT NULL REFERENCES stores(id) ON DELETE CASCADE,
		price INTEGER CHECK (price IS NULL OR price BETWEEN 1 AND 9999),
		created_at BIGINT NOT NULL,
		updated_at BIGINT NOT NULL,
		UNIQUE (item_id, store_id)
	)`,
	`CREATE INDEX IF NOT EXISTS idx_price_entries_store ON price_entries(store_id)`,
	`CREATE TABLE IF NOT EXISTS purchase_allocations (
		id TEXT PRIMARY KEY,
		item_id TEXT NOT NULL REFERENCES purchase_items(id) ON DELETE CASCADE,
		store_id TEXT NOT NULL REFERENCES stores(id) ON DELETE CASCADE,
		quantity INTEGER NOT NULL CHECK (quantity BETWEEN 1 AND 10),
		created_at BIGINT NOT NULL,
		updated_at BIGINT NOT NULL,
		UNIQUE (item_id, store_id)
	)`,
	`CREATE INDEX IF NOT EXISTS idx_allocations_store ON purchase_allocations(store_id)`,
}

// Migrate creates or updates the database schema.
func Migrate(ctx context.Context, db *sqlx.DB) error {
	for i, stmt := range schema {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("failed to apply schema statement %d: %w", i, err)
		}
	}
	slog.Info("schema initialized", "statements", len(schema))
	return nil
}
