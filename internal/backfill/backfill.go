// Package backfill creates empty ("out of stock") price rows so every
// (item, store) pair of a user shows up in the price grid. Planning never
// depends on these rows existing.
package backfill

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

type Service struct {
	db *sqlx.DB
}

func NewService(db *sqlx.DB) *Service {
	return &Service{db: db}
}

// OnStoreCreated adds a null price row for every item the user owns.
func (s *Service) OnStoreCreated(ctx context.Context, userID, storeID string) error {
	var itemIDs []string
	err := s.db.SelectContext(ctx, &itemIDs, s.db.Rebind(`
		SELECT pi.id
		FROM purchase_items pi
		JOIN purchase_lists pl ON pl.id = pi.list_id
		WHERE pl.user_id = ?
	`), userID)
	if err != nil {
		return fmt.Errorf("failed to list items for backfill: %w", err)
	}

	pairs := make([][2]string, 0, len(itemIDs))
	for _, itemID := range itemIDs {
		pairs = append(pairs, [2]string{itemID, storeID})
	}
	return s.insertNullPrices(ctx, pairs)
}

// OnItemCreated adds a null price row for every store the user owns.
func (s *Service) OnItemCreated(ctx context.Context, userID, itemID string) error {
	var storeIDs []string
	err := s.db.SelectContext(ctx, &storeIDs, s.db.Rebind(`
		SELECT id FROM stores WHERE user_id = ?
	`), userID)
	if err != nil {
		return fmt.Errorf("failed to list stores for backfill: %w", err)
	}

	pairs := make([][2]string, 0, len(storeIDs))
	for _, storeID := range storeIDs {
		pairs = append(pairs, [2]string{itemID, storeID})
	}
	return s.insertNullPrices(ctx, pairs)
}

// insertNullPrices never overwrites an existing price.
func (s *Service) insertNullPrices(ctx context.Context, pairs [][2]string) error {
	if len(pairs) == 0 {
		return nil
	}

	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin backfill: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PreparexContext(ctx, tx.Rebind(`
		INSERT INTO price_entries (id, item_id, store_id, price, created_at, updated_at)
		VALUES (?, ?, ?, NULL, ?, ?)
		ON CONFLICT (item_id, store_id) DO NOTHING
	`))
	if err != nil {
		return fmt.Errorf("failed to prepare backfill: %w", err)
	}
	defer stmt.Close()

	now := time.Now().UnixNano()
	for _, p := range pairs {
		if _, err := stmt.ExecContext(ctx, uuid.NewString(), p[0], p[1], now, now); err != nil {
			return fmt.Errorf("failed to backfill price row: %w", err)
		}
	}

	return tx.Commit()
}
