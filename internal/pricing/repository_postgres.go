package pricing

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"sharedeck/internal/apperr"
)

type PostgresRepository struct {
	db *sqlx.DB
}

func NewPostgresRepository(db *sqlx.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) ListByItem(ctx context.Context, itemID string) ([]PriceEntry, error) {
	entries := []PriceEntry{}
	err := r.db.SelectContext(ctx, &entries, r.db.Rebind(`
		SELECT id, item_id, store_id, price, created_at, updated_at
		FROM price_entries
		WHERE item_id = ?
		ORDER BY updated_at DESC, id
	`), itemID)
	if err != nil {
		return nil, fmt.Errorf("failed to list prices: %w", err)
	}
	return entries, nil
}

// Upsert writes the price for (item, store) and reloads the stored row, so
// e.ID and e.CreatedAt reflect the surviving entry.
func (r *PostgresRepository) Upsert(ctx context.Context, e *PriceEntry) error {
	now := time.Now().UnixNano()

	_, err := r.db.ExecContext(ctx, r.db.Rebind(`
		INSERT INTO price_entries (id, item_id, store_id, price, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT (item_id, store_id)
		DO UPDATE SET price = EXCLUDED.price, updated_at = EXCLUDED.updated_at
	`), uuid.NewString(), e.ItemID, e.StoreID, e.Price, now, now)
	if err != nil {
		return fmt.Errorf("failed to upsert price: %w", err)
	}

	err = r.db.GetContext(ctx, e, r.db.Rebind(`
		SELECT id, item_id, store_id, price, created_at, updated_at
		FROM price_entries
		WHERE item_id = ? AND store_id = ?
	`), e.ItemID, e.StoreID)
	if err != nil {
		return fmt.Errorf("failed to reload price: %w", err)
	}
	return nil
}

func (r *PostgresRepository) Delete(ctx context.Context, itemID, storeID string) error {
	res, err := r.db.ExecContext(ctx, r.db.Rebind(`
		DELETE FROM price_entries WHERE item_id = ? AND store_id = ?
	`), itemID, storeID)
	if err != nil {
		return fmt.Errorf("failed to delete price: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return apperr.NotFound("price entry not found")
	}
	return nil
}
