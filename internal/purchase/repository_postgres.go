package purchase

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"sharedeck/internal/apperr"
	"sharedeck/internal/core"
	"sharedeck/internal/db"
)

const itemColumns = `id, list_id, card_id, custom_card_id, quantity, selected_store_id, created_at, updated_at`

type PostgresRepository struct {
	db *sqlx.DB
}

func NewPostgresRepository(db *sqlx.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// --------------------------------------------------
// Lists
// --------------------------------------------------

func (r *PostgresRepository) CreateList(ctx context.Context, l *List) error {
	if l.ID == "" {
		l.ID = uuid.NewString()
	}
	if l.CreatedAt == 0 {
		l.CreatedAt = time.Now().UnixNano()
	}
	l.UpdatedAt = l.CreatedAt

	_, err := r.db.ExecContext(ctx, r.db.Rebind(`
		INSERT INTO purchase_lists (id, user_id, name, status, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`), l.ID, l.UserID, l.Name, l.Status, l.CreatedAt, l.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to create purchase list: %w", err)
	}
	return nil
}

func (r *PostgresRepository) GetList(ctx context.Context, id string) (*List, error) {
	var l List
	err := r.db.GetContext(ctx, &l, r.db.Rebind(`
		SELECT id, user_id, name, status, created_at, updated_at
		FROM purchase_lists
		WHERE id = ?
	`), id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperr.NotFound("purchase list not found")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get purchase list: %w", err)
	}
	return &l, nil
}

func (r *PostgresRepository) ListByOwner(ctx context.Context, userID string) ([]List, error) {
	lists := []List{}
	err := r.db.SelectContext(ctx, &lists, r.db.Rebind(`
		SELECT id, user_id, name, status, created_at, updated_at
		FROM purchase_lists
		WHERE user_id = ?
		ORDER BY created_at DESC, id DESC
	`), userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list purchase lists: %w", err)
	}
	return lists, nil
}

func (r *PostgresRepository) UpdateList(ctx context.Context, l *List) error {
	l.UpdatedAt = time.Now().UnixNano()
	_, err := r.db.ExecContext(ctx, r.db.Rebind(`
		UPDATE purchase_lists SET name = ?, status = ?, updated_at = ? WHERE id = ?
	`), l.Name, l.Status, l.UpdatedAt, l.ID)
	if err != nil {
		return fmt.Errorf("failed to update purchase list: %w", err)
	}
	return nil
}

func (r *PostgresRepository) DeleteList(ctx context.Context, id string) error {
	if _, err := r.db.ExecContext(ctx, r.db.Rebind(`DELETE FROM purchase_lists WHERE id = ?`), id); err != nil {
		return fmt.Errorf("failed to delete purchase list: %w", err)
	}
	return nil
}

// --------------------------------------------------
// Items
// --------------------------------------------------

func (r *PostgresRepository) CreateItem(ctx context.Context, item *Item) error {
	if item.ID == "" {
		item.ID = uuid.NewString()
	}
	if item.CreatedAt == 0 {
		item.CreatedAt = time.Now().UnixNano()
	}
	item.UpdatedAt = item.CreatedAt
	cardID, customCardID := item.Card.Columns()

	_, err := r.db.ExecContext(ctx, r.db.Rebind(`
		INSERT INTO purchase_items (`+itemColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`), item.ID, item.ListID, cardID, customCardID, item.Quantity, item.SelectedStoreID, item.CreatedAt, item.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to create purchase item: %w", err)
	}
	return nil
}

func (r *PostgresRepository) GetItem(ctx context.Context, id string) (*Item, error) {
	var row itemRow
	err := r.db.GetContext(ctx, &row, r.db.Rebind(`SELECT `+itemColumns+` FROM purchase_items WHERE id = ?`), id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperr.NotFound("purchase item not found")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get purchase item: %w", err)
	}
	return row.toItem()
}

func (r *PostgresRepository) ListItemViews(ctx context.Context, listID string) ([]ItemView, error) {
	views := []ItemView{}
	err := r.db.SelectContext(ctx, &views, r.db.Rebind(`
		SELECT
			pi.id, pi.list_id, pi.card_id, pi.custom_card_id, pi.quantity,
			pi.selected_store_id, pi.created_at, pi.updated_at,
			COALESCE(c.name, cc.name) AS card_name,
			COALESCE(c.color, cc.color) AS card_color,
			c.image_path AS card_image_path
		FROM purchase_items pi
		LEFT JOIN cards c ON c.id = pi.card_id
		LEFT JOIN custom_cards cc ON cc.id = pi.custom_card_id
		WHERE pi.list_id = ?
		ORDER BY pi.created_at, pi.id
	`), listID)
	if err != nil {
		return nil, fmt.Errorf("failed to list purchase items: %w", err)
	}
	return views, nil
}

func (r *PostgresRepository) UpdateItem(ctx context.Context, item *Item) error {
	item.UpdatedAt = time.Now().UnixNano()

	return db.WithTx(ctx, r.db, func(tx *sqlx.Tx) error {
		// Lock the item row so allocation writers wait for us.
		res, err := tx.ExecContext(ctx, tx.Rebind(`UPDATE purchase_items SET quantity = quantity WHERE id = ?`), item.ID)
		if err != nil {
			return fmt.Errorf("failed to lock purchase item: %w", err)
		}
		if n, _ := res.RowsAffected(); n == 0 {
			return apperr.NotFound("purchase item not found")
		}

		var allocated int
		err = tx.GetContext(ctx, &allocated, tx.Rebind(`
			SELECT COALESCE(SUM(quantity), 0) FROM purchase_allocations WHERE item_id = ?
		`), item.ID)
		if err != nil {
			return fmt.Errorf("failed to sum allocations: %w", err)
		}
		if allocated > item.Quantity {
			return apperr.InvalidQuantity("item quantity (%d) is below allocated quantity (%d)", item.Quantity, allocated)
		}

		_, err = tx.ExecContext(ctx, tx.Rebind(`
			UPDATE purchase_items SET quantity = ?, selected_store_id = ?, updated_at = ? WHERE id = ?
		`), item.Quantity, item.SelectedStoreID, item.UpdatedAt, item.ID)
		if err != nil {
			return fmt.Errorf("failed to update purchase item: %w", err)
		}
		return nil
	})
}

func (r *PostgresRepository) DeleteItem(ctx context.Context, id string) error {
	if _, err := r.db.ExecContext(ctx, r.db.Rebind(`DELETE FROM purchase_items WHERE id = ?`), id); err != nil {
		return fmt.Errorf("failed to delete purchase item: %w", err)
	}
	return nil
}

func (r *PostgresRepository) ItemOwnership(ctx context.Context, itemID string) (*core.ItemOwnership, error) {
	var row struct {
		ItemID   string `db:"item_id"`
		ListID   string `db:"list_id"`
		OwnerID  string `db:"owner_id"`
		Quantity int    `db:"quantity"`
	}
	err := r.db.GetContext(ctx, &row, r.db.Rebind(`
		SELECT pi.id AS item_id, pi.list_id, pl.user_id AS owner_id, pi.quantity
		FROM purchase_items pi
		JOIN purchase_lists pl ON pl.id = pi.list_id
		WHERE pi.id = ?
	`), itemID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperr.NotFound("purchase item not found")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load item ownership: %w", err)
	}
	return &core.ItemOwnership{
		ItemID:   row.ItemID,
		ListID:   row.ListID,
		OwnerID:  row.OwnerID,
		Quantity: row.Quantity,
	}, nil
}
