package allocation

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"sharedeck/internal/apperr"
	"sharedeck/internal/db"
)

type PostgresRepository struct {
	db *sqlx.DB
}

func NewPostgresRepository(db *sqlx.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) ListByItem(ctx context.Context, itemID string) ([]View, error) {
	var rows []struct {
		Allocation
		StoreName  *string `db:"store_name"`
		StoreColor *string `db:"store_color"`
	}
	err := r.db.SelectContext(ctx, &rows, r.db.Rebind(`
		SELECT a.id, a.item_id, a.store_id, a.quantity, a.created_at, a.updated_at,
			s.name AS store_name, s.color AS store_color
		FROM purchase_allocations a
		LEFT JOIN stores s ON s.id = a.store_id
		WHERE a.item_id = ?
		ORDER BY a.created_at, a.id
	`), itemID)
	if err != nil {
		return nil, fmt.Errorf("failed to list allocations: %w", err)
	}

	views := make([]View, 0, len(rows))
	for _, row := range rows {
		v := View{
			ID:         row.ID,
			ItemID:     row.ItemID,
			StoreID:    row.StoreID,
			Quantity:   row.Quantity,
			StoreName:  unknownStoreName,
			StoreColor: unknownStoreColor,
		}
		if row.StoreName != nil {
			v.StoreName = *row.StoreName
		}
		if row.StoreColor != nil {
			v.StoreColor = *row.StoreColor
		}
		views = append(views, v)
	}
	return views, nil
}

func (r *PostgresRepository) Get(ctx context.Context, id string) (*Allocation, error) {
	var a Allocation
	err := r.db.GetContext(ctx, &a, r.db.Rebind(`
		SELECT id, item_id, store_id, quantity, created_at, updated_at
		FROM purchase_allocations
		WHERE id = ?
	`), id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperr.NotFound("allocation not found")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get allocation: %w", err)
	}
	return &a, nil
}

// Create checks the pair and the running total and inserts, all while
// holding the item row lock.
func (r *PostgresRepository) Create(ctx context.Context, a *Allocation) error {
	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	if a.CreatedAt == 0 {
		a.CreatedAt = time.Now().UnixNano()
	}
	a.UpdatedAt = a.CreatedAt

	err := db.WithTx(ctx, r.db, func(tx *sqlx.Tx) error {
		itemQty, err := lockItem(ctx, tx, a.ItemID)
		if err != nil {
			return err
		}

		var existing int
		err = tx.GetContext(ctx, &existing, tx.Rebind(`
			SELECT COUNT(*) FROM purchase_allocations WHERE item_id = ? AND store_id = ?
		`), a.ItemID, a.StoreID)
		if err != nil {
			return fmt.Errorf("failed to check allocation pair: %w", err)
		}
		if existing > 0 {
			return errDuplicatePair()
		}

		if err := checkTotal(ctx, tx, a.ItemID, "", a.Quantity, itemQty); err != nil {
			return err
		}

		_, err = tx.ExecContext(ctx, tx.Rebind(`
			INSERT INTO purchase_allocations (id, item_id, store_id, quantity, created_at, updated_at)
			VALUES (?, ?, ?, ?, ?, ?)
		`), a.ID, a.ItemID, a.StoreID, a.Quantity, a.CreatedAt, a.UpdatedAt)
		if err != nil {
			return fmt.Errorf("failed to create allocation: %w", err)
		}
		return nil
	})
	if db.IsUniqueViolation(err) {
		return errDuplicatePair()
	}
	return err
}

func (r *PostgresRepository) UpdateQuantity(ctx context.Context, a *Allocation) error {
	a.UpdatedAt = time.Now().UnixNano()

	return db.WithTx(ctx, r.db, func(tx *sqlx.Tx) error {
		itemQty, err := lockItem(ctx, tx, a.ItemID)
		if err != nil {
			return err
		}
		if err := checkTotal(ctx, tx, a.ItemID, a.ID, a.Quantity, itemQty); err != nil {
			return err
		}

		res, err := tx.ExecContext(ctx, tx.Rebind(`
			UPDATE purchase_allocations SET quantity = ?, updated_at = ? WHERE id = ?
		`), a.Quantity, a.UpdatedAt, a.ID)
		if err != nil {
			return fmt.Errorf("failed to update allocation: %w", err)
		}
		if n, _ := res.RowsAffected(); n == 0 {
			return apperr.NotFound("allocation not found")
		}
		return nil
	})
}

func (r *PostgresRepository) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, r.db.Rebind(`DELETE FROM purchase_allocations WHERE id = ?`), id)
	if err != nil {
		return fmt.Errorf("failed to delete allocation: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return apperr.NotFound("allocation not found")
	}
	return nil
}

// lockItem takes the item row lock and returns the item's quantity.
// Allocation writers and item quantity updates serialize on this row.
func lockItem(ctx context.Context, tx *sqlx.Tx, itemID string) (int, error) {
	res, err := tx.ExecContext(ctx, tx.Rebind(`UPDATE purchase_items SET quantity = quantity WHERE id = ?`), itemID)
	if err != nil {
		return 0, fmt.Errorf("failed to lock purchase item: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return 0, apperr.NotFound("purchase item not found")
	}

	var qty int
	if err := tx.GetContext(ctx, &qty, tx.Rebind(`SELECT quantity FROM purchase_items WHERE id = ?`), itemID); err != nil {
		return 0, fmt.Errorf("failed to read item quantity: %w", err)
	}
	return qty, nil
}

// checkTotal rejects quantity when, added to every other allocation of the
// item, it would exceed itemQty. exceptID excludes the row being updated.
func checkTotal(ctx context.Context, tx *sqlx.Tx, itemID, exceptID string, quantity, itemQty int) error {
	var others int
	err := tx.GetContext(ctx, &others, tx.Rebind(`
		SELECT COALESCE(SUM(quantity), 0) FROM purchase_allocations WHERE item_id = ? AND id <> ?
	`), itemID, exceptID)
	if err != nil {
		return fmt.Errorf("failed to sum allocations: %w", err)
	}
	if total := others + quantity; total > itemQty {
		return apperr.InvalidQuantity("total allocated quantity (%d) exceeds item quantity (%d)", total, itemQty)
	}
	return nil
}

func errDuplicatePair() error {
	return apperr.Conflict("allocation for this store already exists, update it instead")
}
