package pricing

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"sharedeck/internal/apperr"
	"sharedeck/internal/core"
	"sharedeck/internal/db"
)

// UnknownCardName is shown for items whose card no longer resolves.
const UnknownCardName = "Unknown"

// SnapshotItem is a purchase item as the planner sees it.
type SnapshotItem struct {
	ID       string
	CardName string
	Quantity int
}

// Snapshot is a read-only view of one purchase list's price grid.
//
// Stores are in creation order. Prices holds only usable prices: a null
// entry and a missing entry both leave the (item, store) key out.
type Snapshot struct {
	ListID string
	Items  []SnapshotItem
	Stores []core.StoreRef
	Prices map[string]map[string]int
}

// Price reports the usable price of itemID at storeID.
func (s *Snapshot) Price(itemID, storeID string) (int, bool) {
	p, ok := s.Prices[itemID][storeID]
	return p, ok
}

type Loader struct {
	db *sqlx.DB
}

func NewLoader(db *sqlx.DB) *Loader {
	return &Loader{db: db}
}

// Load builds the snapshot for listID. A list that is missing or belongs to
// someone else is reported as not found in both cases. All reads share one
// read-only transaction.
func (l *Loader) Load(ctx context.Context, listID, userID string) (*Snapshot, error) {
	var snap *Snapshot
	err := db.WithReadTx(ctx, l.db, func(tx *sqlx.Tx) error {
		var err error
		snap, err = loadSnapshot(ctx, tx, listID, userID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return snap, nil
}

func loadSnapshot(ctx context.Context, tx *sqlx.Tx, listID, userID string) (*Snapshot, error) {
	var ownerID string
	err := tx.GetContext(ctx, &ownerID, tx.Rebind(`SELECT user_id FROM purchase_lists WHERE id = ?`), listID)
	if errors.Is(err, sql.ErrNoRows) || (err == nil && ownerID != userID) {
		return nil, apperr.NotFound("purchase list not found")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load purchase list: %w", err)
	}

	snap := &Snapshot{ListID: listID, Prices: map[string]map[string]int{}}

	var items []struct {
		ID       string  `db:"id"`
		CardName *string `db:"card_name"`
		Quantity int     `db:"quantity"`
	}
	err = tx.SelectContext(ctx, &items, tx.Rebind(`
		SELECT pi.id, COALESCE(c.name, cc.name) AS card_name, pi.quantity
		FROM purchase_items pi
		LEFT JOIN cards c ON c.id = pi.card_id
		LEFT JOIN custom_cards cc ON cc.id = pi.custom_card_id
		WHERE pi.list_id = ?
		ORDER BY pi.created_at, pi.id
	`), listID)
	if err != nil {
		return nil, fmt.Errorf("failed to load purchase items: %w", err)
	}
	snap.Items = make([]SnapshotItem, 0, len(items))
	for _, it := range items {
		name := UnknownCardName
		if it.CardName != nil {
			name = *it.CardName
		}
		snap.Items = append(snap.Items, SnapshotItem{ID: it.ID, CardName: name, Quantity: it.Quantity})
	}

	var stores []struct {
		ID      string `db:"id"`
		OwnerID string `db:"user_id"`
		Name    string `db:"name"`
		Color   string `db:"color"`
	}
	err = tx.SelectContext(ctx, &stores, tx.Rebind(`
		SELECT id, user_id, name, color
		FROM stores
		WHERE user_id = ?
		ORDER BY created_at, id
	`), userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load stores: %w", err)
	}
	snap.Stores = make([]core.StoreRef, 0, len(stores))
	for _, st := range stores {
		snap.Stores = append(snap.Stores, core.StoreRef{ID: st.ID, OwnerID: st.OwnerID, Name: st.Name, Color: st.Color})
	}

	var prices []struct {
		ItemID  string `db:"item_id"`
		StoreID string `db:"store_id"`
		Price   int    `db:"price"`
	}
	err = tx.SelectContext(ctx, &prices, tx.Rebind(`
		SELECT pe.item_id, pe.store_id, pe.price
		FROM price_entries pe
		JOIN purchase_items pi ON pi.id = pe.item_id
		WHERE pi.list_id = ? AND pe.price IS NOT NULL
	`), listID)
	if err != nil {
		return nil, fmt.Errorf("failed to load prices: %w", err)
	}
	for _, p := range prices {
		row, ok := snap.Prices[p.ItemID]
		if !ok {
			row = map[string]int{}
			snap.Prices[p.ItemID] = row
		}
		row[p.StoreID] = p.Price
	}

	return snap, nil
}
