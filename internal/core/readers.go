// Package core declares the read-side contracts that let domain packages
// look at each other's aggregates without importing them.
package core

import "context"

// ItemOwnership is the slice of a purchase item needed for access checks.
type ItemOwnership struct {
	ItemID   string
	ListID   string
	OwnerID  string
	Quantity int
}

// ItemReader returns apperr.ErrNotFound when the item does not exist.
type ItemReader interface {
	ItemOwnership(ctx context.Context, itemID string) (*ItemOwnership, error)
}

type StoreRef struct {
	ID      string
	OwnerID string
	Name    string
	Color   string
}

// StoreReader returns apperr.ErrNotFound when the store does not exist.
type StoreReader interface {
	StoreRef(ctx context.Context, storeID string) (*StoreRef, error)
}

// PriceBackfiller is told about new stores and items so it can create the
// matching empty price rows.
type PriceBackfiller interface {
	OnStoreCreated(ctx context.Context, userID, storeID string) error
	OnItemCreated(ctx context.Context, userID, itemID string) error
}
