package allocation

import "context"

// Repository enforces the ledger invariant: for every item the allocated
// quantities never sum past the item's quantity.
type Repository interface {
	ListByItem(ctx context.Context, itemID string) ([]View, error)
	Get(ctx context.Context, id string) (*Allocation, error)
	Create(ctx context.Context, a *Allocation) error
	UpdateQuantity(ctx context.Context, a *Allocation) error
	Delete(ctx context.Context, id string) error
}
