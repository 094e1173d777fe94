package pricing

import "context"

type Repository interface {
	ListByItem(ctx context.Context, itemID string) ([]PriceEntry, error)
	Upsert(ctx context.Context, e *PriceEntry) error
	Delete(ctx context.Context, itemID, storeID string) error
}
