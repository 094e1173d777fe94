package purchase

import (
	"context"

	"sharedeck/internal/core"
)

type Repository interface {
	// lists
	CreateList(ctx context.Context, l *List) error
	GetList(ctx context.Context, id string) (*List, error)
	ListByOwner(ctx context.Context, userID string) ([]List, error)
	UpdateList(ctx context.Context, l *List) error
	DeleteList(ctx context.Context, id string) error

	// items
	CreateItem(ctx context.Context, item *Item) error
	GetItem(ctx context.Context, id string) (*Item, error)
	ListItemViews(ctx context.Context, listID string) ([]ItemView, error)
	// UpdateItem rejects a quantity below what is already allocated.
	UpdateItem(ctx context.Context, item *Item) error
	DeleteItem(ctx context.Context, id string) error

	core.ItemReader
}
